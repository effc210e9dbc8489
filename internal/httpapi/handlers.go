package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"pantryservice/internal/inventory"
	"pantryservice/internal/recipe"

	"github.com/go-chi/chi/v5"
)

// ItemsResponse is returned by listing and by every mutation, which re-lists.
type ItemsResponse struct {
	Items []inventory.Item `json:"items"`
}

// IncrementRequest is the optional body of an increment. A missing amount means 1.
type IncrementRequest struct {
	Amount *float64 `json:"amount"`
}

// SuggestRequest is the optional body of a suggestion request. Without items
// the current inventory is used.
type SuggestRequest struct {
	Items []string `json:"items"`
}

type handler struct {
	inventory inventory.Service
	recipes   recipe.Suggester
}

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) error {
	items, err := h.inventory.ListItems(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, itemsResponse(items))
	return nil
}

func (h *handler) incrementItem(w http.ResponseWriter, r *http.Request) error {
	name, err := itemName(r)
	if err != nil {
		return err
	}

	var req IncrementRequest
	if err := decodeOptional(r, &req); err != nil {
		return err
	}
	amount := 1.0
	if req.Amount != nil {
		amount = *req.Amount
	}

	if err := h.inventory.Increment(r.Context(), name, amount); err != nil {
		return err
	}
	return h.listItems(w, r)
}

func (h *handler) decrementItem(w http.ResponseWriter, r *http.Request) error {
	name, err := itemName(r)
	if err != nil {
		return err
	}

	if err := h.inventory.Decrement(r.Context(), name); err != nil {
		return err
	}
	return h.listItems(w, r)
}

func (h *handler) suggestRecipe(w http.ResponseWriter, r *http.Request) error {
	var req SuggestRequest
	if err := decodeOptional(r, &req); err != nil {
		return err
	}

	names := req.Items
	if names == nil {
		items, err := h.inventory.ListItems(r.Context(), "")
		if err != nil {
			return err
		}
		names = inventory.Names(items)
	}

	writeJSON(w, http.StatusOK, h.recipes.SuggestRecipe(r.Context(), names))
	return nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func itemsResponse(items []inventory.Item) ItemsResponse {
	if items == nil {
		items = []inventory.Item{}
	}
	return ItemsResponse{Items: items}
}

// itemName reads the {name} segment. chi routes on RawPath when the request
// carries one (e.g. an escaped "/"), leaving the segment escaped. Otherwise,
// and when StripSlashes re-routed a trailing-slash request on the decoded
// Path, the segment is already decoded and must not be decoded again.
func itemName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" && !strings.HasSuffix(r.URL.Path, "/") {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return "", newAPIError(http.StatusBadRequest, "invalid item name", err.Error())
		}
		name = unescaped
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newAPIError(http.StatusBadRequest, "item name is required", nil)
	}
	return name, nil
}

// decodeOptional decodes a JSON body into v. An empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return newAPIError(http.StatusBadRequest, "invalid request body", err.Error())
}
