package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"pantryservice/internal/inventory"
	"pantryservice/internal/platform/observability"

	"go.uber.org/zap"
)

// APIHandler is an http handler that reports failures by returning them.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// APIError carries the status and message sent to the client.
type APIError struct {
	StatusCode int
	Message    string
	Errors     any
}

func (e *APIError) Error() string { return e.Message }

func newAPIError(status int, msg string, details any) *APIError {
	return &APIError{StatusCode: status, Message: msg, Errors: details}
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// errorHandler turns an APIHandler into an http.HandlerFunc with centralized
// error logging and JSON error responses.
func errorHandler(logger observability.Logger, h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
		case errors.Is(err, inventory.ErrStoreUnavailable):
			apiErr = newAPIError(http.StatusServiceUnavailable, "inventory store unavailable", nil)
		default:
			apiErr = newAPIError(http.StatusInternalServerError, "something went wrong", nil)
		}

		logger.Error("❌ Request failed",
			zap.Error(err),
			zap.String("http.method", r.Method),
			zap.String("http.path", r.URL.Path),
			zap.Int("http.status", apiErr.StatusCode),
		)
		writeJSON(w, apiErr.StatusCode, errorBody{
			Status:  apiErr.StatusCode,
			Message: apiErr.Message,
			Errors:  apiErr.Errors,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
