// Package client talks to the pantry HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pantryservice/internal/inventory"
	"pantryservice/internal/recipe"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 60 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pantry api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) ListItems(ctx context.Context, search string) ([]inventory.Item, error) {
	path := "/items"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var resp itemsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Increment(ctx context.Context, name string, amount float64) ([]inventory.Item, error) {
	var resp itemsResponse
	body := map[string]float64{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/items/"+url.PathEscape(name)+"/increment", body, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Decrement(ctx context.Context, name string) ([]inventory.Item, error) {
	var resp itemsResponse
	if err := c.do(ctx, http.MethodPost, "/items/"+url.PathEscape(name)+"/decrement", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) SuggestRecipe(ctx context.Context, names []string) (recipe.Suggestion, error) {
	if names == nil {
		names = []string{}
	}
	var s recipe.Suggestion
	err := c.do(ctx, http.MethodPost, "/recipes/suggest", map[string][]string{"items": names}, &s)
	return s, err
}

type itemsResponse struct {
	Items []inventory.Item `json:"items"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
