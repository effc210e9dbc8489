package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantryservice/internal/httpapi"
	"pantryservice/internal/inventory"
	"pantryservice/internal/recipe"
	"pantryservice/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type staticSuggester struct {
	got []string
}

func (s *staticSuggester) SuggestRecipe(_ context.Context, names []string) recipe.Suggestion {
	s.got = names
	return recipe.Suggestion{RecipeName: "Pesto", SearchLink: "https://www.google.com/search?q=pesto"}
}

func newClient(t *testing.T, sugg recipe.Suggester) *Client {
	t.Helper()
	svc := inventory.NewService(memstore.New(), nil, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
	srv := httptest.NewServer(httpapi.NewHandler(svc, sugg, zap.NewNop()))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	sugg := &staticSuggester{}
	c := newClient(t, sugg)

	items, err := c.ListItems(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = c.Increment(ctx, "basil", 2)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{{Name: "basil", Quantity: 2}}, items)

	items, err = c.Increment(ctx, "pine nuts", 0.5)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{{Name: "basil", Quantity: 2}, {Name: "pine nuts", Quantity: 0.5}}, items)

	items, err = c.ListItems(ctx, "PINE")
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{{Name: "pine nuts", Quantity: 0.5}}, items)

	items, err = c.Decrement(ctx, "basil")
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{{Name: "basil", Quantity: 1}, {Name: "pine nuts", Quantity: 0.5}}, items)

	s, err := c.SuggestRecipe(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pesto", s.RecipeName)
	assert.Equal(t, []string{}, sugg.got)
}

func TestClientNamesSurviveEscaping(t *testing.T) {
	names := []string{"a%41", "100%25 juice", "50% rye", "salt/pepper", "mac & cheese?"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := newClient(t, &staticSuggester{})

			items, err := c.Increment(ctx, name, 1)
			require.NoError(t, err)
			assert.Equal(t, []inventory.Item{{Name: name, Quantity: 1}}, items)

			items, err = c.ListItems(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []inventory.Item{{Name: name, Quantity: 1}}, items)

			items, err = c.Decrement(ctx, name)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":503,"message":"inventory store unavailable"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListItems(context.Background(), "")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "inventory store unavailable", apiErr.Message)
}

func TestClientAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Decrement(context.Background(), "eggs")
	assert.EqualError(t, err, "pantry api: 502 Bad Gateway")
}
