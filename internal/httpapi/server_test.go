package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pantryservice/internal/inventory"
	"pantryservice/internal/recipe"
	"pantryservice/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeSuggester struct {
	calls [][]string
	reply recipe.Suggestion
}

func (f *fakeSuggester) SuggestRecipe(_ context.Context, names []string) recipe.Suggestion {
	f.calls = append(f.calls, names)
	return f.reply
}

type downStore struct{}

func (downStore) List(context.Context) ([]inventory.Item, error) {
	return nil, inventory.Unavailable("list", "", errors.New("dial tcp: connection refused"))
}
func (downStore) Increment(_ context.Context, name string, _ float64) error {
	return inventory.Unavailable("increment", name, errors.New("dial tcp: connection refused"))
}
func (downStore) Decrement(_ context.Context, name string) error {
	return inventory.Unavailable("decrement", name, errors.New("dial tcp: connection refused"))
}
func (downStore) Close() error { return nil }

func newTestServer(t *testing.T, store inventory.Store, sugg recipe.Suggester) *httptest.Server {
	t.Helper()
	svc := inventory.NewService(store, nil, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
	srv := httptest.NewServer(NewHandler(svc, sugg, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeItems(t *testing.T, body []byte) []inventory.Item {
	t.Helper()
	var resp ItemsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Items
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, memstore.New(), &fakeSuggester{})

	resp, body := do(t, http.MethodGet, srv.URL+"/api/v1/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestItemLifecycle(t *testing.T) {
	srv := newTestServer(t, memstore.New(), &fakeSuggester{})
	base := srv.URL + "/api/v1/items"

	resp, body := do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items":[]}`, string(body))

	resp, body = do(t, http.MethodPost, base+"/eggs/increment", `{"amount": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 2}}, decodeItems(t, body))

	resp, body = do(t, http.MethodPost, base+"/eggs/increment", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 3}}, decodeItems(t, body))

	resp, body = do(t, http.MethodPost, base+"/olive%20oil/increment/", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 3}, {Name: "olive oil", Quantity: 1}}, decodeItems(t, body))

	resp, body = do(t, http.MethodPost, base+"/olive%20oil/decrement", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 3}}, decodeItems(t, body))

	resp, body = do(t, http.MethodPost, base+"/flour/decrement", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "decrementing an absent item is not an error")
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 3}}, decodeItems(t, body))

	resp, body = do(t, http.MethodGet, base+"?search=EG", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []inventory.Item{{Name: "eggs", Quantity: 3}}, decodeItems(t, body))
}

func TestIncrementRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t, memstore.New(), &fakeSuggester{})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/items/eggs/increment", `{"amount": "two"`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp errorBody
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Status)
	assert.Equal(t, "invalid request body", errResp.Message)
}

func TestStoreUnavailable(t *testing.T) {
	srv := newTestServer(t, downStore{}, &fakeSuggester{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items/eggs/increment"},
		{http.MethodPost, "/api/v1/items/eggs/decrement"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, body := do(t, tc.method, srv.URL+tc.path, "")
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			assert.JSONEq(t, `{"status":503,"message":"inventory store unavailable"}`, string(body))
		})
	}
}

type corruptStore struct{ inventory.Store }

func (corruptStore) Decrement(_ context.Context, name string) error {
	return &inventory.StoreError{Op: "decrement", Name: name, Err: errors.New(`quantity is "lots"`)}
}

func TestStoreDataErrorIsInternal(t *testing.T) {
	srv := newTestServer(t, corruptStore{memstore.New()}, &fakeSuggester{})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/items/eggs/decrement", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"status":500,"message":"something went wrong"}`, string(body))
}

func TestItemNameDecodedOnce(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "a%2541/increment", want: "a%41"},
		{path: "100%2525%20juice/increment", want: "100%25 juice"},
		{path: "salt%2Fpepper/increment", want: "salt/pepper"},
		{path: "a%2C%2541/increment", want: "a,%41"},
		{path: "a%2C%2541/increment/", want: "a,%41"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			srv := newTestServer(t, memstore.New(), &fakeSuggester{})

			resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/items/"+tt.path, "")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Equal(t, []inventory.Item{{Name: tt.want, Quantity: 1}}, decodeItems(t, body))
		})
	}
}

func TestSuggestRecipe(t *testing.T) {
	store := memstore.New()
	require.NoError(t, store.Increment(context.Background(), "eggs", 2))
	require.NoError(t, store.Increment(context.Background(), "basil", 1))

	sugg := &fakeSuggester{reply: recipe.Suggestion{RecipeName: "Omelette", SearchLink: "https://www.google.com/search?q=omelette"}}
	srv := newTestServer(t, store, sugg)
	url := srv.URL + "/api/v1/recipes/suggest"

	t.Run("explicit items", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, url, `{"items":["tomato"]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"recipe_name":"Omelette","search_link":"https://www.google.com/search?q=omelette"}`, string(body))
		assert.Equal(t, []string{"tomato"}, sugg.calls[len(sugg.calls)-1])
	})

	t.Run("defaults to the inventory", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, url, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"basil", "eggs"}, sugg.calls[len(sugg.calls)-1])
	})

	t.Run("empty list is forwarded", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, url, `{"items":[]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{}, sugg.calls[len(sugg.calls)-1])
	})
}

func TestServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := inventory.NewService(memstore.New(), nil, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
	server := NewServer(ln.Addr().String(), NewHandler(svc, &fakeSuggester{}, zap.NewNop()), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{}}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/api/v1/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
