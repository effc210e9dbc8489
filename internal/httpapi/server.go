// Package httpapi exposes the pantry over HTTP. It is the only process that
// holds the completion API key.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"pantryservice/internal/inventory"
	"pantryservice/internal/platform/observability"
	"pantryservice/internal/recipe"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 20 * time.Second
)

// NewHandler builds the instrumented router with every route under /api/v1.
func NewHandler(inv inventory.Service, recipes recipe.Suggester, logger observability.Logger) http.Handler {
	h := &handler{inventory: inv, recipes: recipes}

	router := chi.NewRouter()
	// /items/ and /items route the same way
	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		route := func(method, pattern string, fn APIHandler) {
			r.Method(method, pattern, otelhttp.WithRouteTag("/api/v1"+pattern, errorHandler(logger, fn)))
		}

		r.Get("/health", health)
		route(http.MethodGet, "/items", h.listItems)
		route(http.MethodPost, "/items/{name}/increment", h.incrementItem)
		route(http.MethodPost, "/items/{name}/decrement", h.decrementItem)
		route(http.MethodPost, "/recipes/suggest", h.suggestRecipe)
	})

	return otelhttp.NewHandler(router, "pantry-http",
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
	)
}

// Server runs the HTTP API until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger observability.Logger
}

func NewServer(addr string, handler http.Handler, logger observability.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully once ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Requests outlive ctx long enough to drain.
	s.srv.BaseContext = func(net.Listener) context.Context { return context.WithoutCancel(ctx) }

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("🚀 HTTP server listening", zap.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutdown signal received, draining HTTP requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		s.logger.Info("HTTP server shutdown complete.")
		return nil
	})

	return g.Wait()
}
