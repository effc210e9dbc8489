package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pantryservice/internal/config"
	"pantryservice/internal/inventory"
)

// Application holds all the components and manages the application lifecycle
type Application struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container *Container
}

// NewApplication creates an Application whose context ends on SIGINT or SIGTERM.
func NewApplication(ctx context.Context, cfg *config.Config, out io.Writer) (*Application, error) {
	appCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	app := &Application{
		ctx:    appCtx,
		cancel: cancel,
	}

	container, err := NewContainer(app.ctx, cfg, out)
	if err != nil {
		cancel()
		return nil, err
	}
	app.container = container

	app.container.Logger().Info("Application initialized successfully")
	return app, nil
}

// Serve runs the HTTP API until the context is cancelled.
func (app *Application) Serve() error {
	server, err := app.container.BuildServer(app.ctx)
	if err != nil {
		return err
	}
	return server.ListenAndServe(app.ctx)
}

// Watch streams item change events into sink until the context is cancelled.
func (app *Application) Watch(sink func(inventory.ItemChangedEvent)) error {
	watcher, err := app.container.BuildWatcher(sink)
	if err != nil {
		return err
	}
	return watcher.Start(app.ctx)
}

// Shutdown gracefully shuts down all application components
func (app *Application) Shutdown() {
	if app.container != nil {
		app.container.Logger().Info("Starting application shutdown...")
	}

	if app.cancel != nil {
		app.cancel()
	}

	if app.container != nil {
		app.container.Shutdown(context.Background())
	}
}
