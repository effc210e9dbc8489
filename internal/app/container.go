package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pantryservice/internal/config"
	"pantryservice/internal/httpapi"
	"pantryservice/internal/inventory"
	"pantryservice/internal/platform/kafka"
	"pantryservice/internal/platform/observability"
	"pantryservice/internal/recipe"
	"pantryservice/internal/store/docstore"
	"pantryservice/internal/store/memstore"
	"pantryservice/internal/store/sqlitestore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Container holds expensive-to-create singleton resources and dependencies
type Container struct {
	config          *config.Config
	out             io.Writer
	logger          observability.Logger
	tracer          observability.Tracer
	tracerProvider  trace.TracerProvider
	store           inventory.Store
	messageConsumer kafka.Consumer
	messageProducer kafka.Producer
	otelShutdown    observability.ShutdownFunc
}

// NewContainer sets up logging and tracing. Stores, brokers and completion
// clients are created on demand by the Build methods.
func NewContainer(ctx context.Context, cfg *config.Config, out io.Writer) (*Container, error) {
	container := &Container{
		config:         cfg,
		out:            out,
		tracerProvider: otel.GetTracerProvider(),
	}

	if err := container.setupLogger(); err != nil {
		return nil, err
	}

	if err := container.setupObservability(ctx); err != nil {
		return nil, err
	}

	return container, nil
}

// setupLogger installs a bootstrap logger used until the OTel bridge is ready.
func (c *Container) setupLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	c.logger = logger
	return nil
}

// setupObservability configures OpenTelemetry logging and tracing, then
// rebuilds the logger on top of the log bridge.
func (c *Container) setupObservability(ctx context.Context) error {
	logShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry logging", zap.Error(err))
	}

	tp, traceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	if tp != nil {
		c.tracerProvider = tp
	}
	c.otelShutdown = observability.JoinShutdown(traceShutdown, logShutdown)

	logger, err := observability.NewLogger(config.ServiceName+".manual", c.config.LogLevel, c.out)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	c.logger = logger
	c.logger.Info("Logger re-initialized with OpenTelemetry bridge",
		zap.Bool("telemetry_enabled", c.config.TelemetryEnabled()),
	)

	c.tracer = c.tracerProvider.Tracer(config.ServiceName)
	return nil
}

// BuildServer wires the inventory store, the event producer and the recipe
// completer behind the HTTP API.
func (c *Container) BuildServer(ctx context.Context) (*httpapi.Server, error) {
	if err := c.config.RequireCredentials(); err != nil {
		return nil, err
	}

	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	c.store = store

	if err := c.setupProducer(); err != nil {
		return nil, err
	}

	completer, err := c.newCompleter(ctx)
	if err != nil {
		return nil, err
	}

	publisher := inventory.NewEventPublisher(c.messageProducer, c.logger)
	inv := inventory.NewService(store, publisher, c.logger, c.tracer)
	recipes := recipe.NewService(completer, c.logger, c.tracer)

	handler := httpapi.NewHandler(inv, recipes, c.logger)
	return httpapi.NewServer(c.config.HTTPAddr, handler, c.logger), nil
}

// BuildWatcher subscribes to item change events and hands each one to sink.
func (c *Container) BuildWatcher(sink func(inventory.ItemChangedEvent)) (*inventory.KafkaConsumerService, error) {
	if !c.config.EventsEnabled() {
		return nil, errors.New("KAFKA_BROKER environment variable is required")
	}

	consumer, err := kafka.NewConsumer(c.config.KafkaBroker, c.tracerProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	c.messageConsumer = consumer

	handler := inventory.NewItemChangedHandler(sink, c.logger, c.tracer)
	return inventory.NewConsumerService(consumer, handler, c.logger), nil
}

func (c *Container) openStore(ctx context.Context) (inventory.Store, error) {
	cfg := c.config.Store
	logger := c.logger.With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.StoreSQLite:
		store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("📦 Inventory store ready", zap.String("path", cfg.SQLitePath))
		return store, nil

	case config.StoreFirestore:
		store, err := docstore.Open(ctx, cfg.ProjectID, cfg.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to open firestore store: %w", err)
		}
		logger.Info("📦 Inventory store ready",
			zap.String("project_id", cfg.ProjectID),
			zap.String("collection", cfg.Collection),
		)
		return store, nil

	case config.StoreMemory:
		logger.Warn("📦 Using in-memory inventory store, data is lost on exit")
		return memstore.New(), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func (c *Container) setupProducer() error {
	if !c.config.EventsEnabled() {
		c.logger.Info("No Kafka broker configured, item change events are disabled")
		c.messageProducer = kafka.NoopProducer{}
		return nil
	}

	producer, err := kafka.NewProducer(c.config.KafkaBroker, c.tracerProvider)
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	c.messageProducer = producer
	return nil
}

func (c *Container) newCompleter(ctx context.Context) (recipe.Completer, error) {
	cfg := c.config.Recipe
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		client := recipe.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient)
		return recipe.NewOpenAICompleter(client, cfg.ModelName(), cfg.MaxTokens), nil

	case config.ProviderGemini:
		client, err := recipe.NewGeminiClient(ctx, cfg.GeminiAPIKey, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return recipe.NewGeminiCompleter(client.Models, cfg.ModelName(), cfg.MaxTokens), nil
	}

	return nil, fmt.Errorf("unknown recipe provider %q", cfg.Provider)
}

// Shutdown closes every resource the container opened.
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down infrastructure...")

	if c.messageConsumer != nil {
		if err := c.messageConsumer.Close(); err != nil {
			c.logger.Error("Failed to close message consumer", zap.Error(err))
		}
	}

	if c.messageProducer != nil {
		if err := c.messageProducer.Close(); err != nil {
			c.logger.Error("Failed to close message producer", zap.Error(err))
		}
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Error("Failed to close inventory store", zap.Error(err))
		}
	}

	if c.otelShutdown != nil {
		if err := c.otelShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}

	c.logger.Info("Infrastructure shutdown complete")

	// stdout sync fails on some terminals
	_ = c.logger.Sync()
}

func (c *Container) Logger() observability.Logger { return c.logger }
func (c *Container) Tracer() observability.Tracer { return c.tracer }
func (c *Container) Config() *config.Config       { return c.config }
