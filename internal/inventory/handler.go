package inventory

import (
	"context"
	"encoding/json"

	"pantryservice/internal/platform/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// MessageHandler processes one consumed message.
type MessageHandler interface {
	HandleItemChanged(ctx context.Context, msg kafkago.Message) error
}

// ItemChangedHandler decodes ItemChanged events and passes them to a sink.
type ItemChangedHandler struct {
	sink   func(ItemChangedEvent)
	logger observability.Logger
	tracer observability.Tracer
}

func NewItemChangedHandler(sink func(ItemChangedEvent), logger observability.Logger, tracer observability.Tracer) *ItemChangedHandler {
	return &ItemChangedHandler{
		sink:   sink,
		logger: logger,
		tracer: tracer,
	}
}

func (h *ItemChangedHandler) HandleItemChanged(ctx context.Context, msg kafkago.Message) error {
	// Continue the producer's trace.
	msgCtx := extractTraceContext(ctx, msg.Headers)
	_, span := h.tracer.Start(msgCtx, "item_changed_received")
	defer span.End()

	h.logger.Info("📨 Raw Kafka message received",
		zap.ByteString("key", msg.Key),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var event ItemChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("❌ Invalid JSON in ItemChanged event",
			zap.Error(err),
			zap.ByteString("raw_value", msg.Value),
		)
		span.SetStatus(codes.Error, "invalid payload")
		return err
	}

	span.SetAttributes(
		attribute.String("item.name", event.Name),
		attribute.String("inventory.operation", event.Operation),
		attribute.String("event.id", event.EventID),
	)
	h.logger.Info("✅ ItemChanged event received",
		zap.String("item.name", event.Name),
		zap.String("inventory.operation", event.Operation),
		zap.Float64("amount", event.Amount),
	)

	if h.sink != nil {
		h.sink(event)
	}
	span.SetStatus(codes.Ok, "Event handled")
	return nil
}

func extractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range headers {
		carrier[header.Key] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
