package inventory

import (
	"context"
	"encoding/json"
	"time"

	"pantryservice/internal/platform/kafka"
	"pantryservice/internal/platform/observability"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher announces inventory mutations.
type EventPublisher interface {
	PublishItemChanged(ctx context.Context, name, operation string, amount float64) error
}

// KafkaEventPublisher writes ItemChangedEvents keyed by item name.
type KafkaEventPublisher struct {
	producer kafka.Producer
	logger   observability.Logger
	now      func() time.Time
}

func NewEventPublisher(producer kafka.Producer, logger observability.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *KafkaEventPublisher) PublishItemChanged(ctx context.Context, name, operation string, amount float64) error {
	event := ItemChangedEvent{
		EventID:    uuid.NewString(),
		Name:       name,
		Operation:  operation,
		Amount:     amount,
		OccurredAt: p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("❌ Failed to serialize ItemChanged event",
			zap.Error(err),
			zap.String("item.name", name),
		)
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(name),
		Value: payload,
	}

	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		p.logger.Error("❌ Failed to publish ItemChanged event",
			zap.Error(err),
			zap.String("item.name", name),
			zap.String("event.id", event.EventID),
		)
		return err
	}

	p.logger.Info("📤 Sent ItemChanged event",
		zap.String("item.name", name),
		zap.String("inventory.operation", operation),
		zap.String("event.id", event.EventID),
	)
	return nil
}
