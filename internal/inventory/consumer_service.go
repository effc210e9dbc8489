package inventory

import (
	"context"
	"errors"

	"pantryservice/internal/platform/kafka"
	"pantryservice/internal/platform/observability"

	"go.uber.org/zap"
)

type ConsumerService interface {
	Start(ctx context.Context) error
}

type KafkaConsumerService struct {
	consumer       kafka.Consumer
	messageHandler MessageHandler
	logger         observability.Logger
}

func NewConsumerService(consumer kafka.Consumer, messageHandler MessageHandler, logger observability.Logger) *KafkaConsumerService {
	return &KafkaConsumerService{
		consumer:       consumer,
		messageHandler: messageHandler,
		logger:         logger,
	}
}

// Start reads until ctx is done. Read errors are retried; messages the handler
// rejects are logged, counted and skipped.
func (c *KafkaConsumerService) Start(ctx context.Context) error {
	c.logger.Info("Kafka consumer started. Waiting for ItemChanged events...")

	skipped := 0
	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("Context done, exiting Kafka read loop.", zap.Error(err))
				break
			}
			c.logger.Error("❌ Error reading from Kafka", zap.Error(err))
			continue
		}

		if err := c.messageHandler.HandleItemChanged(ctx, *msg); err != nil {
			skipped++
			c.logger.Warn("⚠️ Skipping unprocessable ItemChanged message",
				zap.ByteString("key", msg.Key),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}

	c.logger.Info("Consumer service finished. Shutting down...", zap.Int("skipped", skipped))
	return nil
}
