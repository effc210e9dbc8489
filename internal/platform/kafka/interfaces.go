package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

type Consumer interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// NoopProducer drops every message. Used when no broker is configured.
type NoopProducer struct{}

func (NoopProducer) WriteMessage(context.Context, kafka.Message) error { return nil }
func (NoopProducer) Close() error                                      { return nil }
