package kafka

import (
	"pantryservice/internal/config"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

func clientAttributes(topic string) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.MessagingDestinationNameKey.String(topic),
		attribute.String("messaging.kafka.client_id", config.ServiceName),
	}
}

// NewProducer returns a traced writer for the item-changed topic.
func NewProducer(broker string, tp trace.TracerProvider) (Producer, error) {
	base := &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Topic:                  config.ItemChangedTopic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           config.BatchTimeout,
		BatchSize:              config.BatchSize,
		AllowAutoTopicCreation: true,
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(clientAttributes(config.ItemChangedTopic)),
	)
	if err != nil {
		return nil, err
	}
	return writer, nil
}

// NewConsumer returns a traced reader on the item-changed topic in the watch group.
func NewConsumer(broker string, tp trace.TracerProvider) (Consumer, error) {
	base := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   config.ItemChangedTopic,
		GroupID: config.WatchGroupID,
	})

	reader, err := otelkafka.NewReader(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(clientAttributes(config.ItemChangedTopic)),
	)
	if err != nil {
		_ = base.Close()
		return nil, err
	}
	return reader, nil
}
