package inventory

import (
	"context"

	"pantryservice/internal/platform/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service defines the pantry operations offered to callers. Callers re-list
// after every mutation.
type Service interface {
	ListItems(ctx context.Context, search string) ([]Item, error)
	Increment(ctx context.Context, name string, amount float64) error
	Decrement(ctx context.Context, name string) error
}

// DefaultService runs pantry operations against a Store and announces
// mutations through an EventPublisher.
type DefaultService struct {
	store     Store
	publisher EventPublisher
	logger    observability.Logger
	tracer    observability.Tracer
}

// NewService creates a new inventory service instance with explicit dependencies
func NewService(store Store, publisher EventPublisher, logger observability.Logger, tracer observability.Tracer) *DefaultService {
	return &DefaultService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
	}
}

// ListItems returns every stored item whose name matches search, sorted by name.
func (s *DefaultService) ListItems(ctx context.Context, search string) ([]Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory_list")
	defer span.End()

	span.SetAttributes(
		attribute.String("inventory.operation", "list"),
		attribute.String("inventory.search", search),
	)

	items, err := s.store.List(ctx)
	if err != nil {
		s.fail(span, "❌ Failed to list inventory", err)
		return nil, err
	}

	sortByName(items)
	items = Filter(items, search)

	span.SetAttributes(attribute.Int("inventory.item_count", len(items)))
	span.SetStatus(codes.Ok, "Inventory listed")
	return items, nil
}

// Increment adds amount to the named item, creating it when absent.
func (s *DefaultService) Increment(ctx context.Context, name string, amount float64) error {
	ctx, span := s.tracer.Start(ctx, "inventory_increment")
	defer span.End()

	span.SetAttributes(
		attribute.String("item.name", name),
		attribute.String("inventory.operation", OperationIncrement),
		attribute.Float64("inventory.amount", amount),
	)

	s.logger.Info("➕ Incrementing item", zap.String("item.name", name), zap.Float64("amount", amount))

	if err := s.store.Increment(ctx, name, amount); err != nil {
		s.fail(span, "❌ Failed to increment item", err, zap.String("item.name", name))
		return err
	}

	s.publish(ctx, name, OperationIncrement, amount)
	span.SetStatus(codes.Ok, "Item incremented")
	return nil
}

// Decrement removes one unit from the named item. Absent items are left alone.
func (s *DefaultService) Decrement(ctx context.Context, name string) error {
	ctx, span := s.tracer.Start(ctx, "inventory_decrement")
	defer span.End()

	span.SetAttributes(
		attribute.String("item.name", name),
		attribute.String("inventory.operation", OperationDecrement),
	)

	s.logger.Info("➖ Decrementing item", zap.String("item.name", name))

	if err := s.store.Decrement(ctx, name); err != nil {
		s.fail(span, "❌ Failed to decrement item", err, zap.String("item.name", name))
		return err
	}

	s.publish(ctx, name, OperationDecrement, 1)
	span.SetStatus(codes.Ok, "Item decremented")
	return nil
}

// publish never fails the mutation; the store write has already happened.
func (s *DefaultService) publish(ctx context.Context, name, operation string, amount float64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItemChanged(ctx, name, operation, amount); err != nil {
		s.logger.Warn("⚠️ ItemChanged event not published", zap.Error(err), zap.String("item.name", name))
	}
}

func (s *DefaultService) fail(span trace.Span, msg string, err error, fields ...zap.Field) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.Error(msg, append(fields, zap.Error(err))...)
}
