package recipe

import (
	"context"

	"pantryservice/internal/platform/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Suggester produces a recipe suggestion. It never fails: errors become the
// fallback suggestion.
type Suggester interface {
	SuggestRecipe(ctx context.Context, itemNames []string) Suggestion
}

type Service struct {
	completer Completer
	logger    observability.Logger
	tracer    observability.Tracer
}

func NewService(completer Completer, logger observability.Logger, tracer observability.Tracer) *Service {
	return &Service{
		completer: completer,
		logger:    logger,
		tracer:    tracer,
	}
}

// SuggestRecipe issues exactly one completion request, even for an empty list.
func (s *Service) SuggestRecipe(ctx context.Context, itemNames []string) Suggestion {
	ctx, span := s.tracer.Start(ctx, "recipe_suggest")
	defer span.End()

	span.SetAttributes(attribute.Int("recipe.ingredient_count", len(itemNames)))
	s.logger.Info("🍳 Requesting recipe suggestion", zap.Strings("ingredients", itemNames))

	text, err := s.completer.Complete(ctx, BuildPrompt(itemNames))
	if err != nil {
		serr := &SuggestionError{Err: err}
		span.RecordError(serr)
		span.SetStatus(codes.Error, serr.Error())
		s.logger.Error("❌ Recipe suggestion failed", zap.Error(serr))
		return Fallback()
	}

	suggestion := ParseSuggestion(text)
	span.SetAttributes(
		attribute.String("recipe.name", suggestion.RecipeName),
		attribute.Bool("recipe.has_link", suggestion.SearchLink != ""),
	)
	span.SetStatus(codes.Ok, "Recipe suggested")
	s.logger.Info("✅ Recipe suggested", zap.String("recipe.name", suggestion.RecipeName))
	return suggestion
}
