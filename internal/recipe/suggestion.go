// Package recipe asks a completion model for one recipe built from pantry items.
package recipe

import (
	"fmt"
	"strings"
)

// FallbackMessage is shown in place of a recipe when the request fails.
const FallbackMessage = "Failed to get recipe suggestions. Please try again."

// Suggestion is one recipe name and a link to search for it.
type Suggestion struct {
	RecipeName string `json:"recipe_name"`
	SearchLink string `json:"search_link"`
}

// Fallback returns the suggestion shown after a failed request.
func Fallback() Suggestion {
	return Suggestion{RecipeName: FallbackMessage}
}

// BuildPrompt embeds the ingredient names in the instruction sent to the model.
func BuildPrompt(ingredients []string) string {
	return fmt.Sprintf(
		"Generate one recipe using some of these ingredients: %s. Provide only the recipe name and a Google search link separated by a comma.",
		strings.Join(ingredients, ", "),
	)
}

// ParseSuggestion splits text on its first comma. Text without a comma yields
// an empty link; anything after the first comma belongs to the link.
func ParseSuggestion(text string) Suggestion {
	name, link, _ := strings.Cut(text, ",")
	return Suggestion{
		RecipeName: strings.TrimSpace(name),
		SearchLink: strings.TrimSpace(link),
	}
}

// SuggestionError wraps any failure to obtain or read a completion.
type SuggestionError struct {
	Err error
}

func (e *SuggestionError) Error() string { return "recipe suggestion failed: " + e.Err.Error() }

func (e *SuggestionError) Unwrap() error { return e.Err }
