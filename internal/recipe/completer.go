package recipe

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model produced no usable text.
var ErrEmptyCompletion = errors.New("no completion returned")

// Completer sends one user prompt to a text model and returns the first
// candidate's text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
