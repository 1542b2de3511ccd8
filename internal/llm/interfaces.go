// Package llm sends chat completions to the configured language model.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answered with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer runs one blocking completion for a system role and user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
