// Package synthesis fuses one or two noisy transcripts into book prose by
// sending fixed-size windows to a language model.
//
// Windows are measured in code points. The longer transcript drives the
// window count, so neither source loses its tail when lengths diverge. A
// window whose completion fails is logged and omitted; the surviving
// results are joined in window order.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HugeFrog24/gpt-video-ebook/internal/llm"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

var (
	ErrNothingToSynthesize = errors.New("no transcript text to synthesize")
	ErrAllWindowsFailed    = errors.New("every synthesis window failed")
)

// Input is one synthesis job. Secondary is ignored unless Ensemble is set.
type Input struct {
	Primary   string
	Secondary string
	Ensemble  bool
	Width     int
}

// Result is the fused prose plus window accounting.
type Result struct {
	Text    string
	Windows int
	Failed  int
}

type Engine struct {
	completer llm.Completer
	logger    *slog.Logger
}

func New(completer llm.Completer, logger *slog.Logger) *Engine {
	return &Engine{
		completer: completer,
		logger:    logging.Component(logger, "synthesis"),
	}
}

// Fuse runs one completion per window, sequentially.
func (e *Engine) Fuse(ctx context.Context, in Input) (Result, error) {
	if in.Width <= 0 {
		return Result{}, fmt.Errorf("window width must be positive, got %d", in.Width)
	}

	primary := []rune(in.Primary)
	var secondary []rune
	if in.Ensemble {
		secondary = []rune(in.Secondary)
	}

	windows := Windows(max(len(primary), len(secondary)), in.Width)
	if len(windows) == 0 {
		return Result{}, ErrNothingToSynthesize
	}

	system := singleSystem
	if in.Ensemble {
		system = ensembleSystem
	}

	outputs := make([]string, len(windows))
	res := Result{Windows: len(windows)}
	for _, w := range windows {
		var prompt string
		if in.Ensemble {
			prompt = ensemblePrompt(slice(primary, w), slice(secondary, w))
		} else {
			prompt = singlePrompt(slice(primary, w))
		}

		text, err := e.completer.Complete(ctx, system, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			res.Failed++
			e.logger.Warn("synthesis window failed, omitting it",
				logging.FieldWindow, w.Index+1,
				logging.FieldCount, len(windows),
				"error", err,
			)
			continue
		}
		outputs[w.Index] = strings.TrimSpace(text)
		e.logger.Info("synthesized window", logging.FieldWindow, w.Index+1, logging.FieldCount, len(windows))
	}

	if res.Failed == res.Windows {
		return res, ErrAllWindowsFailed
	}

	kept := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if out != "" {
			kept = append(kept, out)
		}
	}
	res.Text = strings.Join(kept, " ")
	return res, nil
}

// Describe asks the model for a one-paragraph description of the book
// from its title and the first window of its prose.
func (e *Engine) Describe(ctx context.Context, title, prose string, width int) (string, error) {
	text := []rune(strings.TrimSpace(prose))
	if len(text) == 0 {
		return "", ErrNothingToSynthesize
	}
	if width > 0 && len(text) > width {
		text = text[:width]
	}

	description, err := e.completer.Complete(ctx, describeSystem, fmt.Sprintf(describeTemplate, title, string(text)))
	if err != nil {
		return "", fmt.Errorf("error generating description: %w", err)
	}
	return strings.TrimSpace(description), nil
}
