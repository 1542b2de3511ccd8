package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

// AudioClient is the part of the go-openai client used for transcription.
type AudioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// HostedOptions configures the hosted backend.
type HostedOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
}

// HostedBatchTranscriber sends audio to an OpenAI-compatible
// /audio/transcriptions endpoint, one request per segment.
type HostedBatchTranscriber struct {
	client   AudioClient
	splitter Splitter
	model    string
	language string
	logger   *slog.Logger
}

// NewHosted builds a hosted transcriber. An empty BaseURL keeps the
// go-openai default.
func NewHosted(opts HostedOptions, splitter Splitter, logger *slog.Logger) *HostedBatchTranscriber {
	clientCfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientCfg.BaseURL = opts.BaseURL
	}
	return NewHostedWithClient(openai.NewClientWithConfig(clientCfg), opts, splitter, logger)
}

// NewHostedWithClient builds a hosted transcriber around an existing client.
func NewHostedWithClient(client AudioClient, opts HostedOptions, splitter Splitter, logger *slog.Logger) *HostedBatchTranscriber {
	return &HostedBatchTranscriber{
		client:   client,
		splitter: splitter,
		model:    opts.Model,
		language: opts.Language,
		logger:   logging.Component(logger, "asr-hosted"),
	}
}

// Transcribe uploads the asset, split first when it exceeds the upload
// limit. Segments are sent one at a time in order and each segment file is
// removed as soon as its request returns. A failed segment leaves a gap;
// the call fails only when every segment failed.
func (h *HostedBatchTranscriber) Transcribe(ctx context.Context, asset domain.AudioAsset) (domain.Transcript, error) {
	segs, err := h.splitter.Split(ctx, asset)
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("split audio: %w", err)
	}
	defer func() {
		if err := segs.Release(); err != nil {
			h.logger.Warn("failed to remove segments", "dir", segs.Dir, "error", err)
		}
	}()

	texts := make([]string, 0, len(segs.Parts))
	var failed int
	var lastErr error
	for i, part := range segs.Parts {
		text, err := h.transcribePart(ctx, part)
		if part != asset.Path {
			if rmErr := os.Remove(part); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				h.logger.Warn("failed to remove segment", logging.FieldSegment, i+1, "error", rmErr)
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return domain.Transcript{}, ctx.Err()
			}
			failed++
			lastErr = err
			h.logger.Warn("segment transcription failed, leaving a gap",
				logging.FieldSegment, i+1,
				logging.FieldCount, len(segs.Parts),
				"error", err,
			)
			continue
		}
		h.logger.Info("segment transcribed", logging.FieldSegment, i+1, logging.FieldCount, len(segs.Parts))
		if text != "" {
			texts = append(texts, text)
		}
	}

	if failed == len(segs.Parts) {
		return domain.Transcript{}, fmt.Errorf("all %d segments failed: %w", failed, lastErr)
	}

	joined := strings.Join(texts, " ")
	if joined == "" {
		return domain.Transcript{}, ErrEmptyTranscript
	}
	return domain.Transcript{Text: joined, Source: domain.SourceASR}, nil
}

func (h *HostedBatchTranscriber) transcribePart(ctx context.Context, path string) (string, error) {
	resp, err := h.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    h.model,
		FilePath: path,
		Language: h.language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription error for %s: %w", filepath.Base(path), err)
	}
	return strings.TrimSpace(resp.Text), nil
}
