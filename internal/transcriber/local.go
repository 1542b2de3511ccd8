package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

// LocalOptions configures the WhisperX backend.
type LocalOptions struct {
	UVX         string
	Model       string
	ComputeType string
	Device      string
	BatchSize   int
	Language    string
	WorkDir     string
}

// LocalModelTranscriber runs WhisperX through uvx. The models live only as
// long as the subprocess, so nothing stays resident between videos.
type LocalModelTranscriber struct {
	exec   executor.Executor
	opts   LocalOptions
	logger *slog.Logger
}

func NewLocal(exec executor.Executor, opts LocalOptions, logger *slog.Logger) *LocalModelTranscriber {
	return &LocalModelTranscriber{
		exec:   exec,
		opts:   opts,
		logger: logging.Component(logger, "asr-local"),
	}
}

type whisperxOutput struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs one WhisperX process with the working language forced
// and alignment enabled, then joins the segment texts in output order.
func (l *LocalModelTranscriber) Transcribe(ctx context.Context, asset domain.AudioAsset) (domain.Transcript, error) {
	outDir, err := os.MkdirTemp(l.opts.WorkDir, "whisperx-")
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("create whisperx output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	l.logger.Info("running local transcription", "model", l.opts.Model, "compute_type", l.opts.ComputeType)
	_, err = l.exec.Execute(ctx, l.opts.UVX, l.args(asset.Path, outDir)...)
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("whisperx: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(asset.Path), filepath.Ext(asset.Path))
	data, err := os.ReadFile(filepath.Join(outDir, stem+".json"))
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("read whisperx output: %w", err)
	}

	var out whisperxOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.Transcript{}, fmt.Errorf("decode whisperx output: %w", err)
	}

	texts := make([]string, 0, len(out.Segments))
	for _, seg := range out.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return domain.Transcript{}, ErrEmptyTranscript
	}

	l.logger.Info("local transcription complete", "segments", len(texts))
	return domain.Transcript{Text: strings.Join(texts, " "), Source: domain.SourceASR}, nil
}

func (l *LocalModelTranscriber) args(audioPath, outDir string) []string {
	args := []string{
		"whisperx", audioPath,
		"--model", l.opts.Model,
		"--compute_type", l.opts.ComputeType,
		"--language", l.opts.Language,
		"--output_format", "json",
		"--output_dir", outDir,
	}
	if l.opts.Device != "" {
		args = append(args, "--device", l.opts.Device)
	}
	if l.opts.BatchSize > 0 {
		args = append(args, "--batch_size", strconv.Itoa(l.opts.BatchSize))
	}
	return args
}
