// Package pipeline drives videos one at a time from URL to EPUB.
//
// Every item is isolated: a failure is recorded in the Summary and the
// batch moves on. Intermediate files belong to the stage that created
// them and are removed on every exit path.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/HugeFrog24/gpt-video-ebook/internal/acquisition"
	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/ebook"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
	"github.com/HugeFrog24/gpt-video-ebook/internal/synthesis"
	"github.com/HugeFrog24/gpt-video-ebook/internal/transcriber"
)

// LockFileName is created in the working directory for the duration of a run.
const LockFileName = ".gpt-video-ebook.lock"

var (
	ErrAllItemsFailed = errors.New("every item failed")
	ErrWorkDirBusy    = errors.New("working directory is in use by another run")
)

// Options configures a Runner.
type Options struct {
	WorkDir         string
	OutputDir       string
	Language        string
	NeedAudio       bool
	SingleWindow    int
	EnsembleWindow  int
	WordsPerChapter int
	Describe        bool
}

type Runner struct {
	deps   Deps
	opts   Options
	logger *slog.Logger
}

func New(deps Deps, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{deps: deps, opts: opts, logger: logger}
}

// Run processes items in order. It returns ErrWorkDirBusy when another run
// holds the working directory and ErrAllItemsFailed when at least one item
// was attempted and none succeeded. Cancellation stops the batch after the
// current item's cleanup.
func (r *Runner) Run(ctx context.Context, items []domain.VideoItem) (Summary, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.FieldRunID, runID)
	summary := Summary{RunID: runID, Started: time.Now()}

	if err := os.MkdirAll(r.opts.WorkDir, 0o755); err != nil {
		return summary, fmt.Errorf("create work dir: %w", err)
	}
	lock := flock.New(filepath.Join(r.opts.WorkDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return summary, fmt.Errorf("%w: %s", ErrWorkDirBusy, r.opts.WorkDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release work dir lock", "error", err)
		}
	}()

	logger.Info("starting batch", logging.FieldCount, len(items), "speech_recognition", r.opts.NeedAudio)

	for idx, item := range items {
		if ctx.Err() != nil {
			break
		}
		itemLogger := logger.With(
			logging.FieldItem, idx+1,
			logging.FieldCount, len(items),
			logging.FieldURL, item.URL,
		)
		res := r.processItem(ctx, idx, item, itemLogger)
		if res.Err != nil {
			itemLogger.Error("item skipped", "stage", res.Stage, "error", res.Err)
		} else {
			itemLogger.Info("item complete", "output", res.Output)
		}
		summary.Items = append(summary.Items, res)
	}
	summary.Finished = time.Now()

	logger.Info("batch finished",
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
		"duration", summary.Finished.Sub(summary.Started).Round(time.Millisecond),
	)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if len(summary.Items) > 0 && summary.Succeeded() == 0 {
		return summary, ErrAllItemsFailed
	}
	return summary, nil
}

func (r *Runner) processItem(ctx context.Context, idx int, item domain.VideoItem, logger *slog.Logger) (res ItemResult) {
	res = ItemResult{Index: idx + 1, URL: item.URL}
	fail := func(stage string, err error) ItemResult {
		res.Stage, res.Err = stage, err
		return res
	}

	logger.Info("processing video")
	src, err := r.deps.Acquirer.Acquire(ctx, item, fmt.Sprintf("temp_vid_%d", idx), r.opts.NeedAudio)
	if err != nil {
		return fail(StageAcquire, err)
	}
	defer releaseAudio(src.Audio, logger)
	res.Title, res.Mode = src.Title, src.Mode

	in := synthesis.Input{Primary: src.Captions.Text, Width: r.opts.SingleWindow}
	if src.Mode == domain.ModeEnsemble {
		asr, err := r.transcribe(ctx, src.Audio, logger)
		releaseAudio(src.Audio, logger)
		if err != nil {
			return fail(StageTranscribe, err)
		}
		in = synthesis.Input{
			Primary:   asr.Text,
			Secondary: src.Captions.Text,
			Ensemble:  true,
			Width:     r.opts.EnsembleWindow,
		}
	}

	fused, err := r.deps.Synthesizer.Fuse(ctx, in)
	res.Windows, res.FailedWindows = fused.Windows, fused.Failed
	if err != nil {
		return fail(StageSynthesize, err)
	}

	book, err := ebook.Assemble(src.Title, fused.Text, r.opts.WordsPerChapter)
	if err != nil {
		return fail(StageAssemble, err)
	}
	if r.opts.Describe {
		desc, err := r.deps.Synthesizer.Describe(ctx, src.Title, fused.Text, in.Width)
		if err != nil {
			logger.Warn("book description failed", "error", err)
		} else {
			book.Description = desc
		}
	}

	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return fail(StageWrite, fmt.Errorf("create output dir: %w", err))
	}
	path := filepath.Join(r.opts.OutputDir, src.Title+".epub")
	if err := r.deps.Writer.Write(book, path); err != nil {
		return fail(StageWrite, err)
	}
	res.Chapters, res.Output = len(book.Chapters), path
	return res
}

func (r *Runner) transcribe(ctx context.Context, audio domain.AudioAsset, logger *slog.Logger) (domain.Transcript, error) {
	if r.deps.Transcriber == nil {
		return domain.Transcript{}, errors.New("no speech recognition backend configured")
	}
	logger.Info("transcribing audio", "bytes", audio.Size)
	asr, err := r.deps.Transcriber.Transcribe(ctx, audio)
	if err != nil {
		return domain.Transcript{}, err
	}
	if asr.Empty() {
		return domain.Transcript{}, transcriber.ErrEmptyTranscript
	}

	if r.deps.Detector != nil && r.opts.Language != "" {
		if code, ok := r.deps.Detector.Detect(asr.Text); ok && code != r.opts.Language {
			logger.Warn("transcript language differs from working language",
				"source", asr.Source, "detected", code, "expected", r.opts.Language)
		}
	}
	return asr, nil
}

func releaseAudio(audio domain.AudioAsset, logger *slog.Logger) {
	if err := audio.Release(); err != nil {
		logger.Warn("failed to remove audio", "path", audio.Path, "error", err)
	}
}

// compile-time check that the acquisition coordinator satisfies Acquirer.
var _ Acquirer = (*acquisition.Coordinator)(nil)
