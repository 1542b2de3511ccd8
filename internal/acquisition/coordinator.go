// Package acquisition fetches the transcript sources for one video and
// decides how it will be processed.
package acquisition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/HugeFrog24/gpt-video-ebook/internal/captions"
	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/downloader"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

var (
	ErrDownload       = errors.New("download failed")
	ErrNoUsableSource = errors.New("no captions and speech recognition not requested")
	ErrAudioMissing   = errors.New("audio requested but not downloaded")
)

// LanguageDetector reports the ISO 639-1 code of a text.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// Sources is what the coordinator hands to the rest of the pipeline. Audio
// has an empty path unless it was requested and downloaded; the caller owns
// it and must Release it.
type Sources struct {
	Title           string
	Captions        domain.Transcript
	CaptionLanguage string
	Audio           domain.AudioAsset
	Mode            domain.Mode
}

// HasAudio reports whether an audio asset was acquired.
func (s Sources) HasAudio() bool {
	return s.Audio.Path != ""
}

// Options configures a Coordinator.
type Options struct {
	WorkDir  string
	Language string
}

type Coordinator struct {
	downloader downloader.Downloader
	detector   LanguageDetector
	opts       Options
	logger     *slog.Logger
}

// New builds a Coordinator. detector may be nil.
func New(d downloader.Downloader, detector LanguageDetector, opts Options, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		downloader: d,
		detector:   detector,
		opts:       opts,
		logger:     logging.Component(logger, "acquisition"),
	}
}

// Acquire downloads captions, and audio when needAudio is set, for item
// using base as the file name stem inside the working directory.
//
// Without audio, empty captions are ErrNoUsableSource and anything else is
// captions-only. With audio the video is processed in ensemble mode even
// when captions are empty.
func (c *Coordinator) Acquire(ctx context.Context, item domain.VideoItem, base string, needAudio bool) (Sources, error) {
	audioPath := filepath.Join(c.opts.WorkDir, base+".mp3")

	res, err := c.downloader.Download(ctx, downloader.Request{
		URL:      item.URL,
		Dir:      c.opts.WorkDir,
		Base:     base,
		Audio:    needAudio,
		Language: c.opts.Language,
	})
	if err != nil {
		c.removeCaptionFiles(base)
		if rmErr := (domain.AudioAsset{Path: audioPath}).Release(); rmErr != nil {
			c.logger.Warn("failed to remove partial audio", "error", rmErr)
		}
		return Sources{}, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	src := Sources{Title: SanitizeTitle(res.Title)}
	src.Captions, src.CaptionLanguage = c.readCaptions(base)

	if !src.Captions.Empty() {
		c.logger.Info("captions extracted", "chars", len([]rune(src.Captions.Text)), "language", src.CaptionLanguage)
		c.checkLanguage(src.Captions)
	} else {
		c.logger.Info("no captions available")
	}

	if !needAudio {
		if src.Captions.Empty() {
			return Sources{}, ErrNoUsableSource
		}
		src.Mode = domain.ModeCaptionsOnly
		return src, nil
	}

	asset, err := domain.StatAudio(audioPath)
	if err != nil {
		return Sources{}, fmt.Errorf("%w: %w", ErrAudioMissing, err)
	}
	src.Audio = asset
	src.Mode = domain.ModeEnsemble
	return src, nil
}

// readCaptions extracts the first caption file in name order and removes
// every caption file for base regardless of the outcome.
func (c *Coordinator) readCaptions(base string) (domain.Transcript, string) {
	files := c.captionFiles(base)
	if len(files) == 0 {
		return domain.Transcript{}, ""
	}
	defer c.removeCaptionFiles(base)

	track, err := captions.ReadTrack(files[0])
	if err != nil {
		c.logger.Warn("failed to read captions", "file", filepath.Base(files[0]), "error", err)
		return domain.Transcript{}, ""
	}
	return domain.Transcript{Text: track.Text, Source: domain.SourceCaptions}, track.Language
}

func (c *Coordinator) captionFiles(base string) []string {
	files, err := filepath.Glob(filepath.Join(c.opts.WorkDir, base+".*.vtt"))
	if err != nil {
		c.logger.Warn("failed to list caption files", "error", err)
		return nil
	}
	sort.Strings(files)
	return files
}

func (c *Coordinator) removeCaptionFiles(base string) {
	for _, file := range c.captionFiles(base) {
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("failed to remove caption file", "file", filepath.Base(file), "error", err)
		}
	}
}

// checkLanguage warns when the text does not look like the working language.
func (c *Coordinator) checkLanguage(t domain.Transcript) {
	if c.detector == nil {
		return
	}
	if code, ok := c.detector.Detect(t.Text); ok && code != c.opts.Language {
		c.logger.Warn("transcript language differs from working language",
			"source", t.Source,
			"detected", code,
			"expected", c.opts.Language,
		)
	}
}
