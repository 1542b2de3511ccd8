package pipeline

import (
	"context"

	"github.com/HugeFrog24/gpt-video-ebook/internal/acquisition"
	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/ebook"
	"github.com/HugeFrog24/gpt-video-ebook/internal/synthesis"
	"github.com/HugeFrog24/gpt-video-ebook/internal/transcriber"
)

type Acquirer interface {
	Acquire(ctx context.Context, item domain.VideoItem, base string, needAudio bool) (acquisition.Sources, error)
}

type Synthesizer interface {
	Fuse(ctx context.Context, in synthesis.Input) (synthesis.Result, error)
	Describe(ctx context.Context, title, prose string, width int) (string, error)
}

type BookWriter interface {
	Write(book ebook.Book, path string) error
}

// Deps are the collaborators a Runner drives. Transcriber may be nil when
// the run never engages speech recognition; Detector may be nil.
type Deps struct {
	Acquirer    Acquirer
	Transcriber transcriber.Transcriber
	Synthesizer Synthesizer
	Writer      BookWriter
	Detector    acquisition.LanguageDetector
}
