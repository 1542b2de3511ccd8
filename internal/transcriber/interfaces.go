// Package transcriber turns audio assets into plain transcripts.
//
// HostedBatchTranscriber posts audio to an OpenAI-compatible Whisper
// endpoint and LocalModelTranscriber runs WhisperX in a subprocess. Callers
// depend on the Transcriber interface only.
package transcriber

import (
	"context"
	"errors"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/media"
)

// ErrEmptyTranscript is returned when recognition finished but produced no
// text.
var ErrEmptyTranscript = errors.New("transcription produced no text")

type Transcriber interface {
	Transcribe(ctx context.Context, asset domain.AudioAsset) (domain.Transcript, error)
}

// Splitter cuts an asset into upload-sized parts.
type Splitter interface {
	Split(ctx context.Context, asset domain.AudioAsset) (media.Segments, error)
}
