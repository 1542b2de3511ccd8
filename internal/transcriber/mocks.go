package transcriber

import (
	"context"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
)

type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, asset domain.AudioAsset) (domain.Transcript, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, asset domain.AudioAsset) (domain.Transcript, error) {
	return m.TranscribeFunc(ctx, asset)
}
