package downloader

import "context"

type MockDownloader struct {
	DownloadFunc func(ctx context.Context, req Request) (Result, error)
}

func (m *MockDownloader) Download(ctx context.Context, req Request) (Result, error) {
	return m.DownloadFunc(ctx, req)
}
