// Package downloader fetches captions and audio for a video URL.
package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://www.youtube.com/"
)

// Request describes one download. yt-dlp runs inside Dir, so its files and
// partial fragments land there: captions as {Base}.{lang}.vtt and audio as
// {Base}.mp3.
type Request struct {
	URL      string
	Dir      string
	Base     string
	Audio    bool
	Language string
}

// Result carries the metadata reported by the downloader.
type Result struct {
	Title string
}

type Downloader interface {
	Download(ctx context.Context, req Request) (Result, error)
}

// YTDLPOptions configures the yt-dlp downloader.
type YTDLPOptions struct {
	Binary       string
	AudioQuality string
}

// YTDLP downloads through the yt-dlp command line tool.
type YTDLP struct {
	exec   executor.Executor
	opts   YTDLPOptions
	logger *slog.Logger
}

func NewYTDLP(exec executor.Executor, opts YTDLPOptions, logger *slog.Logger) *YTDLP {
	return &YTDLP{
		exec:   exec,
		opts:   opts,
		logger: logging.Component(logger, "downloader"),
	}
}

// Download fetches the caption tracks of the working language and, when
// requested, the audio track as mp3.
func (y *YTDLP) Download(ctx context.Context, req Request) (Result, error) {
	y.logger.Info("downloading", logging.FieldURL, req.URL, "audio", req.Audio)

	output, err := y.exec.ExecuteInDir(ctx, req.Dir, y.opts.Binary, y.args(req)...)
	if err != nil {
		return Result{}, fmt.Errorf("yt-dlp %s: %w", req.URL, err)
	}

	return Result{Title: lastLine(output)}, nil
}

func (y *YTDLP) args(req Request) []string {
	args := []string{
		"--user-agent", userAgent,
		"--referer", referer,
		"--no-check-certificates",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"-o", req.Base + ".%(ext)s",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", req.Language,
		"--sub-format", "vtt",
	}
	if req.Audio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", y.opts.AudioQuality,
		)
	} else {
		args = append(args, "--skip-download")
	}
	return append(args, "--print", "title", "--no-simulate", req.URL)
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
