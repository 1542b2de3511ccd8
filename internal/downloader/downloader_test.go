package downloader

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

func TestDownload(t *testing.T) {
	tests := []struct {
		name      string
		audio     bool
		wantFlags []string
		noFlags   []string
	}{
		{
			name:      "captions only",
			audio:     false,
			wantFlags: []string{"--skip-download"},
			noFlags:   []string{"-x", "--audio-format"},
		},
		{
			name:      "with audio",
			audio:     true,
			wantFlags: []string{"-x", "--audio-format", "mp3", "bestaudio/best", "64K"},
			noFlags:   []string{"--skip-download"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDir, gotName string
			var gotArgs []string
			exec := &executor.MockExecutor{ExecuteFunc: func(_ context.Context, dir, name string, args ...string) (string, error) {
				gotDir, gotName, gotArgs = dir, name, args
				return "Intro To Graphs\n", nil
			}}
			d := NewYTDLP(exec, YTDLPOptions{Binary: "yt-dlp", AudioQuality: "64K"}, logging.NewNop())

			res, err := d.Download(context.Background(), Request{
				URL:      "https://youtu.be/abc",
				Dir:      "/work",
				Base:     "temp_vid_0",
				Audio:    tt.audio,
				Language: "en",
			})
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if res.Title != "Intro To Graphs" {
				t.Errorf("Title = %q", res.Title)
			}
			if gotDir != "/work" {
				t.Errorf("dir = %q, want /work", gotDir)
			}
			if gotName != "yt-dlp" {
				t.Errorf("binary = %q", gotName)
			}
			if gotArgs[len(gotArgs)-1] != "https://youtu.be/abc" {
				t.Errorf("URL must be the last argument: %v", gotArgs)
			}
			if i := slices.Index(gotArgs, "-o"); i < 0 || gotArgs[i+1] != "temp_vid_0.%(ext)s" {
				t.Errorf("output template missing: %v", gotArgs)
			}
			for _, flag := range append(tt.wantFlags, "--write-auto-subs", "--no-check-certificates", "--print") {
				if !slices.Contains(gotArgs, flag) {
					t.Errorf("missing %s in %v", flag, gotArgs)
				}
			}
			for _, flag := range tt.noFlags {
				if slices.Contains(gotArgs, flag) {
					t.Errorf("unexpected %s in %v", flag, gotArgs)
				}
			}
		})
	}
}

func TestDownloadFailure(t *testing.T) {
	exec := &executor.MockExecutor{ExecuteFunc: func(context.Context, string, string, ...string) (string, error) {
		return "", &executor.CommandError{Command: "yt-dlp", ExitCode: 1, Stderr: "ERROR: Video unavailable", Err: errors.New("exit status 1")}
	}}
	_, err := NewYTDLP(exec, YTDLPOptions{Binary: "yt-dlp"}, logging.NewNop()).
		Download(context.Background(), Request{URL: "https://youtu.be/gone"})

	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Stderr != "ERROR: Video unavailable" {
		t.Fatalf("error = %v, want wrapped CommandError", err)
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("[info] noise\nReal Title\n\n"); got != "Real Title" {
		t.Errorf("lastLine() = %q", got)
	}
	if got := lastLine(""); got != "" {
		t.Errorf("lastLine(\"\") = %q", got)
	}
}
