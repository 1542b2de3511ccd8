package deps

import (
	"errors"
	"strings"
	"testing"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(file string) (string, error) {
		for _, name := range available {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCheckBinaries(t *testing.T) {
	stubLookPath(t, "yt-dlp")

	statuses := CheckBinaries([]Requirement{
		{Name: "yt-dlp", Command: "yt-dlp"},
		{Name: "ffmpeg", Command: "ffmpeg"},
		{Name: "uvx", Command: " "},
	})
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}
	if !statuses[0].Available {
		t.Error("yt-dlp should be available")
	}
	if statuses[1].Available || !strings.Contains(statuses[1].Detail, "not found") {
		t.Errorf("ffmpeg status = %+v", statuses[1])
	}
	if statuses[2].Detail != "command not configured" {
		t.Errorf("uvx status = %+v", statuses[2])
	}
}

func TestRequireAll(t *testing.T) {
	stubLookPath(t, "yt-dlp")

	if err := RequireAll([]Requirement{{Name: "yt-dlp", Command: "yt-dlp"}}); err != nil {
		t.Fatalf("RequireAll() error = %v", err)
	}

	err := RequireAll([]Requirement{
		{Name: "yt-dlp", Command: "yt-dlp"},
		{Name: "ffmpeg", Command: "ffmpeg", Description: "audio segmentation"},
		{Name: "ffprobe", Command: "ffprobe", Optional: true},
	})
	if err == nil {
		t.Fatal("RequireAll() should fail when ffmpeg is missing")
	}
	if !strings.Contains(err.Error(), "ffmpeg (audio segmentation)") {
		t.Errorf("error = %v", err)
	}
	if strings.Contains(err.Error(), "ffprobe") {
		t.Errorf("optional binary reported as missing: %v", err)
	}
}
