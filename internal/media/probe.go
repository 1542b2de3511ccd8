package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
)

// ProbeDuration asks ffprobe for the container duration of path.
func ProbeDuration(ctx context.Context, exec executor.Executor, ffprobe, path string) (time.Duration, error) {
	output, err := exec.Execute(ctx, ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get audio duration: %w", err)
	}

	raw := strings.TrimSpace(output)
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse audio duration %q: %w", raw, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative audio duration %q", raw)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
