// Package media splits oversized audio for services with an upload ceiling.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"strconv"
	"time"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

// ErrIncompleteSplit is returned when the segments do not cover the whole
// source duration.
var ErrIncompleteSplit = errors.New("segments do not cover the source audio")

const segmentPrefix = "seg_"

// Segments is the ordered result of a split. Dir is empty when the source
// was small enough to be used as is; Release then leaves the source alone.
type Segments struct {
	Parts []string
	Dir   string
}

// Release removes the segment directory and anything left inside it.
func (s Segments) Release() error {
	if s.Dir == "" {
		return nil
	}
	return os.RemoveAll(s.Dir)
}

// SegmenterOptions configures a Segmenter.
type SegmenterOptions struct {
	FFmpeg         string
	FFprobe        string
	WorkDir        string
	Threshold      int64
	SegmentSeconds int
}

// Segmenter cuts audio into fixed-duration, codec-preserving parts.
type Segmenter struct {
	exec   executor.Executor
	opts   SegmenterOptions
	logger *slog.Logger
}

// NewSegmenter returns a Segmenter that runs ffmpeg through exec.
func NewSegmenter(exec executor.Executor, opts SegmenterOptions, logger *slog.Logger) *Segmenter {
	return &Segmenter{
		exec:   exec,
		opts:   opts,
		logger: logging.Component(logger, "segmenter"),
	}
}

// Split returns the asset itself when it fits under the threshold. Larger
// assets are cut into seg_000, seg_001, ... in a private directory under
// the working directory. Either every segment is returned in temporal
// order or the directory is removed and an error is returned.
func (s *Segmenter) Split(ctx context.Context, asset domain.AudioAsset) (Segments, error) {
	if asset.Size <= s.opts.Threshold {
		return Segments{Parts: []string{asset.Path}}, nil
	}

	dir, err := os.MkdirTemp(s.opts.WorkDir, "segments-")
	if err != nil {
		return Segments{}, fmt.Errorf("create segment dir: %w", err)
	}
	segs := Segments{Dir: dir}

	parts, err := s.split(ctx, asset, dir)
	if err != nil {
		if rmErr := segs.Release(); rmErr != nil {
			s.logger.Warn("failed to remove segment dir", "dir", dir, "error", rmErr)
		}
		return Segments{}, err
	}
	segs.Parts = parts

	s.logger.Info("audio split",
		"source", filepath.Base(asset.Path),
		"size", asset.Size,
		"segments", len(parts),
	)
	return segs, nil
}

func (s *Segmenter) split(ctx context.Context, asset domain.AudioAsset, dir string) ([]string, error) {
	ext := filepath.Ext(asset.Path)
	pattern := filepath.Join(dir, segmentPrefix+"%03d"+ext)

	_, err := s.exec.Execute(ctx, s.opts.FFmpeg,
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", asset.Path,
		"-f", "segment",
		"-segment_time", strconv.Itoa(s.opts.SegmentSeconds),
		"-c", "copy",
		"-reset_timestamps", "1",
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg segment: %w", err)
	}

	parts, err := filepath.Glob(filepath.Join(dir, segmentPrefix+"*"+ext))
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no segments for %s", asset.Path)
	}
	if err := sortByIndex(parts, ext); err != nil {
		return nil, err
	}

	if err := s.checkCoverage(ctx, asset, len(parts)); err != nil {
		return nil, err
	}
	return parts, nil
}

// checkCoverage verifies count x segment duration >= source duration. A
// probe that cannot run is logged and otherwise ignored.
func (s *Segmenter) checkCoverage(ctx context.Context, asset domain.AudioAsset, count int) error {
	if s.opts.FFprobe == "" {
		return nil
	}
	duration, err := ProbeDuration(ctx, s.exec, s.opts.FFprobe, asset.Path)
	if err != nil {
		s.logger.Warn("duration probe failed, skipping coverage check", "error", err)
		return nil
	}
	covered := time.Duration(count) * time.Duration(s.opts.SegmentSeconds) * time.Second
	if covered < duration {
		return fmt.Errorf("%w: %d x %ds < %s", ErrIncompleteSplit, count, s.opts.SegmentSeconds, duration)
	}
	return nil
}

// sortByIndex orders seg_N files by N. The %03d pattern stops padding at
// 1000 segments, so name order is not temporal order beyond that.
func sortByIndex(parts []string, ext string) error {
	index := make(map[string]int, len(parts))
	for _, part := range parts {
		raw := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(part), segmentPrefix), ext)
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("unexpected segment name %s", filepath.Base(part))
		}
		index[part] = n
	}
	sort.Slice(parts, func(i, j int) bool { return index[parts[i]] < index[parts[j]] })
	return nil
}
