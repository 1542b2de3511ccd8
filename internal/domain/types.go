package domain

import (
	"errors"
	"os"
)

// VideoItem is one line of the input list.
type VideoItem struct {
	URL string
}

// Source identifies where a transcript came from.
type Source string

const (
	SourceCaptions Source = "captions"
	SourceASR      Source = "asr"
)

// Transcript is plain prose with no timing or markup residue.
type Transcript struct {
	Text   string
	Source Source
}

// Empty reports whether the transcript carries no usable text.
func (t Transcript) Empty() bool {
	return t.Text == ""
}

// Mode is the processing mode chosen for a video.
type Mode string

const (
	ModeCaptionsOnly Mode = "captions-only"
	ModeEnsemble     Mode = "ensemble"
)

// AudioAsset is an audio file on disk owned by the pipeline for the
// duration of one item.
type AudioAsset struct {
	Path string
	Size int64
}

// StatAudio builds an AudioAsset from a file on disk.
func StatAudio(path string) (AudioAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AudioAsset{}, err
	}
	return AudioAsset{Path: path, Size: info.Size()}, nil
}

// Release removes the asset from disk. Releasing an already removed asset
// is not an error.
func (a AudioAsset) Release() error {
	if a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
