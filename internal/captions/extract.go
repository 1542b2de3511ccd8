// Package captions turns timed-caption payloads into running text.
//
// Extract applies its rules in a fixed order; each rule narrows what the
// next one can match:
//
//  1. format header, NOTE, STYLE and REGION lines (and their blocks)
//  2. timing-range lines ("00:00:01.000 --> 00:00:03.500 align:start")
//  3. inline tags (<c>, <i>, <00:00:01.120>, ...)
//  4. stray HH:MM:SS.mmm timestamps
//  5. whitespace collapse
//
// Repeated rolling lines from auto-generated captions are dropped between
// rules 4 and 5. Rules 1 and 2 are line rules: they run once, and only on
// multi-line payloads, since a single line has no block structure left.
// Rules 3 to 5 are re-applied until the text stops changing, so
// Extract(Extract(x)) == Extract(x) for any input.
package captions

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	headerLineRe = regexp.MustCompile(`^(WEBVTT|Kind:|Language:)`)
	blockStartRe = regexp.MustCompile(`^(NOTE|STYLE|REGION)\b`)
	timingLineRe = regexp.MustCompile(`^\s*(\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s*-->\s*(\d{2}:)?\d{2}:\d{2}[.,]\d{3}`)
	tagRe        = regexp.MustCompile(`<[^>\n]*>`)
	timestampRe  = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[.,]\d{3}`)
)

// Track is one extracted caption track.
type Track struct {
	Language string
	Text     string
}

// Extract cleans a raw subtitle payload into a single line of prose. An
// empty payload yields an empty string.
func Extract(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if strings.Contains(text, "\n") {
		text = strings.Join(dropStructuralLines(strings.Split(text, "\n")), "\n")
	}

	out := stripInline(text)
	for {
		next := stripInline(out)
		if next == out {
			return out
		}
		out = next
	}
}

// stripInline applies rules 3 to 5.
func stripInline(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	text = timestampRe.ReplaceAllString(text, "")
	text = strings.Join(dropRepeatedLines(strings.Split(text, "\n")), "\n")

	return strings.Join(strings.Fields(text), " ")
}

// dropStructuralLines applies rules 1 and 2.
func dropStructuralLines(lines []string) []string {
	kept := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inBlock {
			if trimmed == "" {
				inBlock = false
			}
			continue
		}
		switch {
		case headerLineRe.MatchString(trimmed):
			continue
		case blockStartRe.MatchString(trimmed):
			inBlock = true
			continue
		case timingLineRe.MatchString(line):
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func dropRepeatedLines(lines []string) []string {
	kept := make([]string, 0, len(lines))
	prev := ""
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == prev {
			continue
		}
		kept = append(kept, trimmed)
		prev = trimmed
	}
	return kept
}

// ReadTrack extracts the caption file at path. The language tag comes from
// the file name, e.g. temp_vid_0.en.vtt -> "en".
func ReadTrack(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, err
	}
	return Track{
		Language: LanguageFromFilename(path),
		Text:     Extract(string(data)),
	}, nil
}

// LanguageFromFilename returns the language tag of a {base}.{lang}.vtt
// file name, or "" when there is none.
func LanguageFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}
