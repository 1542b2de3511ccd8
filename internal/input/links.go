package input

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
)

var (
	ErrLinksFileMissing = errors.New("links file not found")
	ErrNoLinks          = errors.New("no URLs found in links file")
)

// Load reads one video URL per line. Surrounding whitespace is trimmed and
// blank lines and # comments are skipped.
func Load(path string) ([]domain.VideoItem, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLinksFileMissing, path)
		}
		return nil, fmt.Errorf("failed to open links file: %w", err)
	}
	defer file.Close()

	var items []domain.VideoItem
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, domain.VideoItem{URL: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading links file at line %d: %w", lineNum, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLinks, path)
	}
	return items, nil
}
