package input

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

// Expander replaces feed URLs in the input list with the video links they
// contain. Channel and playlist feeds are the common case.
type Expander struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

// NewExpander builds an Expander backed by gofeed.
func NewExpander(logger *slog.Logger) *Expander {
	return &Expander{
		parser: gofeed.NewParser(),
		logger: logging.Component(logger, "input"),
	}
}

// Expand returns items with every feed URL replaced by its entries in feed
// order. A feed that cannot be fetched or parsed is logged and dropped.
func (e *Expander) Expand(ctx context.Context, items []domain.VideoItem) ([]domain.VideoItem, error) {
	out := make([]domain.VideoItem, 0, len(items))
	for _, item := range items {
		if !IsFeedURL(item.URL) {
			out = append(out, item)
			continue
		}

		feed, err := e.parser.ParseURLWithContext(item.URL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("feed could not be read, skipping", logging.FieldURL, item.URL, "error", err)
			continue
		}

		added := 0
		for _, entry := range feed.Items {
			link := strings.TrimSpace(entry.Link)
			if link == "" {
				continue
			}
			out = append(out, domain.VideoItem{URL: link})
			added++
		}
		e.logger.Info("expanded feed", logging.FieldURL, item.URL, "title", feed.Title, "videos", added)
	}

	if len(out) == 0 {
		return nil, ErrNoLinks
	}
	return out, nil
}

// IsFeedURL reports whether raw points at an RSS or Atom feed rather than
// a single video.
func IsFeedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.HasPrefix(u.Path, "/feeds/videos.xml") {
		return true
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".rss", ".atom", ".xml":
		return true
	}
	return false
}
