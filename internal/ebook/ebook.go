// Package ebook paginates prose into chapters and writes EPUB files.
package ebook

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	epub "github.com/go-shiori/go-epub"

	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
)

// Language is the fixed language tag written into every book.
const Language = "en"

// DefaultStylesheet is used when the configured stylesheet cannot be read.
const DefaultStylesheet = "body { font-family: sans-serif; line-height: 1.6; padding: 5%; } b { font-weight: bold; }"

const stylesheetName = "style.css"

// ErrEmptyProse is returned when there is nothing to put in a book.
var ErrEmptyProse = errors.New("no prose to assemble")

// Chapter is one page fragment of the book.
type Chapter struct {
	Title    string
	FileName string
	Words    int
	Body     string
}

// Book is an assembled, not yet serialized, document.
type Book struct {
	Title       string
	Description string
	Chapters    []Chapter
}

// Paginate splits prose on whitespace into groups of perChapter words.
// The last group may be shorter.
func Paginate(prose string, perChapter int) [][]string {
	words := strings.Fields(prose)
	if len(words) == 0 || perChapter <= 0 {
		return nil
	}
	pages := make([][]string, 0, (len(words)+perChapter-1)/perChapter)
	for i := 0; i < len(words); i += perChapter {
		pages = append(pages, words[i:min(i+perChapter, len(words))])
	}
	return pages
}

// Assemble builds the chapters for prose. Chapter N is titled "Part N" and
// stored as chap_N.xhtml.
func Assemble(title, prose string, perChapter int) (Book, error) {
	pages := Paginate(prose, perChapter)
	if len(pages) == 0 {
		return Book{}, ErrEmptyProse
	}

	book := Book{Title: title, Chapters: make([]Chapter, 0, len(pages))}
	for i, words := range pages {
		idx := i + 1
		book.Chapters = append(book.Chapters, Chapter{
			Title:    fmt.Sprintf("Part %d", idx),
			FileName: fmt.Sprintf("chap_%d.xhtml", idx),
			Words:    len(words),
			Body:     "<p>" + Emphasize(strings.Join(words, " ")) + "</p>",
		})
	}
	return book, nil
}

// Writer serializes books with go-epub.
type Writer struct {
	stylesheet string
	logger     *slog.Logger
}

// NewWriter returns a Writer that embeds the CSS file at stylesheet, or
// DefaultStylesheet when that file cannot be read.
func NewWriter(stylesheet string, logger *slog.Logger) *Writer {
	return &Writer{
		stylesheet: stylesheet,
		logger:     logging.Component(logger, "ebook"),
	}
}

// Write serializes book to path. The table of contents lists the chapters
// in order.
func (w *Writer) Write(book Book, path string) error {
	if len(book.Chapters) == 0 {
		return ErrEmptyProse
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		return fmt.Errorf("create epub: %w", err)
	}
	e.SetLang(Language)
	if book.Description != "" {
		e.SetDescription(book.Description)
	}

	cssPath, err := e.AddCSS(w.cssSource(), stylesheetName)
	if err != nil {
		return fmt.Errorf("add stylesheet: %w", err)
	}

	for _, ch := range book.Chapters {
		if _, err := e.AddSection(ch.Body, ch.Title, ch.FileName, cssPath); err != nil {
			return fmt.Errorf("add %s: %w", ch.FileName, err)
		}
	}

	if err := e.Write(path); err != nil {
		return fmt.Errorf("write epub %s: %w", path, err)
	}
	w.logger.Info("epub written", "path", path, "chapters", len(book.Chapters))
	return nil
}

func (w *Writer) cssSource() string {
	if w.stylesheet != "" {
		if info, err := os.Stat(w.stylesheet); err == nil && !info.IsDir() {
			return w.stylesheet
		}
		w.logger.Debug("stylesheet not found, using built-in default", "path", w.stylesheet)
	}
	return "data:text/css;base64," + base64.StdEncoding.EncodeToString([]byte(DefaultStylesheet))
}
