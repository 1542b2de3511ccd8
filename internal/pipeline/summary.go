package pipeline

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
)

// Stages an item can fail in.
const (
	StageAcquire    = "acquire"
	StageTranscribe = "transcribe"
	StageSynthesize = "synthesize"
	StageAssemble   = "assemble"
	StageWrite      = "write"
)

// ItemResult records what happened to one video.
type ItemResult struct {
	Index         int
	URL           string
	Title         string
	Mode          domain.Mode
	Windows       int
	FailedWindows int
	Chapters      int
	Output        string
	Stage         string
	Err           error
}

// OK reports whether the item produced a book.
func (r ItemResult) OK() bool {
	return r.Err == nil
}

type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Items    []ItemResult
}

func (s Summary) Succeeded() int {
	n := 0
	for _, item := range s.Items {
		if item.OK() {
			n++
		}
	}
	return n
}

func (s Summary) Failed() int {
	return len(s.Items) - s.Succeeded()
}

// Render draws the per-item results as a table.
func (s Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Mode", "Windows", "Gaps", "Chapters", "Result"})

	for _, item := range s.Items {
		title := item.Title
		if title == "" {
			title = item.URL
		}
		result := item.Output
		if item.Err != nil {
			result = item.Stage + ": " + item.Err.Error()
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(item.Index),
			title,
			string(item.Mode),
			strconv.Itoa(item.Windows),
			strconv.Itoa(item.FailedWindows),
			strconv.Itoa(item.Chapters),
			result,
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "ok/failed", strconv.Itoa(s.Succeeded()) + "/" + strconv.Itoa(s.Failed())})

	aligns := []text.Align{text.AlignRight, text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignLeft}
	configs := make([]table.ColumnConfig, 0, len(aligns))
	for i, align := range aligns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
