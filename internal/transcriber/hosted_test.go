package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/HugeFrog24/gpt-video-ebook/internal/domain"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
	"github.com/HugeFrog24/gpt-video-ebook/internal/media"
)

type stubSplitter struct {
	segs media.Segments
	err  error
}

func (s stubSplitter) Split(context.Context, domain.AudioAsset) (media.Segments, error) {
	return s.segs, s.err
}

// whisperServer answers /v1/audio/transcriptions with the text mapped to
// the uploaded file name. A missing mapping is a server error.
type whisperServer struct {
	mu       sync.Mutex
	texts    map[string]string
	uploads  []string
	language []string
}

func (s *whisperServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/audio/transcriptions" {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, header.Filename)
	s.language = append(s.language, r.FormValue("language"))
	text, ok := s.texts[header.Filename]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"upstream failure","type":"server_error"}}`)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
}

func writeParts(t *testing.T, names ...string) media.Segments {
	t.Helper()
	dir := t.TempDir()
	segs := media.Segments{Dir: dir}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatal(err)
		}
		segs.Parts = append(segs.Parts, path)
	}
	return segs
}

func newTestHosted(serverURL string, splitter Splitter) *HostedBatchTranscriber {
	return NewHosted(HostedOptions{
		APIKey:   "gsk-test",
		BaseURL:  serverURL + "/v1",
		Model:    "whisper-large-v3",
		Language: "en",
	}, splitter, logging.NewNop())
}

func TestHostedSingleRequest(t *testing.T) {
	ws := &whisperServer{texts: map[string]string{"temp_vid_0.mp3": "  hello world  "}}
	server := httptest.NewServer(ws)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "temp_vid_0.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	splitter := stubSplitter{segs: media.Segments{Parts: []string{path}}}

	got, err := newTestHosted(server.URL, splitter).Transcribe(context.Background(), domain.AudioAsset{Path: path, Size: 5})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got.Text != "hello world" || got.Source != domain.SourceASR {
		t.Errorf("Transcribe() = %+v", got)
	}
	if len(ws.uploads) != 1 || ws.language[0] != "en" {
		t.Errorf("uploads = %v languages = %v", ws.uploads, ws.language)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("source asset must be left for its owner: %v", err)
	}
}

func TestHostedSegmentsKeepOrderAndGaps(t *testing.T) {
	ws := &whisperServer{texts: map[string]string{
		"seg_000.mp3": "first",
		"seg_002.mp3": "third",
	}}
	server := httptest.NewServer(ws)
	defer server.Close()

	segs := writeParts(t, "seg_000.mp3", "seg_001.mp3", "seg_002.mp3")
	got, err := newTestHosted(server.URL, stubSplitter{segs: segs}).
		Transcribe(context.Background(), domain.AudioAsset{Path: "temp_vid_0.mp3", Size: 1 << 30})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got.Text != "first third" {
		t.Errorf("Text = %q, want %q", got.Text, "first third")
	}
	if strings.Join(ws.uploads, ",") != "seg_000.mp3,seg_001.mp3,seg_002.mp3" {
		t.Errorf("uploads out of order: %v", ws.uploads)
	}
	if _, err := os.Stat(segs.Dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("segment dir left behind: %v", err)
	}
}

func TestHostedAllSegmentsFail(t *testing.T) {
	server := httptest.NewServer(&whisperServer{texts: map[string]string{}})
	defer server.Close()

	segs := writeParts(t, "seg_000.mp3", "seg_001.mp3")
	_, err := newTestHosted(server.URL, stubSplitter{segs: segs}).
		Transcribe(context.Background(), domain.AudioAsset{Path: "temp_vid_0.mp3", Size: 1 << 30})
	if err == nil {
		t.Fatal("expected error when every segment fails")
	}
	if _, statErr := os.Stat(segs.Dir); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("segment dir left behind: %v", statErr)
	}
}

func TestHostedEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(&whisperServer{texts: map[string]string{"seg_000.mp3": "   "}})
	defer server.Close()

	segs := writeParts(t, "seg_000.mp3")
	_, err := newTestHosted(server.URL, stubSplitter{segs: segs}).
		Transcribe(context.Background(), domain.AudioAsset{Path: "temp_vid_0.mp3", Size: 1 << 30})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("error = %v, want ErrEmptyTranscript", err)
	}
}

func TestHostedSplitFailure(t *testing.T) {
	boom := errors.New("ffmpeg exploded")
	h := NewHostedWithClient(nil, HostedOptions{}, stubSplitter{err: boom}, logging.NewNop())
	_, err := h.Transcribe(context.Background(), domain.AudioAsset{Path: "a.mp3", Size: 1 << 30})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}
