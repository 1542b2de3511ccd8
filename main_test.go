package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/HugeFrog24/gpt-video-ebook/internal/config"
	"github.com/HugeFrog24/gpt-video-ebook/internal/credentials"
)

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (f *fakeConfirmer) Confirm(string) (bool, error) {
	f.asked++
	return f.answer, nil
}

func TestResolveNeedAudio(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		interactive bool
		answer      bool
		want        bool
		wantAsked   int
	}{
		{"captions", config.ModeCaptions, true, true, false, 0},
		{"ensemble", config.ModeEnsemble, false, false, true, 0},
		{"ask yes", config.ModeAsk, true, true, true, 1},
		{"ask no", config.ModeAsk, true, false, false, 1},
		{"ask without terminal", config.ModeAsk, false, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeConfirmer{answer: tt.answer}
			got, err := resolveNeedAudio(tt.mode, tt.interactive, c)
			if err != nil {
				t.Fatalf("resolveNeedAudio() error = %v", err)
			}
			if got != tt.want || c.asked != tt.wantAsked {
				t.Errorf("got %v after %d prompts, want %v after %d", got, c.asked, tt.want, tt.wantAsked)
			}
		})
	}
}

func commandNames(cfg config.Config, needAudio bool) string {
	var names []string
	for _, r := range requirements(cfg, needAudio) {
		names = append(names, r.Name)
	}
	return strings.Join(names, ",")
}

func TestRequirements(t *testing.T) {
	cfg := config.Default()
	if got := commandNames(cfg, false); got != "yt-dlp" {
		t.Errorf("captions only = %s", got)
	}
	if got := commandNames(cfg, true); got != "yt-dlp,ffmpeg,ffprobe" {
		t.Errorf("hosted ensemble = %s", got)
	}
	cfg.ASR.Backend = config.BackendLocal
	if got := commandNames(cfg, true); got != "yt-dlp,ffmpeg,uvx" {
		t.Errorf("local ensemble = %s", got)
	}
}

type countingAsker struct {
	answer string
	asked  int
}

func (c *countingAsker) Line(string) (string, error) {
	c.asked++
	return c.answer, nil
}

func TestKeyResolver(t *testing.T) {
	dir := t.TempDir()
	dotEnv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotEnv, []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	asker := &countingAsker{answer: "typed"}
	keys := newKeyResolver(dotEnv, true, asker)
	keys.getenv = func(name string) string {
		if name == "GROQ_API_KEY" {
			return "from-env"
		}
		return ""
	}

	for i := 0; i < 2; i++ {
		got, err := keys.resolve("Groq", "GROQ_API_KEY", "from-config")
		if err != nil || got != "from-env" {
			t.Fatalf("resolve(GROQ) = %q, %v", got, err)
		}
	}
	if got, err := keys.resolve("Gemini", "GEMINI_API_KEY", ""); err != nil || got != "from-dotenv" {
		t.Fatalf("resolve(GEMINI) = %q, %v", got, err)
	}
	if got, err := keys.resolve("Other", "OTHER_KEY", "from-config"); err != nil || got != "from-config" {
		t.Fatalf("resolve(OTHER) = %q, %v", got, err)
	}
	if got, err := keys.resolve("Prompted", "PROMPTED_KEY", ""); err != nil || got != "typed" {
		t.Fatalf("resolve(PROMPTED) = %q, %v", got, err)
	}
	if asker.asked != 1 {
		t.Errorf("prompted %d times, want 1", asker.asked)
	}

	silent := newKeyResolver("", false, asker)
	silent.getenv = func(string) string { return "" }
	if _, err := silent.resolve("Groq", "GROQ_API_KEY", ""); !errors.Is(err, credentials.ErrCredentialMissing) {
		t.Fatalf("non-interactive error = %v, want ErrCredentialMissing", err)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	content := "mode = \"captions\"\nlinks_file = \"from-file.txt\"\n\n[llm]\nprovider = \"openai\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	var flags runFlags
	bindRunFlags(cmd, &flags)
	if err := cmd.Flags().Parse([]string{"--config", path, "--mode", "Ensemble", "--llm", "gemini", "--describe"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Mode != config.ModeEnsemble {
		t.Errorf("Mode = %q, want ensemble", cfg.Mode)
	}
	if cfg.LLM.Provider != config.ProviderGemini {
		t.Errorf("Provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.LinksFile != "from-file.txt" {
		t.Errorf("LinksFile = %q, want value from file", cfg.LinksFile)
	}
	if !cfg.Ebook.Describe {
		t.Error("Describe flag not applied")
	}

	bad := &cobra.Command{Use: "test"}
	var badFlags runFlags
	bindRunFlags(bad, &badFlags)
	if err := bad.Flags().Parse([]string{"--config", path, "--asr", "cloud"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad, badFlags); err == nil {
		t.Error("expected validation error for unknown backend")
	}
}

func TestConfigSampleCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "sample"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"links_file", "whisper-large-v3", "[llm]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("sample missing %q", want)
		}
	}
}

func TestRunFailsWithoutLinksFile(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--links", filepath.Join(dir, "links.txt"), "--mode", "captions", "--workdir", dir})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "links file not found") {
		t.Fatalf("Execute() error = %v, want missing links file", err)
	}
}
