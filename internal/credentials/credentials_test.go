package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeSource struct {
	value string
	err   error
	calls *int
}

func (f fakeSource) Name() string { return "fake" }

func (f fakeSource) Lookup() (string, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.value, f.err
}

type fakeAsker struct {
	answer   string
	question string
}

func (f *fakeAsker) Line(question string) (string, error) {
	f.question = question
	return f.answer, nil
}

func TestResolveOrder(t *testing.T) {
	var laterCalls int
	got, err := Resolve(
		fakeSource{value: ""},
		fakeSource{value: "  from-second  "},
		fakeSource{value: "from-third", calls: &laterCalls},
	)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "from-second" {
		t.Errorf("Resolve() = %q, want from-second", got)
	}
	if laterCalls != 0 {
		t.Errorf("later source consulted %d times, want 0", laterCalls)
	}
}

func TestResolveMissing(t *testing.T) {
	_, err := Resolve(fakeSource{}, nil, Static{})
	if !errors.Is(err, ErrCredentialMissing) {
		t.Fatalf("error = %v, want ErrCredentialMissing", err)
	}
}

func TestResolveSkipsFailingSource(t *testing.T) {
	boom := errors.New("boom")
	got, err := Resolve(fakeSource{err: boom}, Static{Value: "fallback"})
	if err != nil || got != "fallback" {
		t.Fatalf("Resolve() = %q, %v", got, err)
	}

	_, err = Resolve(fakeSource{err: boom})
	if !errors.Is(err, ErrCredentialMissing) || !errors.Is(err, boom) {
		t.Fatalf("error = %v, want both ErrCredentialMissing and boom", err)
	}
}

func TestEnvSource(t *testing.T) {
	env := Env{Var: "GROQ_API_KEY", Getenv: func(key string) string {
		if key == "GROQ_API_KEY" {
			return "gsk-env"
		}
		return ""
	}}
	got, err := Resolve(env, Static{Value: "gsk-config"})
	if err != nil || got != "gsk-env" {
		t.Fatalf("Resolve() = %q, %v", got, err)
	}
}

func TestDotEnvSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("GROQ_API_KEY=gsk-dotenv\nOTHER=x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := DotEnv{Path: path, Var: "GROQ_API_KEY"}.Lookup()
	if err != nil || got != "gsk-dotenv" {
		t.Fatalf("Lookup() = %q, %v", got, err)
	}

	got, err = DotEnv{Path: filepath.Join(dir, "missing.env"), Var: "GROQ_API_KEY"}.Lookup()
	if err != nil || got != "" {
		t.Fatalf("missing file Lookup() = %q, %v", got, err)
	}
}

func TestPromptIsLastResort(t *testing.T) {
	asker := &fakeAsker{answer: "gsk-typed"}
	got, err := Resolve(
		Env{Var: "UNSET", Getenv: func(string) string { return "" }},
		Static{},
		Prompt{Label: "Groq API key", Asker: asker},
	)
	if err != nil || got != "gsk-typed" {
		t.Fatalf("Resolve() = %q, %v", got, err)
	}
	if asker.question == "" {
		t.Error("prompt was not shown")
	}

	_, err = Resolve(Prompt{Label: "Groq API key", Asker: &fakeAsker{}})
	if !errors.Is(err, ErrCredentialMissing) {
		t.Fatalf("empty answer error = %v, want ErrCredentialMissing", err)
	}
}
