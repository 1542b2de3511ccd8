// Package credentials resolves API keys from an ordered list of sources.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrCredentialMissing is returned when no source yields a credential.
var ErrCredentialMissing = errors.New("credential not found")

// Source yields a credential or an empty string when it has none.
type Source interface {
	Name() string
	Lookup() (string, error)
}

// Resolve returns the first non-empty credential in source order. A source
// that errors is skipped; its error is reported only if nothing else
// yields a credential.
func Resolve(sources ...Source) (string, error) {
	var errs []error
	for _, src := range sources {
		if src == nil {
			continue
		}
		value, err := src.Lookup()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrCredentialMissing, errors.Join(errs...))
	}
	return "", ErrCredentialMissing
}

// Env reads the credential from an environment variable.
type Env struct {
	Var    string
	Getenv func(string) string
}

func (e Env) Name() string { return "env " + e.Var }

func (e Env) Lookup() (string, error) {
	if e.Var == "" {
		return "", nil
	}
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(e.Var), nil
}

// DotEnv reads the credential from a .env file without touching the
// process environment. A missing file yields nothing.
type DotEnv struct {
	Path string
	Var  string
}

func (d DotEnv) Name() string { return "dotenv " + d.Path }

func (d DotEnv) Lookup() (string, error) {
	if d.Path == "" || d.Var == "" {
		return "", nil
	}
	values, err := godotenv.Read(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return values[d.Var], nil
}

// Static is a fallback value compiled into the configuration.
type Static struct {
	Value string
}

func (s Static) Name() string { return "config" }

func (s Static) Lookup() (string, error) { return s.Value, nil }

// Asker is the subset of prompt.Prompter used to ask for a secret.
type Asker interface {
	Line(question string) (string, error)
}

// Prompt asks the operator for the credential.
type Prompt struct {
	Label string
	Asker Asker
}

func (p Prompt) Name() string { return "prompt" }

func (p Prompt) Lookup() (string, error) {
	if p.Asker == nil {
		return "", nil
	}
	return p.Asker.Line(fmt.Sprintf("%s not found in environment. Please enter it: ", p.Label))
}
