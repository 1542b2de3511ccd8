// Package langcheck guesses the language of transcript text.
package langcheck

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua detector that is built on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{}
}

// Detect returns the lowercase ISO 639-1 code of the language of text, or
// false when no language could be determined.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
