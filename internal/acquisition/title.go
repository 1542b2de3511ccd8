package acquisition

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// UntitledVideo names videos whose title sanitises to nothing.
const UntitledVideo = "Untitled_Video"

// SanitizeTitle reduces a video title to a filesystem-safe token. Only
// letters, digits, underscores, hyphens and whitespace survive; whitespace
// runs become single underscores. The result is deterministic, so two
// videos with the same title share an output name.
func SanitizeTitle(title string) string {
	title = norm.NFC.String(title)

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), "_")
	if cleaned == "" {
		return UntitledVideo
	}
	return cleaned
}
