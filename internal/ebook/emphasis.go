package ebook

import (
	"html"
	"strings"
	"unicode"
)

// Emphasize renders text as XHTML with the leading half of every word
// wrapped in <b>. A word is a maximal run of letters, digits, marks and
// underscores; its first ceil(n/2) code points are emphasized. Single
// code point words and everything between words are only escaped.
func Emphasize(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)

	runes := []rune(text)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		if j > i {
			writeWord(&b, runes[i:j])
			i = j
			continue
		}
		for j < len(runes) && !isWordRune(runes[j]) {
			j++
		}
		b.WriteString(html.EscapeString(string(runes[i:j])))
		i = j
	}
	return b.String()
}

func writeWord(b *strings.Builder, word []rune) {
	if len(word) < 2 {
		b.WriteString(string(word))
		return
	}
	mid := (len(word) + 1) / 2
	b.WriteString("<b>")
	b.WriteString(string(word[:mid]))
	b.WriteString("</b>")
	b.WriteString(string(word[mid:]))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
