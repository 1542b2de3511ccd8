package synthesis

import "fmt"

// NotAvailable stands in for a transcript slice that has no text.
const NotAvailable = "Not available."

const (
	ensembleSystem = "You are a professional editor specializing in ensemble transcript refinement."
	singleSystem   = "You are a professional editor specializing in transcript refinement."
	describeSystem = "You are a helpful assistant that writes clear and concise descriptions for books made from video transcripts. Write in the same language as the text."
)

const ensembleTemplate = `You are a master scientific editor and technical writer. Below are two imperfect transcripts of the same video.

TRANSCRIPT A (Speech recognition): %s

TRANSCRIPT B (Platform captions): %s

INSTRUCTIONS:
1. Cross-reference both transcripts to identify the correct technical terms and names.
2. Resolve any stutters or inaccuracies by comparing the two sources.
3. Rewrite the content into a highly coherent, readable book-style narrative.
4. Explain the concepts clearly as if writing a masterclass summary.
5. Fix all grammar and punctuation. Remove filler words (uh, um, you know).
OUTPUT ONLY THE CLEANED PROSE. NO INTRO OR EXPLANATIONS.`

const singleTemplate = `You are a master scientific editor and technical writer. Below is an imperfect transcript of a video.

TRANSCRIPT: %s

INSTRUCTIONS:
1. Correct misrecognized technical terms and names where the context makes them clear.
2. Rewrite the content into a highly coherent, readable book-style narrative.
3. Explain the concepts clearly as if writing a masterclass summary.
4. Fix all grammar and punctuation. Remove filler words (uh, um, you know).
OUTPUT ONLY THE CLEANED PROSE. NO INTRO OR EXPLANATIONS.`

const describeTemplate = `Based on the following title and opening text, write a single paragraph describing what the reader will learn from this book.

Title: %s

Text:
%s`

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func ensemblePrompt(primary, secondary string) string {
	return fmt.Sprintf(ensembleTemplate, orNotAvailable(primary), orNotAvailable(secondary))
}

func singlePrompt(text string) string {
	return fmt.Sprintf(singleTemplate, orNotAvailable(text))
}
