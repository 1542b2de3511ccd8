package synthesis

// Window is a half-open range [Start, End) of code point offsets.
type Window struct {
	Index int
	Start int
	End   int
}

// Windows partitions [0, n) into ceil(n/width) consecutive windows. The
// last window may be shorter. A non-positive width yields no windows.
func Windows(n, width int) []Window {
	if n <= 0 || width <= 0 {
		return nil
	}
	out := make([]Window, 0, (n+width-1)/width)
	for start := 0; start < n; start += width {
		out = append(out, Window{
			Index: len(out),
			Start: start,
			End:   min(start+width, n),
		})
	}
	return out
}

// slice returns text[w.Start:w.End] clamped to the length of text. A
// window entirely past the end of text is empty.
func slice(text []rune, w Window) string {
	if w.Start >= len(text) {
		return ""
	}
	return string(text[w.Start:min(w.End, len(text))])
}
