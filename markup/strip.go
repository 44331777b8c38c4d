// Package markup removes tags from HTML-ish text.
package markup

import "strings"

// Strip drops everything between '<' and the next '>' (both inclusive) in a
// single pass. Text after an unclosed '<' is dropped. Entities are left as
// they are, and bytes outside tags pass through unchanged even when they are
// not valid UTF-8.
func Strip(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inTag := false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Preview returns the first n runes of text followed by "..." when text is
// longer than n runes; otherwise text unchanged.
func Preview(text string, n int) string {
	if n < 0 {
		n = 0
	}

	count := 0
	for i := range text {
		if count == n {
			return text[:i] + "..."
		}
		count++
	}

	return text
}
