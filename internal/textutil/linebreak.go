package textutil

import "strings"

// lineBreaks lists every character FlattenLineBreaks replaces.
const lineBreaks = "\r\n\v\f\u0085\u2028\u2029"

// lineBreakReplacer maps every line or paragraph separator to one space.
// CRLF is listed first so the pair collapses to a single space.
var lineBreakReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"\v", " ",
	"\f", " ",
	"\u0085", " ",
	"\u2028", " ",
	"\u2029", " ",
)

// FlattenLineBreaks replaces each line break in s with a single space.
// Other characters, including runs of spaces, are kept.
func FlattenLineBreaks(s string) string {
	if !HasLineBreak(s) {
		return s
	}
	return lineBreakReplacer.Replace(s)
}

// HasLineBreak reports whether s contains any character FlattenLineBreaks replaces.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, lineBreaks)
}
