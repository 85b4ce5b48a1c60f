package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a project name usable as part of a file name.
// Path separators, colons, and asterisks become dashes, other reserved
// characters are dropped, and control characters become spaces.
func SanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	// Windows strips trailing dots when creating files.
	return strings.TrimRight(name, ". ")
}
