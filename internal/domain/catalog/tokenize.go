package catalog

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-zA-Z]\w*`)

// Tokenize extracts lowercased words from text, in order of appearance.
// A word starts with an ASCII letter and continues with letters, digits or underscores.
func Tokenize(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = strings.ToLower(m)
	}
	return out
}
