// Package markdown cleans extractor output and handles the image placeholders folded into it.
package markdown

import (
	"regexp"
	"strings"
)

var (
	zeroWidth        = regexp.MustCompile("[\u200B-\u200D\uFEFF]")
	trailingBlanks   = regexp.MustCompile(`[ \t]+\n`)
	repeatedNewlines = regexp.MustCompile(`\n{2,}`)

	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Normalize canonicalizes whitespace in extractor output. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = lineEndings.Replace(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = zeroWidth.ReplaceAllString(s, "")
	s = trailingBlanks.ReplaceAllString(s, "\n")
	s = repeatedNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
