// Package content normalizes raw recipe text before it is rendered.
package content

import (
	"strings"
	"unicode"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Sanitize converts non-breaking spaces to spaces, trims the ends,
// normalizes line endings to \n and drops every non-printable character
// other than the newline.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.TrimSpace(s)
	s = newlines.Replace(s)

	return strings.Map(func(r rune) rune {
		if r == '\n' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// Lines splits sanitized text into display lines
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
