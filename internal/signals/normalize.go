package signals

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the result. Every text field passes through here before storage or
// matching; raw HTML whitespace must never leak into signals or scores.
// The function is idempotent.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// CountWords counts word tokens in cleaned body text. Non-letter and
// non-digit runes act as separators so non-Latin scripts are counted the
// same way as Latin ones.
func CountWords(text string) int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return len(fields)
}

// truncate cuts s at max runes and appends an ellipsis marker when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// capStrings returns at most max entries of list, preserving order.
func capStrings(list []string, max int) []string {
	if len(list) <= max {
		return list
	}
	return list[:max]
}
