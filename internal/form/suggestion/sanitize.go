// internal/form/suggestion/sanitize.go
package suggestion

import (
	"regexp"
	"strings"
)

const maxSuggestionLength = 400

var (
	wrappingQuotes  = regexp.MustCompile(`^\s*["']+|["']+$`)
	trailingSpaceNL = regexp.MustCompile(`\s+\n`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	excessSpace     = regexp.MustCompile(`\s{2,}`)
)

// Sanitize normalizes a model response for display: wrapping quotes
// stripped, whitespace collapsed, length capped.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	cleaned := wrappingQuotes.ReplaceAllString(text, "")
	cleaned = trailingSpaceNL.ReplaceAllString(cleaned, "\n")
	cleaned = excessNewlines.ReplaceAllString(cleaned, "\n\n")
	cleaned = excessSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > maxSuggestionLength {
		cleaned = strings.TrimRight(string(runes[:maxSuggestionLength]), " \t\n")
	}
	return cleaned
}
