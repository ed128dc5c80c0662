// internal/form/suggestion/analysis.go

// Package suggestion implements the writing-assistant workflow for the
// narrative fields: input classification, prompt building, the AI
// round-trip, and the accept/rewrite/cancel lifecycle.
package suggestion

import (
	"regexp"
	"strings"

	"intake-service/internal/common/i18n"
)

// InputClass is the coarse category of what the applicant typed.
type InputClass string

const (
	ClassEmpty       InputClass = "empty"
	ClassIrrelevant  InputClass = "irrelevant"
	ClassHelpRequest InputClass = "help-request"
	ClassContent     InputClass = "content"
)

// Help patterns are regex-based and language-agnostic; greeting and chat
// phrase lists come from the locale catalog.
var helpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(help|assist|aid)\b.*\b(writ|prepar|creat|draft|generat|compos|make)`),
	regexp.MustCompile(`\b(need|require|want|can you|could you|would you)\b.*\b(help|writ|prepar|creat|draft)`),
	regexp.MustCompile(`\b(writ|prepar|creat|draft|generat|compos)\b.*\b(for me|statement|description)`),
	regexp.MustCompile(`\bhow (do i|can i|to)\b.*\b(writ|describ)`),
}

// isHelpRequest reports whether the text is asking for writing assistance
// rather than providing content.
func isHelpRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range helpPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// isIrrelevant flags text too short to be an answer, or that opens with a
// greeting, or that contains a chat phrase.
func isIrrelevant(text string, tr *i18n.Translator) bool {
	if len(text) < 10 {
		return true
	}

	lower := strings.TrimSpace(strings.ToLower(text))
	words := strings.Fields(lower)

	if len(words) > 0 {
		for _, g := range tr.List("ai.detection.greetings") {
			if words[0] == g {
				return true
			}
		}
	}
	for _, phrase := range tr.List("ai.detection.chatPhrases") {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Categorize buckets the applicant's input. Irrelevant wins over
// help-request so "hi, help me" gets guidance, not a generated statement.
func Categorize(text string, tr *i18n.Translator) InputClass {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) == 0 {
		return ClassEmpty
	}
	if isIrrelevant(trimmed, tr) {
		return ClassIrrelevant
	}
	if isHelpRequest(trimmed) {
		return ClassHelpRequest
	}
	return ClassContent
}
