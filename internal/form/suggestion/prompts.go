// internal/form/suggestion/prompts.go
package suggestion

import (
	"strings"

	"intake-service/internal/common/i18n"
)

// fieldContext resolves the narrative field to its human description used
// inside prompts and guidance ("current financial situation", ...).
func fieldContext(field string, tr *i18n.Translator) string {
	return tr.T("ai.context."+field, nil)
}

// GuidanceMessage is the locally built reply for irrelevant input. It never
// costs a network call.
func GuidanceMessage(field string, tr *i18n.Translator) string {
	context := fieldContext(field, tr)
	var b strings.Builder
	b.WriteString(tr.T("ai.guidance.title", nil))
	b.WriteString(" ")
	b.WriteString(tr.T("ai.guidance.intro", map[string]string{"context": context}))
	b.WriteString("\n• ")
	b.WriteString(tr.T("ai.guidance.option1", nil))
	b.WriteString("\n• ")
	b.WriteString(tr.T("ai.guidance.option2", nil))
	b.WriteString("\n• ")
	b.WriteString(tr.T("ai.guidance.option3", nil))
	b.WriteString("\n\n")
	b.WriteString(tr.T("ai.guidance.question", nil))
	return b.String()
}

// BuildPrompt selects the class-specific prompt for a first suggestion.
// Irrelevant input yields no prompt; the caller short-circuits to guidance.
func BuildPrompt(class InputClass, text, field string, tr *i18n.Translator) string {
	context := fieldContext(field, tr)
	switch class {
	case ClassEmpty:
		return tr.T("ai.prompts.empty", map[string]string{"context": context})
	case ClassHelpRequest:
		return tr.T("ai.prompts.helpRequest", map[string]string{"text": text, "context": context})
	case ClassContent:
		return tr.T("ai.prompts.improveContent", map[string]string{"text": text, "context": context})
	default:
		return ""
	}
}

// BuildRewritePrompt selects the prompt for rewriting an existing
// suggestion with different wording.
func BuildRewritePrompt(class InputClass, text, field string, tr *i18n.Translator) string {
	context := fieldContext(field, tr)
	switch class {
	case ClassHelpRequest:
		return tr.T("ai.prompts.generateFresh", map[string]string{"context": context})
	case ClassContent:
		return tr.T("ai.prompts.rewriteContent", map[string]string{"text": text, "context": context})
	default:
		return ""
	}
}
