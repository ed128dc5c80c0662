// internal/form/suggestion/analysis_test.go
package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"intake-service/internal/common/i18n"
)

func TestCategorize(t *testing.T) {
	tr := i18n.For(language.English)

	tests := []struct {
		name string
		text string
		want InputClass
	}{
		{"empty", "", ClassEmpty},
		{"whitespace only", "   \n  ", ClassEmpty},
		{"too short", "broke", ClassIrrelevant},
		{"greeting opener", "hello there, how is it going today", ClassIrrelevant},
		{"chat phrase", "good morning, what should I write here today", ClassIrrelevant},
		{"short help ask", "help me", ClassIrrelevant},
		{"help request", "can you help me write this statement", ClassHelpRequest},
		{"how do i", "how do i write about my situation", ClassHelpRequest},
		{"draft for me", "please draft a description for me", ClassHelpRequest},
		{"real content", "I lost my job three months ago and savings are running out", ClassContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.text, tr))
		})
	}
}

func TestCategorize_IrrelevantWinsOverHelp(t *testing.T) {
	tr := i18n.For(language.English)

	// opens with a greeting, also matches a help pattern
	assert.Equal(t, ClassIrrelevant, Categorize("hi can you help me write this statement", tr))
}

func TestBuildPrompt_PerClass(t *testing.T) {
	tr := i18n.For(language.English)
	field := "currentFinancialSituation"

	empty := BuildPrompt(ClassEmpty, "", field, tr)
	help := BuildPrompt(ClassHelpRequest, "help me write", field, tr)
	content := BuildPrompt(ClassContent, "I lost my job", field, tr)

	assert.Contains(t, empty, "current financial situation")
	assert.Contains(t, help, "help me write")
	assert.Contains(t, content, "I lost my job")
	assert.NotEqual(t, empty, help)
	assert.Empty(t, BuildPrompt(ClassIrrelevant, "hi", field, tr))
}

func TestBuildRewritePrompt(t *testing.T) {
	tr := i18n.For(language.English)
	field := "reasonForApplying"

	rewrite := BuildRewritePrompt(ClassContent, "I need support", field, tr)
	fresh := BuildRewritePrompt(ClassHelpRequest, "anything", field, tr)

	assert.Contains(t, rewrite, "I need support")
	assert.NotContains(t, fresh, "anything")
	assert.Empty(t, BuildRewritePrompt(ClassEmpty, "", field, tr))
}

func TestGuidanceMessage_IsLocalAndLocalized(t *testing.T) {
	en := GuidanceMessage("employmentCircumstances", i18n.For(language.English))
	ar := GuidanceMessage("employmentCircumstances", i18n.For(language.Arabic))

	assert.Contains(t, en, "employment circumstances")
	assert.Contains(t, en, "•")
	assert.NotEqual(t, en, ar)
}
