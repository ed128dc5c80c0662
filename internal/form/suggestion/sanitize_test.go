// internal/form/suggestion/sanitize_test.go
package suggestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"wrapping double quotes", `"I lost my job"`, "I lost my job"},
		{"wrapping single quotes", "'I lost my job'", "I lost my job"},
		{"stacked quotes", `""'I lost my job'""`, "I lost my job"},
		{"collapses runs of spaces", "too   many    spaces", "too many spaces"},
		{"keeps single newline", "line one\nline two", "line one\nline two"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_CapsLength(t *testing.T) {
	long := strings.Repeat("word ", 200)

	out := Sanitize(long)

	assert.LessOrEqual(t, len([]rune(out)), maxSuggestionLength)
	assert.False(t, strings.HasSuffix(out, " "))
}
