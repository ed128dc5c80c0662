// internal/models/suggestion.go
package models

// SuggestionKind distinguishes locally generated guidance from text the AI
// service produced.
type SuggestionKind string

const (
	SuggestionGuidance    SuggestionKind = "guidance"
	SuggestionAIGenerated SuggestionKind = "ai-generated"
)

// Suggestion is one candidate text offered for a narrative field.
type Suggestion struct {
	Field      string         `json:"field"`
	Kind       SuggestionKind `json:"kind"`
	Content    string         `json:"content"`
	Generation uint64         `json:"generation"`
}
