// Package i18n holds the display-text catalog for validation and
// suggestion messages. Data shapes are never localized, only text.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Match resolves a locale from an explicit query value and an
// Accept-Language header, in that priority order.
func Match(query, acceptLanguage string) language.Tag {
	if query != "" {
		if tag, err := language.Parse(query); err == nil {
			tag, _, _ = matcher.Match(tag)
			return canonical(tag)
		}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := matcher.Match(tags...)
	return canonical(tag)
}

// canonical collapses regional variants onto the supported base tags.
func canonical(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	if base.String() == "ar" {
		return language.Arabic
	}
	return language.English
}

// Translator resolves message keys for one locale.
type Translator struct {
	tag   language.Tag
	table map[string]string
	lists map[string][]string
}

// For returns the Translator for a matched locale tag.
func For(tag language.Tag) *Translator {
	if canonical(tag) == language.Arabic {
		return &Translator{tag: language.Arabic, table: arTable, lists: arLists}
	}
	return &Translator{tag: language.English, table: enTable, lists: enLists}
}

// Tag returns the locale this translator serves.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T resolves a key and interpolates {name} placeholders from vars.
// Unknown keys fall back to English, then to the key itself.
func (t *Translator) T(key string, vars map[string]string) string {
	msg, ok := t.table[key]
	if !ok {
		if msg, ok = enTable[key]; !ok {
			return key
		}
	}
	for name, value := range vars {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

// List resolves a key to a phrase list (used by the suggestion
// classifier for greetings and chat phrases).
func (t *Translator) List(key string) []string {
	if list, ok := t.lists[key]; ok {
		return list
	}
	return enLists[key]
}

// Field returns the localized display name of a draft field.
func (t *Translator) Field(field string) string {
	return t.T("fields."+field, nil)
}
