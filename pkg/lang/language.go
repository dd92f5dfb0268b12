// Package lang names the languages a drafted commit message can be written in.
package lang

import (
	"fmt"
	"strings"
)

// Language represents supported output languages
type Language string

const (
	English    Language = "en"
	French     Language = "fr"
	Spanish    Language = "es"
	German     Language = "de"
	Italian    Language = "it"
	Dutch      Language = "nl"
	Portuguese Language = "pt"
	Chinese    Language = "zh"
)

var displayNames = map[Language]string{
	English:    "English",
	French:     "French",
	Spanish:    "Spanish",
	German:     "German",
	Italian:    "Italian",
	Dutch:      "Dutch",
	Portuguese: "Portuguese",
	Chinese:    "Simplified Chinese",
}

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the language is valid
func (l Language) IsValid() bool {
	_, ok := displayNames[l]
	return ok
}

// DisplayName returns the English name of the language, or the code itself
// when unknown
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

// DefaultLanguage returns the default language
func DefaultLanguage() Language {
	return English
}

// ParseLanguage parses a string to a Language. Unknown codes fall back to
// the default language.
func ParseLanguage(s string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if l.IsValid() {
		return l
	}
	return DefaultLanguage()
}

// Describe returns "French (fr)" for a known code. Anything else is returned
// as given so that free-form names such as "Polish" still reach the model.
func Describe(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultLanguage().String()
	}
	l := Language(strings.ToLower(s))
	if !l.IsValid() {
		return s
	}
	return fmt.Sprintf("%s (%s)", l.DisplayName(), l)
}
