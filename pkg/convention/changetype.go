package convention

import (
	"fmt"
	"strings"
)

// ChangeType classifies the nature of a change. The set is closed.
type ChangeType string

const (
	Fix         ChangeType = "FIX"
	Improvement ChangeType = "IMP"
	Refactor    ChangeType = "REF"
	Migration   ChangeType = "MIG"
	OpenUpgrade ChangeType = "OU"
)

// changeTypes is the prompt and changelog order.
var changeTypes = []ChangeType{Fix, Improvement, Refactor, Migration, OpenUpgrade}

// longNames maps the spelled-out names accepted on the command line to codes
var longNames = map[string]ChangeType{
	"fix":         Fix,
	"improvement": Improvement,
	"refactor":    Refactor,
	"migration":   Migration,
	"openupgrade": OpenUpgrade,
}

// ChangeTypes returns every change type in prompt order
func ChangeTypes() []ChangeType {
	out := make([]ChangeType, len(changeTypes))
	copy(out, changeTypes)
	return out
}

// String returns the string representation of the change type
func (c ChangeType) String() string {
	return string(c)
}

// Code returns the short upper-case code written into commit messages
func (c ChangeType) Code() string {
	return string(c)
}

// IsValid checks if the change type belongs to the closed set
func (c ChangeType) IsValid() bool {
	switch c {
	case Fix, Improvement, Refactor, Migration, OpenUpgrade:
		return true
	default:
		return false
	}
}

// Label returns the text shown for the change type in the selection prompt
func (c ChangeType) Label() string {
	switch c {
	case Fix:
		return "fix: A bug fix."
	case Improvement:
		return "Improvement. A new feature."
	case Refactor:
		return "refactor: A code change that neither fixes a bug nor adds a feature"
	case Migration:
		return "Migration of version"
	case OpenUpgrade:
		return "Open Upgrade Scripts"
	default:
		return string(c)
	}
}

// Title returns the changelog section heading for the change type
func (c ChangeType) Title() string {
	switch c {
	case Fix:
		return "Fixes"
	case Improvement:
		return "Improvements"
	case Refactor:
		return "Refactors"
	case Migration:
		return "Migrations"
	case OpenUpgrade:
		return "Open Upgrade"
	default:
		return string(c)
	}
}

// ParseChangeType accepts a code (any case) or a long name such as "improvement"
func ParseChangeType(s string) (ChangeType, error) {
	s = strings.TrimSpace(s)
	if c := ChangeType(strings.ToUpper(s)); c.IsValid() {
		return c, nil
	}
	if c, ok := longNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown change type: %q", s)
}
