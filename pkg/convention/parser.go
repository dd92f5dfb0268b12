package convention

import "strings"

// ParsedCommit is the content extracted from a conforming commit message
type ParsedCommit struct {
	Type    ChangeType `json:"type" yaml:"type"`
	Module  string     `json:"module" yaml:"module"`
	Subject string     `json:"subject" yaml:"subject"`
	Body    string     `json:"body,omitempty" yaml:"body,omitempty"`
}

// Parse returns the trimmed subject of a conforming message. The boolean is
// false when the message does not follow the convention; that is not an error.
// Only the first line is considered.
func (g *Grammar) Parse(raw string) (string, bool) {
	m := g.pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[g.pattern.SubexpIndex(GroupSubject)]), true
}

// ParseCommit extracts every field of a conforming message. The body is the
// text after the first blank line.
func (g *Grammar) ParseCommit(raw string) (*ParsedCommit, bool) {
	m := g.pattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}

	pc := &ParsedCommit{
		Type:    ChangeType(m[g.pattern.SubexpIndex(GroupPrefix)]),
		Module:  m[g.pattern.SubexpIndex(GroupModule)],
		Subject: strings.TrimSpace(m[g.pattern.SubexpIndex(GroupSubject)]),
	}
	if i := strings.Index(raw, "\n\n"); i >= 0 {
		pc.Body = strings.TrimSpace(raw[i+2:])
	}
	return pc, true
}

// Check returns a *NoMatchError when raw does not follow the convention
func (g *Grammar) Check(raw string) error {
	if !g.pattern.MatchString(raw) {
		return &NoMatchError{Message: raw}
	}
	return nil
}

// InChangelog reports whether a commit belongs in the changelog
func (g *Grammar) InChangelog(raw string) bool {
	return g.changelog.MatchString(raw)
}
