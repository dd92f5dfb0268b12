package convention

import "fmt"

// shortRevLen is the number of hash characters appended to changelog lines
const shortRevLen = 5

// ChangelogEntry is a parsed commit on its way to the rendered changelog
type ChangelogEntry struct {
	Message    string     `json:"message" yaml:"message"`
	ChangeType ChangeType `json:"change_type,omitempty" yaml:"change_type,omitempty"`
	Module     string     `json:"module,omitempty" yaml:"module,omitempty"`
	Revision   string     `json:"revision,omitempty" yaml:"revision,omitempty"`
	Body       string     `json:"body,omitempty" yaml:"body,omitempty"`
}

// NewChangelogEntry builds an entry from a parsed commit
func NewChangelogEntry(pc *ParsedCommit) *ChangelogEntry {
	return &ChangelogEntry{
		Message:    pc.Subject,
		ChangeType: pc.Type,
		Module:     pc.Module,
		Body:       pc.Body,
	}
}

// EnrichChangelogEntry appends a short revision reference to the entry's
// message in place and returns the entry. Call it once per entry.
func EnrichChangelogEntry(entry *ChangelogEntry, revision string) *ChangelogEntry {
	if entry == nil {
		return nil
	}
	short := revision
	if len(short) > shortRevLen {
		short = short[:shortRevLen]
	}
	entry.Revision = revision
	entry.Message = fmt.Sprintf("%s [%s]", entry.Message, short)
	return entry
}
