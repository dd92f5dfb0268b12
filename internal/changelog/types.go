package changelog

import (
	"fmt"
	"strings"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

// Format is a changelog output format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts "markdown", "md", "yaml" or "yml" in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported changelog format: %s", s)
	}
}

// Changelog is the document stored in a YAML changelog file, newest release first.
type Changelog struct {
	Releases []Release `yaml:"releases"`
}

// Release is one version section of the changelog.
// Version is a tag name or the unreleased title.
type Release struct {
	Version  string    `yaml:"version"`
	Date     string    `yaml:"date,omitempty"`
	Sections []Section `yaml:"sections"`
}

// Section holds the entries of one change type
type Section struct {
	Type    convention.ChangeType       `yaml:"type"`
	Title   string                      `yaml:"title"`
	Entries []convention.ChangelogEntry `yaml:"entries"`
}

// IsEmpty reports whether the release has no entries
func (r Release) IsEmpty() bool {
	return r.Count() == 0
}

// Count returns the number of entries across all sections
func (r Release) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// Heading returns the Markdown heading of the release
func (r Release) Heading() string {
	if r.Date == "" {
		return "## " + r.Version
	}
	return fmt.Sprintf("## %s (%s)", r.Version, r.Date)
}
