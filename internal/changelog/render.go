package changelog

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header opens a Markdown changelog file
const Header = "# Changelog\n"

// RenderMarkdown writes one release section
func RenderMarkdown(rel Release, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", rel.Heading()); err != nil {
		return err
	}

	for _, s := range rel.Sections {
		if _, err := fmt.Fprintf(w, "\n### %s\n\n", s.Title); err != nil {
			return err
		}
		for _, e := range s.Entries {
			if _, err := fmt.Fprintf(w, "- **%s**: %s\n", e.Module, e.Message); err != nil {
				return err
			}
		}
	}

	return nil
}

// RenderMarkdownString renders one release section to a string
func RenderMarkdownString(rel Release) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(rel, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderYAML writes the changelog document
func RenderYAML(c *Changelog, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding changelog: %w", err)
	}
	return enc.Close()
}

// ParseYAML reads a changelog document. Empty input is an empty changelog.
func ParseYAML(data []byte) (*Changelog, error) {
	c := &Changelog{}
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing changelog: %w", err)
	}
	return c, nil
}
