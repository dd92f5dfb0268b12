package changelog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Render produces a complete document holding only rel
func Render(rel Release, format Format) ([]byte, error) {
	return Merge(nil, rel, format)
}

// Merge places rel at the top of an existing document. A release with the same
// version already in the document is replaced.
func Merge(existing []byte, rel Release, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return mergeYAML(existing, rel)
	case FormatMarkdown:
		return mergeMarkdown(existing, rel)
	default:
		return nil, fmt.Errorf("unsupported changelog format: %s", format)
	}
}

func mergeYAML(existing []byte, rel Release) ([]byte, error) {
	c, err := ParseYAML(existing)
	if err != nil {
		return nil, err
	}

	releases := []Release{rel}
	for _, r := range c.Releases {
		if r.Version != rel.Version {
			releases = append(releases, r)
		}
	}
	c.Releases = releases

	var buf bytes.Buffer
	if err := RenderYAML(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mergeMarkdown(existing []byte, rel Release) ([]byte, error) {
	section, err := RenderMarkdownString(rel)
	if err != nil {
		return nil, err
	}

	var rest []string
	for _, s := range splitReleases(string(existing)) {
		if !isRelease(firstLine(s), rel.Version) {
			rest = append(rest, strings.TrimRight(s, "\n")+"\n")
		}
	}

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	b.WriteString(section)
	for _, s := range rest {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return []byte(b.String()), nil
}

// splitReleases returns the "## " sections of a Markdown changelog, dropping
// everything before the first one
func splitReleases(doc string) []string {
	var sections []string
	var cur *strings.Builder
	for _, line := range strings.SplitAfter(doc, "\n") {
		if strings.HasPrefix(line, "## ") {
			if cur != nil {
				sections = append(sections, cur.String())
			}
			cur = &strings.Builder{}
		}
		if cur != nil {
			cur.WriteString(line)
		}
	}
	if cur != nil {
		sections = append(sections, cur.String())
	}
	return sections
}

// isRelease reports whether a Markdown heading belongs to version, whatever
// date it carries
func isRelease(heading, version string) bool {
	title, ok := strings.CutPrefix(heading, "## ")
	if !ok {
		return false
	}
	if title == version {
		return true
	}
	date, ok := strings.CutPrefix(title, version+" (")
	return ok && strings.HasSuffix(date, ")") && !strings.Contains(date[:len(date)-1], "(")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r ")
}

// Update writes rel to path. In incremental mode the existing file is kept
// below the new release; otherwise the file is replaced.
func Update(path string, rel Release, format Format, incremental bool) error {
	var existing []byte
	if incremental {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		existing = data
	}

	out, err := Merge(existing, rel, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
