package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

func sampleRelease(version string) Release {
	e := convention.NewEngine(convention.MustGrammar())
	return Build(e, sampleCommits()[:2], version, "")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdownString(sampleRelease("Unreleased"))
	require.NoError(t, err)

	want := "## Unreleased\n" +
		"\n### Fixes\n\n" +
		"- **base**: correct minor typos in code [bbbbb]\n" +
		"\n### Improvements\n\n" +
		"- **sale**: add margin on lines [aaaaa]\n"
	assert.Equal(t, want, out)
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(sampleRelease("Unreleased"), FormatMarkdown)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# Changelog\n\n## Unreleased\n"))
}

func TestMerge_MarkdownKeepsOlderReleases(t *testing.T) {
	existing := "# Changelog\n\n## Unreleased\n\n### Fixes\n\n- **base**: stale [00000]\n\n## v1.0.0 (2024-01-01)\n\n### Fixes\n\n- **base**: old fix [11111]\n"

	out, err := Merge([]byte(existing), sampleRelease("Unreleased"), FormatMarkdown)
	require.NoError(t, err)

	doc := string(out)
	assert.Equal(t, 1, strings.Count(doc, "# Changelog\n"))
	assert.Equal(t, 1, strings.Count(doc, "## Unreleased"))
	assert.NotContains(t, doc, "stale")
	assert.Contains(t, doc, "old fix [11111]")
	assert.Less(t, strings.Index(doc, "## Unreleased"), strings.Index(doc, "## v1.0.0"))
}

func TestMerge_SameVersionOtherDate(t *testing.T) {
	e := convention.NewEngine(convention.MustGrammar())
	first := Build(e, sampleCommits()[:2], "1.0.0", "2026-01-01")
	second := Build(e, sampleCommits()[:1], "1.0.0", "2026-02-02")

	for _, format := range []Format{FormatMarkdown, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			existing, err := Render(first, format)
			require.NoError(t, err)

			out, err := Merge(existing, second, format)
			require.NoError(t, err)

			doc := string(out)
			assert.Contains(t, doc, "2026-02-02")
			assert.NotContains(t, doc, "2026-01-01")
			if format == FormatMarkdown {
				assert.Equal(t, 1, strings.Count(doc, "## 1.0.0"))
			} else {
				assert.Equal(t, 1, strings.Count(doc, "version: 1.0.0"))
			}
		})
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		heading string
		version string
		want    bool
	}{
		{"## 1.0.0", "1.0.0", true},
		{"## 1.0.0 (2026-01-01)", "1.0.0", true},
		{"## 1.0.0-rc1 (2026-01-01)", "1.0.0", false},
		{"## 1.0.0", "1.0", false},
		{"## v1 (beta)", "v1 (beta)", true},
		{"## v1 (beta) (2026-01-01)", "v1 (beta)", true},
		{"## v1 (beta) (2026-01-01)", "v1", false},
		{"### 1.0.0", "1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelease(tt.heading, tt.version))
		})
	}
}

func TestMerge_YAML(t *testing.T) {
	first, err := Render(sampleRelease("v1.0.0"), FormatYAML)
	require.NoError(t, err)

	doc, err := ParseYAML(first)
	require.NoError(t, err)
	require.Len(t, doc.Releases, 1)
	assert.Equal(t, "v1.0.0", doc.Releases[0].Version)
	assert.Equal(t, convention.Fix, doc.Releases[0].Sections[0].Type)
	assert.Equal(t, "correct minor typos in code [bbbbb]", doc.Releases[0].Sections[0].Entries[0].Message)

	merged, err := Merge(first, sampleRelease("Unreleased"), FormatYAML)
	require.NoError(t, err)

	doc, err = ParseYAML(merged)
	require.NoError(t, err)
	require.Len(t, doc.Releases, 2)
	assert.Equal(t, "Unreleased", doc.Releases[0].Version)
	assert.Equal(t, "v1.0.0", doc.Releases[1].Version)

	again, err := Merge(merged, sampleRelease("Unreleased"), FormatYAML)
	require.NoError(t, err)
	doc, err = ParseYAML(again)
	require.NoError(t, err)
	assert.Len(t, doc.Releases, 2)
}

func TestParseYAML_Invalid(t *testing.T) {
	_, err := ParseYAML([]byte("releases: [unterminated"))
	assert.Error(t, err)

	doc, err := ParseYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Releases)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	require.NoError(t, Update(path, sampleRelease("v1.0.0"), FormatMarkdown, true))
	require.NoError(t, Update(path, sampleRelease("Unreleased"), FormatMarkdown, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Unreleased")
	assert.Contains(t, string(data), "## v1.0.0")

	require.NoError(t, Update(path, sampleRelease("v2.0.0"), FormatMarkdown, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "## v1.0.0")

	assert.Error(t, Update(path, sampleRelease("v2.0.0"), Format("rst"), false))
}
