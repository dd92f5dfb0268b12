// Package changelog turns commit history into release notes.
//
// Commits outside the changelog types or not following the commit convention
// are skipped. The rest become entries carrying a short revision reference,
// grouped by change type in prompt order and rendered as Markdown or YAML.
package changelog
