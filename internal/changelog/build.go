package changelog

import (
	"context"
	"fmt"

	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/pkg/convention"
)

// CommitSource lists commits newest first
type CommitSource interface {
	Commits(ctx context.Context, opts git.HistoryOptions) ([]git.Commit, error)
}

// Options selects the commits and labels the release
type Options struct {
	Range   git.HistoryOptions
	Version string
	Date    string
}

// Generate reads commits from src and builds the release
func Generate(ctx context.Context, src CommitSource, e *convention.Engine, opts Options) (Release, error) {
	commits, err := src.Commits(ctx, opts.Range)
	if err != nil {
		return Release{}, fmt.Errorf("failed to read commits: %w", err)
	}
	log.Debug("Building changelog from %d commits", len(commits))

	return Build(e, commits, opts.Version, opts.Date), nil
}

// Build groups the conforming commits by change type. Entries keep the
// commit order within a section.
func Build(e *convention.Engine, commits []git.Commit, version, date string) Release {
	g := e.Grammar()
	byType := map[convention.ChangeType][]convention.ChangelogEntry{}

	for _, c := range commits {
		if c.IsMerge() {
			log.Skip(c.Hash, "merge commit")
			continue
		}
		if !g.InChangelog(c.Message) {
			log.Skip(c.Hash, "change type not in changelog")
			continue
		}
		pc, ok := g.ParseCommit(c.Message)
		if !ok {
			log.Skip(c.Hash, "message does not follow the convention")
			continue
		}

		entry := e.EnrichChangelogEntry(convention.NewChangelogEntry(pc), c.Hash)
		byType[entry.ChangeType] = append(byType[entry.ChangeType], *entry)
	}

	rel := Release{Version: version, Date: date}
	for _, t := range g.ChangeTypes() {
		entries := byType[t]
		if len(entries) == 0 {
			continue
		}
		rel.Sections = append(rel.Sections, Section{Type: t, Title: t.Title(), Entries: entries})
	}
	return rel
}
