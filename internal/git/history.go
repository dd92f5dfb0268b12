package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger receives debug output when set via SetDebugLogger
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Commit is a commit read from history
type Commit struct {
	Hash    string
	Message string
	Author  string
	When    time.Time
	Parents int
}

// IsMerge reports whether the commit has more than one parent
func (c Commit) IsMerge() bool {
	return c.Parents > 1
}

// HistoryOptions selects the commits returned by History.Commits
type HistoryOptions struct {
	// From is excluded along with its ancestors (the "A" in A..B). Empty means the root.
	From string
	// To is the newest revision. Empty means HEAD.
	To string
	// Max limits the number of commits. Zero means no limit.
	Max int
}

// ParseRevRange splits "A..B" into HistoryOptions. A single revision is used as To.
func ParseRevRange(rng string) HistoryOptions {
	if from, to, ok := strings.Cut(rng, ".."); ok {
		return HistoryOptions{From: from, To: to}
	}
	return HistoryOptions{To: rng}
}

// History reads commits with go-git, without a git binary
type History struct {
	repo *git.Repository
}

// OpenHistory opens the repository containing path. Empty path means the
// current directory.
func OpenHistory(path string) (*History, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &History{repo: repo}, nil
}

func (h *History) resolve(rev string) (plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := h.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %s: %w", rev, err)
	}
	return *hash, nil
}

// Commits returns commits newest first
func (h *History) Commits(ctx context.Context, opts HistoryOptions) ([]Commit, error) {
	to, err := h.resolve(opts.To)
	if err != nil {
		return nil, err
	}

	exclude := map[plumbing.Hash]bool{}
	if opts.From != "" {
		from, err := h.resolve(opts.From)
		if err != nil {
			return nil, err
		}
		if err := h.walk(ctx, from, func(c *object.Commit) error {
			exclude[c.Hash] = true
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var commits []Commit
	err = h.walk(ctx, to, func(c *object.Commit) error {
		if exclude[c.Hash] {
			return nil
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Author:  c.Author.Name,
			When:    c.Author.When,
			Parents: c.NumParents(),
		})
		if opts.Max > 0 && len(commits) >= opts.Max {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logDebug("[git] read %d commits", len(commits))
	return commits, nil
}

func (h *History) walk(ctx context.Context, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := h.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return err
	}
	return nil
}

// LatestTag returns the newest tag reachable from HEAD, or "" when there is none
func (h *History) LatestTag(ctx context.Context) (string, error) {
	tagged := map[plumbing.Hash]string{}

	refs, err := h.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := h.repo.TagObject(ref.Hash()); err == nil {
			target = tag.Target
		}
		tagged[target] = ref.Name().Short()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	if len(tagged) == 0 {
		return "", nil
	}

	head, err := h.resolve("HEAD")
	if err != nil {
		return "", err
	}

	var latest string
	err = h.walk(ctx, head, func(c *object.Commit) error {
		if name, ok := tagged[c.Hash]; ok {
			latest = name
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return latest, nil
}
