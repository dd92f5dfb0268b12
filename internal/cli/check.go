package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/pkg/convention"
)

var (
	checkMessage    string
	checkMsgFile    string
	checkRevRange   string
	checkAllowMerge bool
	checkAllowAbort bool
)

// scissors marks the start of the diff appended by "git commit -v"
const scissors = "# ------------------------ >8 ------------------------"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check commit messages against the convention",
	Long: `Check that commit messages follow the convention.

The message is read from exactly one of --message, --commit-msg-file or
--rev-range. Use it as a commit-msg hook:

  czoca check --commit-msg-file "$1"

Examples:
  czoca check --message "[FIX] account: correct rounding"
  czoca check --rev-range origin/16.0..HEAD --allow-merge`,
	RunE: withApp(runCheck),
}

func init() {
	checkCmd.Flags().StringVar(&checkMessage, "message", "", "Message to check")
	checkCmd.Flags().StringVar(&checkMsgFile, "commit-msg-file", "", "Commit message file written by git (commit-msg hook)")
	checkCmd.Flags().StringVar(&checkRevRange, "rev-range", "", "Check every commit in a revision range (A..B)")
	checkCmd.Flags().BoolVar(&checkAllowMerge, "allow-merge", false, "Accept merge and revert commits")
	checkCmd.Flags().BoolVar(&checkAllowAbort, "allow-abort", false, "Accept an empty message (git aborts the commit)")
	checkCmd.MarkFlagsMutuallyExclusive("message", "commit-msg-file", "rev-range")
	checkCmd.MarkFlagsOneRequired("message", "commit-msg-file", "rev-range")
	rootCmd.AddCommand(checkCmd)
}

// checkOptions controls which messages are accepted besides conforming ones
type checkOptions struct {
	allowMerge bool
	allowAbort bool
}

func runCheck(cmd *cobra.Command, args []string, a *app) error {
	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	messages, err := collectMessages(ctx)
	if err != nil {
		return err
	}

	opts := checkOptions{allowMerge: checkAllowMerge, allowAbort: checkAllowAbort}
	if err := checkMessages(a.engine.Grammar(), messages, opts); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✅ %s\n", pluralize(len(messages), "message"))
	return nil
}

func collectMessages(ctx context.Context) ([]string, error) {
	switch {
	case checkMsgFile != "":
		data, err := os.ReadFile(checkMsgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit message file: %w", err)
		}
		return []string{stripComments(string(data))}, nil

	case checkRevRange != "":
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		history, err := git.OpenHistory(cwd)
		if err != nil {
			return nil, err
		}
		commits, err := history.Commits(ctx, git.ParseRevRange(checkRevRange))
		if err != nil {
			return nil, err
		}
		log.Debug("Checking %d commits in %s", len(commits), checkRevRange)
		messages := make([]string, len(commits))
		for i, c := range commits {
			messages[i] = c.Message
		}
		return messages, nil

	default:
		return []string{checkMessage}, nil
	}
}

// stripComments removes the lines git itself drops from a commit message
// file: comment lines and everything below the scissors line.
func stripComments(msg string) string {
	var b strings.Builder
	for _, line := range strings.Split(msg, "\n") {
		if strings.TrimRight(line, "\r") == scissors {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

func isMergeOrRevert(msg string) bool {
	return strings.HasPrefix(msg, "Merge") || strings.HasPrefix(msg, "Revert")
}

// checkMessages returns an error listing every message that fails the check
func checkMessages(g *convention.Grammar, messages []string, opts checkOptions) error {
	var failed []string
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		switch {
		case msg == "":
			if !opts.allowAbort {
				failed = append(failed, "empty commit message")
			}
			continue
		case opts.allowMerge && isMergeOrRevert(msg):
			continue
		}

		var noMatch *convention.NoMatchError
		if err := g.Check(msg); errors.As(err, &noMatch) {
			failed = append(failed, noMatch.Error())
		} else if err != nil {
			return err
		}
	}

	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%s failed the check:\n  %s\n\nExpected format:\n%s",
		pluralize(len(failed), "message"), strings.Join(failed, "\n  "), g.Schema())
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

