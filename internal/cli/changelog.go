package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/changelog"
	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/log"
)

var (
	changelogRevRange    string
	changelogSinceTag    bool
	changelogFormat      string
	changelogFile        string
	changelogRelease     string
	changelogDate        string
	changelogIncremental bool
	changelogDryRun      bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate a changelog from the commit history",
	Long: `Generate a changelog from the commit history.

Commits that follow the convention are grouped by change type; each entry
ends with the short revision of its commit. Other commits are skipped.

The file configured in changelog.file is rewritten unless --incremental is
set, in which case the new release is placed above the existing ones.

Examples:
  czoca changelog --dry-run
  czoca changelog --since-tag --release 16.0.1.2.0 --incremental
  czoca changelog --rev-range v1.0.0..HEAD --format yaml --file CHANGELOG.yaml`,
	RunE: withApp(runChangelog),
}

func init() {
	changelogCmd.Flags().StringVar(&changelogRevRange, "rev-range", "", "Revision range to read (A..B)")
	changelogCmd.Flags().BoolVar(&changelogSinceTag, "since-tag", false, "Only read commits after the latest tag")
	changelogCmd.Flags().StringVar(&changelogFormat, "format", "", "Output format: markdown or yaml (overrides config)")
	changelogCmd.Flags().StringVar(&changelogFile, "file", "", "Changelog file (overrides config)")
	changelogCmd.Flags().StringVar(&changelogRelease, "release", "", "Release title (default: changelog.unreleased_title)")
	changelogCmd.Flags().StringVar(&changelogDate, "date", "", "Release date (default: today when --release is set)")
	changelogCmd.Flags().BoolVar(&changelogIncremental, "incremental", false, "Keep the existing releases of the file")
	changelogCmd.Flags().BoolVar(&changelogDryRun, "dry-run", false, "Print the changelog instead of writing the file")
	changelogCmd.MarkFlagsMutuallyExclusive("rev-range", "since-tag")
	rootCmd.AddCommand(changelogCmd)
}

func runChangelog(cmd *cobra.Command, args []string, a *app) error {
	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	cfg := a.cfg.GetChangelogConfig()

	formatName := cfg.Format
	if changelogFormat != "" {
		formatName = changelogFormat
	}
	format, err := changelog.ParseFormat(formatName)
	if err != nil {
		return err
	}

	path := cfg.File
	if changelogFile != "" {
		path = changelogFile
	}
	incremental := changelogIncremental || cfg.Incremental

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	history, err := git.OpenHistory(cwd)
	if err != nil {
		return err
	}

	rng := git.ParseRevRange(changelogRevRange)
	if changelogSinceTag {
		tag, err := history.LatestTag(ctx)
		if err != nil {
			return fmt.Errorf("failed to find the latest tag: %w", err)
		}
		if tag == "" {
			log.Warn("No tag found, reading the whole history")
		}
		rng.From = tag
	}

	release, date := releaseTitle(changelogRelease, changelogDate, cfg.UnreleasedTitle, time.Now())
	rel, err := changelog.Generate(ctx, history, a.engine, changelog.Options{
		Range:   rng,
		Version: release,
		Date:    date,
	})
	if err != nil {
		return err
	}
	if rel.IsEmpty() {
		log.Warn("No commit following the convention in the selected range")
	}

	if changelogDryRun {
		out, err := changelog.Render(rel, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if err := changelog.Update(path, rel, format, incremental); err != nil {
		return err
	}
	log.Info("Wrote %d entries to %s", rel.Count(), path)
	return nil
}

// releaseTitle returns the release heading and date. Unreleased changes are
// undated; a named release defaults to today.
func releaseTitle(release, date, unreleased string, now time.Time) (string, string) {
	if release == "" {
		return unreleased, date
	}
	if date == "" {
		date = now.Format("2006-01-02")
	}
	return release, date
}
