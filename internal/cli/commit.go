package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/agent"
	"github.com/huimingz/cz-oca-go/internal/config"
	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/llm"
	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/internal/ui"
	"github.com/huimingz/cz-oca-go/pkg/convention"
)

var (
	commitContext  string
	commitLanguage string
	commitAutoYes  bool
	commitDryRun   bool
	commitDraft    bool
	commitSignOff  bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Write and create a commit",
	Long: `Ask the commit questions and create the commit.

This command will:
1. Check that there are staged changes (git diff --cached)
2. Ask for the change type, module, subject and body
3. Show the message and ask for confirmation before committing

With --draft the answers are proposed by an LLM from the staged diff.
Declining the proposal falls back to the questions.

Examples:
  czoca commit
  czoca commit --dry-run
  czoca commit --draft -c "Fixes the rounding issue reported on invoices"
  czoca commit --draft --language fr -m deepseek`,
	RunE: withApp(runCommit),
}

func init() {
	commitCmd.Flags().BoolVar(&commitDryRun, "dry-run", false, "Print the message without committing")
	commitCmd.Flags().BoolVar(&commitDraft, "draft", false, "Let an LLM draft the answers from the staged diff")
	commitCmd.Flags().BoolVarP(&commitSignOff, "signoff", "s", false, "Add a Signed-off-by trailer")
	commitCmd.Flags().BoolVarP(&commitAutoYes, "yes", "y", false, "Auto-confirm the commit without prompting")
	commitCmd.Flags().StringVarP(&commitContext, "context", "c", "", "Additional context for --draft")
	commitCmd.Flags().StringVarP(&commitLanguage, "language", "l", "", "Language of the drafted message (en, fr, es, etc.)")
	rootCmd.AddCommand(commitCmd)
}

// drafter proposes answers for the staged changes
type drafter interface {
	Draft(ctx context.Context, req agent.DraftRequest) (*agent.DraftResponse, error)
}

// commitFlow holds everything a commit run needs
type commitFlow struct {
	engine   *convention.Engine
	exec     git.Executor
	drafter  drafter
	language string
	context  string
	dryRun   bool
	autoYes  bool
	signOff  bool
	in       io.Reader
	out      io.Writer
}

func runCommit(cmd *cobra.Command, args []string, a *app) error {
	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	commitCfg := a.cfg.GetCommitConfig()
	flow := &commitFlow{
		engine:   a.engine,
		exec:     git.NewExecutor(cwd),
		language: a.cfg.GetLanguage(commitLanguage),
		context:  commitContext,
		dryRun:   commitDryRun,
		autoYes:  commitAutoYes || commitCfg.AutoYes,
		signOff:  commitSignOff || commitCfg.SignOff,
		in:       ui.NewInput(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
	}

	if commitDraft {
		d, err := newDrafter(a.cfg, flow)
		if err != nil {
			return err
		}
		flow.drafter = d
	}

	return flow.run(ctx)
}

func newDrafter(cfg *config.Config, flow *commitFlow) (drafter, error) {
	provider, err := llm.NewProviderFactory().CreateFromConfig(cfg, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	log.Debug("LLM provider created: %s", provider.Name())

	return agent.NewDraftAgent(agent.DraftAgentOptions{
		Language:    flow.language,
		Grammar:     flow.engine.Grammar(),
		GitExecutor: flow.exec,
		LLMProvider: provider,
		Retry:       cfg.GetRetryConfig(),
		Printer:     ui.NewStreamPrinter(flow.out, ui.WithVerbose(debugMode)),
		Debug:       debugMode,
	})
}

func (f *commitFlow) run(ctx context.Context) error {
	if !f.dryRun {
		diff, err := f.exec.DiffCached(ctx)
		if err != nil {
			return fmt.Errorf("failed to get staged changes: %w", err)
		}
		if diff == "" {
			fmt.Fprintln(f.out, "No staged changes found.")
			fmt.Fprintln(f.out, "\nTo stage changes, use:")
			fmt.Fprintln(f.out, "  git add <file>")
			fmt.Fprintln(f.out, "  git add -A")
			return nil
		}
	}

	answers, err := f.answers(ctx)
	if err != nil {
		return err
	}

	message := f.engine.BuildMessage(answers)
	if err := ui.ShowCommitMessage(message, f.out); err != nil {
		return err
	}

	if f.dryRun {
		return nil
	}

	if !f.autoYes {
		confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, f.in, f.out)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(f.out, "Commit cancelled.")
			return nil
		}
	}

	if err := f.exec.Commit(ctx, message, git.CommitOptions{SignOff: f.signOff}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	fmt.Fprintln(f.out, "\n✅ Commit created successfully!")
	return nil
}

// answers returns the drafted answers when accepted, otherwise asks the questions
func (f *commitFlow) answers(ctx context.Context) (convention.Answers, error) {
	if f.drafter != nil {
		answers, ok, err := f.draft(ctx)
		if err != nil {
			return convention.Answers{}, err
		}
		if ok {
			return answers, nil
		}
	}

	answers, err := ui.AskQuestions(f.engine.QuestionSpecs(), f.in, f.out)
	if err != nil {
		return convention.Answers{}, fmt.Errorf("failed to read answers: %w", err)
	}
	return answers, nil
}

func (f *commitFlow) draft(ctx context.Context) (convention.Answers, bool, error) {
	start := time.Now()
	resp, err := f.drafter.Draft(ctx, agent.DraftRequest{Language: f.language, Context: f.context})
	if err != nil {
		return convention.Answers{}, false, fmt.Errorf("failed to draft commit message: %w", err)
	}

	printer := ui.NewStreamPrinter(f.out, ui.WithVerbose(debugMode))
	_ = printer.PrintStats(&ui.ExecutionStats{
		StartTime:        start,
		EndTime:          time.Now(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	})

	if err := ui.ShowCommitMessage(resp.Message, f.out); err != nil {
		return convention.Answers{}, false, err
	}
	accepted, err := ui.ConfirmWithDefault("\nUse the drafted message?", true, f.in, f.out)
	if err != nil {
		return convention.Answers{}, false, err
	}
	if !accepted {
		fmt.Fprintln(f.out, "Falling back to the questions.")
	}
	return resp.Answers, accepted, nil
}
