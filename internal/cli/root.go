package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/config"
	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/pkg/convention"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// app is what commands working on commit messages receive: the loaded
// configuration and the engine built from it
type app struct {
	cfg    *config.Config
	engine *convention.Engine
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "czoca",
	Short: "Commit message convention of the Odoo Community Association",
	Long: `czoca writes and checks commit messages in the OCA format:

  [FIX] base: correct minor typos in code

It can:
  - Ask the commit questions and create the commit
  - Draft the answers from the staged diff with an LLM
  - Check messages from a commit-msg hook or a revision range
  - Generate a changelog from the history
  - Serve the convention to MCP clients

Use "czoca [command] --help" for more information about a command.`,
	SilenceUsage:     true,
	PersistentPreRun: setup,
}

func setup(cmd *cobra.Command, args []string) {
	if debugMode {
		log.SetDebugMode(true)
		git.SetDebugLogger(log.Debug)
		log.Debug("Debug mode enabled")
	}
}

// loadApp reads the configuration and injects the help text it names into
// the grammar. A *convention.ConfigurationError is returned unwrapped.
func loadApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.DebugConfig("Configuration", cfg)

	infoFile, err := cfg.GetInfoFile()
	if err != nil {
		return nil, err
	}

	var opts []convention.GrammarOption
	if infoFile != "" {
		opts = append(opts, convention.WithHelpFile(infoFile))
	}
	g, err := convention.NewGrammar(opts...)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, engine: convention.NewEngine(g)}, nil
}

// withApp loads the app before running fn
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(configFile)
		if err != nil {
			return err
		}
		return fn(cmd, args, a)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.czoca.yaml, then ~/.czoca.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "LLM model used by --draft (overrides config)")
}
