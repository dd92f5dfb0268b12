package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/config"
)

const defaultConfigTemplate = `# czoca configuration file

# Help text shown by "czoca info" (optional, defaults to the built-in text)
# info_file: ~/.czoca-info.txt

# Language of drafted messages (en, fr, es, etc.)
language: en

commit:
  # Commit without asking for confirmation
  auto_yes: false
  # Add a Signed-off-by trailer
  sign_off: false

changelog:
  file: CHANGELOG.md
  # markdown or yaml
  format: markdown
  unreleased_title: Unreleased
  # Keep the existing releases of the file
  incremental: false

# Model used by "czoca commit --draft" (must match a key in models)
default_model: deepseek

models:
  deepseek:
    provider: deepseek
    api_key: ${DEEPSEEK_API_KEY}
    model: deepseek-chat
    # base_url: https://api.deepseek.com  # optional, uses default

  # openai:
  #   provider: openai
  #   api_key: ${OPENAI_API_KEY}
  #   model: gpt-4o

  # ollama:
  #   provider: ollama
  #   model: llama3.2
  #   base_url: http://localhost:11434/v1

  # gemini:
  #   provider: gemini
  #   api_key: ${GOOGLE_API_KEY}
  #   model: gemini-2.0-flash

  # grok:
  #   provider: grok
  #   api_key: ${XAI_API_KEY}
  #   model: grok-beta

retry:
  enabled: true
  max_attempts: 3
  backoff_base: 1.0
  backoff_max: 8.0
`

var (
	initForce  bool
	initGlobal bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a czoca configuration file",
	Long: `Create a default configuration file.

The file is written to ./` + config.FileName + `, or to ~/` + config.FileName + ` with --global.
Edit it to set the draft model and changelog options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if initGlobal {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = homeDir
		}

		configPath, err := writeConfigTemplate(dir, initForce)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Set the API key of the draft model (environment variables recommended)")
		fmt.Fprintln(out, "  2. Run 'czoca commit' to write a commit message")
		return nil
	},
}

func writeConfigTemplate(dir string, force bool) (string, error) {
	configPath := filepath.Join(dir, config.FileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return "", fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().BoolVarP(&initGlobal, "global", "g", false, "Write to the home directory")
	rootCmd.AddCommand(initCmd)
}
