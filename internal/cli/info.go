package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the commit message format",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), a.engine.Schema())
		return err
	}),
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Show a commit message that follows the convention",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), a.engine.Example())
		return err
	}),
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Explain the commit convention",
	Long: `Explain the commit convention.

The text comes from info_file in the configuration when set, otherwise the
built-in explanation is shown.`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		text := a.engine.HelpText()
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}),
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the change types",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return printChangeTypes(a.engine, cmd.OutOrStdout())
	}),
}

func printChangeTypes(c convention.Convention, out io.Writer) error {
	bold := color.New(color.Bold)
	for _, choice := range c.ListChangeTypes() {
		if _, err := bold.Fprintf(out, "%-4s", choice.Value); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s\n", choice.Name); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(schemaCmd, exampleCmd, infoCmd, lsCmd)
}
