package cli

import (
	"github.com/spf13/cobra"

	"github.com/huimingz/cz-oca-go/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the commit convention over MCP (stdio)",
	Long: `Serve the commit convention to MCP clients over stdin/stdout.

Tools: list_change_types, build_message, check_message, parse_message,
schema, example and info.

Example client configuration:
  {"command": "czoca", "args": ["mcp"]}`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return mcpserver.New(a.engine, version).ServeStdio()
	}),
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
