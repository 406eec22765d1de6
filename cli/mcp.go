// ABOUTME: MCP server command
// ABOUTME: Serves the opslog tools, resources and prompts over stdio
package cli

import (
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			server := handlers.NewServer(a, rt.Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		}),
	}
}
