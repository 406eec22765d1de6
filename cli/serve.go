// ABOUTME: Local HTTP API command
// ABOUTME: Serves the JSON API on localhost until interrupted
package cli

import (
	"fmt"

	"github.com/harperreed/opslog/api"
	"github.com/harperreed/opslog/app"
	"github.com/spf13/cobra"
)

func newServeCommand(rt *Runtime) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API on localhost",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.Config.Server.Port
			}
			srv, err := api.NewServer(a, rt.Version)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving on http://127.0.0.1:%d (Ctrl+C to stop)\n", port)
			return srv.Start(cmd.Context(), port)
		}),
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port (default from config)")
	return cmd
}
