// ABOUTME: Dashboard command
// ABOUTME: Renders the text dashboard, or the raw stats as JSON
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/viz"
	"github.com/spf13/cobra"
)

func newStatsCommand(rt *Runtime) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show the dashboard",
		Args:    cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a.Stats())
			}

			d := viz.GenerateDashboard(a.Store.Snapshot(), a.CurrentInsights(), a.Now())
			fmt.Fprint(out, viz.RenderDashboard(d))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print aggregate stats as JSON")
	return cmd
}
