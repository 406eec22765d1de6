// ABOUTME: Insights command
// ABOUTME: Prints the latest model-generated advisories; requires consent
package cli

import (
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/spf13/cobra"
)

func newInsightsCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show generated insights",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			list, err := a.Insights(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Insights (%s):\n", a.Summarizer.Name())
			for _, line := range list {
				fmt.Fprintf(out, "  › %s\n", line)
			}
			return nil
		}),
	}
}
