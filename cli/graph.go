// ABOUTME: Trust network graph command
// ABOUTME: Renders DOT, SVG or PNG through graphviz to a file or stdout
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/viz"
	"github.com/spf13/cobra"
)

var graphFormats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
}

func newGraphCommand(rt *Runtime) *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the trust network graph",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			gvFormat, ok := graphFormats[strings.ToLower(format)]
			if !ok {
				return fmt.Errorf("unknown graph format %q (dot, svg, png)", format)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := viz.RenderTrustGraph(cmd.Context(), a.Store.Snapshot(), gvFormat, w); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Graph written to %s\n", output)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "dot", "dot, svg or png")
	return cmd
}
