// ABOUTME: Export command
// ABOUTME: Writes JSON and CSV documents to the export directory or stdout
package cli

import (
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/export"
	"github.com/spf13/cobra"
)

const formatAll = "all"

func newExportCommand(rt *Runtime) *cobra.Command {
	var (
		format, dir string
		stdout      bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the log as JSON and/or CSV",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			out := cmd.OutOrStdout()
			if dir == "" {
				dir = a.Config.Export.Dir
			}

			if format == formatAll {
				if stdout {
					return fmt.Errorf("--stdout needs a single --format (json or csv)")
				}
				paths, err := a.WriteExports(cmd.Context(), dir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(out, "✓ Exported %s\n", p)
				}
				return nil
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := a.Export(f)
			if err != nil {
				return err
			}
			if stdout {
				_, err := out.Write(data)
				return err
			}
			path, err := export.WriteFile(dir, f, data, a.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Exported %s\n", path)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatAll, "json, csv or all")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the document to stdout instead of a file")
	return cmd
}
