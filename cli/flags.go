// ABOUTME: Helpers turning explicitly set flags into partial-patch pointers
// ABOUTME: A flag the user did not pass stays nil and leaves the stored field untouched
package cli

import (
	"github.com/harperreed/opslog/app"
	"github.com/spf13/cobra"
)

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Date YYYY-MM-DD (default: today)")
}

func dateFlag(cmd *cobra.Command, a *app.App) string {
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		return d
	}
	return a.Today()
}
