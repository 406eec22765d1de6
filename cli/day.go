// ABOUTME: Day inspection commands
// ABOUTME: Show one day's record section by section, or list every logged date
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/viz"
	"github.com/spf13/cobra"
)

func newDayCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Inspect logged days",
	}
	cmd.AddCommand(newDayShowCommand(rt), newDayListCommand(rt))
	return cmd
}

func newDayShowCommand(rt *Runtime) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show a day's record (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			date := a.Today()
			if len(args) == 1 {
				date = args[0]
			}
			if _, err := models.ParseDate(date); err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			out := cmd.OutOrStdout()
			rec, ok := a.Store.Day(date)
			if !ok {
				fmt.Fprintf(out, "Nothing logged for %s\n", date)
				return nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			printDay(out, a, date, rec)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw record as JSON")
	return cmd
}

func newDayListCommand(rt *Runtime) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged days, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			want := models.Category(category)
			if category != "" && !slices.Contains(models.AllCategories, want) {
				return fmt.Errorf("unknown category %q", category)
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			dates := a.Store.Dates()
			shown := 0
			for i := len(dates) - 1; i >= 0; i-- {
				rec, _ := a.Store.Day(dates[i])
				if category != "" && !rec.HasCategory(want) {
					continue
				}
				if shown == 0 {
					_, _ = fmt.Fprintln(w, "DATE\tSECTIONS")
				}
				shown++
				_, _ = fmt.Fprintf(w, "%s\t%s\n", dates[i], categoryList(rec))
			}
			if shown == 0 {
				fmt.Fprintln(out, "No days logged")
				return nil
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "Only days with this section (sales, network, relationships, finance, productivity, gym, notes)")
	return cmd
}

func categoryList(rec models.DailyRecord) string {
	names := make([]string, len(rec.Categories))
	for i, c := range rec.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func printDay(out io.Writer, a *app.App, date string, rec models.DailyRecord) {
	fmt.Fprintf(out, "%s  [%s]\n", date, categoryList(rec))

	if s := rec.Sales; s != nil {
		fmt.Fprintln(out, "\nSALES")
		fmt.Fprintf(out, "  Leads %d (quality %d) · calls %d · meetings %d · deals %d\n",
			s.Leads, s.LeadQuality, s.ColdCalls, s.Meetings, s.DealsClosed)
		fmt.Fprintf(out, "  Revenue %s", viz.FormatMoney(s.Revenue))
		if s.DealStage != "" {
			fmt.Fprintf(out, " · stage %s", s.DealStage)
		}
		fmt.Fprintln(out)
		for _, c := range s.CallLog {
			fmt.Fprintf(out, "  › %s %s (%s) %s %s\n", c.Duration, c.Contact, c.Type, c.Outcome, c.Company)
		}
		printNotes(out, s.Notes)
	}
	if n := rec.Network; n != nil {
		fmt.Fprintln(out, "\nNETWORK")
		fmt.Fprintf(out, "  Reconnections %d · intros given %d · received %d\n",
			n.Reconnections, n.IntroductionsGiven, n.IntroductionsReceived)
		for _, c := range n.NewContacts {
			fmt.Fprintf(out, "  + %s (%s, %s)\n", c.FullName, c.Company, c.Tier)
		}
		printNotes(out, n.Notes)
	}
	if len(rec.Relationships) > 0 {
		fmt.Fprintln(out, "\nRELATIONSHIPS")
		for _, r := range rec.Relationships {
			fmt.Fprintf(out, "  %s: trust %d · temp %d · %s\n",
				a.Store.DisplayName(r.ContactID), r.TrustMatrix.Score(), r.Temperature, r.Mood)
		}
		if avg, ok := stats.DayTrustAverage(rec); ok {
			fmt.Fprintf(out, "  Average trust %.1f\n", avg)
		}
	}
	if f := rec.Finance; f != nil {
		fmt.Fprintln(out, "\nFINANCE")
		fmt.Fprintf(out, "  Revenue %s · expenses %s · cash %s\n",
			viz.FormatMoney(f.Revenue), viz.FormatMoney(f.OperatingExpenses), viz.FormatMoney(f.CashPosition))
		fmt.Fprintf(out, "  MRR %s · churn %.1f%% · tax reserve %s\n",
			viz.FormatMoney(f.MRR), f.Churn, viz.FormatMoney(f.TaxReserve))
		printNotes(out, f.Notes)
	}
	if p := rec.Productivity; p != nil {
		fmt.Fprintln(out, "\nPRODUCTIVITY")
		fmt.Fprintf(out, "  Focus %.1fh · deep work %.1fh · tasks %d · energy %d · stress %d\n",
			p.FocusHours, p.DeepWorkHours, p.TasksCompleted, p.EnergyLevel, p.StressLevel)
		for _, win := range p.MajorAccomplishments {
			fmt.Fprintf(out, "  ★ %s\n", win)
		}
		printNotes(out, p.Notes)
	}
	if g := rec.Gym; g != nil {
		done := "skipped"
		if g.Completed {
			done = "done"
		}
		fmt.Fprintln(out, "\nGYM")
		fmt.Fprintf(out, "  %s %dx%d @ %.1fkg (%s)\n", g.Type, g.Sets, g.Reps, g.Weight, done)
		printNotes(out, g.Notes)
	}
	if rec.Notes != nil && *rec.Notes != "" {
		fmt.Fprintln(out, "\nNOTES")
		fmt.Fprintf(out, "  %s\n", *rec.Notes)
	}
}

func printNotes(out io.Writer, notes string) {
	if notes != "" {
		fmt.Fprintf(out, "  %s\n", notes)
	}
}
