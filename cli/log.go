// ABOUTME: Daily section logging commands
// ABOUTME: opslog log sales|call|network|finance|productivity|gym|notes
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newLogCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Merge a section into a day's record",
		Long:  "Each subcommand submits one section. Only the flags you pass are written; everything else already logged for that day is kept.",
	}
	cmd.AddCommand(
		newLogSalesCommand(rt),
		newLogCallCommand(rt),
		newLogNetworkCommand(rt),
		newLogFinanceCommand(rt),
		newLogProductivityCommand(rt),
		newLogGymCommand(rt),
		newLogNotesCommand(rt),
	)
	return cmd
}

func newLogSalesCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Log leads, meetings, deals and revenue",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			patch := models.SalesPatch{
				Leads:       changedInt(cmd, "leads"),
				LeadQuality: changedInt(cmd, "lead-quality"),
				ColdCalls:   changedInt(cmd, "cold-calls"),
				Meetings:    changedInt(cmd, "meetings"),
				DealsClosed: changedInt(cmd, "deals"),
				Revenue:     changedFloat(cmd, "revenue"),
				DealStage:   changedString(cmd, "stage"),
				Notes:       changedString(cmd, "notes"),
			}
			sources, _ := cmd.Flags().GetStringSlice("source")
			for _, name := range sources {
				patch.Sources = append(patch.Sources, models.SalesSource{Name: name, Count: 1, Active: true})
			}
			return mergeAndReport(cmd, a, models.DayPatch{Sales: &patch})
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().Int("leads", 0, "Leads generated")
	cmd.Flags().Int("lead-quality", 0, "Lead quality 1-10")
	cmd.Flags().Int("cold-calls", 0, "Cold calls made")
	cmd.Flags().Int("meetings", 0, "Meetings held")
	cmd.Flags().Int("deals", 0, "Deals closed")
	cmd.Flags().Float64("revenue", 0, "Revenue (BWP)")
	cmd.Flags().String("stage", "", "Deal stage (Prospecting, Qualification, Proposal, Negotiation, Closed Won, Closed Lost)")
	cmd.Flags().StringSlice("source", nil, "Active lead source (repeatable)")
	cmd.Flags().String("notes", "", "Sales notes")
	return cmd
}

func newLogCallCommand(rt *Runtime) *cobra.Command {
	var (
		contact, company, callType, outcome, notes string
		duration                                   int
		objections                                 []string
	)
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Append a call to the day's call log",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			date := dateFlag(cmd, a)
			call := models.NewCallRecord(contact, company, callType, outcome, duration, objections, notes)
			rec, err := a.Store.LogCall(cmd.Context(), date, call)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Call logged for %s: %s (%s, %s)\n", date, call.Contact, call.Outcome, call.Duration)
			fmt.Fprintf(out, "  Calls today: %d, leads: %d\n", rec.Sales.ColdCalls, rec.Sales.Leads)
			return nil
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().StringVar(&contact, "contact", "", "Who was called")
	cmd.Flags().StringVar(&company, "company", "", "Their company")
	cmd.Flags().StringVar(&callType, "type", models.CallCold, "cold, warm, followup or client")
	cmd.Flags().StringVar(&outcome, "outcome", models.OutcomeVoicemail, "voicemail, not-interested, callback, qualified or meeting")
	cmd.Flags().IntVar(&duration, "duration", 0, "Call length in seconds")
	cmd.Flags().StringSliceVar(&objections, "objection", nil, "Objection raised (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Call notes")
	return cmd
}

func newLogNetworkCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Log reconnections and introductions",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			return mergeAndReport(cmd, a, models.DayPatch{Network: &models.NetworkPatch{
				Reconnections:         changedInt(cmd, "reconnections"),
				IntroductionsGiven:    changedInt(cmd, "intros-given"),
				IntroductionsReceived: changedInt(cmd, "intros-received"),
				Notes:                 changedString(cmd, "notes"),
			}})
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().Int("reconnections", 0, "Dormant contacts reconnected with")
	cmd.Flags().Int("intros-given", 0, "Introductions made for others")
	cmd.Flags().Int("intros-received", 0, "Introductions received")
	cmd.Flags().String("notes", "", "Networking notes")
	return cmd
}

func newLogFinanceCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Log revenue, expenses and cash",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			return mergeAndReport(cmd, a, models.DayPatch{Finance: &models.FinancePatch{
				Revenue:           changedFloat(cmd, "revenue"),
				OperatingExpenses: changedFloat(cmd, "expenses"),
				MRR:               changedFloat(cmd, "mrr"),
				Churn:             changedFloat(cmd, "churn"),
				TaxReserve:        changedFloat(cmd, "tax-reserve"),
				CashPosition:      changedFloat(cmd, "cash"),
				Notes:             changedString(cmd, "notes"),
			}})
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().Float64("revenue", 0, "Revenue (BWP)")
	cmd.Flags().Float64("expenses", 0, "Operating expenses (BWP)")
	cmd.Flags().Float64("mrr", 0, "Monthly recurring revenue")
	cmd.Flags().Float64("churn", 0, "Churn percent")
	cmd.Flags().Float64("tax-reserve", 0, "Tax reserve")
	cmd.Flags().Float64("cash", 0, "Cash position")
	cmd.Flags().String("notes", "", "Finance notes")
	return cmd
}

func newLogProductivityCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "productivity",
		Short: "Log focus hours, tasks, energy and stress",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			wins, _ := cmd.Flags().GetStringSlice("win")
			return mergeAndReport(cmd, a, models.DayPatch{Productivity: &models.ProductivityPatch{
				FocusHours:           changedFloat(cmd, "focus"),
				DeepWorkHours:        changedFloat(cmd, "deep-work"),
				TasksCompleted:       changedInt(cmd, "tasks"),
				EnergyLevel:          changedInt(cmd, "energy"),
				StressLevel:          changedInt(cmd, "stress"),
				MajorAccomplishments: wins,
				Notes:                changedString(cmd, "notes"),
			}})
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().Float64("focus", 0, "Focus hours")
	cmd.Flags().Float64("deep-work", 0, "Deep work hours")
	cmd.Flags().Int("tasks", 0, "Tasks completed")
	cmd.Flags().Int("energy", 0, "Energy 1-10")
	cmd.Flags().Int("stress", 0, "Stress 1-10")
	cmd.Flags().StringSlice("win", nil, "Major accomplishment (repeatable)")
	cmd.Flags().String("notes", "", "Productivity notes")
	return cmd
}

func newLogGymCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gym",
		Short: "Log a workout",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			return mergeAndReport(cmd, a, models.DayPatch{Gym: &models.GymPatch{
				Type:      changedString(cmd, "type"),
				Sets:      changedInt(cmd, "sets"),
				Reps:      changedInt(cmd, "reps"),
				Weight:    changedFloat(cmd, "weight"),
				Completed: changedBool(cmd, "completed"),
				Notes:     changedString(cmd, "notes"),
			}})
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().String("type", "", "Workout type")
	cmd.Flags().Int("sets", 0, "Sets")
	cmd.Flags().Int("reps", 0, "Reps per set")
	cmd.Flags().Float64("weight", 0, "Weight (kg)")
	cmd.Flags().Bool("completed", false, "Workout completed")
	cmd.Flags().String("notes", "", "Workout notes")
	return cmd
}

func newLogNotesCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes <text>",
		Short: "Set the day's notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			notes := strings.Join(args, " ")
			return mergeAndReport(cmd, a, models.DayPatch{Notes: &notes})
		}),
	}
	addDateFlag(cmd)
	return cmd
}

var errNothingToLog = errors.New("nothing to log: pass at least one flag")

func mergeAndReport(cmd *cobra.Command, a *app.App, patch models.DayPatch) error {
	if patch.Notes == nil && !anyChanged(cmd) {
		return errNothingToLog
	}
	date := dateFlag(cmd, a)
	rec, err := a.Store.MergeDay(cmd.Context(), date, patch)
	if err != nil {
		return err
	}
	printDaySummary(cmd.OutOrStdout(), date, rec)
	return nil
}

// anyChanged ignores --date, which selects the record rather than carrying data.
func anyChanged(cmd *cobra.Command) bool {
	changed := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name != "date" {
			changed = true
		}
	})
	return changed
}

func printDaySummary(out io.Writer, date string, rec models.DailyRecord) {
	cats := make([]string, len(rec.Categories))
	for i, c := range rec.Categories {
		cats[i] = string(c)
	}
	fmt.Fprintf(out, "✓ %s updated\n", date)
	fmt.Fprintf(out, "  Sections: %s\n", strings.Join(cats, ", "))
}
