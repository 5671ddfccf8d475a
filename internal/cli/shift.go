package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/report"
	"github.com/atempo/attendance-tracker/internal/session"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Record and inspect shifts",
}

var shiftAddCmd = &cobra.Command{
	Use:   "add <business-id> <date>",
	Short: "Start a new shift on the given date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		userID, err := e.requireUser()
		if err != nil {
			return err
		}

		records := session.NewRecordSet(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		sh := records.AddShift(cmd.Context(), args[0], args[1])
		fmt.Println(sh.ID)
		return nil
	},
}

var shiftSetCmd = &cobra.Command{
	Use:   "set <shift-id> <check_in|check_out|note> <value>",
	Short: "Update a single field of an existing shift",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		userID, err := e.requireUser()
		if err != nil {
			return err
		}

		records := session.NewRecordSet(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		return records.UpdateShiftField(cmd.Context(), args[0], args[1], args[2])
	},
}

var shiftRmCmd = &cobra.Command{
	Use:   "rm <shift-id>",
	Short: "Delete a shift",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		userID, err := e.requireUser()
		if err != nil {
			return err
		}

		records := session.NewRecordSet(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		return records.DeleteShift(cmd.Context(), args[0])
	},
}

var shiftListCmd = &cobra.Command{
	Use:   "list <date>",
	Short: "List shifts recorded on a date",
	Long: `list refreshes the calendar month containing the date from the
remote store, then prints that date's shifts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		return listShifts(cmd.Context(), e, args[0], cmd.OutOrStdout())
	},
}

// listShifts refreshes the month around date and prints the day's shifts.
func listShifts(ctx context.Context, e *env, date string, w io.Writer) error {
	userID, err := e.requireUser()
	if err != nil {
		return err
	}

	records := session.NewRecordSet(ctx, e.store, e.client, noopNotifier{}, userID)
	if err := records.LoadMonth(ctx, date); err != nil {
		return err
	}
	for _, byBusiness := range records.ShiftsOn(date) {
		for _, sh := range byBusiness {
			fmt.Fprintf(w, "%s  %s  %s-%s  %.1fh  %s\n",
				sh.ID, sh.BusinessID, orDash(sh.CheckIn), orDash(sh.CheckOut),
				report.CalculateHours(sh.CheckIn, sh.CheckOut), sh.Note)
		}
	}
	return nil
}

// noopNotifier is used for one-shot commands where changes stay queued
// until an explicit 'attendance sync'.
type noopNotifier struct{}

func (noopNotifier) Notify() {}

func orDash(s string) string {
	if s == "" {
		return "--:--"
	}
	return s
}

func init() {
	shiftCmd.AddCommand(shiftAddCmd)
	shiftCmd.AddCommand(shiftSetCmd)
	shiftCmd.AddCommand(shiftRmCmd)
	shiftCmd.AddCommand(shiftListCmd)
}
