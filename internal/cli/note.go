package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/session"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Record and inspect daily notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <date> [text]",
	Short: "Add a note on the given date (YYYY-MM-DD)",
	Args:  cobra.RangeArgs(1, 2),
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

		notes := session.NewNoteBook(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		n := notes.AddNote(cmd.Context(), args[0])
		if len(args) == 2 {
			if err := notes.UpdateNoteText(cmd.Context(), n.ID, args[1]); err != nil {
				return err
			}
		}
		fmt.Println(n.ID)
		return nil
	},
}

var noteSetTextCmd = &cobra.Command{
	Use:   "set-text <note-id> <text>",
	Short: "Replace the text of a note",
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

		notes := session.NewNoteBook(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		return notes.UpdateNoteText(cmd.Context(), args[0], args[1])
	},
}

var noteSetPriorityCmd = &cobra.Command{
	Use:   "set-priority <note-id> <vacation|low|medium|high>",
	Short: "Change the priority of a note",
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

		notes := session.NewNoteBook(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		return notes.UpdateNotePriority(cmd.Context(), args[0], model.Priority(args[1]))
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
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

		notes := session.NewNoteBook(cmd.Context(), e.store, e.client, noopNotifier{}, userID)
		return notes.DeleteNote(cmd.Context(), args[0])
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list <date>",
	Short: "List notes on a date",
	Long: `list refreshes the calendar month containing the date from the
remote store, then prints that date's notes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		return listNotes(cmd.Context(), e, args[0], cmd.OutOrStdout())
	},
}

// listNotes refreshes the month around date and prints the day's notes.
func listNotes(ctx context.Context, e *env, date string, w io.Writer) error {
	userID, err := e.requireUser()
	if err != nil {
		return err
	}

	notes := session.NewNoteBook(ctx, e.store, e.client, noopNotifier{}, userID)
	if err := notes.LoadMonth(ctx, date); err != nil {
		return err
	}
	for _, n := range notes.NotesOn(date) {
		priority := string(n.Priority)
		if priority == "" {
			priority = "none"
		}
		fmt.Fprintf(w, "%s  [%s]  %s\n", n.ID, priority, n.Text)
	}
	return nil
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteSetTextCmd)
	noteCmd.AddCommand(noteSetPriorityCmd)
	noteCmd.AddCommand(noteRmCmd)
	noteCmd.AddCommand(noteListCmd)
}
