package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue depth and last successful sync",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		changes, err := e.store.PendingChanges(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("user:      %s\n", orNone(e.cfg.UserID))
		fmt.Printf("remote:    %s\n", orNone(e.cfg.Remote.BaseURL))
		fmt.Printf("pending:   %d\n", len(changes))

		last := e.store.LastSync(cmd.Context())
		if last.IsZero() {
			fmt.Println("last sync: never")
		} else {
			fmt.Printf("last sync: %s\n", last.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
