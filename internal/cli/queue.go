package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the pending-change queue",
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List changes waiting to be pushed",
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
		for _, c := range changes {
			fmt.Printf("%s  %-6s  %-6s  %s\n",
				c.Timestamp.Format("2006-01-02 15:04:05"), c.EntityType, c.Action, c.EntityID)
		}
		fmt.Printf("%d pending\n", len(changes))
		return nil
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all queued changes without pushing them",
	Long: `clear discards every queued change. Local edits are kept in the
local database but will not reach the remote store. Use this to recover
from an entry that can never be applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		return e.store.ClearChanges(cmd.Context())
	},
}

func init() {
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueClearCmd)
}
