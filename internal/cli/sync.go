package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/syncer"
)

var syncWatch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued changes to the remote store",
	Long: `sync drains the pending-change queue against the remote store.
Entries that fail to apply stay queued for the next run. With --watch
the process keeps running and drains on a fixed interval until
interrupted.`,
	Args: cobra.NoArgs,
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

		rec := syncer.New(e.store, e.client, userID,
			time.Duration(e.cfg.Sync.DebounceSec)*time.Second,
			time.Duration(e.cfg.Sync.IntervalSec)*time.Second,
			nil)

		if syncWatch {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rec.Start()
			log.Info("watching for changes", "interval", e.cfg.Sync.IntervalSec)
			<-ctx.Done()
			rec.Stop()
			return nil
		}

		stats, err := rec.Drain(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("applied %d, failed %d\n", stats.Applied, stats.Failed)
		if stats.Failed > 0 {
			return fmt.Errorf("%d change(s) could not be applied; they remain queued", stats.Failed)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "Keep running and sync periodically")
}
