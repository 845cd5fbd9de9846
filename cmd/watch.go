package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheet-sync/core/reconcile"
	"sheet-sync/feature/table/csvtable"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a sync pass whenever the CSV table changes",
	Long: `Watch the CSV table and run a full pass after each change.

Writes are debounced (sync.watch_debounce_millis) so an editor saving several
times in a row triggers a single pass. A pass runs once at startup.`,
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	tbl, err := rt.openTable()
	if err != nil {
		return fmt.Errorf("failed to open table: %w", err)
	}
	csv, ok := tbl.(*csvtable.Table)
	if !ok {
		return fmt.Errorf("watch needs the csv table source, got %q", rt.cfg.Table.Source)
	}

	engine, err := rt.engine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard := reconcile.NewGuard()
	opts := reconcile.Options{Direction: reconcile.DirectionBoth, Collection: rt.cfg.Sync.Collection}
	runPass := func(ctx context.Context) {
		report, _, err := guard.Do(ctx, csv.Path(), func(ctx context.Context) (*reconcile.Report, error) {
			return engine.Run(ctx, csv, opts)
		})
		if err != nil {
			rt.logger.Error("Sync failed", zap.Error(err))
			return
		}
		for _, line := range report.Lines() {
			fmt.Println(line)
		}
	}

	runPass(ctx)

	debounce := time.Duration(rt.cfg.Sync.WatchDebounceMillis) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	rt.logger.Info("Watching table", zap.String("path", csv.Path()), zap.Duration("debounce", debounce))

	// Appending remote documents writes the file too; the follow-up pass finds
	// nothing new and stops the cycle.
	return csv.Watch(ctx, debounce, rt.logger, runPass)
}
