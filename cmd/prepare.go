package cmd

import (
	"context"
	"fmt"
	"strings"

	"sheet-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Add the _active and _id columns to the table",
	Long: `Put _active in the first column and _id in the second.

Missing columns are inserted empty; an existing _id column is moved together
with its values. Other columns keep their order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		tbl, err := rt.openTable()
		if err != nil {
			return fmt.Errorf("failed to open table: %w", err)
		}

		header, err := reconcile.PrepareTable(ctx, tbl)
		if err != nil {
			return err
		}

		rt.logger.Info("Table prepared", zap.String("table", tbl.Name()))
		fmt.Println(strings.Join(header, ","))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(prepareCmd)
}
