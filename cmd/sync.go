package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"sheet-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pushOnly       bool
	pullOnly       bool
	dryRunSync     bool
	planOnly       bool
	yesConfirm     bool
	collectionFlag string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass between the table and the document store",
	Long: `Run one sync pass.

The local pass upserts active rows and deletes inactive ones; the remote pass
appends documents missing from the table.

Examples:
  # Full pass
  sheet-sync sync

  # Only update the store from the table
  sheet-sync sync --push-only

  # Only download missing documents
  sheet-sync sync --pull-only

  # Count what would change without writing anything
  sheet-sync sync --dry-run

  # List the planned row actions
  sheet-sync sync --plan`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&pushOnly, "push-only", false, "Only update the store from the table")
	syncCmd.Flags().BoolVar(&pullOnly, "pull-only", false, "Only download missing documents")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan and count without writing")
	syncCmd.Flags().BoolVar(&planOnly, "plan", false, "Print the planned row actions and exit")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Do not ask before deleting documents")
	syncCmd.Flags().StringVar(&collectionFlag, "collection", "", "Override the collection name")
	syncCmd.MarkFlagsMutuallyExclusive("push-only", "pull-only")

	RootCmd.AddCommand(syncCmd)
}

func directionFromFlags() reconcile.Direction {
	switch {
	case pushOnly:
		return reconcile.DirectionPush
	case pullOnly:
		return reconcile.DirectionPull
	default:
		return reconcile.DirectionBoth
	}
}

func runSync(cmd *cobra.Command, args []string) error {
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
	engine, err := rt.engine()
	if err != nil {
		return err
	}

	collection := collectionFlag
	if collection == "" {
		collection = rt.cfg.Sync.Collection
	}
	opts := reconcile.Options{Direction: directionFromFlags(), DryRun: dryRunSync, Collection: collection}

	if planOnly || (opts.Direction != reconcile.DirectionPull && !opts.DryRun) {
		actions, err := engine.Plan(ctx, tbl, opts)
		if err != nil {
			return err
		}
		if planOnly {
			printPlan(actions)
			return nil
		}

		deletes := reconcile.Summarize(actions).Deleted
		if deletes > 0 && !confirmDeletes(deletes) {
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	report, err := engine.Run(ctx, tbl, opts)
	if err != nil {
		return err
	}
	for _, line := range report.Lines() {
		fmt.Println(line)
	}
	rt.logger.Debug("Sync report", zap.String("collection", report.Collection), zap.Duration("duration", report.Duration))
	return nil
}

func printPlan(actions []reconcile.Action) {
	for _, a := range actions {
		switch a.Type {
		case reconcile.ActionSkipMissingMandatory:
			fmt.Printf("row %d: %s (%s) missing %s\n", a.Row, a.Type, a.ID, strings.Join(a.Missing, ", "))
		case reconcile.ActionSkipMissingID:
			fmt.Printf("row %d: %s\n", a.Row, a.Type)
		default:
			fmt.Printf("row %d: %s %s\n", a.Row, a.Type, a.Path)
		}
	}
	c := reconcile.Summarize(actions)
	fmt.Printf("%d to update, %d to delete, %d missing ID, %d missing mandatory fields\n",
		c.Updated, c.Deleted, c.MissingID, c.MissingMandatory)
}

// confirmDeletes prompts the user for confirmation or uses --yes flag.
func confirmDeletes(n int) bool {
	if yesConfirm {
		return true
	}

	fmt.Printf("%d documents will be deleted. Type 'yes' to continue: ", n)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
