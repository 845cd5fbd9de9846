package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"sheet-sync/core/convert"
	"sheet-sync/core/schema"
	"sheet-sync/core/table"
	"sheet-sync/core/value"

	"go.uber.org/zap"
)

// Engine runs sync passes against documents opened from a StoreProvider.
type Engine struct {
	stores StoreProvider
	logger *zap.Logger
	retry  RetryPolicy
}

// NewEngine creates an engine.
func NewEngine(stores StoreProvider, logger *zap.Logger, retry RetryPolicy) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{stores: stores, logger: logger, retry: retry}
}

// pass is the state established by validation.
type pass struct {
	grid       *table.Grid
	columns    []schema.Column
	collection string
	store      DocumentStore
	localIDs   map[string]struct{}
}

// Run executes one pass over t. On failure no report is returned; writes made
// before the failure are kept.
func (e *Engine) Run(ctx context.Context, t table.Table, opts Options) (*Report, error) {
	started := time.Now()
	if opts.Direction == "" {
		opts.Direction = DirectionBoth
	}

	log := e.logger.With(
		zap.String("table", t.Name()),
		zap.String("direction", string(opts.Direction)),
		zap.Bool("dry_run", opts.DryRun),
	)
	log.Debug("Validating table", zap.String("phase", string(PhaseValidating)))

	p, err := e.validate(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	if closer, ok := p.store.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				log.Warn("Failed to close document store", zap.Error(cerr))
			}
		}()
	}
	log = log.With(zap.String("collection", p.collection))

	var counters SyncCounters
	if opts.Direction.pushes() {
		log.Debug("Running local pass", zap.Int("rows", len(p.grid.Rows)))
		if err := e.runLocal(ctx, p, opts.DryRun, &counters, log); err != nil {
			return nil, err
		}
	}
	if opts.Direction.pulls() {
		log.Debug("Running remote pass")
		if err := e.runRemote(ctx, t, p, opts.DryRun, &counters, log); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Collection: p.collection,
		Direction:  opts.Direction,
		DryRun:     opts.DryRun,
		Counters:   counters,
		Duration:   time.Since(started),
	}
	if linker, ok := p.store.(Linker); ok {
		report.ViewerURL = linker.ViewerURL(p.collection)
	}

	log.Info("Sync completed",
		zap.Int("updated", counters.Updated),
		zap.Int("deleted", counters.Deleted),
		zap.Int("added", counters.Added),
		zap.Int("missing_id", counters.MissingID),
		zap.Int("missing_mandatory", counters.MissingMandatory),
		zap.Int("unsupported", counters.Unsupported),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// Plan validates t and returns the local pass it would perform, without
// opening the store.
func (e *Engine) Plan(ctx context.Context, t table.Table, opts Options) ([]Action, error) {
	grid, columns, collection, err := readTable(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	return PlanLocal(grid.Rows, columns, collection), nil
}

func (e *Engine) validate(ctx context.Context, t table.Table, opts Options) (*pass, error) {
	grid, columns, collection, err := readTable(ctx, t, opts)
	if err != nil {
		return nil, err
	}

	store, err := e.stores.Open(ctx)
	if err != nil {
		return nil, &StoreError{Phase: PhaseValidating, Op: "open", Err: err}
	}

	return &pass{
		grid:       grid,
		columns:    columns,
		collection: collection,
		store:      store,
		localIDs:   LocalIDs(grid.Rows, columns),
	}, nil
}

func readTable(ctx context.Context, t table.Table, opts Options) (*table.Grid, []schema.Column, string, error) {
	grid, err := t.Read(ctx)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read table %s: %w", t.Name(), err)
	}
	if grid == nil || len(grid.Header) == 0 || len(grid.Rows) == 0 {
		return nil, nil, "", ErrEmptyTable
	}

	columns := schema.DeriveColumns(grid.Header)
	if len(columns) == 0 {
		return nil, nil, "", ErrEmptyTable
	}
	if missing := schema.MissingReserved(columns); len(missing) > 0 {
		return nil, nil, "", &SchemaError{Missing: missing}
	}

	collection := opts.Collection
	if collection == "" {
		collection = schema.Normalize(t.Name())
	}
	if collection == "" {
		return nil, nil, "", ErrNoCollection
	}
	return grid, columns, collection, nil
}

func (e *Engine) runLocal(ctx context.Context, p *pass, dryRun bool, counters *SyncCounters, log *zap.Logger) error {
	for _, action := range PlanLocal(p.grid.Rows, p.columns, p.collection) {
		switch action.Type {
		case ActionSkipMissingID:
			counters.MissingID++
			log.Debug("Skipping row", zap.Int("row", action.Row), zap.Error(ErrMissingIdentity))

		case ActionSkipMissingMandatory:
			counters.MissingMandatory++
			log.Debug("Skipping row",
				zap.Int("row", action.Row),
				zap.String("id", action.ID),
				zap.Strings("missing", action.Missing),
				zap.Error(ErrMissingMandatory),
			)

		case ActionDelete:
			if !dryRun {
				err := e.retry.do(ctx, log, "delete", action.Path, func(ctx context.Context) error {
					return p.store.DeleteDocument(ctx, action.Path)
				})
				if err != nil {
					return &StoreError{Phase: PhaseLocal, Op: "delete", Path: action.Path, Err: err}
				}
			}
			counters.Deleted++

		case ActionUpsert:
			if !dryRun {
				err := e.retry.do(ctx, log, "update", action.Path, func(ctx context.Context) error {
					return p.store.UpdateDocument(ctx, action.Path, action.Fields, true)
				})
				if err != nil {
					return &StoreError{Phase: PhaseLocal, Op: "update", Path: action.Path, Err: err}
				}
			}
			counters.Updated++
		}
	}
	return nil
}

func (e *Engine) runRemote(ctx context.Context, t table.Table, p *pass, dryRun bool, counters *SyncCounters, log *zap.Logger) error {
	var docs []Document
	err := e.retry.do(ctx, log, "list", p.collection, func(ctx context.Context) error {
		var err error
		docs, err = p.store.GetDocuments(ctx, p.collection)
		return err
	})
	if err != nil {
		return &StoreError{Phase: PhaseRemote, Op: "list", Path: p.collection, Err: err}
	}

	for _, doc := range docs {
		id := doc.Identity()
		if id == "" {
			log.Warn("Skipping document without identity", zap.String("name", doc.Name))
			continue
		}
		if _, known := p.localIDs[id]; known {
			continue
		}

		row, err := convert.DocumentToRow(id, doc.Fields, p.columns)
		if err != nil {
			if errors.Is(err, value.ErrUnsupportedFieldType) {
				counters.Unsupported++
				log.Warn("Skipping document", zap.String("id", id), zap.Error(err))
				continue
			}
			return fmt.Errorf("failed to convert document %s: %w", id, err)
		}

		if !dryRun {
			if err := t.AppendRow(ctx, row); err != nil {
				return fmt.Errorf("failed to append document %s to %s: %w", id, t.Name(), err)
			}
		}
		counters.Added++
	}
	return nil
}
