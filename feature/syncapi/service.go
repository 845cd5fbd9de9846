package syncapi

import (
	"context"
	"sync"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/table"

	"go.uber.org/zap"
)

// Service runs passes and preparation for one table.
type Service struct {
	engine     *reconcile.Engine
	guard      *reconcile.Guard
	table      table.Table
	collection string
	logger     *zap.Logger

	// mu keeps preparation and passes from overlapping.
	mu sync.Mutex
}

// NewService creates a service. collection overrides the name derived from the table.
func NewService(engine *reconcile.Engine, guard *reconcile.Guard, t table.Table, collection string, logger *zap.Logger) *Service {
	return &Service{
		engine:     engine,
		guard:      guard,
		table:      t,
		collection: collection,
		logger:     logger,
	}
}

// Sync runs a pass, joining one already running for the table. shared reports
// whether the result came from another request's pass.
func (s *Service) Sync(ctx context.Context, direction reconcile.Direction, dryRun bool) (*reconcile.Report, bool, error) {
	opts := reconcile.Options{Direction: direction, DryRun: dryRun, Collection: s.collection}
	return s.guard.Do(ctx, s.key(opts), func(ctx context.Context) (*reconcile.Report, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.engine.Run(ctx, s.table, opts)
	})
}

// Last returns the most recent successful report of a full, non-dry-run pass.
func (s *Service) Last() (*reconcile.Report, bool) {
	return s.guard.Last(s.key(reconcile.Options{Direction: reconcile.DirectionBoth}))
}

// Prepare adds the reserved columns to the table.
func (s *Service) Prepare(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reconcile.PrepareTable(ctx, s.table)
}

// key separates passes with different options so a dry run never answers a real one.
func (s *Service) key(opts reconcile.Options) string {
	k := s.table.Name() + "|" + string(opts.Direction)
	if opts.DryRun {
		k += "|dry"
	}
	return k
}
