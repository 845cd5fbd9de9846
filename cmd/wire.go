package cmd

import (
	"context"
	"fmt"

	"sheet-sync/core/config"
	"sheet-sync/core/database"
	"sheet-sync/core/logger"
	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage"
	"sheet-sync/core/table"
	"sheet-sync/feature/credentials"
	"sheet-sync/feature/docstore/firestore"
	"sheet-sync/feature/docstore/objectstore"
	"sheet-sync/feature/table/csvtable"
	"sheet-sync/feature/table/sqltable"

	"go.uber.org/zap"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: l}, nil
}

// openTable builds the configured table source.
func (r *runtime) openTable() (table.Table, error) {
	tc := r.cfg.Table
	switch tc.Source {
	case table.SourceCSV:
		return csvtable.New(tc.Path, tc.Name), nil

	case table.SourceSQL:
		if tc.Name == "" {
			return nil, fmt.Errorf("table name is required for the sql source")
		}
		db, err := database.Connect(r.cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := sqltable.Migrate(db); err != nil {
			return nil, err
		}
		return sqltable.Open(db, tc.Name)

	default:
		return nil, fmt.Errorf("unknown table source %q", tc.Source)
	}
}

// storeProvider builds the configured document store.
func (r *runtime) storeProvider() (reconcile.StoreProvider, error) {
	switch r.cfg.Sync.Backend {
	case reconcile.BackendFirestore:
		return firestore.NewProvider(credentials.NewProvider(r.cfg.Credentials), r.logger), nil

	case reconcile.BackendObjectStore:
		client, err := storage.NewClient(r.cfg.Storage)
		if err != nil {
			return nil, err
		}
		return objectstore.NewProvider(client, r.cfg.Storage, r.logger), nil

	default:
		return nil, fmt.Errorf("unknown sync backend %q", r.cfg.Sync.Backend)
	}
}

func (r *runtime) engine() (*reconcile.Engine, error) {
	provider, err := r.storeProvider()
	if err != nil {
		return nil, err
	}
	return reconcile.NewEngine(provider, r.logger, r.cfg.Sync.RetryPolicy()), nil
}

// unavailableProvider fails every Open with err, so a misconfigured store
// surfaces as ErrStoreUnavailable from the pass instead of at startup.
func unavailableProvider(err error) reconcile.StoreProvider {
	return reconcile.StoreProviderFunc(func(context.Context) (reconcile.DocumentStore, error) {
		return nil, err
	})
}
