// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application's
// configuration. SQL-hosted tables (feature/table/sqltable) use it to reach the
// sheet_rows table.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for either dialect, which lets callers
// verify that an existing table has the layout they expect before using it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "sheet_rows")
package database
