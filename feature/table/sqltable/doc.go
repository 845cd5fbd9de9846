// Package sqltable is a table stored in a SQL database through GORM.
//
// Every sheet lives in the shared sheet_rows table, one record per row:
//
//	sheet_rows(id, sheet, row_num, cells)
//
// row_num 1 holds the header. cells is a JSON array of the row's values
// (strings, numbers, booleans and nulls). Whole numbers load as int64 and other
// numbers as float64, so the codec applies the same truncation it applies to
// numeric cells from any other source.
//
// # Usage
//
//	db, _ := database.Connect(cfg.Database)
//	_ = sqltable.Migrate(db)
//	tbl, err := sqltable.Open(db, "products")
package sqltable
