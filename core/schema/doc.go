// Package schema derives column semantics from a table's header row.
//
// Header markers:
//   - a trailing "*" marks a mandatory column (must be filled on active rows)
//   - a trailing "~" excludes the column from the remote document
//
// Labels are normalised: spaces become "_" and everything other than ASCII
// letters, digits, "_" and "-" is stripped, so markers never survive in a label.
// Two reserved labels drive reconciliation: "_id" (document identity) and
// "_active" (whether the row should exist remotely).
package schema
