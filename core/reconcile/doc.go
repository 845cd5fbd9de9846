// Package reconcile keeps a table and a remote document collection consistent.
//
// A pass runs through fixed phases with no retry or rollback between them:
//
//	Validating -> LocalPass -> RemotePass -> Reporting -> Done
//
// Validating reads the table once, derives the column schema, requires the
// reserved _id and _active columns and opens the document store. Nothing is
// written before validation succeeds.
//
// LocalPass walks the rows in table order. Each row is planned by a pure policy
// (see Decide) and causes at most one remote call:
//
//  1. empty _id                                 -> counted as missing ID, skipped
//  2. a mandatory cell is empty and _active=true -> counted as missing mandatory, skipped
//  3. _active is not exactly true                -> delete <collection>/<id>
//  4. otherwise                                  -> merge-upsert <collection>/<id>
//
// An inactive row with empty mandatory cells is still deleted: the mandatory
// check only applies to rows that would be written.
//
// RemotePass fetches the whole collection and appends a row for every document
// whose identity is not among the _id values read during validation. Documents
// carrying a field type the codec cannot render are skipped and counted.
//
// Reporting returns the counters and, when the store provides one, a link to the
// collection viewer. A pass that fails returns an error and no report.
//
// # Remote calls
//
// Every store call is retried with bounded exponential backoff (RetryPolicy).
// When retries are exhausted the pass aborts with a StoreError; writes already
// made are not undone.
//
// # Concurrency
//
// An Engine is safe to share, but two passes over the same table must not
// overlap. Guard serialises passes per table identity and lets concurrent
// callers share the running pass's report.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(provider, logger, reconcile.DefaultRetryPolicy())
//	report, err := engine.Run(ctx, csvTable, reconcile.Options{Direction: reconcile.DirectionBoth})
//	if err != nil {
//	    return err
//	}
//	for _, line := range report.Lines() {
//	    fmt.Println(line)
//	}
package reconcile
