// Package syncapi exposes sync passes over HTTP.
//
// Routes:
//
//	POST /sync?direction=both|push|pull&dry_run=true   run a pass, returns the report
//	GET  /sync/last                                    last successful report
//	POST /prepare                                      add the reserved columns
//	GET  /health                                       liveness
//
// Concurrent POST /sync requests for the same table share one pass. Failures are
// returned as {"error": "..."}: schema and empty-table errors map to 422, an
// unavailable document store to 502 and everything else to 500.
package syncapi
