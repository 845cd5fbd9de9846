// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// listen port, the API key protecting every route and the per-request deadline
// applied to sync and prepare requests.
package server
