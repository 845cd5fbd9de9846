// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query) protecting
//     every route except the ones listed in Config.Skip.
//   - rayid: a request id for every incoming request, stored in the context
//     locals and echoed in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so every later log line carries the id.
package middleware
