// Package utils provides small helpers for working with raw table cells.
// It covers numeric coercion, display rendering and emptiness checks shared by
// the codec, the schema and the reconcile engine.
package utils
