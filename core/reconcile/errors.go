package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is matched by SchemaError.
	ErrSchema = errors.New("schema error")

	// ErrEmptyTable means the table has no header or no content rows.
	ErrEmptyTable = errors.New("table has no content")

	// ErrNoCollection means no collection name could be derived.
	ErrNoCollection = errors.New("collection name is empty")

	// ErrMissingIdentity marks a row skipped for an empty _id.
	ErrMissingIdentity = errors.New("row has no _id")

	// ErrMissingMandatory marks an active row skipped for an empty mandatory cell.
	ErrMissingMandatory = errors.New("active row is missing mandatory fields")

	// ErrPermanent marks a store failure that retrying cannot fix.
	ErrPermanent = errors.New("permanent store failure")

	// ErrStoreUnavailable is matched by StoreError.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// SchemaError reports reserved columns absent from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns %s; prepare the table to add them", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// StoreError reports a remote call that failed after retries, or a store that
// could not be opened.
type StoreError struct {
	Phase Phase
	Op    string
	Path  string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Phase, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Phase, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
