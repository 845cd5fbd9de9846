package reconcile

import (
	"context"
	"strings"

	"sheet-sync/core/value"
)

// Document is a remote document. Name is the qualified path, whose last segment
// is the identity, e.g. "projects/p/databases/(default)/documents/products/op-1".
type Document struct {
	Name   string
	Fields value.Fields
}

// Identity returns the segment of Name after the last "/".
func (d Document) Identity() string {
	return d.Name[strings.LastIndex(d.Name, "/")+1:]
}

// DocumentPath joins a collection and an identity into a store path.
func DocumentPath(collection, id string) string {
	return collection + "/" + id
}

// DocumentStore is the remote side of a pass.
type DocumentStore interface {
	// GetDocuments returns every document of the collection.
	GetDocuments(ctx context.Context, collection string) ([]Document, error)

	// UpdateDocument writes fields to the document at path, creating it if needed.
	// With merge, fields not present in the payload are left untouched.
	UpdateDocument(ctx context.Context, path string, fields value.Fields, merge bool) error

	// DeleteDocument removes the document at path.
	DeleteDocument(ctx context.Context, path string) error
}

// StoreProvider resolves credentials and opens a DocumentStore.
// Failures surface as ErrStoreUnavailable before any remote write.
type StoreProvider interface {
	Open(ctx context.Context) (DocumentStore, error)
}

// StoreProviderFunc adapts a function to StoreProvider.
type StoreProviderFunc func(ctx context.Context) (DocumentStore, error)

// Open calls f.
func (f StoreProviderFunc) Open(ctx context.Context) (DocumentStore, error) {
	return f(ctx)
}

// Linker is implemented by stores that can link to a collection viewer.
type Linker interface {
	ViewerURL(collection string) string
}
