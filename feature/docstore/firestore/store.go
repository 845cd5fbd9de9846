package firestore

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/value"
	"sheet-sync/feature/credentials"

	gfs "cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const consoleURL = "https://console.firebase.google.com/project/%s/firestore/data/~2F%s"

// ErrInvalidPath is returned for document paths Firestore rejects.
var ErrInvalidPath = errors.New("invalid document path")

// rawDocument is a document as read from the backend.
type rawDocument struct {
	Name string
	Data map[string]interface{}
}

// backend is the subset of the Firestore client used by Store.
type backend interface {
	list(ctx context.Context, collection string) ([]rawDocument, error)
	set(ctx context.Context, path string, data map[string]interface{}, merge bool) error
	create(ctx context.Context, path string, data map[string]interface{}) error
	delete(ctx context.Context, path string) error
	close() error
}

// Store is a reconcile.DocumentStore backed by Firestore.
type Store struct {
	backend   backend
	projectID string
	logger    *zap.Logger
}

// Provider opens a Store with credentials resolved per pass.
type Provider struct {
	creds  credentials.Provider
	logger *zap.Logger
}

// NewProvider creates a provider.
func NewProvider(creds credentials.Provider, logger *zap.Logger) *Provider {
	return &Provider{creds: creds, logger: logger}
}

// Open resolves the service account and connects.
func (p *Provider) Open(ctx context.Context) (reconcile.DocumentStore, error) {
	sa, err := p.creds.ServiceAccount(ctx)
	if err != nil {
		return nil, err
	}
	key, err := sa.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}

	client, err := gfs.NewClient(ctx, sa.ProjectID, option.WithCredentialsJSON(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	p.logger.Debug("Connected to Firestore", zap.String("project", sa.ProjectID))
	return &Store{backend: &clientBackend{client: client}, projectID: sa.ProjectID, logger: p.logger}, nil
}

// GetDocuments returns every document of the collection.
func (s *Store) GetDocuments(ctx context.Context, collection string) ([]reconcile.Document, error) {
	raw, err := s.backend.list(ctx, collection)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list %s: %w", collection, err))
	}
	docs := make([]reconcile.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, reconcile.Document{Name: r.Name, Fields: fieldsFromData(r.Data)})
	}
	return docs, nil
}

// UpdateDocument writes fields to path. A merge with no fields only makes sure
// the document exists.
func (s *Store) UpdateDocument(ctx context.Context, path string, fields value.Fields, merge bool) error {
	data, err := dataFromFields(fields)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if merge && len(data) == 0 {
		err := s.backend.create(ctx, path, data)
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return classify(err)
	}
	return classify(s.backend.set(ctx, path, data, merge))
}

// DeleteDocument removes the document at path. Missing documents are not an error.
func (s *Store) DeleteDocument(ctx context.Context, path string) error {
	return classify(s.backend.delete(ctx, path))
}

// classify wraps errors no retry can fix with reconcile.ErrPermanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidPath) {
		return fmt.Errorf("%w: %w", reconcile.ErrPermanent, err)
	}
	switch status.Code(err) {
	case codes.InvalidArgument, codes.PermissionDenied, codes.Unauthenticated, codes.FailedPrecondition:
		return fmt.Errorf("%w: %w", reconcile.ErrPermanent, err)
	}
	return err
}

// ViewerURL links to the collection in the Firebase console.
func (s *Store) ViewerURL(collection string) string {
	return fmt.Sprintf(consoleURL, url.PathEscape(s.projectID), url.PathEscape(collection))
}

// Close releases the client.
func (s *Store) Close() error {
	return s.backend.close()
}

type clientBackend struct {
	client *gfs.Client
}

func (b *clientBackend) ref(path string) (*gfs.DocumentRef, error) {
	ref := b.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return ref, nil
}

func (b *clientBackend) list(ctx context.Context, collection string) ([]rawDocument, error) {
	iter := b.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []rawDocument
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, rawDocument{Name: snap.Ref.Path, Data: snap.Data()})
	}
}

func (b *clientBackend) set(ctx context.Context, path string, data map[string]interface{}, merge bool) error {
	ref, err := b.ref(path)
	if err != nil {
		return err
	}
	if merge {
		_, err = ref.Set(ctx, data, gfs.MergeAll)
	} else {
		_, err = ref.Set(ctx, data)
	}
	return err
}

func (b *clientBackend) create(ctx context.Context, path string, data map[string]interface{}) error {
	ref, err := b.ref(path)
	if err != nil {
		return err
	}
	_, err = ref.Create(ctx, data)
	return err
}

func (b *clientBackend) delete(ctx context.Context, path string) error {
	ref, err := b.ref(path)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return err
}

func (b *clientBackend) close() error {
	return b.client.Close()
}
