package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage"
	"sheet-sync/core/value"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const extension = ".json"

// document is the stored object layout.
type document struct {
	Name   string          `json:"name"`
	Fields json.RawMessage `json:"fields"`
}

// Store is a reconcile.DocumentStore over a bucket.
type Store struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewStore creates a store over an existing bucket.
func NewStore(client storage.Client, bucket string, logger *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, logger: logger}
}

// Provider opens a Store after checking the bucket, creating it when missing.
type Provider struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewProvider creates a provider.
func NewProvider(client storage.Client, cfg storage.Config, logger *zap.Logger) *Provider {
	return &Provider{client: client, cfg: cfg, logger: logger}
}

// Open verifies access to the bucket.
func (p *Provider) Open(ctx context.Context) (reconcile.DocumentStore, error) {
	exists, err := p.client.BucketExists(ctx, p.cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", p.cfg.Bucket, err)
	}
	if !exists {
		p.logger.Info("Creating bucket", zap.String("bucket", p.cfg.Bucket))
		if err := p.client.MakeBucket(ctx, p.cfg.Bucket, minio.MakeBucketOptions{Region: p.cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", p.cfg.Bucket, err)
		}
	}
	return NewStore(p.client, p.cfg.Bucket, p.logger), nil
}

func objectKey(path string) string {
	return path + extension
}

// GetDocuments reads every document directly under the collection prefix.
func (s *Store) GetDocuments(ctx context.Context, collection string) ([]reconcile.Document, error) {
	prefix := collection + "/"
	var docs []reconcile.Document

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		if !strings.HasSuffix(rest, extension) || strings.Contains(rest, "/") {
			continue
		}

		path := strings.TrimSuffix(obj.Key, extension)
		fields, err := s.read(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, reconcile.Document{Name: path, Fields: fields})
	}
	return docs, nil
}

// UpdateDocument writes fields to path. With merge, fields already stored and
// absent from the payload are kept.
func (s *Store) UpdateDocument(ctx context.Context, path string, fields value.Fields, merge bool) error {
	key := objectKey(path)
	out := make(value.Fields, len(fields))

	if merge {
		existing, err := s.read(ctx, key)
		switch {
		case storage.IsNotFound(err):
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", path, err)
		default:
			for k, v := range existing {
				out[k] = v
			}
		}
	}
	for k, v := range fields {
		out[k] = v
	}

	encoded, err := value.MarshalFields(out)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data, err := json.Marshal(document{Name: path, Fields: encoded})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DeleteDocument removes the object for path.
func (s *Store) DeleteDocument(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey(path), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// ViewerURL points at the collection prefix.
func (s *Store) ViewerURL(collection string) string {
	return fmt.Sprintf("s3://%s/%s/", s.bucket, collection)
}

// read returns the fields of the object at key. Missing objects yield an error
// matched by storage.IsNotFound.
func (s *Store) read(ctx context.Context, key string) (value.Fields, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	if len(doc.Fields) == 0 {
		return value.Fields{}, nil
	}
	return value.UnmarshalFields(doc.Fields)
}
