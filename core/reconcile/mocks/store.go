package mocks

import (
	"context"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/value"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.DocumentStore
type Store struct {
	mock.Mock
}

func (m *Store) GetDocuments(ctx context.Context, collection string) ([]reconcile.Document, error) {
	args := m.Called(ctx, collection)
	if docs, ok := args.Get(0).([]reconcile.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) UpdateDocument(ctx context.Context, path string, fields value.Fields, merge bool) error {
	args := m.Called(ctx, path, fields, merge)
	return args.Error(0)
}

func (m *Store) DeleteDocument(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// LinkedStore is a Store that also implements reconcile.Linker
type LinkedStore struct {
	Store
	URL string
}

func (m *LinkedStore) ViewerURL(collection string) string {
	return m.URL + collection
}

// Provider is a mock implementation of reconcile.StoreProvider
type Provider struct {
	mock.Mock
}

func (m *Provider) Open(ctx context.Context) (reconcile.DocumentStore, error) {
	args := m.Called(ctx)
	if store, ok := args.Get(0).(reconcile.DocumentStore); ok {
		return store, args.Error(1)
	}
	return nil, args.Error(1)
}
