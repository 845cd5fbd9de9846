package firestore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/value"
	"sheet-sync/feature/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type setCall struct {
	path  string
	data  map[string]interface{}
	merge bool
}

type fakeBackend struct {
	docs      []rawDocument
	listErr   error
	createErr error
	setErr    error
	deleteErr error
	sets      []setCall
	creates   []string
	deletes   []string
	closed    bool
}

func (f *fakeBackend) list(ctx context.Context, collection string) ([]rawDocument, error) {
	return f.docs, f.listErr
}

func (f *fakeBackend) set(ctx context.Context, path string, data map[string]interface{}, merge bool) error {
	f.sets = append(f.sets, setCall{path, data, merge})
	return f.setErr
}

func (f *fakeBackend) create(ctx context.Context, path string, data map[string]interface{}) error {
	f.creates = append(f.creates, path)
	return f.createErr
}

func (f *fakeBackend) delete(ctx context.Context, path string) error {
	f.deletes = append(f.deletes, path)
	return f.deleteErr
}

func (f *fakeBackend) close() error {
	f.closed = true
	return nil
}

func newStore(b backend) *Store {
	return &Store{backend: b, projectID: "demo", logger: zap.NewNop()}
}

func TestStore_GetDocuments(t *testing.T) {
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b := &fakeBackend{docs: []rawDocument{{
		Name: "projects/demo/databases/(default)/documents/products/op-1",
		Data: map[string]interface{}{
			"name":    "Lamp",
			"stock":   int64(4),
			"active":  true,
			"notes":   nil,
			"tags":    []interface{}{"a", int64(2)},
			"price":   9.5,
			"updated": stamp,
			"dims":    map[string]interface{}{"w": int64(1)},
		},
	}}}

	docs, err := newStore(b).GetDocuments(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "op-1", docs[0].Identity())
	f := docs[0].Fields
	assert.Equal(t, value.String("Lamp"), f["name"])
	assert.Equal(t, value.Integer(4), f["stock"])
	assert.Equal(t, value.Boolean(true), f["active"])
	assert.Equal(t, value.Null{}, f["notes"])
	assert.Equal(t, value.Array{value.String("a"), value.Integer(2)}, f["tags"])
	assert.Equal(t, value.Unsupported{Tag: "doubleValue", Raw: 9.5}, f["price"])
	assert.Equal(t, "timestampValue", value.Tag(f["updated"]))
	assert.Equal(t, "mapValue", value.Tag(f["dims"]))
}

func TestStore_GetDocumentsError(t *testing.T) {
	_, err := newStore(&fakeBackend{listErr: errors.New("unavailable")}).GetDocuments(context.Background(), "products")
	assert.ErrorContains(t, err, "failed to list products")
}

func TestStore_UpdateDocument(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)

	err := s.UpdateDocument(context.Background(), "products/p1", value.Fields{
		"name":  value.String("Lamp"),
		"price": value.Integer(7),
		"tags":  value.Array{value.String("x")},
		"keep":  value.Unsupported{Tag: "doubleValue", Raw: 1.5},
	}, true)
	require.NoError(t, err)

	require.Len(t, b.sets, 1)
	assert.Equal(t, setCall{
		path:  "products/p1",
		data:  map[string]interface{}{"name": "Lamp", "price": int64(7), "tags": []interface{}{"x"}, "keep": 1.5},
		merge: true,
	}, b.sets[0])
}

func TestStore_UpdateDocumentEmptyMergeCreates(t *testing.T) {
	b := &fakeBackend{createErr: status.Error(codes.AlreadyExists, "exists")}

	err := newStore(b).UpdateDocument(context.Background(), "products/p1", value.Fields{}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"products/p1"}, b.creates)
	assert.Empty(t, b.sets)

	b.createErr = status.Error(codes.PermissionDenied, "denied")
	err = newStore(b).UpdateDocument(context.Background(), "products/p1", nil, true)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestStore_UpdateDocumentRejectsBareUnsupported(t *testing.T) {
	err := newStore(&fakeBackend{}).UpdateDocument(context.Background(), "products/p1",
		value.Fields{"x": value.Unsupported{Tag: "mapValue"}}, true)
	assert.ErrorIs(t, err, value.ErrUnsupportedFieldType)
}

func TestStore_DeleteAndClose(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)

	require.NoError(t, s.DeleteDocument(context.Background(), "products/p2"))
	assert.Equal(t, []string{"products/p2"}, b.deletes)

	require.NoError(t, s.Close())
	assert.True(t, b.closed)
}

func TestStore_ViewerURL(t *testing.T) {
	var linker reconcile.Linker = newStore(&fakeBackend{})
	assert.Equal(t, "https://console.firebase.google.com/project/demo/firestore/data/~2Fproducts", linker.ViewerURL("products"))
}

func TestProvider_IncompleteCredentials(t *testing.T) {
	p := NewProvider(credentials.NewProvider(credentials.Config{ProjectID: "demo"}), zap.NewNop())

	_, err := p.Open(context.Background())
	assert.ErrorIs(t, err, credentials.ErrIncomplete)
}

func TestStore_PermanentErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"invalid path", fmt.Errorf("%w: Products/a/b", ErrInvalidPath), true},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad field"), true},
		{"permission denied", status.Error(codes.PermissionDenied, "denied"), true},
		{"unauthenticated", status.Error(codes.Unauthenticated, "expired"), true},
		{"unavailable", status.Error(codes.Unavailable, "try again"), false},
		{"plain error", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(&fakeBackend{setErr: tt.err, deleteErr: tt.err})

			err := s.UpdateDocument(context.Background(), "Products/p1", value.Fields{"Name": value.String("a")}, true)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.permanent, errors.Is(err, reconcile.ErrPermanent))

			err = s.DeleteDocument(context.Background(), "Products/p1")
			assert.Equal(t, tt.permanent, errors.Is(err, reconcile.ErrPermanent))
		})
	}
}
