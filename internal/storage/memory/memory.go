// Package memory implements an in-process storage.Storage backed by
// plain slices, for tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lensdb/lensdb/internal/storage"
)

// Storage keeps rows and fields in memory, guarded by a mutex since
// Go has no borrow checker to make the single-writer invariant the
// Rust prototype relied on static.
type Storage struct {
	mu     sync.Mutex
	rows   []storage.Row
	fields []storage.Field
}

func New() *Storage { return &Storage{} }

func (s *Storage) RWTransaction(ctx context.Context) (storage.RWTransaction, error) {
	return &rwTransaction{storage: s}, nil
}

func (s *Storage) ROTransaction(ctx context.Context) (storage.ROTransaction, error) {
	return &roTransaction{storage: s}, nil
}

// rwTransaction buffers writes locally and only touches the shared
// slices on Commit, so an aborted transaction leaves the store
// untouched.
type rwTransaction struct {
	storage *Storage
	rows    []storage.Row
	fields  []storage.Field
}

func (t *rwTransaction) StoreRow(ctx context.Context, row storage.Row) error {
	t.rows = append(t.rows, row)
	return nil
}

func (t *rwTransaction) StoreField(ctx context.Context, field storage.Field) error {
	t.fields = append(t.fields, field)
	return nil
}

func (t *rwTransaction) Commit(ctx context.Context) error {
	t.storage.mu.Lock()
	defer t.storage.mu.Unlock()
	t.storage.rows = append(t.storage.rows, t.rows...)
	t.storage.fields = append(t.storage.fields, t.fields...)
	return nil
}

func (t *rwTransaction) Abort(ctx context.Context) error { return nil }

type roTransaction struct {
	storage *Storage
}

func (t *roTransaction) ListRows(ctx context.Context, schema string) ([]storage.Row, error) {
	t.storage.mu.Lock()
	defer t.storage.mu.Unlock()

	var out []storage.Row
	for _, r := range t.storage.rows {
		if r.Schema == schema {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *roTransaction) ListFields(ctx context.Context, rowID uuid.UUID) ([]storage.Field, error) {
	t.storage.mu.Lock()
	defer t.storage.mu.Unlock()

	var out []storage.Field
	for _, f := range t.storage.fields {
		if f.RowID == rowID {
			out = append(out, f)
		}
	}
	return out, nil
}
