// Package storage defines the transactional backend contract the
// store façade writes through: a read-write transaction for inserts,
// a read-only transaction for listing, both scoped by schema name.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/lensdb/lensdb/internal/hlc"
	"github.com/lensdb/lensdb/internal/value"
)

// Row is a storage-level record of a document's lifetime: when it was
// added and, if it has been deleted, when it was removed.
type Row struct {
	Schema  string
	ID      uuid.UUID
	Added   hlc.Clock
	Removed *hlc.Clock
}

// Field is a storage-level record of one field's value as of a
// particular write, tagged with the schema version that produced it
// so future readers can tell which lens chain to replay.
type Field struct {
	Schema        string
	RowID         uuid.UUID
	FieldName     string
	Timestamp     hlc.Clock
	SchemaVersion int
	Value         value.Value
}

// Storage opens transactions against the backing store.
type Storage interface {
	RWTransaction(ctx context.Context) (RWTransaction, error)
	ROTransaction(ctx context.Context) (ROTransaction, error)
}

// RWTransaction stages row and field writes for a single insert,
// committed or discarded as one unit.
type RWTransaction interface {
	StoreRow(ctx context.Context, row Row) error
	StoreField(ctx context.Context, field Field) error
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}

// ROTransaction enumerates rows and fields for reads.
type ROTransaction interface {
	ListRows(ctx context.Context, schema string) ([]Row, error)
	ListFields(ctx context.Context, rowID uuid.UUID) ([]Field, error)
}
