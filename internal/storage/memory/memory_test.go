package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lensdb/lensdb/internal/hlc"
	"github.com/lensdb/lensdb/internal/storage"
	"github.com/lensdb/lensdb/internal/value"
)

func TestStorage_CommitMakesWritesVisible(t *testing.T) {
	ctx := context.Background()
	s := New()

	rowID := uuid.New()
	rw, err := s.RWTransaction(ctx)
	if err != nil {
		t.Fatalf("RWTransaction: %v", err)
	}

	row := storage.Row{Schema: "people", ID: rowID, Added: hlc.NewAt(1, 0, 1)}
	if err := rw.StoreRow(ctx, row); err != nil {
		t.Fatalf("StoreRow: %v", err)
	}
	field := storage.Field{Schema: "people", RowID: rowID, FieldName: "name", Timestamp: hlc.NewAt(1, 0, 1), SchemaVersion: 1, Value: value.String("ok")}
	if err := rw.StoreField(ctx, field); err != nil {
		t.Fatalf("StoreField: %v", err)
	}

	if err := rw.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	ro, err := s.ROTransaction(ctx)
	if err != nil {
		t.Fatalf("ROTransaction: %v", err)
	}

	rows, err := ro.ListRows(ctx, "people")
	if err != nil || len(rows) != 1 || rows[0].ID != rowID {
		t.Fatalf("ListRows = %v, %v", rows, err)
	}

	fields, err := ro.ListFields(ctx, rowID)
	if err != nil || len(fields) != 1 || !fields[0].Value.Equal(value.String("ok")) {
		t.Fatalf("ListFields = %v, %v", fields, err)
	}
}

func TestStorage_AbortDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	rw, err := s.RWTransaction(ctx)
	if err != nil {
		t.Fatalf("RWTransaction: %v", err)
	}
	if err := rw.StoreRow(ctx, storage.Row{Schema: "people", ID: uuid.New(), Added: hlc.NewAt(1, 0, 1)}); err != nil {
		t.Fatalf("StoreRow: %v", err)
	}
	if err := rw.Abort(ctx); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	ro, _ := s.ROTransaction(ctx)
	rows, err := ro.ListRows(ctx, "people")
	if err != nil || len(rows) != 0 {
		t.Fatalf("ListRows after abort = %v, %v, want empty", rows, err)
	}
}
