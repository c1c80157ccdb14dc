// Package sqlite implements storage.Storage over SQLite, using the
// "libsql" driver for both local file databases and remote Turso
// replicas: a single DSN scheme covers "file:<path>" and
// "libsql://<host>?authToken=<token>".
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/lensdb/lensdb/internal/hlc"
	"github.com/lensdb/lensdb/internal/storage"
	"github.com/lensdb/lensdb/internal/value"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS rows (
	schema  TEXT NOT NULL,
	id      TEXT NOT NULL,
	added   INTEGER NOT NULL,
	removed INTEGER,
	PRIMARY KEY (schema, id)
);
CREATE INDEX IF NOT EXISTS idx_rows_schema ON rows(schema);

CREATE TABLE IF NOT EXISTS fields (
	schema         TEXT NOT NULL,
	row_id         TEXT NOT NULL,
	field_name     TEXT NOT NULL,
	timestamp      INTEGER NOT NULL,
	schema_version INTEGER NOT NULL,
	value          TEXT NOT NULL,
	PRIMARY KEY (schema, row_id, field_name, timestamp)
);
CREATE INDEX IF NOT EXISTS idx_fields_row_id ON fields(row_id);
`

// Storage is a storage.Storage backed by a *sql.DB opened against a
// local file or a remote Turso database.
type Storage struct {
	db *sql.DB
}

// Open connects to dsn (e.g. "file:lensdb.sqlite" or
// "libsql://my-db-org.turso.io?authToken=...") and ensures the rows
// and fields tables exist.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) RWTransaction(ctx context.Context) (storage.RWTransaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin rw transaction: %w", err)
	}
	return &rwTransaction{tx: tx}, nil
}

func (s *Storage) ROTransaction(ctx context.Context) (storage.ROTransaction, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin ro transaction: %w", err)
	}
	return &roTransaction{tx: tx}, nil
}

type rwTransaction struct {
	tx *sql.Tx
}

func (t *rwTransaction) StoreRow(ctx context.Context, row storage.Row) error {
	var removed any
	if row.Removed != nil {
		removed = clockToInt64(*row.Removed)
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO rows (schema, id, added, removed) VALUES (?, ?, ?, ?)`,
		row.Schema, row.ID.String(), clockToInt64(row.Added), removed,
	)
	if err != nil {
		return fmt.Errorf("sqlite: store row: %w", err)
	}
	return nil
}

func (t *rwTransaction) StoreField(ctx context.Context, field storage.Field) error {
	data, err := json.Marshal(field.Value)
	if err != nil {
		return fmt.Errorf("sqlite: marshal field value: %w", err)
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO fields (schema, row_id, field_name, timestamp, schema_version, value) VALUES (?, ?, ?, ?, ?, ?)`,
		field.Schema, field.RowID.String(), field.FieldName, clockToInt64(field.Timestamp), field.SchemaVersion, string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite: store field: %w", err)
	}
	return nil
}

func (t *rwTransaction) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (t *rwTransaction) Abort(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("sqlite: abort: %w", err)
	}
	return nil
}

type roTransaction struct {
	tx *sql.Tx
}

func (t *roTransaction) ListRows(ctx context.Context, schema string) ([]storage.Row, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT id, added, removed FROM rows WHERE schema = ?`, schema)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list rows: %w", err)
	}
	defer rows.Close()

	var out []storage.Row
	for rows.Next() {
		var idStr string
		var added int64
		var removed sql.NullInt64
		if err := rows.Scan(&idStr, &added, &removed); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse row id %q: %w", idStr, err)
		}

		row := storage.Row{Schema: schema, ID: id, Added: clockFromInt64(added)}
		if removed.Valid {
			c := clockFromInt64(removed.Int64)
			row.Removed = &c
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t *roTransaction) ListFields(ctx context.Context, rowID uuid.UUID) ([]storage.Field, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT schema, field_name, timestamp, schema_version, value FROM fields WHERE row_id = ?`,
		rowID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list fields: %w", err)
	}
	defer rows.Close()

	var out []storage.Field
	for rows.Next() {
		var schemaName, fieldName, rawValue string
		var timestamp int64
		var schemaVersion int
		if err := rows.Scan(&schemaName, &fieldName, &timestamp, &schemaVersion, &rawValue); err != nil {
			return nil, fmt.Errorf("sqlite: scan field: %w", err)
		}

		var v value.Value
		if err := json.Unmarshal([]byte(rawValue), &v); err != nil {
			return nil, fmt.Errorf("sqlite: unmarshal field value: %w", err)
		}

		out = append(out, storage.Field{
			Schema:        schemaName,
			RowID:         rowID,
			FieldName:     fieldName,
			Timestamp:     clockFromInt64(timestamp),
			SchemaVersion: schemaVersion,
			Value:         v,
		})
	}
	return out, rows.Err()
}

// clockToInt64/clockFromInt64 round-trip an hlc.Clock through SQLite's
// signed INTEGER column via a straight bit reinterpretation: a Clock
// whose wall-clock bit is set stores as a negative number, which is
// harmless since nothing but this package ever reads the column.
func clockToInt64(c hlc.Clock) int64 { return int64(uint64(c)) }

func clockFromInt64(i int64) hlc.Clock { return hlc.Clock(uint64(i)) }
