// Package store implements the façade above the migration and
// document engines: it maps a schema name at its pinned version to a
// flat field schema, validates inserted data against it, and records
// rows and per-field writes through a storage.Storage backend.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lensdb/lensdb/internal/hlc"
	"github.com/lensdb/lensdb/internal/migrator"
	"github.com/lensdb/lensdb/internal/obs"
	"github.com/lensdb/lensdb/internal/schema"
	"github.com/lensdb/lensdb/internal/storage"
	"github.com/lensdb/lensdb/internal/value"
)

// SchemaNotFoundError reports an insert or list against a schema name
// with no pinned version.
type SchemaNotFoundError struct {
	Schema string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("store: schema %q has no pinned version", e.Schema)
}

// ValidationError reports that a field's value failed its type's
// validation during insert; the transaction that produced it is
// aborted and nothing is written.
type ValidationError struct {
	Field string
	Inner error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: field %q failed validation: %s", e.Field, e.Inner)
}

func (e *ValidationError) Unwrap() error { return e.Inner }

// StorageError wraps a failure from the storage adapter encountered
// while servicing Insert or List.
type StorageError struct {
	Inner error
}

func (e *StorageError) Error() string { return fmt.Sprintf("store: storage error: %s", e.Inner) }
func (e *StorageError) Unwrap() error { return e.Inner }

// storageErr logs err at Error level and wraps it, used at every
// storage-adapter boundary so a failing backend never fails silently.
func storageErr(op string, err error) *StorageError {
	obs.Logger.Error("storage adapter call failed", "op", op, "error", err)
	return &StorageError{Inner: err}
}

// LockPoisonedError reports that a prior Insert panicked; the store is
// unusable afterward,
// the same way a poisoned Rust mutex taints every later lock
// acquisition.
type LockPoisonedError struct{}

func (e *LockPoisonedError) Error() string {
	return "store: lock poisoned by a prior panic, store is no longer usable"
}

// Store is the façade: a migration graph, a pinned version per schema
// name, a node-local clock, and a storage backend. mu guards both the
// clock tick and schemaCache the same way the Rust prototype's Hub
// guards a shared document: writers hold the lock only for the
// critical section, and a panic anywhere inside Insert poisons the
// store for every later caller rather than leaving it silently half-updated.
type Store struct {
	migrator *migrator.Migrator
	backend  storage.Storage
	pinned   map[string]int
	node     uint16

	mu          sync.Mutex
	clock       hlc.Clock
	schemaCache map[string]*schema.Schema
	poisoned    bool
}

// New builds a Store over backend, migrating with m, tagging every
// clock tick with node, pinned to the given schema-name -> version
// map (the live version each Insert/List call uses).
func New(m *migrator.Migrator, backend storage.Storage, node uint16, pinned map[string]int) *Store {
	p := make(map[string]int, len(pinned))
	for k, v := range pinned {
		p[k] = v
	}
	return &Store{
		migrator:    m,
		backend:     backend,
		pinned:      p,
		node:        hlc.Zero().SetNode(node).Node(),
		clock:       hlc.Zero().SetNode(node),
		schemaCache: map[string]*schema.Schema{},
	}
}

func (s *Store) next() hlc.Clock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Next(uint32(time.Now().Unix()))
	return s.clock
}

// fieldSchema resolves name's pinned version to a flat field schema,
// caching the result per schema name so repeated inserts don't refold
// the migration path every time.
func (s *Store) fieldSchema(name string) (*schema.Schema, error) {
	version, ok := s.pinned[name]
	if !ok {
		obs.Logger.Warn("insert or list against unpinned schema", "schema", name)
		return nil, &SchemaNotFoundError{Schema: name}
	}

	s.mu.Lock()
	if s.poisoned {
		s.mu.Unlock()
		return nil, &LockPoisonedError{}
	}
	if cached, ok := s.schemaCache[name]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	jtdSchema, err := s.migrator.Schema(name, version)
	if err != nil {
		return nil, fmt.Errorf("store: resolving schema %q@%d: %w", name, version, err)
	}
	fields, err := schema.FromJTD(jtdSchema)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.schemaCache[name] = fields
	s.mu.Unlock()
	return fields, nil
}

// Insert validates data against schemaName's pinned schema, writes one
// Field record per present, validated field plus a Row record, and
// commits them as a single transaction. It returns the newly
// allocated row id.
func (s *Store) Insert(ctx context.Context, schemaName string, data map[string]value.Value) (id uuid.UUID, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.poisoned = true
			s.mu.Unlock()
			id, err = uuid.Nil, fmt.Errorf("store: insert panicked: %v", r)
		}
	}()
	return s.insert(ctx, schemaName, data)
}

func (s *Store) insert(ctx context.Context, schemaName string, data map[string]value.Value) (uuid.UUID, error) {
	fields, err := s.fieldSchema(schemaName)
	if err != nil {
		return uuid.Nil, err
	}
	version := s.pinned[schemaName]

	tx, err := s.backend.RWTransaction(ctx)
	if err != nil {
		return uuid.Nil, storageErr("RWTransaction", err)
	}

	rowID, err := uuid.NewV7()
	if err != nil {
		_ = tx.Abort(ctx)
		return uuid.Nil, storageErr("uuid.NewV7", err)
	}

	for _, name := range fields.Names() {
		v, present := data[name]
		if !present {
			continue
		}

		field, _ := fields.Get(name)
		if err := field.Type.Validate(v); err != nil {
			_ = tx.Abort(ctx)
			return uuid.Nil, &ValidationError{Field: name, Inner: err}
		}

		record := storage.Field{
			Schema:        schemaName,
			RowID:         rowID,
			FieldName:     name,
			Timestamp:     s.next(),
			SchemaVersion: version,
			Value:         v,
		}
		if err := tx.StoreField(ctx, record); err != nil {
			_ = tx.Abort(ctx)
			return uuid.Nil, storageErr("StoreField", err)
		}
	}

	row := storage.Row{Schema: schemaName, ID: rowID, Added: s.next()}
	if err := tx.StoreRow(ctx, row); err != nil {
		_ = tx.Abort(ctx)
		return uuid.Nil, storageErr("StoreRow", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, storageErr("Commit", err)
	}
	return rowID, nil
}

// List enumerates every live row of schemaName and folds its fields
// into a name -> value map, the later timestamp winning ties broken
// by HLC ordering.
func (s *Store) List(ctx context.Context, schemaName string) ([]map[string]value.Value, error) {
	if _, ok := s.pinned[schemaName]; !ok {
		obs.Logger.Warn("insert or list against unpinned schema", "schema", schemaName)
		return nil, &SchemaNotFoundError{Schema: schemaName}
	}

	s.mu.Lock()
	poisoned := s.poisoned
	s.mu.Unlock()
	if poisoned {
		return nil, &LockPoisonedError{}
	}

	tx, err := s.backend.ROTransaction(ctx)
	if err != nil {
		return nil, storageErr("ROTransaction", err)
	}

	rows, err := tx.ListRows(ctx, schemaName)
	if err != nil {
		return nil, storageErr("ListRows", err)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Added.Less(rows[j].Added) })

	out := make([]map[string]value.Value, 0, len(rows))
	for _, row := range rows {
		if row.Removed != nil && row.Added.Less(*row.Removed) {
			continue
		}

		fields, err := tx.ListFields(ctx, row.ID)
		if err != nil {
			return nil, storageErr("ListFields", err)
		}

		winning := map[string]storage.Field{}
		for _, f := range fields {
			current, ok := winning[f.FieldName]
			if !ok || current.Timestamp.Less(f.Timestamp) {
				winning[f.FieldName] = f
			}
		}

		values := make(map[string]value.Value, len(winning))
		for name, f := range winning {
			values[name] = f.Value
		}
		out = append(out, values)
	}
	return out, nil
}
