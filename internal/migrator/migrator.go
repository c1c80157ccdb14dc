// Package migrator implements the migration graph: per schema name, a
// chain of versions connected by lens sequences, navigable forward and
// backward, folded into the JTD schema at any registered version.
package migrator

import (
	"errors"
	"fmt"

	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/lens"
)

// ErrZeroVersion is returned by AddMigration: version 0 is reserved
// for the empty schema and can never be authored.
var ErrZeroVersion = errors.New("migrator: version 0 is reserved for the empty schema")

// Migration is a versioned lens sequence advancing schema from
// version-1 to version. Its JSON shape is the migration file format:
// one file per schema/version, `{"schema","version","ops":[lens,...]}`.
type Migration struct {
	Schema  string      `json:"schema"`
	Version int         `json:"version"`
	Ops     []lens.Lens `json:"ops"`
}

type edge struct {
	from, to int
}

// Migrator holds, per schema name, a doubly-linked chain of versions:
// for every migration at version v it stores both the (v-1 -> v) and
// (v -> v-1) edges, so any two registered versions of a schema are
// reachable in either direction.
type Migrator struct {
	paths map[string]map[edge][]lens.Lens
}

func New() *Migrator {
	return &Migrator{paths: map[string]map[edge][]lens.Lens{}}
}

// AddMigration registers both the forward and reverse edge for
// migration.
func (m *Migrator) AddMigration(migration Migration) error {
	if migration.Version == 0 {
		return ErrZeroVersion
	}

	entry, ok := m.paths[migration.Schema]
	if !ok {
		entry = map[edge][]lens.Lens{}
		m.paths[migration.Schema] = entry
	}

	reversed := make([]lens.Lens, len(migration.Ops))
	for i, op := range migration.Ops {
		reversed[len(migration.Ops)-1-i] = op.Reversed()
	}

	entry[edge{migration.Version, migration.Version - 1}] = reversed
	entry[edge{migration.Version - 1, migration.Version}] = migration.Ops
	return nil
}

type direction int

const (
	directionUp direction = iota
	directionDown
)

func (d direction) tick(n int) int {
	if d == directionUp {
		return n + 1
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

// MigrationPath returns the concatenated lens sequence from version
// from to version to, walking the chain one edge at a time. It
// returns nil if from == to (no path needed, not an error) or if any
// edge along the way is unregistered.
//
// The graph is a line per schema, so the path, when it exists, is
// unique.
func (m *Migrator) MigrationPath(schemaName string, from, to int) []lens.Lens {
	if from == to {
		return nil
	}

	dir := directionUp
	if from > to {
		dir = directionDown
	}

	paths, ok := m.paths[schemaName]
	if !ok {
		return nil
	}

	var out []lens.Lens
	current := from
	for current != to {
		next := dir.tick(current)
		ops, ok := paths[edge{current, next}]
		if !ok {
			return nil
		}
		out = append(out, ops...)
		current = next
	}
	return out
}

// MigrationPathNotFoundError reports that no registered chain
// connects version 0 to the requested version of schema.
type MigrationPathNotFoundError struct {
	Schema  string
	Version int
}

func (e *MigrationPathNotFoundError) Error() string {
	return fmt.Sprintf("could not find path to migration (%s.%d)", e.Schema, e.Version)
}

// CouldNotApplyError wraps a lens transform failure encountered while
// folding a migration path into a schema.
type CouldNotApplyError struct {
	Inner error
}

func (e *CouldNotApplyError) Error() string {
	return fmt.Sprintf("could not apply operation: %s", e.Inner)
}

func (e *CouldNotApplyError) Unwrap() error { return e.Inner }

// Schema folds the migration path from the empty schema (version 0)
// to version into a JTD schema, by applying each lens in turn.
func (m *Migrator) Schema(schemaName string, version int) (*jtd.Schema, error) {
	if version == 0 {
		return jtd.EmptyProperties(), nil
	}

	path := m.MigrationPath(schemaName, 0, version)
	if path == nil {
		return nil, &MigrationPathNotFoundError{Schema: schemaName, Version: version}
	}

	out := jtd.Empty()
	for _, l := range path {
		if err := l.TransformJTD(&out); err != nil {
			return nil, &CouldNotApplyError{Inner: err}
		}
	}
	return out, nil
}
