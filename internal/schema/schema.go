// Package schema implements the Schema view: an ordered field-name to
// Field mapping that a migrated record type resolves to, plus its
// conversion to the external JTD Properties form.
package schema

import (
	"fmt"
	"sort"

	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/value"
)

// Field pairs a type with its default value. FromJTD pairs every type
// with its ZeroValue, which always satisfies type.Validate(default);
// Insert and FromFields store fields as given without validating them.
type Field struct {
	Type    value.Type
	Default value.Value
}

// Schema is an ordered mapping of field name to Field. Field names
// are unique within a schema; iteration is always name-sorted, so
// insertion order is never observable.
type Schema struct {
	fields map[string]Field
}

func New() *Schema { return &Schema{fields: map[string]Field{}} }

// FromFields builds a Schema from a literal set of (name, field)
// pairs, mirroring the Rust prototype's array-to-Schema conversion
// used throughout its test suite.
func FromFields(fields map[string]Field) *Schema {
	out := New()
	for name, f := range fields {
		out.fields[name] = f
	}
	return out
}

func (s *Schema) ContainsKey(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Insert stores field under name, returning the field it replaced,
// if any.
func (s *Schema) Insert(name string, field Field) (Field, bool) {
	old, had := s.fields[name]
	s.fields[name] = field
	return old, had
}

// Remove deletes name, returning the field that was stored there, if
// any.
func (s *Schema) Remove(name string) (Field, bool) {
	old, had := s.fields[name]
	delete(s.fields, name)
	return old, had
}

func (s *Schema) Get(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Names returns the schema's field names in sorted order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for n := range s.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) Len() int { return len(s.fields) }

// ToJTD converts the schema into its external Properties form: a
// non-nullable, closed record (additional_properties = false) whose
// property types come straight from each Field's Type.
func (s *Schema) ToJTD() *jtd.Schema {
	props := make(map[string]*jtd.Schema, len(s.fields))
	for name, field := range s.fields {
		props[name] = jtd.FromType(field.Type)
	}
	return jtd.NewProperties(props)
}

// FromJTD converts a migrator-produced JTD schema back into a flat
// Schema view, for the store's validate-on-insert step. The JTD
// schema must be Properties whose every field is a bare Type leaf;
// anything nested (produced by Embed or Wrap without an undoing
// Extract/Head) cannot back a flat record and is reported as an
// error, since the store only ever inserts flat field maps.
func FromJTD(j *jtd.Schema) (*Schema, error) {
	props, ok := j.Properties()
	if !ok {
		return nil, fmt.Errorf("schema: expected a properties schema, got %s", j.Kind())
	}

	out := New()
	for name, sub := range props {
		typ, ok := sub.Type()
		if !ok {
			return nil, fmt.Errorf("schema: field %q is not a flat type (got %s)", name, sub.Kind())
		}
		out.fields[name] = Field{Type: typ, Default: typ.ZeroValue()}
	}
	return out, nil
}
