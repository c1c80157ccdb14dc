// Package jtd implements the subset of JSON Type Definition that the
// lens engine transforms: Properties (records), Elements (lists), and
// primitive Type leaves. Any other JTD form (Enum, Values, Ref,
// Discriminator) cannot be represented: decoding ignores those
// keywords, so such a schema decodes as whatever its type, elements or
// properties keys describe, or as Empty if it has none of them. No
// error is reported for them.
package jtd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lensdb/lensdb/internal/value"
)

// Kind identifies which JTD form a Schema holds.
type Kind int

const (
	// KindEmpty is the schema with no form at all: the starting point
	// before the first Properties-producing lens runs.
	KindEmpty Kind = iota
	KindType
	KindElements
	KindProperties
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindType:
		return "type"
	case KindElements:
		return "elements"
	case KindProperties:
		return "properties"
	default:
		return "unknown"
	}
}

// Schema is the sum of the four forms lensdb migrations can produce:
// Empty, a primitive Type, Elements{of}, or Properties{name: Schema}.
type Schema struct {
	kind       Kind
	typ        value.Type
	elements   *Schema
	properties map[string]*Schema
}

func Empty() *Schema { return &Schema{kind: KindEmpty} }

func FromType(t value.Type) *Schema { return &Schema{kind: KindType, typ: t} }

func NewElements(of *Schema) *Schema { return &Schema{kind: KindElements, elements: of} }

// NewProperties takes ownership of props; callers should not mutate
// the map afterward.
func NewProperties(props map[string]*Schema) *Schema {
	if props == nil {
		props = map[string]*Schema{}
	}
	return &Schema{kind: KindProperties, properties: props}
}

// EmptyProperties returns a fresh Properties schema with no fields,
// the auto-promotion target for an Empty schema.
func EmptyProperties() *Schema {
	return &Schema{kind: KindProperties, properties: map[string]*Schema{}}
}

func (s *Schema) Kind() Kind { return s.kind }

// Type returns the primitive type and true if s is a Type schema.
func (s *Schema) Type() (value.Type, bool) {
	if s.kind != KindType {
		return value.Type{}, false
	}
	return s.typ, true
}

// Elements returns the element schema and true if s is an Elements schema.
func (s *Schema) Elements() (*Schema, bool) {
	if s.kind != KindElements {
		return nil, false
	}
	return s.elements, true
}

// ReplaceElements swaps the element schema of an Elements schema.
// Only meaningful when s.Kind() == KindElements.
func (s *Schema) ReplaceElements(e *Schema) { s.elements = e }

// Properties returns the live properties map and true if s is a
// Properties schema. Mutating the returned map mutates s.
func (s *Schema) Properties() (map[string]*Schema, bool) {
	if s.kind != KindProperties {
		return nil, false
	}
	return s.properties, true
}

// SortedNames returns a Properties schema's field names in sorted
// order. Iteration over a Properties schema is always name-sorted;
// insertion order is not observable.
func (s *Schema) SortedNames() []string {
	if s.kind != KindProperties {
		return nil
	}
	names := make([]string, 0, len(s.properties))
	for n := range s.properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone makes a deep copy of s, so that a lens step can mutate a copy
// and discard it on failure without touching the caller's schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	switch s.kind {
	case KindEmpty:
		return Empty()
	case KindType:
		return FromType(s.typ)
	case KindElements:
		return NewElements(s.elements.Clone())
	case KindProperties:
		props := make(map[string]*Schema, len(s.properties))
		for k, v := range s.properties {
			props[k] = v.Clone()
		}
		return NewProperties(props)
	default:
		return nil
	}
}

// Equal reports structural equality.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case KindEmpty:
		return true
	case KindType:
		return s.typ.Equal(other.typ)
	case KindElements:
		return s.elements.Equal(other.elements)
	case KindProperties:
		if len(s.properties) != len(other.properties) {
			return false
		}
		for k, v := range s.properties {
			ov, ok := other.properties[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (s *Schema) String() string {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid schema: %v>", err)
	}
	return string(data)
}

// wireSchema is the JSON shape lensdb migration files use for a JTD
// sub-schema: at most one of type/elements/properties is present.
type wireSchema struct {
	Type       string                 `json:"type,omitempty"`
	Nullable   bool                   `json:"nullable,omitempty"`
	Elements   *wireSchema            `json:"elements,omitempty"`
	Properties map[string]*wireSchema `json:"properties,omitempty"`
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	w, err := toWire(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func toWire(s *Schema) (*wireSchema, error) {
	switch s.kind {
	case KindEmpty:
		return &wireSchema{}, nil
	case KindType:
		return &wireSchema{Type: s.typ.Kind().String(), Nullable: s.typ.IsNullable()}, nil
	case KindElements:
		inner, err := toWire(s.elements)
		if err != nil {
			return nil, err
		}
		return &wireSchema{Elements: inner}, nil
	case KindProperties:
		props := make(map[string]*wireSchema, len(s.properties))
		for name, field := range s.properties {
			w, err := toWire(field)
			if err != nil {
				return nil, err
			}
			props[name] = w
		}
		return &wireSchema{Properties: props}, nil
	default:
		return nil, fmt.Errorf("jtd: invalid schema kind %d", s.kind)
	}
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	var w wireSchema
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("jtd: %w", err)
	}
	out, err := fromWire(&w)
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

func fromWire(w *wireSchema) (*Schema, error) {
	switch {
	case w.Properties != nil:
		props := make(map[string]*Schema, len(w.Properties))
		for name, inner := range w.Properties {
			sub, err := fromWire(inner)
			if err != nil {
				return nil, err
			}
			props[name] = sub
		}
		return NewProperties(props), nil
	case w.Elements != nil:
		inner, err := fromWire(w.Elements)
		if err != nil {
			return nil, err
		}
		return NewElements(inner), nil
	case w.Type != "":
		kind, err := value.ParseTypeKind(w.Type)
		if err != nil {
			return nil, err
		}
		return FromType(value.FromSerde(kind, w.Nullable)), nil
	default:
		return Empty(), nil
	}
}
