package value

import (
	"encoding/json"
	"fmt"
)

// TypeKind names the primitive base of a Type, independent of nullability.
type TypeKind int

const (
	TypeString TypeKind = iota
	TypeInt
	TypeFloat
	TypeBool
)

func (k TypeKind) String() string {
	switch k {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Type is the field-type sum: one of the four primitives, optionally
// wrapped in Nullable. Nullable(Nullable(T)) cannot be constructed —
// NewNullable always wraps a primitive Type, never another Nullable.
type Type struct {
	kind     TypeKind
	nullable bool
}

func Primitive(kind TypeKind) Type { return Type{kind: kind} }

// NewNullable wraps base in Nullable. If base is already nullable, it is
// returned unchanged rather than double-wrapped.
func NewNullable(base Type) Type {
	return Type{kind: base.kind, nullable: true}
}

// FromSerde builds a Type from the wire representation used by migration
// files: a bare primitive name plus a separate nullable flag.
func FromSerde(base TypeKind, nullable bool) Type {
	return Type{kind: base, nullable: nullable}
}

func (t Type) Kind() TypeKind   { return t.kind }
func (t Type) IsNullable() bool { return t.nullable }

// NonNullable returns the type with any Nullable wrapper stripped.
func (t Type) NonNullable() Type { return Type{kind: t.kind} }

// ZeroValue returns a value that always satisfies t.Validate: Null
// for a nullable type, and the primitive zero value otherwise.
func (t Type) ZeroValue() Value {
	if t.nullable {
		return Null()
	}
	switch t.kind {
	case TypeString:
		return String("")
	case TypeInt:
		return Int(0)
	case TypeFloat:
		return Float(0)
	case TypeBool:
		return Bool(false)
	default:
		return Null()
	}
}

func (t Type) String() string {
	if t.nullable {
		return "nullable " + t.kind.String()
	}
	return t.kind.String()
}

func (t Type) Equal(other Type) bool {
	return t.kind == other.kind && t.nullable == other.nullable
}

// ValidationError reports that a Value did not match the Type it was
// checked against.
type ValidationError struct {
	Expected Type
	Got      Value
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for type %s: %s", e.Expected, e.Got)
}

// Validate checks a Value against the Type: a non-nullable primitive
// accepts only the matching Value constructor; Nullable(T) accepts Null
// or anything T accepts.
func (t Type) Validate(v Value) error {
	if t.nullable && v.IsNull() {
		return nil
	}

	switch t.kind {
	case TypeString:
		if _, ok := v.StringValue(); ok {
			return nil
		}
	case TypeInt:
		if _, ok := v.IntValue(); ok {
			return nil
		}
	case TypeFloat:
		if _, ok := v.FloatValue(); ok {
			return nil
		}
	case TypeBool:
		if _, ok := v.BoolValue(); ok {
			return nil
		}
	}

	return &ValidationError{Expected: t, Got: v}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Nullable bool   `json:"nullable,omitempty"`
	}{
		Type:     t.kind.String(),
		Nullable: t.nullable,
	})
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     string `json:"type"`
		Nullable bool   `json:"nullable"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("type: %w", err)
	}

	kind, err := ParseTypeKind(raw.Type)
	if err != nil {
		return err
	}

	*t = Type{kind: kind, nullable: raw.Nullable}
	return nil
}

// ParseTypeKind parses the lowercase wire name of a primitive type.
func ParseTypeKind(s string) (TypeKind, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "bool":
		return TypeBool, nil
	default:
		return 0, fmt.Errorf("type: unknown primitive type %q", s)
	}
}
