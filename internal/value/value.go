// Package value implements the scalar value sum type that backs every
// leaf in a lensdb record: strings, 64-bit integers, 64-bit floats,
// booleans, and null.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is the scalar sum type: String, Int, Float, Bool, or Null.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Null() Value           { return Value{kind: KindNull} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) StringValue() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) IntValue() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) FloatValue() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindNull:
		return true
	default:
		return false
	}
}

// String renders the value the way Display does in the source prototype:
// bare scalars, with "null" for Null.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNull:
		return "null"
	default:
		return "<invalid value>"
	}
}

// MarshalJSON round-trips losslessly through JSON except that unsigned
// 64-bit inputs at or above 2^63 are never produced here (Int is signed).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		data, err := json.Marshal(v.f)
		if err != nil {
			return nil, err
		}
		if isIntegerLiteral(string(data)) {
			data = append(data, ".0"...)
		}
		return data, nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("value: invalid kind %d", v.kind)
	}
}

// UnmarshalJSON accepts any JSON scalar or null. Integers outside the
// i64 range (including any non-negative integer at or beyond 2^63) fail
// with an error rather than silently losing precision.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("value: %w", err)
	}

	switch t := raw.(type) {
	case nil:
		*v = Null()
	case bool:
		*v = Bool(t)
	case string:
		*v = String(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			*v = Int(i)
			return nil
		}
		if isIntegerLiteral(t.String()) {
			return fmt.Errorf("value: integer %q does not fit in i64", t.String())
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("value: number %q does not fit in i64 or f64", t.String())
		}
		*v = Float(f)
	default:
		return fmt.Errorf("value: unsupported JSON value %#v", raw)
	}
	return nil
}

// isIntegerLiteral reports whether s, a JSON number's literal text, was
// written as an integer rather than a float: json.Number.Float64()
// happily parses "9223372036854775808" as a float, so a failed Int64()
// only means "out of i64 range", not "actually a float" — this check
// tells the two apart so an out-of-range integer literal is rejected
// rather than silently widened to a Float.
func isIntegerLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// FromUint64 mirrors the prototype's visit_u64: values at or above 2^63
// cannot be represented as a signed i64 and are rejected.
func FromUint64(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("value: u64 value %d is too large for i64", u)
	}
	return Int(int64(u)), nil
}
