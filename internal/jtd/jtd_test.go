package jtd

import (
	"testing"

	"github.com/lensdb/lensdb/internal/value"
)

func TestSchema_JSONRoundTrip(t *testing.T) {
	s := NewProperties(map[string]*Schema{
		"id":   FromType(value.Primitive(value.TypeString)),
		"tags": NewElements(FromType(value.Primitive(value.TypeString))),
		"user": NewProperties(map[string]*Schema{
			"age": FromType(value.NewNullable(value.Primitive(value.TypeInt))),
		}),
	})

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Schema
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if !out.Equal(s) {
		t.Errorf("round trip mismatch:\n got  %s\n want %s", &out, s)
	}
}

func TestSchema_EmptyRoundTrip(t *testing.T) {
	data, err := Empty().MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Schema
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Kind() != KindEmpty {
		t.Errorf("Kind() = %s, want empty", out.Kind())
	}
}

func TestSchema_Clone_IsIndependent(t *testing.T) {
	s := EmptyProperties()
	props, _ := s.Properties()
	props["a"] = FromType(value.Primitive(value.TypeString))

	clone := s.Clone()
	cloneProps, _ := clone.Properties()
	delete(cloneProps, "a")

	if _, ok := props["a"]; !ok {
		t.Error("mutating the clone should not affect the original")
	}
}

func TestSchema_SortedNames(t *testing.T) {
	s := NewProperties(map[string]*Schema{
		"zeta":  FromType(value.Primitive(value.TypeString)),
		"alpha": FromType(value.Primitive(value.TypeString)),
		"mid":   FromType(value.Primitive(value.TypeString)),
	})

	names := s.SortedNames()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
