package schema

import (
	"testing"

	"github.com/lensdb/lensdb/internal/value"
)

func TestSchema_InsertGetRemove(t *testing.T) {
	s := New()
	f := Field{Type: value.Primitive(value.TypeString), Default: value.String("")}

	if s.ContainsKey("name") {
		t.Fatal("empty schema should not contain name")
	}

	if _, had := s.Insert("name", f); had {
		t.Error("first insert should not report a replaced field")
	}
	if !s.ContainsKey("name") {
		t.Error("schema should contain name after insert")
	}

	got, ok := s.Get("name")
	if !ok || !got.Type.Equal(f.Type) || !got.Default.Equal(f.Default) {
		t.Errorf("Get(name) = %v, %v, want %v", got, ok, f)
	}

	removed, had := s.Remove("name")
	if !had || !removed.Type.Equal(f.Type) {
		t.Errorf("Remove(name) = %v, %v", removed, had)
	}
	if s.ContainsKey("name") {
		t.Error("schema should not contain name after remove")
	}
}

func TestSchema_NamesSorted(t *testing.T) {
	s := FromFields(map[string]Field{
		"zeta":  {Type: value.Primitive(value.TypeString), Default: value.String("")},
		"alpha": {Type: value.Primitive(value.TypeString), Default: value.String("")},
	})

	names := s.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Names() = %v, want [alpha zeta]", names)
	}
}

func TestSchema_ToJTD(t *testing.T) {
	s := FromFields(map[string]Field{
		"name": {Type: value.Primitive(value.TypeString), Default: value.String("")},
		"age":  {Type: value.NewNullable(value.Primitive(value.TypeInt)), Default: value.Null()},
	})

	j := s.ToJTD()
	props, ok := j.Properties()
	if !ok {
		t.Fatalf("ToJTD() kind = %s, want properties", j.Kind())
	}
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}

	nameType, ok := props["name"].Type()
	if !ok || nameType.Kind() != value.TypeString || nameType.IsNullable() {
		t.Errorf("name type = %v, %v", nameType, ok)
	}

	ageType, ok := props["age"].Type()
	if !ok || ageType.Kind() != value.TypeInt || !ageType.IsNullable() {
		t.Errorf("age type = %v, %v", ageType, ok)
	}
}
