package lens

import (
	"encoding/json"
	"testing"

	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/value"
)

func TestLens_AddJSONRoundTrip(t *testing.T) {
	original := Add(AddRemove{
		Name:    "email",
		Type:    jtd.FromType(value.NewNullable(value.Primitive(value.TypeString))),
		Default: value.Null(),
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Lens
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Kind() != KindAdd || got.addRemove.Name != "email" {
		t.Errorf("got = %+v", got)
	}
}

func TestLens_RenameJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RenameOp("a", "b"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Lens
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.rename.From != "a" || got.rename.To != "b" {
		t.Errorf("got = %+v", got.rename)
	}
}

func TestLens_InJSONRoundTrip(t *testing.T) {
	inner := RenameOp("x", "y")
	original := InOp("host", []Lens{inner})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Lens
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.in.Name != "host" || len(got.in.Ops) != 1 || got.in.Ops[0].rename.To != "y" {
		t.Errorf("got = %+v", got.in)
	}
}

func TestLens_AddWithInvalidDefaultFailsToUnmarshal(t *testing.T) {
	raw := []byte(`{"add":{"name":"n","type":{"type":"string"},"default":5}}`)

	var got Lens
	if err := json.Unmarshal(raw, &got); err == nil {
		t.Fatal("expected an error for a default that does not match its declared type")
	}
}

func TestLens_ConvertJSONRoundTrip(t *testing.T) {
	original := ConvertOp(Convert{
		Name:     "status",
		FromType: jtd.FromType(value.Primitive(value.TypeString)),
		ToType:   jtd.FromType(value.Primitive(value.TypeInt)),
		Forward:  map[value.Value]value.Value{value.String("active"): value.Int(1)},
		Reverse:  map[value.Value]value.Value{value.Int(1): value.String("active")},
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Lens
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.convert.Name != "status" || len(got.convert.Forward) != 1 {
		t.Errorf("got = %+v", got.convert)
	}
}
