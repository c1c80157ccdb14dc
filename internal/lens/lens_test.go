package lens

import (
	"errors"
	"testing"

	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/value"
)

func stringType() *jtd.Schema { return jtd.FromType(value.Primitive(value.TypeString)) }

func TestLens_AddInsertsProperty(t *testing.T) {
	schema := jtd.EmptyProperties()

	l := Add(AddRemove{Name: "a", Type: stringType(), Default: value.String("")})
	if err := l.TransformJTD(&schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	props, _ := schema.Properties()
	if _, ok := props["a"]; !ok {
		t.Fatal("expected property a to be added")
	}
}

func TestLens_AddConflictLeavesSchemaUnchanged(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{"a": stringType()})
	before := schema.Clone()

	l := Add(AddRemove{Name: "a", Type: stringType()})
	err := l.TransformJTD(&schema)

	var conflict *KeyConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected KeyConflictError, got %v", err)
	}
	if !schema.Equal(before) {
		t.Error("schema should be unchanged after a failed Add")
	}
}

func TestLens_RemoveMissingNameLeavesSchemaUnchanged(t *testing.T) {
	schema := jtd.EmptyProperties()
	before := schema.Clone()

	l := Remove(AddRemove{Name: "missing"})
	err := l.TransformJTD(&schema)

	var missing *MissingNameError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingNameError, got %v", err)
	}
	if !schema.Equal(before) {
		t.Error("schema should be unchanged after a failed Remove")
	}
}

func TestLens_AddRemoveAreInverse(t *testing.T) {
	schema := jtd.EmptyProperties()
	before := schema.Clone()

	add := Add(AddRemove{Name: "a", Type: stringType(), Default: value.String("")})
	if err := add.TransformJTD(&schema); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	remove := add.Reversed()
	if err := remove.TransformJTD(&schema); err != nil {
		t.Fatalf("reversed add failed: %v", err)
	}

	if !schema.Equal(before) {
		t.Errorf("Add then Reversed(Add) should be identity, got %s", schema)
	}
}

func TestLens_RenameOk(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{"old": stringType()})

	l := RenameOp("old", "new")
	if err := l.TransformJTD(&schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	props, _ := schema.Properties()
	if _, ok := props["old"]; ok {
		t.Error("old should be gone after rename")
	}
	if _, ok := props["new"]; !ok {
		t.Error("new should be present after rename")
	}
}

func TestLens_ExtractThenEmbedIsIdentity(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{
		"user": jtd.NewProperties(map[string]*jtd.Schema{
			"id": stringType(),
		}),
	})
	before := schema.Clone()

	extract := Extract("user", "id")
	if err := extract.TransformJTD(&schema); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	props, _ := schema.Properties()
	userType, ok := props["user"].Type()
	if !ok || userType.Kind() != value.TypeString {
		t.Fatalf("expected user to become a string type, got %s", props["user"])
	}

	embed := extract.Reversed()
	if err := embed.TransformJTD(&schema); err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	if !schema.Equal(before) {
		t.Errorf("Extract then Reversed(Extract) should be identity, got %s, want %s", schema, before)
	}
}

func TestLens_ExtractMissingInnerNameLeavesSchemaUnchanged(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{
		"user": jtd.NewProperties(map[string]*jtd.Schema{
			"id": stringType(),
		}),
	})
	before := schema.Clone()

	l := Extract("user", "missing")
	err := l.TransformJTD(&schema)

	var within *WithinError
	if !errors.As(err, &within) {
		t.Fatalf("expected WithinError, got %v", err)
	}
	var missing *MissingNameError
	if !errors.As(within.Inner, &missing) {
		t.Fatalf("expected inner MissingNameError, got %v", within.Inner)
	}
	if !schema.Equal(before) {
		t.Error("schema should be unchanged after a failed Extract")
	}
}

func TestLens_ExtractWrongHostShape(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{"user": stringType()})
	before := schema.Clone()

	l := Extract("user", "id")
	err := l.TransformJTD(&schema)

	var expectedGot *ExpectedXGotYError
	if !errors.As(err, &expectedGot) {
		t.Fatalf("expected ExpectedXGotYError, got %v", err)
	}
	if expectedGot.Expected != "properties" || expectedGot.Got != "type" {
		t.Errorf("got %+v", expectedGot)
	}
	if !schema.Equal(before) {
		t.Error("schema should be unchanged after a failed Extract")
	}
}

func TestLens_HeadThenWrapIsIdentity(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{
		"tags": jtd.NewElements(stringType()),
	})
	before := schema.Clone()

	head := Head("tags")
	if err := head.TransformJTD(&schema); err != nil {
		t.Fatalf("head failed: %v", err)
	}

	wrap := head.Reversed()
	if err := wrap.TransformJTD(&schema); err != nil {
		t.Fatalf("wrap failed: %v", err)
	}

	if !schema.Equal(before) {
		t.Errorf("Head then Reversed(Head) should be identity, got %s, want %s", schema, before)
	}
}

func TestLens_InDescendsAndWrapsErrors(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{
		"user": jtd.NewProperties(map[string]*jtd.Schema{}),
	})

	l := InOp("user", []Lens{Remove(AddRemove{Name: "missing"})})
	err := l.TransformJTD(&schema)

	var within *WithinError
	if !errors.As(err, &within) {
		t.Fatalf("expected WithinError, got %v", err)
	}
	if within.Name != "user" {
		t.Errorf("WithinError.Name = %q, want user", within.Name)
	}
}

func TestLens_MapAppliesToElementSchema(t *testing.T) {
	schema := jtd.NewElements(jtd.EmptyProperties())

	l := MapOp([]Lens{Add(AddRemove{Name: "a", Type: stringType(), Default: value.String("")})})
	if err := l.TransformJTD(&schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	elem, _ := schema.Elements()
	props, _ := elem.Properties()
	if _, ok := props["a"]; !ok {
		t.Error("expected element schema to gain property a")
	}
}

func TestLens_MapOnNonElementsFails(t *testing.T) {
	schema := jtd.EmptyProperties()

	l := MapOp([]Lens{Add(AddRemove{Name: "a", Type: stringType()})})
	err := l.TransformJTD(&schema)

	var expectedGot *ExpectedXGotYError
	if !errors.As(err, &expectedGot) {
		t.Fatalf("expected ExpectedXGotYError, got %v", err)
	}
	if expectedGot.Op != "map" || expectedGot.Expected != "elements" {
		t.Errorf("got %+v", expectedGot)
	}
}

func TestLens_ConvertReplacesTypeWhenMatching(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{"count": stringType()})

	l := ConvertOp(Convert{
		Name:     "count",
		FromType: stringType(),
		ToType:   jtd.FromType(value.Primitive(value.TypeInt)),
		Forward:  map[value.Value]value.Value{value.String("1"): value.Int(1)},
		Reverse:  map[value.Value]value.Value{value.Int(1): value.String("1")},
	})
	if err := l.TransformJTD(&schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	props, _ := schema.Properties()
	got, _ := props["count"].Type()
	if got.Kind() != value.TypeInt {
		t.Errorf("count type = %v, want int", got)
	}
}

func TestLens_ConvertWrongSourceType(t *testing.T) {
	schema := jtd.NewProperties(map[string]*jtd.Schema{"count": jtd.FromType(value.Primitive(value.TypeInt))})

	l := ConvertOp(Convert{
		Name:     "count",
		FromType: stringType(),
		ToType:   jtd.FromType(value.Primitive(value.TypeInt)),
	})
	err := l.TransformJTD(&schema)

	var wrongType *WrongTypeForTransformError
	if !errors.As(err, &wrongType) {
		t.Fatalf("expected WrongTypeForTransformError, got %v", err)
	}
}

func TestLens_ConvertReversedSwapsTypesAndMaps(t *testing.T) {
	c := Convert{
		Name:     "count",
		FromType: stringType(),
		ToType:   jtd.FromType(value.Primitive(value.TypeInt)),
		Forward:  map[value.Value]value.Value{value.String("1"): value.Int(1)},
		Reverse:  map[value.Value]value.Value{value.Int(1): value.String("1")},
	}
	l := ConvertOp(c)
	rev := l.Reversed()

	if rev.convert.Name != "count" {
		t.Errorf("reversed convert name = %q", rev.convert.Name)
	}
	if !rev.convert.FromType.Equal(c.ToType) || !rev.convert.ToType.Equal(c.FromType) {
		t.Error("reversed convert should swap from/to types")
	}
}
