// Package lens implements the reversible schema-transformation algebra:
// ten operations over a JTD Properties/Elements/Type schema, each with
// a well-defined inverse, composed into migrations by package migrator.
package lens

import (
	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/value"
)

// Kind identifies which of the ten lens operations a Lens holds.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindRename
	KindExtract
	KindEmbed
	KindHead
	KindWrap
	KindIn
	KindMap
	KindConvert
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindRename:
		return "rename"
	case KindExtract:
		return "extract"
	case KindEmbed:
		return "embed"
	case KindHead:
		return "head"
	case KindWrap:
		return "wrap"
	case KindIn:
		return "in"
	case KindMap:
		return "map"
	case KindConvert:
		return "convert"
	default:
		return "unknown"
	}
}

// AddRemove carries the payload shared by Add and Remove: the
// property name, its JTD type, and (for Add) the default value newly
// absent records should read as.
type AddRemove struct {
	Name    string
	Type    *jtd.Schema
	Default value.Value
}

// Rename carries a property's old and new name.
type Rename struct {
	From string
	To   string
}

// ExtractEmbed carries the payload shared by Extract and Embed: the
// host property and the name it gains or loses inside it.
type ExtractEmbed struct {
	Host string
	Name string
}

// WrapHead names the list property that Head unwraps or Wrap wraps.
type WrapHead struct {
	Name string
}

// In descends into the Properties schema at Name and applies Ops in
// order.
type In struct {
	Name string
	Ops  []Lens
}

// Map applies Ops to the element schema of a list.
type Map struct {
	Ops []Lens
}

// Convert replaces a property's type, recording forward and reverse
// value maps for a future value-level migration; the maps play no
// part in the schema transform itself.
type Convert struct {
	Name     string
	FromType *jtd.Schema
	ToType   *jtd.Schema
	Forward  map[value.Value]value.Value
	Reverse  map[value.Value]value.Value
}

// Lens is the sum of the ten schema operations. Exactly one payload
// field is meaningful, selected by Kind.
type Lens struct {
	kind         Kind
	addRemove    *AddRemove
	rename       *Rename
	extractEmbed *ExtractEmbed
	wrapHead     *WrapHead
	in           *In
	mapOp        *Map
	convert      *Convert
}

func Add(p AddRemove) Lens          { return Lens{kind: KindAdd, addRemove: &p} }
func Remove(p AddRemove) Lens       { return Lens{kind: KindRemove, addRemove: &p} }
func RenameOp(from, to string) Lens { return Lens{kind: KindRename, rename: &Rename{From: from, To: to}} }
func Extract(host, name string) Lens {
	return Lens{kind: KindExtract, extractEmbed: &ExtractEmbed{Host: host, Name: name}}
}
func Embed(host, name string) Lens {
	return Lens{kind: KindEmbed, extractEmbed: &ExtractEmbed{Host: host, Name: name}}
}
func Head(name string) Lens { return Lens{kind: KindHead, wrapHead: &WrapHead{Name: name}} }
func Wrap(name string) Lens { return Lens{kind: KindWrap, wrapHead: &WrapHead{Name: name}} }
func InOp(name string, ops []Lens) Lens {
	return Lens{kind: KindIn, in: &In{Name: name, Ops: ops}}
}
func MapOp(ops []Lens) Lens { return Lens{kind: KindMap, mapOp: &Map{Ops: ops}} }
func ConvertOp(c Convert) Lens {
	return Lens{kind: KindConvert, convert: &c}
}

func (l Lens) Kind() Kind { return l.kind }

// Name returns the lens's operation tag, used in error messages.
func (l Lens) Name() string { return l.kind.String() }

// Reversed returns the inverse lens: applying L then Reversed(L) to a
// schema that L succeeds on is the identity.
//
// Extract and Embed are true inverses of each other (unlike one
// variant of the original Rust prototype, which mapped Embed to
// itself — a bug in that source that this port does not carry over).
func (l Lens) Reversed() Lens {
	switch l.kind {
	case KindAdd:
		return Remove(*l.addRemove)
	case KindRemove:
		return Add(*l.addRemove)
	case KindRename:
		return RenameOp(l.rename.To, l.rename.From)
	case KindExtract:
		return Embed(l.extractEmbed.Host, l.extractEmbed.Name)
	case KindEmbed:
		return Extract(l.extractEmbed.Host, l.extractEmbed.Name)
	case KindHead:
		return Wrap(l.wrapHead.Name)
	case KindWrap:
		return Head(l.wrapHead.Name)
	case KindIn:
		ops := make([]Lens, len(l.in.Ops))
		for i, op := range l.in.Ops {
			ops[len(ops)-1-i] = op.Reversed()
		}
		return InOp(l.in.Name, ops)
	case KindMap:
		ops := make([]Lens, len(l.mapOp.Ops))
		for i, op := range l.mapOp.Ops {
			ops[len(ops)-1-i] = op.Reversed()
		}
		return MapOp(ops)
	case KindConvert:
		return ConvertOp(Convert{
			Name:     l.convert.Name,
			FromType: l.convert.ToType,
			ToType:   l.convert.FromType,
			Forward:  l.convert.Reverse,
			Reverse:  l.convert.Forward,
		})
	default:
		return Lens{}
	}
}

// TransformJTD applies the lens to *schema in place. If schema holds
// KindEmpty it is first auto-promoted to an empty Properties schema,
// matching the assumption that a schema's first migration builds a
// record.
//
// On failure the schema pointed to by *schema is left as it was before
// the call, except that an Empty schema stays promoted to an empty
// Properties schema. The single-property cases only mutate a property
// map after every precondition for success has been checked, and In
// and Map run their nested ops on a copy that replaces the original
// only once every op has succeeded, so there is never a partial write
// to undo.
func (l Lens) TransformJTD(schema **jtd.Schema) error {
	if (*schema).Kind() == jtd.KindEmpty {
		*schema = jtd.EmptyProperties()
	}

	if l.kind == KindMap {
		return l.transformMap(schema)
	}

	props, ok := (*schema).Properties()
	if !ok {
		return &ExpectedXGotYError{Op: l.Name(), Expected: "properties", Got: (*schema).Kind().String()}
	}

	switch l.kind {
	case KindAdd:
		return l.transformAdd(props)
	case KindRemove:
		return l.transformRemove(props)
	case KindRename:
		return l.transformRename(props)
	case KindExtract:
		return l.transformExtract(props)
	case KindEmbed:
		return l.transformEmbed(props)
	case KindHead:
		return l.transformHead(props)
	case KindWrap:
		return l.transformWrap(props)
	case KindIn:
		return l.transformIn(props)
	case KindConvert:
		return l.transformConvert(props)
	default:
		return &UnsupportedSchemaTypeError{Kind: "unknown lens"}
	}
}

func (l Lens) transformAdd(props map[string]*jtd.Schema) error {
	if _, exists := props[l.addRemove.Name]; exists {
		return &KeyConflictError{Name: l.addRemove.Name}
	}
	props[l.addRemove.Name] = l.addRemove.Type.Clone()
	return nil
}

func (l Lens) transformRemove(props map[string]*jtd.Schema) error {
	if _, exists := props[l.addRemove.Name]; !exists {
		return &MissingNameError{Op: l.Name(), Name: l.addRemove.Name}
	}
	delete(props, l.addRemove.Name)
	return nil
}

func (l Lens) transformRename(props map[string]*jtd.Schema) error {
	existing, ok := props[l.rename.From]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: l.rename.From}
	}
	delete(props, l.rename.From)
	props[l.rename.To] = existing
	return nil
}

func (l Lens) transformExtract(props map[string]*jtd.Schema) error {
	host, name := l.extractEmbed.Host, l.extractEmbed.Name

	hostSchema, ok := props[host]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: host}
	}

	hostProps, ok := hostSchema.Properties()
	if !ok {
		return &ExpectedXGotYError{Op: l.Name(), Expected: "properties", Got: hostSchema.Kind().String()}
	}

	inner, ok := hostProps[name]
	if !ok {
		return &WithinError{Name: host, Inner: &MissingNameError{Op: l.Name(), Name: name}}
	}

	delete(hostProps, name)
	props[host] = inner
	return nil
}

func (l Lens) transformEmbed(props map[string]*jtd.Schema) error {
	host, name := l.extractEmbed.Host, l.extractEmbed.Name

	hostSchema, ok := props[host]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: host}
	}

	props[host] = jtd.NewProperties(map[string]*jtd.Schema{name: hostSchema})
	return nil
}

func (l Lens) transformHead(props map[string]*jtd.Schema) error {
	name := l.wrapHead.Name

	hostSchema, ok := props[name]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: name}
	}

	elements, ok := hostSchema.Elements()
	if !ok {
		return &ExpectedXGotYError{Op: l.Name(), Expected: "elements", Got: hostSchema.Kind().String()}
	}

	props[name] = elements
	return nil
}

func (l Lens) transformWrap(props map[string]*jtd.Schema) error {
	name := l.wrapHead.Name

	hostSchema, ok := props[name]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: name}
	}

	props[name] = jtd.NewElements(hostSchema)
	return nil
}

func (l Lens) transformIn(props map[string]*jtd.Schema) error {
	sub, ok := props[l.in.Name]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: l.in.Name}
	}

	work := sub.Clone()
	for _, op := range l.in.Ops {
		if err := op.TransformJTD(&work); err != nil {
			return &WithinError{Name: l.in.Name, Inner: err}
		}
	}

	props[l.in.Name] = work
	return nil
}

func (l Lens) transformMap(schema **jtd.Schema) error {
	elements, ok := (*schema).Elements()
	if !ok {
		return &ExpectedXGotYError{Op: "map", Expected: "elements", Got: (*schema).Kind().String()}
	}

	work := elements.Clone()
	for _, op := range l.mapOp.Ops {
		if err := op.TransformJTD(&work); err != nil {
			return err
		}
	}

	(*schema).ReplaceElements(work)
	return nil
}

func (l Lens) transformConvert(props map[string]*jtd.Schema) error {
	prop, ok := props[l.convert.Name]
	if !ok {
		return &MissingNameError{Op: l.Name(), Name: l.convert.Name}
	}

	if !prop.Equal(l.convert.FromType) {
		return &WrongTypeForTransformError{Expected: l.convert.FromType, Got: prop}
	}

	props[l.convert.Name] = l.convert.ToType.Clone()
	return nil
}
