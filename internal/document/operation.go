package document

import "github.com/lensdb/lensdb/internal/value"

// AssignKeyKind selects which kind of target an Assign or Remove
// operation names.
type AssignKeyKind int

const (
	AssignKeyMap AssignKeyKind = iota
	AssignKeyListItem
)

// AssignKey is the sum of the two places a value can be assigned:
// a named key in a map, or a list slot identified by the timestamp
// of the InsertAfter operation that created it.
type AssignKey struct {
	kind        AssignKeyKind
	mapKey      string
	insertAfter Timestamp
}

func MapKey(name string) AssignKey { return AssignKey{kind: AssignKeyMap, mapKey: name} }

func ListItemKey(insertAfterID Timestamp) AssignKey {
	return AssignKey{kind: AssignKeyListItem, insertAfter: insertAfterID}
}

func (k AssignKey) Kind() AssignKeyKind { return k.kind }

func (k AssignKey) MapKeyName() (string, bool) {
	if k.kind != AssignKeyMap {
		return "", false
	}
	return k.mapKey, true
}

func (k AssignKey) ListItem() (Timestamp, bool) {
	if k.kind != AssignKeyListItem {
		return Timestamp{}, false
	}
	return k.insertAfter, true
}

// OpKind identifies which of the document's six operations an
// Operation holds.
type OpKind int

const (
	OpMakeMap OpKind = iota
	OpMakeList
	OpMakeVal
	OpInsertAfter
	OpAssign
	OpRemove
)

// Operation is one entry in the document's append-only log.
type Operation struct {
	kind       OpKind
	val        value.Value
	insertPrev Timestamp
	obj        Timestamp
	key        AssignKey
	assignVal  Timestamp
	prev       map[Timestamp]struct{}
}

func opMakeMap() Operation  { return Operation{kind: OpMakeMap} }
func opMakeList() Operation { return Operation{kind: OpMakeList} }
func opMakeVal(v value.Value) Operation {
	return Operation{kind: OpMakeVal, val: v}
}
func opInsertAfter(prev Timestamp) Operation {
	return Operation{kind: OpInsertAfter, insertPrev: prev}
}
func opAssign(obj Timestamp, key AssignKey, val Timestamp, prev map[Timestamp]struct{}) Operation {
	return Operation{kind: OpAssign, obj: obj, key: key, assignVal: val, prev: prev}
}
func opRemove(obj Timestamp, key AssignKey, prev map[Timestamp]struct{}) Operation {
	return Operation{kind: OpRemove, obj: obj, key: key, prev: prev}
}

func (o OpKind) String() string {
	switch o {
	case OpMakeMap:
		return "make_map"
	case OpMakeList:
		return "make_list"
	case OpMakeVal:
		return "make_val"
	case OpInsertAfter:
		return "insert_after"
	case OpAssign:
		return "assign"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}
