package document

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lensdb/lensdb/internal/value"
)

type logEntry struct {
	id Timestamp
	op Operation
}

// Document is a CRDT: an append-only operation log plus the derived
// maps, lists, and values it has built up. Every mutating method
// returns the Timestamp it assigned to the new operation, which
// callers thread back in as obj/val/prev for subsequent operations.
type Document struct {
	operations []logEntry

	maps         map[Timestamp]*Assign[string]
	listItems    map[Timestamp]*Assign[Timestamp]
	listOrdering *Order

	values map[Timestamp]value.Value

	highestCounter uint64
}

func New() *Document {
	return &Document{
		maps:         map[Timestamp]*Assign[string]{},
		listItems:    map[Timestamp]*Assign[Timestamp]{},
		listOrdering: NewOrder(),
		values:       map[Timestamp]value.Value{},
	}
}

func (d *Document) nextCounter() uint64 {
	d.highestCounter++
	return d.highestCounter
}

// Root returns the timestamp of the document's outermost map or
// list, the first MakeMap/MakeList operation in the log.
func (d *Document) Root() (Timestamp, bool) {
	for _, e := range d.operations {
		if e.op.kind == OpMakeMap || e.op.kind == OpMakeList {
			return e.id, true
		}
	}
	return Timestamp{}, false
}

func (d *Document) apply(id Timestamp, op Operation) {
	switch op.kind {
	case OpMakeMap:
		d.maps[id] = NewAssign[string]()

	case OpMakeList:
		d.listItems[id] = NewAssign[Timestamp]()

	case OpMakeVal:
		d.values[id] = op.val

	case OpAssign:
		switch op.key.kind {
		case AssignKeyMap:
			entry, ok := d.maps[op.obj]
			if !ok {
				entry = NewAssign[string]()
				d.maps[op.obj] = entry
			}
			entry.Do(id, op.key.mapKey, op.assignVal, op.prev)
		case AssignKeyListItem:
			entry, ok := d.listItems[op.obj]
			if !ok {
				entry = NewAssign[Timestamp]()
				d.listItems[op.obj] = entry
			}
			entry.Do(id, op.key.insertAfter, op.assignVal, op.prev)
		}

	case OpInsertAfter:
		d.listOrdering.InsertAfter(id, op.insertPrev)

	case OpRemove:
		switch op.key.kind {
		case AssignKeyMap:
			if entry, ok := d.maps[op.obj]; ok {
				entry.Remove(op.key.mapKey, op.prev)
			}
		case AssignKeyListItem:
			if entry, ok := d.listItems[op.obj]; ok {
				entry.Remove(op.key.insertAfter, op.prev)
			}
		}
	}
}

func (d *Document) record(node uuid.UUID, op Operation) Timestamp {
	id := NewTimestamp(d.nextCounter(), node)
	d.apply(id, op)
	d.operations = append(d.operations, logEntry{id: id, op: op})
	return id
}

// MakeMap appends a new, empty map object to the log and returns its id.
func (d *Document) MakeMap(node uuid.UUID) Timestamp { return d.record(node, opMakeMap()) }

// MakeList appends a new, empty list object to the log and returns its id.
func (d *Document) MakeList(node uuid.UUID) Timestamp { return d.record(node, opMakeList()) }

// MakeVal appends a scalar value to the log and returns its id.
func (d *Document) MakeVal(v value.Value, node uuid.UUID) Timestamp {
	return d.record(node, opMakeVal(v))
}

// Assign writes val under key in obj, superseding every assign-op in
// prev. An empty prev means this assign is concurrent with whatever
// is already there.
func (d *Document) Assign(obj Timestamp, key AssignKey, val Timestamp, prev map[Timestamp]struct{}, node uuid.UUID) Timestamp {
	return d.record(node, opAssign(obj, key, val, prev))
}

// InsertAfter splices a new list slot in immediately after prev
// (prev may be the list's own MakeList id, to insert at the head).
func (d *Document) InsertAfter(prev Timestamp, node uuid.UUID) Timestamp {
	return d.record(node, opInsertAfter(prev))
}

// Remove retracts the assign-ops in prev from key in obj.
func (d *Document) Remove(obj Timestamp, key AssignKey, prev map[Timestamp]struct{}, node uuid.UUID) Timestamp {
	return d.record(node, opRemove(obj, key, prev))
}

// CurrentAssigns returns the set of assign-operation ids currently
// live for key in obj — the Set a caller passes as prev to
// supersede them with a new Assign or Remove.
func (d *Document) CurrentAssigns(obj Timestamp, key AssignKey) map[Timestamp]struct{} {
	out := map[Timestamp]struct{}{}

	switch key.kind {
	case AssignKeyMap:
		assign, ok := d.maps[obj]
		if !ok {
			return out
		}
		entry, ok := assign.Get(key.mapKey)
		if !ok {
			return out
		}
		for assignID := range entry {
			out[assignID] = struct{}{}
		}
	case AssignKeyListItem:
		assign, ok := d.listItems[obj]
		if !ok {
			return out
		}
		entry, ok := assign.Get(key.insertAfter)
		if !ok {
			return out
		}
		for assignID := range entry {
			out[assignID] = struct{}{}
		}
	}

	return out
}

// ConflictAt returns the assign-ids still live for key in obj when
// there is more than one — concurrent writes that Assign never
// resolved because neither named the other in prev. Returns nil when
// there is no conflict (zero or one live assign).
func (d *Document) ConflictAt(obj Timestamp, key AssignKey) []Timestamp {
	current := d.CurrentAssigns(obj, key)
	if len(current) < 2 {
		return nil
	}
	ids := make([]Timestamp, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// AsValue materializes the document into a plain Go value tree:
// map[string]any for maps, []any for lists, and the Go-native form
// of each scalar leaf. A document with no root materializes as nil.
func (d *Document) AsValue() any {
	root, ok := d.Root()
	if !ok {
		return nil
	}
	return d.get(root)
}

func (d *Document) get(id Timestamp) any {
	switch {
	case d.isMap(id):
		return d.getMap(id)
	case d.isList(id):
		return d.getList(id)
	default:
		if v, ok := d.values[id]; ok {
			return rawValue(v)
		}
		return nil
	}
}

func (d *Document) isMap(id Timestamp) bool {
	_, ok := d.maps[id]
	return ok
}

func (d *Document) isList(id Timestamp) bool {
	_, ok := d.listItems[id]
	return ok
}

func (d *Document) getMap(id Timestamp) map[string]any {
	out := map[string]any{}
	assign, ok := d.maps[id]
	if !ok {
		return out
	}
	for _, k := range assign.SortedKeys(func(a, b string) bool { return a < b }) {
		entry, _ := assign.Get(k)
		out[k] = d.get(firstValue(entry))
	}
	return out
}

func (d *Document) getList(id Timestamp) []any {
	out := []any{}
	assign, ok := d.listItems[id]
	if !ok {
		return out
	}
	it := d.listOrdering.Iter(id)
	for {
		itemID, hasNext := it.Next()
		if !hasNext {
			break
		}
		if entry, ok := assign.Get(itemID); ok {
			out = append(out, d.get(firstValue(entry)))
		}
	}
	return out
}

// firstValue returns the value written by the highest-Timestamp
// assign-op of a (possibly conflicted) multi-value entry, so
// materialization is deterministic even though the register itself surfaces every
// concurrent write via Assign.Get.
func firstValue(entry map[Timestamp]Timestamp) Timestamp {
	var best Timestamp
	var ids []Timestamp
	for id := range entry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	if len(ids) > 0 {
		best = entry[ids[len(ids)-1]]
	}
	return best
}

func rawValue(v value.Value) any {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.StringValue()
		return s
	case value.KindInt:
		i, _ := v.IntValue()
		return i
	case value.KindFloat:
		f, _ := v.FloatValue()
		return f
	case value.KindBool:
		b, _ := v.BoolValue()
		return b
	default:
		return nil
	}
}
