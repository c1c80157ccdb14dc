package document

// Order threads list items into a singly-linked insert-after chain:
// ordering[after] = opID means opID was inserted immediately
// following after. Re-inserting after the same anchor splices the
// new item in ahead of whatever used to follow it, so concurrent
// inserts at the same position never collide, only interleave.
type Order struct {
	ordering map[Timestamp]Timestamp
}

func NewOrder() *Order {
	return &Order{ordering: map[Timestamp]Timestamp{}}
}

// InsertAfter records that opID now follows after in the chain. If
// something already followed after, that item is re-linked to follow
// opID instead.
func (o *Order) InsertAfter(opID, after Timestamp) {
	previous, had := o.ordering[after]
	o.ordering[after] = opID
	if had {
		o.ordering[opID] = previous
	}
}

// Iter walks the chain starting just after start (start itself, the
// list's MakeList id, is never yielded).
func (o *Order) Iter(start Timestamp) *OrderIterator {
	it := &OrderIterator{order: o}
	if next, ok := o.ordering[start]; ok {
		it.current = &next
		it.hasCurrent = true
	}
	return it
}

type OrderIterator struct {
	order      *Order
	current    *Timestamp
	hasCurrent bool
}

// Next returns the next item in the chain, or false once exhausted.
func (it *OrderIterator) Next() (Timestamp, bool) {
	if !it.hasCurrent {
		return Timestamp{}, false
	}
	result := *it.current
	if next, ok := it.order.ordering[result]; ok {
		it.current = &next
	} else {
		it.hasCurrent = false
	}
	return result, true
}
