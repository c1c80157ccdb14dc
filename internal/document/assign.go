package document

import "sort"

// Assign is a multi-value register keyed by K: each key maps to the
// set of (assign-operation-id -> value-id) pairs still live for it.
// Concurrent assigns to the same key without a causal "prev" link
// both survive, which is how the document surfaces write conflicts
// instead of silently picking a winner.
type Assign[K comparable] struct {
	values map[K]map[Timestamp]Timestamp
}

func NewAssign[K comparable]() *Assign[K] {
	return &Assign[K]{values: map[K]map[Timestamp]Timestamp{}}
}

// Do assigns val to key under operation id, first removing every
// entry named in prev — the assign-operation-ids this write
// supersedes. An assign with an empty prev is concurrent with
// whatever is already there, so both are kept.
func (a *Assign[K]) Do(id Timestamp, key K, val Timestamp, prev map[Timestamp]struct{}) {
	entry, ok := a.values[key]
	if !ok {
		entry = map[Timestamp]Timestamp{}
		a.values[key] = entry
	}
	for p := range prev {
		delete(entry, p)
	}
	entry[id] = val
}

// Remove drops the assign-operations named in prev from key. If that
// empties the key entirely, the key itself is dropped.
func (a *Assign[K]) Remove(key K, prev map[Timestamp]struct{}) {
	entry, ok := a.values[key]
	if !ok {
		return
	}
	for p := range prev {
		delete(entry, p)
	}
	if len(entry) == 0 {
		delete(a.values, key)
	}
}

// Get returns the live assign-id -> value-id pairs for key.
func (a *Assign[K]) Get(key K) (map[Timestamp]Timestamp, bool) {
	entry, ok := a.values[key]
	return entry, ok
}

// SortedKeys returns every key with a live entry, ordered by less.
func (a *Assign[K]) SortedKeys(less func(i, j K) bool) []K {
	keys := make([]K, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
