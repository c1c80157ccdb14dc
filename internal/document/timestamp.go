// Package document implements the CRDT document model: an
// append-only operation log over maps, lists, and scalar values,
// addressed by Lamport-style timestamps, materializable to a JSON
// value or a sequence of JSON-Patch "add" operations.
package document

import (
	"fmt"

	"github.com/google/uuid"
)

// Timestamp identifies an operation: a monotonically increasing
// per-document counter, tie-broken by the node that issued it.
// Timestamps order first by Counter, then by Node, and are used
// directly as map keys throughout the document.
type Timestamp struct {
	Counter uint64
	Node    uuid.UUID
}

func NewTimestamp(counter uint64, node uuid.UUID) Timestamp {
	return Timestamp{Counter: counter, Node: node}
}

// Less reports whether t sorts before other: by Counter, then by
// Node's byte order.
func (t Timestamp) Less(other Timestamp) bool {
	if t.Counter != other.Counter {
		return t.Counter < other.Counter
	}
	return compareUUID(t.Node, other.Node) < 0
}

func compareUUID(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d@%s", t.Counter, t.Node)
}
