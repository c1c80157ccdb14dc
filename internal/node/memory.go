package node

import "github.com/lensdb/lensdb/internal/hlc"

// Memory is the in-memory node adapter: a node id and the highest
// clock it has seen, both lost on process exit. Used where node
// identity can simply be regenerated (tests, short-lived processes)
// rather than persisted across restarts.
type Memory struct {
	id    uint16
	clock hlc.Clock
}

// NewMemory builds a Memory node tagged with id and a zeroed clock.
func NewMemory(id uint16) *Memory {
	return &Memory{id: id, clock: hlc.Zero().SetNode(id)}
}

func (n *Memory) NodeID() uint16   { return n.id }
func (n *Memory) Clock() hlc.Clock { return n.clock }

// ReceiveClock adopts clock, re-tagged with this node's id, if it
// sorts after the clock currently held.
func (n *Memory) ReceiveClock(clock hlc.Clock) {
	if n.clock.Less(clock) {
		n.clock = clock.SetNode(n.id)
	}
}
