// Package node implements node-identity adapters: small, deliberately
// ephemeral per-process state (a node id and the highest clock it has
// seen), never the source of truth for document content. Memory keeps
// it in a process-local struct; Node persists it to a file across
// restarts. The store façade does not use them; it keeps its own node
// id and clock.
package node

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lensdb/lensdb/internal/hlc"
)

// Adapter is the node-identity contract spec.md §6 names: a node id,
// the highest clock observed, and a way to adopt an incoming one.
type Adapter interface {
	NodeID() uint16
	Clock() hlc.Clock
	ReceiveClock(clock hlc.Clock)
}

// Node tracks a node id and the highest hlc.Clock it has observed,
// persisted to a file between runs.
type Node struct {
	path  string
	id    uint16
	clock hlc.Clock
}

type state struct {
	ID    uint16 `json:"id"`
	Clock uint64 `json:"clock"`
}

// Open loads path's persisted state, if it exists, or creates a fresh
// Node seeded with defaultID and a clock whose timestamp and counter
// are zero and whose node field is defaultID.
func Open(path string, defaultID uint16) (*Node, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Node{path: path, id: defaultID, clock: hlc.Zero().SetNode(defaultID)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("node: read %s: %w", path, err)
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("node: parse %s: %w", path, err)
	}
	return &Node{path: path, id: s.ID, clock: hlc.Clock(s.Clock)}, nil
}

// NodeID returns the node's id.
func (n *Node) NodeID() uint16 { return n.id }

// Clock returns the highest clock this node has cached.
func (n *Node) Clock() hlc.Clock { return n.clock }

// ReceiveClock adopts clock as the node's cached clock if it sorts
// after the one currently held, re-tagging it with this node's own id
// in place of the sender's.
func (n *Node) ReceiveClock(clock hlc.Clock) {
	if n.clock.Less(clock) {
		n.clock = clock.SetNode(n.id)
	}
}

// Save persists the node's id and clock to its backing file.
func (n *Node) Save() error {
	data, err := json.Marshal(state{ID: n.id, Clock: uint64(n.clock)})
	if err != nil {
		return fmt.Errorf("node: marshal state: %w", err)
	}
	if err := os.WriteFile(n.path, data, 0o644); err != nil {
		return fmt.Errorf("node: write %s: %w", n.path, err)
	}
	return nil
}
