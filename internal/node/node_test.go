package node

import (
	"path/filepath"
	"testing"

	"github.com/lensdb/lensdb/internal/hlc"
)

func TestNode_OpenWithNoFileUsesDefault(t *testing.T) {
	n, err := Open(filepath.Join(t.TempDir(), "missing.json"), 7)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n.NodeID() != 7 {
		t.Errorf("NodeID() = %d, want 7", n.NodeID())
	}
}

func TestNode_SaveThenOpenRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.json")

	n, err := Open(path, 3)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n.ReceiveClock(hlc.NewAt(10, 0, 9))
	if err := n.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(path, 3)
	if err != nil {
		t.Fatalf("Open (reload): %v", err)
	}
	if reopened.Clock().Timestamp() != 10 {
		t.Errorf("Clock().Timestamp() = %d, want 10", reopened.Clock().Timestamp())
	}
	if reopened.Clock().Node() != 3 {
		t.Errorf("Clock().Node() = %d, want 3", reopened.Clock().Node())
	}
}

func TestNode_ReceiveClockIgnoresOlderClock(t *testing.T) {
	n, err := Open(filepath.Join(t.TempDir(), "node.json"), 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n.ReceiveClock(hlc.NewAt(10, 0, 5))
	n.ReceiveClock(hlc.NewAt(1, 0, 5))

	if n.Clock().Timestamp() != 10 {
		t.Errorf("Clock().Timestamp() = %d, want 10 (older clock ignored)", n.Clock().Timestamp())
	}
}
