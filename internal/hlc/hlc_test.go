package hlc

import "testing"

func TestClock_Create(t *testing.T) {
	got := NewAt(1, 1, 1)
	want := Clock(0b100000000000000010000000000000001)
	if got != want {
		t.Errorf("NewAt(1,1,1) = %b, want %b", got, want)
	}
}

func TestClock_GetTimestamp(t *testing.T) {
	c := NewAt(123, 0, 0)
	if c.Timestamp() != 123 {
		t.Errorf("Timestamp() = %d, want 123", c.Timestamp())
	}
	if c.Counter() != 0 {
		t.Errorf("Counter() = %d, want 0", c.Counter())
	}
}

func TestClock_GetCounter(t *testing.T) {
	c := NewAt(0, 123, 0)
	if c.Counter() != 123 {
		t.Errorf("Counter() = %d, want 123", c.Counter())
	}
}

func TestClock_GetNode(t *testing.T) {
	c := NewAt(0, 0, 123)
	if c.Node() != 123 {
		t.Errorf("Node() = %d, want 123", c.Node())
	}
}

func TestClock_NextInPastIncrementsCounter(t *testing.T) {
	c := NewAt(1, 0, 3).Next(0)
	if c.Timestamp() != 1 || c.Counter() != 1 || c.Node() != 3 {
		t.Errorf("got %s, want ts=1 ctr=1 node=3", c)
	}
}

func TestClock_NextInPastWithFullCounterRollsOver(t *testing.T) {
	c := NewAt(0, 65535, 3).Next(0)
	if c.Timestamp() != 1 || c.Counter() != 0 || c.Node() != 3 {
		t.Errorf("got %s, want ts=1 ctr=0 node=3", c)
	}
}

func TestClock_NextInFutureSetsTimestampAndResetsCounter(t *testing.T) {
	c := NewAt(0, 8, 3).Next(1)
	if c.Timestamp() != 1 || c.Counter() != 0 || c.Node() != 3 {
		t.Errorf("got %s, want ts=1 ctr=0 node=3", c)
	}
}

func TestClock_SetNode(t *testing.T) {
	c := NewAt(0, 0, 1).SetNode(2)
	if c.Timestamp() != 0 || c.Counter() != 0 || c.Node() != 2 {
		t.Errorf("got %s, want ts=0 ctr=0 node=2", c)
	}
}

func TestClock_OrdTimestampFirst(t *testing.T) {
	a := NewAt(0, 1, 1)
	b := NewAt(1, 0, 0)
	if !a.Less(b) {
		t.Errorf("%s was not less than %s", a, b)
	}
}

func TestClock_OrdCounterSecond(t *testing.T) {
	a := NewAt(0, 0, 1)
	b := NewAt(0, 1, 0)
	if !a.Less(b) {
		t.Errorf("%s was not less than %s", a, b)
	}
}

func TestClock_OrdNodeThird(t *testing.T) {
	a := NewAt(0, 0, 0)
	b := NewAt(0, 0, 1)
	if !a.Less(b) {
		t.Errorf("%s was not less than %s", a, b)
	}
}
