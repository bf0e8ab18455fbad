package clock

import "testing"

func TestManualClockAdvanceIsMonotonic(t *testing.T) {
	c := NewManualClock(1000)
	if got := c.Now(); got != 1000 {
		t.Fatalf("got %d want 1000", got)
	}
	if got := c.Advance(30); got != 1030 {
		t.Fatalf("got %d want 1030", got)
	}
	if got := c.Advance(-5); got != 1030 {
		t.Fatalf("negative advance should be a no-op, got %d", got)
	}
}
