package clock

import "testing"

func TestCPUCyclesDividesByThree(t *testing.T) {
	c := New()
	for i := uint64(0); i < 30; i++ {
		if got, want := c.CPUCycles(), i/3; got != want {
			t.Errorf("at ppu cycle %d: CPUCycles() = %d, want %d", i, got, want)
		}
		c.Advance()
	}
}

func TestAtCPUBoundary(t *testing.T) {
	c := New()
	for i := uint64(0); i < 12; i++ {
		want := i%3 == 0
		if got := c.AtCPUBoundary(); got != want {
			t.Errorf("at ppu cycle %d: AtCPUBoundary() = %v, want %v", i, got, want)
		}
		c.Advance()
	}
}
