package controller

import "testing"

func TestReadBitsOutInOrder(t *testing.T) {
	c := New()
	c.UpdateButtons(ButtonA|ButtonStart, 0)
	c.Write(1) // strobe high: latch
	c.Write(0) // strobe low: start shifting

	want := []byte{1, 0, 0, 1, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if got := c.Read(0); got != w {
			t.Errorf("bit %d: Read(0) = %d, want %d", i, got, w)
		}
	}
}

func TestReadPastEighthBitReturnsOne(t *testing.T) {
	c := New()
	c.UpdateButtons(0xFF, 0)
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read(0)
	}
	for i := 0; i < 3; i++ {
		if got := c.Read(0); got != 1 {
			t.Errorf("Read(0) past bit 8 = %d, want 1", got)
		}
	}
}

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.UpdateButtons(ButtonA, 0)
	c.Write(1)
	if got := c.Read(0); got != 1 {
		t.Errorf("Read(0) with strobe high = %d, want 1", got)
	}
	if got := c.Read(0); got != 1 {
		t.Errorf("repeated Read(0) with strobe high = %d, want 1 (no shifting while strobe is held)", got)
	}
}

func TestPortsAreIndependent(t *testing.T) {
	c := New()
	c.UpdateButtons(ButtonA, ButtonB)
	c.Write(1)
	c.Write(0)
	if got := c.Read(0); got != 1 {
		t.Errorf("Read(0) = %d, want 1 (A pressed on port 0)", got)
	}
	if got := c.Read(1); got != 0 {
		t.Errorf("Read(1) = %d, want 0 (A not pressed on port 1)", got)
	}
}
