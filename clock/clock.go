// Package clock implements the master PPU-cycle counter the rest of the
// core reads its timing off of. The CPU never keeps its own cycle count;
// it divides this one by three.
package clock

// Clock is a monotonic PPU-dot counter. One NTSC frame is 341*262 = 89,342
// PPU cycles (89,341 on a rendering-enabled odd frame, which skips dot 0 of
// scanline 0).
type Clock struct {
	PPUCycles uint64
}

// New returns a Clock at power-on (cycle 0).
func New() *Clock {
	return &Clock{}
}

// Advance moves the clock forward by one PPU dot.
func (c *Clock) Advance() {
	c.PPUCycles++
}

// CPUCycles derives the CPU's cycle count from the PPU count; the CPU runs
// at exactly 1/3 the PPU rate.
func (c *Clock) CPUCycles() uint64 {
	return c.PPUCycles / 3
}

// AtCPUBoundary reports whether the current PPU cycle is one on which the
// CPU should also advance (every 3rd PPU dot, checked before Advance is
// called for this dot).
func (c *Clock) AtCPUBoundary() bool {
	return c.PPUCycles%3 == 0
}
