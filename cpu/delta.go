package cpu

// Delta is what a pure opcode function hands back to the microstep layer:
// the register/flag changes and, for accumulator/RMW opcodes, the new
// value to store. SPEC_FULL.md's "pure function + Delta" model -- the
// arithmetic in readOps/rmwOps/impliedOps never touches a bus or *State
// directly, which is what makes them testable standalone (cpu_test.go
// itself drives whole instructions through Step).
type Delta struct {
	A, X, Y, SP byte
	SetA, SetX, SetY, SetSP bool

	P    byte
	SetP bool

	PC    uint16
	SetPC bool

	Value byte // RMW/accumulator result; unused by other classes
}

func applyDelta(c *State, bus BusPort, d Delta) {
	if d.SetA {
		c.A = d.A
	}
	if d.SetX {
		c.X = d.X
	}
	if d.SetY {
		c.Y = d.Y
	}
	if d.SetSP {
		c.SP = d.SP
	}
	if d.SetP {
		c.P = d.P
	}
	if d.SetPC {
		c.PC = d.PC
	}
}
