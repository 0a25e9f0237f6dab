// Package cpu implements the RP2A03's 6502-derived state machine: one bus
// access per CPU cycle, 256 opcodes dispatched through a fixed table, and
// each opcode's arithmetic expressed as a pure function of (state, operand)
// returning a Delta the microstep layer applies. Grounded structurally on
// the teacher's mos6502 package for opcode naming, flag constants, and the
// arithmetic itself (addWithOverflow, baseCMP, the ASL/LSR/ROL/ROR
// RMW/flag patterns); the teacher's reflection-based atomic step() and its
// cycles-remaining countdown are replaced entirely by the microstep queue
// below, since the source dispatches a whole instruction on one Step call
// and that's incompatible with cycle-exact bus timing.
package cpu

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Processor status flags, named and valued exactly as the teacher's
// mos6502.STATUS_FLAG_* constants.
const (
	FlagCarry     = 1 << 0
	FlagZero      = 1 << 1
	FlagInterrupt = 1 << 2
	FlagDecimal   = 1 << 3
	FlagBreak     = 1 << 4
	FlagUnused    = 1 << 5
	FlagOverflow  = 1 << 6
	FlagNegative  = 1 << 7
)

// Interrupt vectors.
const (
	VectorNMI   = 0xFFFA
	VectorReset = 0xFFFC
	VectorIRQ   = 0xFFFE
	VectorBRK   = VectorIRQ
)

const stackPage = 0x0100

// execState is the coarse state machine position SPEC_FULL.md names:
// interrupt_sequence, fetch_opcode, fetch_operand_low, execute. This
// implementation coalesces fetch_operand_low/execute into a queue of
// per-cycle microsteps built once at decode time (see schedule.go); each
// Step() call still performs exactly one bus access, so cycle-exactness is
// preserved even though the two states share a single internal
// representation.
type execState uint8

const (
	stateFetchOpcode execState = iota
	stateMicrostep
	stateInterrupt
)

type interruptKind uint8

const (
	intNone interruptKind = iota
	intNMI
	intIRQ
	intReset
)

// BusPort is everything the CPU needs from the rest of the machine. The
// bus package is the implementation; cpu never imports it, matching
// SPEC_FULL.md's "no subsystem points back" rule.
type BusPort interface {
	Read(addr uint16) byte
	Write(addr uint16, val byte)
}

// State is all CPU-owned state, exported so tests and a future debugger
// can inspect it directly without a getter per field.
type State struct {
	A, X, Y, SP byte
	PC          uint16
	P           byte

	exec execState

	opcode          byte
	mode            byte
	class           instrClass
	instructionCycle int
	queue           []microstep

	operandLow, operandHigh byte
	tempValue               byte
	effectiveAddress        uint16
	tempAddress             uint16
	pageCrossed             bool
	dataBus                 byte

	pendingInterrupt interruptKind
	nmiLine          bool
	previousNMILine  bool
	irqLine          bool
	halted           bool
}

// microstep is one bus access plus whatever bookkeeping it performs; it
// returns true when it was the last step of the instruction.
type microstep func(c *State, bus BusPort) (done bool)

// New returns a CPU in its power-on state (teacher's mos6502.New: SP=0xFD,
// P = unused|break|interrupt-disable, PC loaded from the reset vector).
func New(bus BusPort) *State {
	c := &State{
		SP: 0xFD,
		P:  FlagUnused | FlagBreak | FlagInterrupt,
	}
	c.PC = read16(bus, VectorReset)
	return c
}

// SetNMILine updates the level the PPU drives; edge detection happens
// inside Step, sampled once per CPU cycle as SPEC_FULL.md requires.
func (c *State) SetNMILine(asserted bool) { c.nmiLine = asserted }

// SetIRQLine updates the level-triggered IRQ line (APU frame/DMC IRQ,
// mapper IRQ, wired together by the bus/cartridge before calling this).
func (c *State) SetIRQLine(asserted bool) { c.irqLine = asserted }

// Halted reports whether a JAM/KIL opcode has stopped the CPU; only Reset
// recovers from this.
func (c *State) Halted() bool { return c.halted }

// Reset performs the teacher's mos6502.reset(): interrupt-disable and the
// (already-always-on) unused flag are forced on, PC reloads from the reset
// vector. SP is not touched here, and nothing else in this core emulates
// the 3-cycle reset stack glitch either; Reset leaves SP untouched, matching the teacher instead of
// jmchacon's SP-=3 variant, since nothing in SPEC_FULL.md calls for the
// stack-glitch behavior.
func (c *State) Reset(bus BusPort) {
	c.P |= FlagInterrupt | FlagUnused
	c.PC = read16(bus, VectorReset)
	c.halted = false
	c.exec = stateFetchOpcode
	c.queue = nil
}

// Step advances the CPU by exactly one cycle, performing at most one bus
// access, matching SPEC_FULL.md's "no opcode executed atomically"
// requirement.
func (c *State) Step(bus BusPort) {
	if c.halted {
		return
	}

	edge := c.nmiLine && !c.previousNMILine
	c.previousNMILine = c.nmiLine
	if edge {
		c.pendingInterrupt = intNMI
	} else if c.irqLine && c.P&FlagInterrupt == 0 && c.pendingInterrupt == intNone {
		c.pendingInterrupt = intIRQ
	}

	switch c.exec {
	case stateFetchOpcode:
		c.fetchOpcode(bus)
	case stateMicrostep:
		c.runMicrostep(bus)
	case stateInterrupt:
		c.runMicrostep(bus)
	}
}

func (c *State) fetchOpcode(bus BusPort) {
	if c.pendingInterrupt != intNone {
		// Hijack the fetch: dummy read at PC, PC not advanced.
		_ = bus.Read(c.PC)
		kind := c.pendingInterrupt
		c.pendingInterrupt = intNone
		c.queue = interruptSequence(kind)
		c.instructionCycle = 0
		c.exec = stateInterrupt
		return
	}

	c.opcode = bus.Read(c.PC)
	c.PC++
	entry := opcodeTable[c.opcode]
	c.mode = entry.mode
	c.class = entry.class

	if entry.class == clsJam {
		glog.V(1).Infof("cpu: JAM opcode %#02x at PC=%#04x, halting", c.opcode, c.PC-1)
		c.halted = true
		return
	}

	c.queue = buildSchedule(entry)
	c.instructionCycle = 0
	if len(c.queue) == 0 {
		// Shouldn't happen; every table entry produces at least one
		// microstep. Guard per SPEC_FULL.md's "impossible state"
		// convention.
		glog.Fatalf("cpu: opcode %#02x produced an empty microstep schedule", c.opcode)
	}
	// The opcode byte fetch above is itself one full CPU cycle; the
	// schedule's first microstep runs on the next Step call, not this
	// one, so an N-microstep schedule takes N+1 external Step calls in
	// total, matching the official cycle-count table.
	c.exec = stateMicrostep
}

func (c *State) runMicrostep(bus BusPort) {
	if c.instructionCycle >= len(c.queue) {
		glog.Fatalf("cpu: instruction_cycle %d out of range for opcode %#02x (mode %d)", c.instructionCycle, c.opcode, c.mode)
	}
	step := c.queue[c.instructionCycle]
	c.instructionCycle++
	done := step(c, bus)
	if done {
		c.queue = nil
		c.instructionCycle = 0
		c.exec = stateFetchOpcode
	}
}

func read16(bus BusPort, addr uint16) uint16 {
	lo := uint16(bus.Read(addr))
	hi := uint16(bus.Read(addr + 1))
	return hi<<8 | lo
}

func (c *State) push(bus BusPort, val byte) {
	bus.Write(stackPage+uint16(c.SP), val)
	c.SP--
}

func (c *State) pull(bus BusPort) byte {
	c.SP++
	return bus.Read(stackPage + uint16(c.SP))
}

// String renders "PC A X Y SP P" plus flag letters, matching the
// teacher's statusString/flagMap convention (N V - B D I Z C, dash for
// the always-on unused bit, dot when clear).
func (c *State) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s", c.PC, c.A, c.X, c.Y, c.SP, flagString(c.P))
}

func flagString(p byte) string {
	var sb strings.Builder
	flags := []struct {
		mask byte
		ch   byte
	}{
		{FlagNegative, 'N'},
		{FlagOverflow, 'V'},
		{FlagUnused, '-'},
		{FlagBreak, 'B'},
		{FlagDecimal, 'D'},
		{FlagInterrupt, 'I'},
		{FlagZero, 'Z'},
		{FlagCarry, 'C'},
	}
	for _, f := range flags {
		if f.mask == FlagUnused {
			sb.WriteByte('-')
			continue
		}
		if p&f.mask != 0 {
			sb.WriteByte(f.ch)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func setNZ(p byte, v byte) byte {
	p &^= FlagZero | FlagNegative
	if v == 0 {
		p |= FlagZero
	}
	if v&0x80 != 0 {
		p |= FlagNegative
	}
	return p
}
