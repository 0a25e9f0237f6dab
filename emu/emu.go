// Package emu is the composition root: it owns every subsystem in one flat
// EmulationState aggregate and drives them with a single Tick() call per
// spec.md section 2's "ownership is flat... there are no subsystem-owned
// pointers back into the whole" requirement. Structurally grounded on
// console/bus.go's Run(ctx) loop (ppu.Tick() every iteration, cpu.Tick()
// every 3rd), restructured from an internal goroutine/channel-cancellation
// loop into the single explicit Tick() call spec.md section 5 requires
// ("no internal threading, no suspension... a host may run the core in a
// dedicated thread"): the host decides when and how often to call it.
package emu

import (
	"github.com/kestrelnes/nescore/apu"
	"github.com/kestrelnes/nescore/bus"
	"github.com/kestrelnes/nescore/cartridge"
	"github.com/kestrelnes/nescore/clock"
	"github.com/kestrelnes/nescore/controller"
	"github.com/kestrelnes/nescore/cpu"
	"github.com/kestrelnes/nescore/dma"
	"github.com/kestrelnes/nescore/ppu"
	"github.com/kestrelnes/nescore/rom"
	"github.com/kestrelnes/nescore/vblank"
)

// warmupCPUCycles is the CPU-cycle count at which the real PPU starts
// honoring PPUCTRL/PPUMASK writes (spec.md section 4.3).
const warmupCPUCycles = 29658

// EmulationState aggregates every piece of machine state: CPU, PPU, APU,
// cartridge, bus RAM, both DMA controllers, the master clock, and the
// VBlank/DMA-interaction ledgers. No subsystem holds a pointer back to
// this struct or to any sibling; everything is driven from here.
type EmulationState struct {
	Clock     *clock.Clock
	VBlank    *vblank.Ledger
	DMALedger *dma.Ledger

	Cart cartridge.Mapper
	Bus  *bus.Bus

	CPU  *cpu.State
	PPU  *ppu.PPU
	APU  *apu.APU
	OAM  *dma.OAM
	DMC  *dma.DMC

	Controller *controller.Controller

	// Framebuffer is the 256x240 palette-index target the PPU writes one
	// pixel to per visible dot. Hosts convert through palette.RGBA.
	Framebuffer ppu.Framebuffer

	// DebugHalt, if set, is queried before every CPU cycle; returning
	// true freezes the CPU for that cycle without otherwise affecting
	// PPU/APU/DMA advance. Not driven by anything in this package; a
	// future debugger wires it in. Per spec.md section 6, not part of
	// the MVP core surface.
	DebugHalt func() bool

	warmupComplete   bool
	dmcWasActive     bool
	dmcJustCompleted bool
}

// New constructs a powered-on machine for the given cartridge ROM image.
// It fails only if the ROM declares a mapper with no registered
// implementation (spec.md section 7's UnsupportedMapper).
func New(r *rom.ROM) (*EmulationState, error) {
	cart, err := cartridge.Get(r)
	if err != nil {
		return nil, err
	}

	e := &EmulationState{
		Clock:      clock.New(),
		VBlank:     vblank.New(),
		DMALedger:  dma.NewLedger(),
		Cart:       cart,
		OAM:        dma.NewOAM(),
		DMC:        dma.NewDMC(),
		Controller: controller.New(),
	}
	e.APU = apu.New(e.triggerDMC)
	e.PPU = ppu.New(cart, e.VBlank, e.tickMapperA12)
	e.Bus = bus.New(cart, e.PPU, e.APU, e.Controller, e.OAM, e.Clock)
	e.CPU = cpu.New(e.Bus)
	return e, nil
}

// LoadROM is a convenience wrapper combining rom.New and New, for hosts
// that just have a file path.
func LoadROM(path string) (*EmulationState, error) {
	r, err := rom.New(path)
	if err != nil {
		return nil, err
	}
	return New(r)
}

// triggerDMC is the apu.DMCTrigger hook wired in at construction: the APU
// calls this when its DMC channel needs its next sample byte. It only
// starts the stall; OAM pause/resume arbitration happens in stepCPU's
// activation-edge handling, matching spec.md section 4.1's ordering.
func (e *EmulationState) triggerDMC(addr uint16) {
	e.DMC.Trigger(addr, e.Clock.CPUCycles(), e.DMALedger)
}

// tickMapperA12 is the ppu.onA12Rise hook: it forwards the PPU address
// bus's A12 rising edge to the cartridge's scanline IRQ counter, if the
// mapper implements one. NROM doesn't, so this is a no-op for the only
// mapper this core ships with; the hook exists for spec.md section 9's
// "interface designed for more" requirement.
func (e *EmulationState) tickMapperA12() {
	if t, ok := e.Cart.(cartridge.A12Ticker); ok {
		t.TickA12()
	}
}

// Reset performs a soft reset: the cartridge's own register state resets
// (a no-op for NROM), then the CPU reloads PC from the reset vector.
func (e *EmulationState) Reset() {
	e.Cart.Reset()
	e.CPU.Reset(e.Bus)
}

// Tick advances the entire machine by exactly one PPU dot, the finest
// shared granularity spec.md section 2 calls for. Ordering within one
// call follows spec.md section 4.1 exactly: PPU dot advance first (so any
// VBlank/A12 side effect it produces is visible to the CPU step in the
// same tick), then a CPU cycle on every third dot, then the mapper IRQ
// line is refreshed for whichever CPU cycle comes next.
func (e *EmulationState) Tick() {
	cpuBoundary := e.Clock.AtCPUBoundary()

	e.PPU.Step(&e.Framebuffer)

	if cpuBoundary {
		e.stepCPU()
	}

	e.Clock.Advance()

	e.CPU.SetIRQLine(e.APU.IRQLine() || e.Cart.PollIRQ())
}

// stepCPU performs exactly one CPU-rate cycle's worth of work: interrupt
// line refresh, PPU warmup completion, DMC/OAM DMA arbitration, and at
// most one CPU microstep. Every early return below corresponds to a bullet
// in spec.md section 4.1's "CPU cycle" list, in the same order.
func (e *EmulationState) stepCPU() {
	cpuCycle := e.Clock.CPUCycles()

	e.APU.Step()

	e.CPU.SetNMILine(e.PPU.NMILine())
	e.CPU.SetIRQLine(e.APU.IRQLine() || e.Cart.PollIRQ())

	if !e.warmupComplete && cpuCycle >= warmupCPUCycles {
		e.PPU.CompleteWarmup()
		e.warmupComplete = true
	}

	if e.CPU.Halted() {
		return
	}
	if e.DebugHalt != nil && e.DebugHalt() {
		return
	}

	if e.dmcJustCompleted {
		e.DMC.Complete(e.DMALedger, cpuCycle)
		if e.OAM.Paused() {
			e.OAM.Resume(e.DMALedger, cpuCycle)
		}
		e.dmcJustCompleted = false
	}

	if e.DMC.Active && !e.dmcWasActive {
		if e.OAM.Active && !e.OAM.Paused() {
			e.OAM.Pause(e.DMALedger, cpuCycle)
		}
	}
	e.dmcWasActive = e.DMC.Active

	if e.DMC.Active {
		if _, done := e.DMC.Tick(e.Bus); done {
			e.APU.NotifyDMCByteConsumed()
			e.dmcJustCompleted = true
		}
		return
	}

	if e.OAM.Active && !e.OAM.Paused() {
		e.OAM.Tick(e.Bus, e.PPU, e.DMALedger)
		return
	}

	e.CPU.Step(e.Bus)
}

// RunFrame advances the machine until the PPU reports a new completed
// frame (spec.md section 6's "frame_complete" signal, scanline 261 dot
// 340), a convenience wrapper for hosts that don't need per-dot control.
func (e *EmulationState) RunFrame() {
	start := e.PPU.FrameCount()
	for e.PPU.FrameCount() == start {
		e.Tick()
	}
}
