// Package bus implements the shared CPU-side address space: 2KB RAM with
// its mirror, the $2000-$3FFF PPU register mirror, APU register routing,
// the $4014 OAM DMA trigger, controller shift-register I/O, and open-bus
// tracking for every address the CPU touches. Grounded structurally on
// console/bus.go's Read/Write address-range switch (the real, wired-up
// Bus, not the orphaned console/cpu_memory.go duplicate documented as
// dropped in DESIGN.md) and on jyane-jnes's nes/cpubus.go for the cleaner
// separate readPPURegister/writeToPPURegisters helper split this package
// follows instead of bdwalton's single inline switch arm per register.
//
// Unlike both reference buses, open-bus is modeled explicitly (spec.md
// section 4.4 and the testable property in section 8: "open-bus equals the
// last value transferred over the CPU bus"), and the $4014 OAM DMA trigger
// starts a cycle-accurate dma.OAM sequencer instead of bdwalton's
// instantaneous copy loop.
package bus

import (
	"github.com/golang/glog"

	"github.com/kestrelnes/nescore/apu"
	"github.com/kestrelnes/nescore/cartridge"
	"github.com/kestrelnes/nescore/clock"
	"github.com/kestrelnes/nescore/controller"
	"github.com/kestrelnes/nescore/dma"
	"github.com/kestrelnes/nescore/ppu"
)

const ramSize = 0x0800

// Bus is the CPU's view of the machine: RAM plus every device the CPU
// address space routes to. It holds no PPU/CPU-independent state of its
// own beyond RAM and the open-bus latch; everything else is a pointer to
// a subsystem the emu package also owns directly.
type Bus struct {
	ram     [ramSize]byte
	openBus byte

	PPU        *ppu.PPU
	APU        *apu.APU
	Cart       cartridge.Mapper
	Controller *controller.Controller
	OAMDMA     *dma.OAM
	Clock      *clock.Clock
}

// New wires a Bus to the subsystems it routes between. All of them must
// already exist; Bus never constructs a subsystem itself, matching
// SPEC_FULL.md's "no subsystem owns a pointer back to the whole" rule (the
// emu package is the only thing that owns everything).
func New(cart cartridge.Mapper, p *ppu.PPU, a *apu.APU, ctrl *controller.Controller, oamDMA *dma.OAM, clk *clock.Clock) *Bus {
	return &Bus{
		PPU:        p,
		APU:        a,
		Cart:       cart,
		Controller: ctrl,
		OAMDMA:     oamDMA,
		Clock:      clk,
	}
}

// Read services a CPU memory access, per spec.md section 4.4's address
// map. Every read updates open-bus with the value returned, including
// reads that themselves fall through to open-bus (a no-op in that case).
func (b *Bus) Read(addr uint16) byte {
	var val byte
	switch {
	case addr < 0x2000:
		val = b.ram[addr&0x07FF]
	case addr < 0x4000:
		val = b.PPU.ReadRegister(0x2000 + addr&0x0007)
	case addr == 0x4015:
		val = b.APU.ReadStatus()
	case addr == 0x4016:
		val = (b.openBus &^ 0x01) | b.Controller.Read(0)&0x01
	case addr == 0x4017:
		val = (b.openBus &^ 0x01) | b.Controller.Read(1)&0x01
	case addr >= 0x4020:
		val = b.Cart.CPURead(addr)
	default:
		// $4000-$4013/$4014/$4018-$401F: write-only or unimplemented
		// registers read back as open bus, matching real hardware.
		glog.V(2).Infof("bus: read of write-only/unmapped $%04X returns open bus", addr)
		val = b.openBus
	}
	b.openBus = val
	return val
}

// Write services a CPU memory write.
func (b *Bus) Write(addr uint16, val byte) {
	b.openBus = val
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+addr&0x0007, val)
	case addr == 0x4014:
		b.OAMDMA.Trigger(val, b.Clock.CPUCycles())
	case addr == 0x4016:
		b.Controller.Write(val)
	case (addr >= 0x4000 && addr <= 0x4013) || addr == 0x4015 || addr == 0x4017:
		b.APU.WriteRegister(addr, val)
	case addr >= 0x4020:
		b.Cart.CPUWrite(addr, val)
	default:
		glog.V(2).Infof("bus: write to unmapped $%04X ($%02X) dropped", addr, val)
	}
}

// OpenBus reports the last value transferred over the CPU bus, the
// testable invariant spec.md section 8 item 1 names directly.
func (b *Bus) OpenBus() byte {
	return b.openBus
}
