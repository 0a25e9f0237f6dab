// Package ppu implements the RP2C02 dot/scanline pipeline: background tile
// shift registers, sprite evaluation and fetch, the pixel priority mux, and
// the register side effects software observes through $2000-$2007.
//
// Structurally grounded on jyane-jnes's nes.PPU.Step as the per-cycle
// driver (its cycle%8 fetch schedule, scanline/cycle increment, and where
// copyX/copyY/incrementY fire), generalized from jyane's 2-fetch-cycle
// tileDataBuffer latch into real 16-bit/8-bit background shift registers,
// and from jyane's simple 9th-sprite overflow check into the hardware's
// diagonal overflow bug (ppu/sprites.go). Register address constants and
// the OAM attribute-byte layout are adapted from the teacher's ppu/ppu.go
// and ppu/oam.go. VBlank state is NOT a bare bool here (unlike both
// reference PPUs): it's delegated entirely to vblank.Ledger, the single
// source of truth spec.md section 9 calls for.
package ppu

import "github.com/kestrelnes/nescore/vblank"

// Cartridge is the PPU-facing half of cartridge.Mapper.
type Cartridge interface {
	PPURead(addr uint16) byte
	PPUWrite(addr uint16, val byte)
	MirroringMode() uint8
}

// Register addresses, named the way the teacher's ppu/ppu.go constants are.
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
)

// Mirroring modes, mirrored from the rom package's Header constants so
// callers don't need to import rom just to pass a mirroring mode in.
const (
	MirrorHorizontal = 0
	MirrorVertical   = 1
	MirrorFourScreen = 2
)

// PPU is the picture processing unit.
type PPU struct {
	cart   Cartridge
	vblank *vblank.Ledger
	vram   [0x0800]byte // 2KB internal nametable RAM

	onA12Rise func()
	lastA12   byte

	primaryOAM      [256]byte
	secondaryOAM    [32]byte // 8 sprites x 4 bytes
	secondaryOrigIndex [8]int
	secondaryCount  int
	oamAddr         byte
	spriteOverflow  bool
	spriteZeroHit   bool

	paletteRAM paletteRAM

	v, t uint16
	x    byte
	w    bool
	buffer byte

	// $2000
	nameTableFlag       byte
	vramIncrementFlag   byte
	spriteTableFlag     byte
	backgroundTableFlag byte
	spriteSizeFlag      byte
	nmiEnable           bool

	// $2001
	showLeftBackground bool
	showLeftSprite     bool
	showBackground     bool
	showSprite         bool

	// $2002 open-bus low bits, latched from the last register write
	staleBus byte

	// background pipeline: 16-bit pattern shift registers, 8-bit
	// attribute shift registers (replaces jyane's tileDataBuffer[6]
	// 2-cycle-delayed latch with the real hardware's continuously-
	// shifting registers).
	patternLo, patternHi uint16
	attrLo, attrHi       byte
	attrLatchLo, attrLatchHi byte

	nameTableByte      byte
	attributeTableByte byte
	lowTileByte        byte
	highTileByte       byte

	cycle, scanline int
	frameOdd        bool
	frameCount      uint64

	// warmedUp gates PPUCTRL/PPUMASK from taking effect for the first
	// 29,658 CPU cycles after power-on; the orchestrator (emu) owns the
	// CPU-cycle count and calls CompleteWarmup once, at which point the
	// last write to each buffered register (if any) is applied.
	warmedUp        bool
	ctrlBuffered    bool
	maskBuffered    bool
	bufferedCtrl    byte
	bufferedMask    byte
}

// New returns a power-on PPU. ledger is the VBlank single source of truth;
// cart is the cartridge supplying pattern-table data and mirroring mode;
// onA12Rise, if non-nil, is called whenever the PPU address bus's bit 12
// transitions 0->1 (the signal MMC3-style mapper IRQ counters key off of).
func New(cart Cartridge, ledger *vblank.Ledger, onA12Rise func()) *PPU {
	p := &PPU{cart: cart, vblank: ledger, onA12Rise: onA12Rise, scanline: 261}
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	return p
}

// FrameCount reports how many complete frames have been rendered since
// power-on, the signal the emu orchestrator's RunFrame uses to detect the
// scanline-261-dot-340 frame boundary spec.md section 6 names.
func (p *PPU) FrameCount() uint64 {
	return p.frameCount
}

func (p *PPU) nametableRead(addr uint16) byte {
	return p.vram[mirrorVRAMAddr(addr, p.cart.MirroringMode())]
}

func (p *PPU) nametableWrite(addr uint16, val byte) {
	p.vram[mirrorVRAMAddr(addr, p.cart.MirroringMode())] = val
}

func mirrorVRAMAddr(addr uint16, mode uint8) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / 0x0400
	offset := a % 0x0400
	switch mode {
	case MirrorVertical:
		return (table%2)*0x0400 + offset
	case MirrorHorizontal:
		return (table/2)*0x0400 + offset
	default: // four-screen: no cartridge VRAM is modeled, so the four tables
		// fold onto the same 2KB exactly as vertical mirroring does.
		return (table%2)*0x0400 + offset
	}
}

// busRead services a PPU-bus address in $0000-$3EFF, dispatching pattern
// table reads to the cartridge and tracking the A12 toggle for mapper IRQ
// counters along the way.
func (p *PPU) busRead(addr uint16) byte {
	addr &= 0x3FFF
	p.trackA12(addr)
	switch {
	case addr < 0x2000:
		return p.cart.PPURead(addr)
	case addr < 0x3F00:
		return p.nametableRead(addr)
	default:
		return p.paletteRAM.read(addr)
	}
}

func (p *PPU) busWrite(addr uint16, val byte) {
	addr &= 0x3FFF
	p.trackA12(addr)
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.nametableWrite(addr, val)
	default:
		p.paletteRAM.write(addr, val)
	}
}

func (p *PPU) trackA12(addr uint16) {
	bit := byte((addr >> 12) & 1)
	if bit == 1 && p.lastA12 == 0 && p.onA12Rise != nil {
		p.onA12Rise()
	}
	p.lastA12 = bit
}
