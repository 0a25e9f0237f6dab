package ppu

import (
	"testing"

	"github.com/kestrelnes/nescore/vblank"
)

type fakeCart struct {
	chr    [0x2000]byte
	mirror uint8
}

func (f *fakeCart) PPURead(addr uint16) byte     { return f.chr[addr] }
func (f *fakeCart) PPUWrite(addr uint16, v byte) { f.chr[addr] = v }
func (f *fakeCart) MirroringMode() uint8         { return f.mirror }

func newTestPPU() (*PPU, *fakeCart) {
	cart := &fakeCart{mirror: MirrorHorizontal}
	p := New(cart, vblank.New(), nil)
	p.warmedUp = true
	return p, cart
}

// runUntilNMI steps the PPU until NMILine() goes true, failing the test if
// that doesn't happen within one full frame.
func runUntilNMI(t *testing.T, p *PPU) {
	t.Helper()
	for i := 0; i < 89342; i++ {
		if p.NMILine() {
			return
		}
		p.Step(nil)
	}
	t.Fatal("NMI line never asserted within one frame")
}

func TestVBlankSetsAtScanline241Cycle1(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(PPUCTRL, 0x80) // enable NMI
	runUntilNMI(t, p)
	if p.scanline != 241 || p.cycle != 2 {
		t.Errorf("NMI asserted at scanline=%d cycle=%d, want scanline=241 cycle=2 (one past the set dot)", p.scanline, p.cycle)
	}
}

func TestPPUSTATUSReadClearsVBlank(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(PPUCTRL, 0x80)
	runUntilNMI(t, p)
	if !p.NMILine() {
		t.Fatal("precondition: NMI should be asserted")
	}
	status := p.ReadRegister(PPUSTATUS)
	if status&0x80 == 0 {
		t.Fatal("PPUSTATUS read should report VBlank bit set")
	}
	if p.NMILine() {
		t.Fatal("reading PPUSTATUS should clear VBlank and drop the NMI line")
	}
}

func TestMirrorVRAMAddrHorizontal(t *testing.T) {
	if mirrorVRAMAddr(0x2000, MirrorHorizontal) != mirrorVRAMAddr(0x2400, MirrorHorizontal) {
		t.Error("horizontal mirroring should map nametables 0 and 1 to the same physical table")
	}
	if mirrorVRAMAddr(0x2000, MirrorHorizontal) == mirrorVRAMAddr(0x2800, MirrorHorizontal) {
		t.Error("nametables 0 and 2 should NOT alias under horizontal mirroring")
	}
}

func TestMirrorVRAMAddrVertical(t *testing.T) {
	a := mirrorVRAMAddr(0x2000, MirrorVertical)
	b := mirrorVRAMAddr(0x2800, MirrorVertical)
	if a != b {
		t.Error("vertical mirroring should map nametables 0 and 2 to the same physical table")
	}
}

func TestOAMReadWriteRoundtrip(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(OAMADDR, 0x10)
	p.WriteRegister(OAMDATA, 0x42)
	p.WriteRegister(OAMADDR, 0x10)
	if got := p.ReadRegister(OAMDATA); got != 0x42 {
		t.Errorf("OAMDATA readback = %#02x, want 0x42", got)
	}
}

func TestPPUDATAWriteReadThroughPalette(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(PPUADDR, 0x3F)
	p.WriteRegister(PPUADDR, 0x00)
	p.WriteRegister(PPUDATA, 0x16)
	if got := p.paletteRAM.read(0x3F00); got != 0x16 {
		t.Errorf("paletteRAM[0] = %#02x, want 0x16", got)
	}
}

func TestScrollWriteSetsCoarseXAndFineX(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(PPUSCROLL, 0x7D) // 0111 1101: coarse X=15, fine X=5
	if p.x != 5 {
		t.Errorf("fine x = %d, want 5", p.x)
	}
	if p.t&0x1F != 15 {
		t.Errorf("coarse X in t = %d, want 15", p.t&0x1F)
	}
}

func TestOAMDMAWriteAdvancesAddr(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(OAMADDR, 0x00)
	p.OAMDMAWrite(0x11)
	p.OAMDMAWrite(0x22)
	if p.primaryOAM[0] != 0x11 || p.primaryOAM[1] != 0x22 {
		t.Fatal("OAMDMAWrite should write sequentially starting at OAMADDR")
	}
}
