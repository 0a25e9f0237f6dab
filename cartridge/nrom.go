package cartridge

import "github.com/kestrelnes/nescore/rom"

func init() {
	RegisterMapper(0, newNROM)
}

const (
	nromPRGRAMSize = 0x2000
	nromCHRRAMSize = 0x2000
)

// nrom is mapper 0. PRG reads above $8000 wrap modulo the cartridge's PRG
// size the way jyane-jnes's mapper0.ReadFromCPU does ((address-0x8000)%len),
// which correctly mirrors NROM-128's 16 KB bank into both halves of the
// $8000-$FFFF window; bdwalton's mapper0.MemRead calls the equivalent
// nesrom.PrgRead but discards its return value in every branch, always
// falling through to `return 0` -- that bug is not reproduced here.
type nrom struct {
	prg []byte
	chr []byte

	prgRAM    []byte
	hasCHRRAM bool

	mirror uint8
}

func newNROM(r *rom.ROM) Mapper {
	m := &nrom{
		prg:    r.PRG,
		mirror: r.MirroringMode(),
		prgRAM: make([]byte, nromPRGRAMSize),
	}
	if len(r.CHR) == 0 {
		m.chr = make([]byte, nromCHRRAMSize)
		m.hasCHRRAM = true
	} else {
		m.chr = r.CHR
	}
	return m
}

func (m *nrom) Name() string { return "NROM" }

func (m *nrom) CPURead(addr uint16) byte {
	switch {
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000]
	default:
		return 0
	}
}

func (m *nrom) CPUWrite(addr uint16, val byte) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF are no-ops: NROM has no registers and PRG ROM
	// isn't writable.
}

func (m *nrom) PPURead(addr uint16) byte {
	return m.chr[addr%uint16(len(m.chr))]
}

func (m *nrom) PPUWrite(addr uint16, val byte) {
	if m.hasCHRRAM {
		m.chr[addr%uint16(len(m.chr))] = val
	}
}

func (m *nrom) MirroringMode() uint8 { return m.mirror }

func (m *nrom) Reset() {}

func (m *nrom) PollIRQ() bool { return false }
