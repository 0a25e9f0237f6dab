package ppu

// Scroll register bit-twiddling, formulas taken verbatim from jyane-jnes's
// nes.PPU (incrementCoarseX/incrementY/copyX/copyY), which implements
// https://www.nesdev.org/wiki/PPU_scrolling exactly; there's no idiomatic
// alternative rendering of these, they're just the wiring the hardware's v
// register demands.

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &= 0x8FFF
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800
		case 31:
			y = 0
		default:
			y++
		}
		p.v = (p.v & 0xFC1F) | (y << 5)
	}
}

func (p *PPU) copyX() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

func (p *PPU) copyY() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}
