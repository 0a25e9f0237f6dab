package ppu

// Framebuffer holds one NES color index (0-63) per pixel, addressed
// [y*256+x]; the host converts each index through palette.RGBA.
type Framebuffer [256 * 240]byte

// Step advances the PPU by one PPU-rate cycle (three times per CPU cycle),
// mirroring jyane-jnes's nes.PPU.Step as the structural template: the
// rendering/fetch logic first (gated on background or sprite rendering
// being enabled), then sprite evaluation, then VBlank set/clear, and the
// cycle and scanline bookkeeping last. fb receives
// the rendered pixel for visible dots; it may be nil in non-rendering
// tests.
func (p *PPU) Step(fb *Framebuffer) {
	renderingEnabled := p.showBackground || p.showSprite
	preRender := p.scanline == 261
	visibleLine := p.scanline < 240

	if renderingEnabled && (visibleLine || preRender) {
		if p.cycle >= 1 && p.cycle <= 256 {
			p.shiftBackgroundRegisters()
			if visibleLine && fb != nil {
				p.renderPixel(fb)
			}
		}
		p.runFetchSchedule()
		if p.cycle == 257 {
			p.copyX()
		}
		if preRender && p.cycle >= 280 && p.cycle <= 304 {
			p.copyY()
		}
	}

	if p.cycle == 257 {
		if visibleLine {
			p.evaluateSprites()
		} else {
			p.secondaryCount = 0
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.vblank.Set(p.ppuCycleCount())
	}
	if preRender && p.cycle == 1 {
		p.spriteOverflow = false
		p.spriteZeroHit = false
		p.vblank.Clear(p.ppuCycleCount())
	}

	p.cycle++
	if p.cycle == 341 {
		if preRender && p.frameOdd && renderingEnabled {
			// The famous skipped dot on odd frames with rendering on.
			p.cycle = 1
		} else {
			p.cycle = 0
		}
		p.scanline++
		if p.scanline == 262 {
			p.scanline = 0
			p.frameCount++
			p.frameOdd = !p.frameOdd
		}
	}
}

// NMILine reports whether the CPU's NMI edge detector should currently see
// the line asserted, per the vblank ledger.
func (p *PPU) NMILine() bool {
	return p.vblank.NMILine(p.nmiEnable)
}

func (p *PPU) runFetchSchedule() {
	if !((p.cycle >= 1 && p.cycle <= 257) || p.cycle > 320) {
		return
	}
	switch p.cycle % 8 {
	case 1:
		p.loadShiftRegisters()
		p.nameTableByte = p.busRead(0x2000 | (p.v & 0x0FFF))
	case 3:
		p.attributeTableByte = p.busRead(0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07))
	case 5:
		fineY := (p.v >> 12) & 0x07
		p.lowTileByte = p.busRead(0x1000*uint16(p.backgroundTableFlag) + uint16(p.nameTableByte)*16 + fineY)
	case 7:
		fineY := (p.v >> 12) & 0x07
		p.highTileByte = p.busRead(0x1000*uint16(p.backgroundTableFlag) + uint16(p.nameTableByte)*16 + fineY + 8)
	case 0:
		if p.cycle <= 256 || p.cycle == 328 || p.cycle == 336 {
			p.incrementCoarseX()
		}
	}
	if p.cycle == 256 {
		p.incrementY()
	}
}

// loadShiftRegisters folds the latched tile bytes into the low byte of the
// 16-bit pattern shift registers and re-latches the attribute bits, the
// moment real hardware reloads on every 8th dot.
func (p *PPU) loadShiftRegisters() {
	p.patternLo = (p.patternLo & 0xFF00) | uint16(p.lowTileByte)
	p.patternHi = (p.patternHi & 0xFF00) | uint16(p.highTileByte)
	quadrant := byte((p.v>>4)&0x04) | byte(p.v&0x02)
	attrBits := (p.attributeTableByte >> quadrant) & 0x03
	p.attrLatchLo = attrBits & 0x01
	p.attrLatchHi = (attrBits >> 1) & 0x01
}

func (p *PPU) shiftBackgroundRegisters() {
	p.patternLo <<= 1
	p.patternHi <<= 1
	p.attrLo = (p.attrLo << 1) | p.attrLatchLo
	p.attrHi = (p.attrHi << 1) | p.attrLatchHi
}

func (p *PPU) backgroundPixel() (colorVal, attrVal byte) {
	if !p.showBackground {
		return 0, 0
	}
	shift := 15 - p.x
	lo := byte((p.patternLo >> shift) & 1)
	hi := byte((p.patternHi >> shift) & 1)
	colorVal = lo | hi<<1

	ashift := 7 - p.x
	alo := (p.attrLo >> ashift) & 1
	ahi := (p.attrHi >> ashift) & 1
	attrVal = alo | ahi<<1
	return
}

// renderPixel is the priority mux: background vs. sprite, sprite-0-hit
// detection, and the final palette lookup, grounded on jyane's
// renderPixel/renderBackgroundPixel/renderSpritePixel truth table.
func (p *PPU) renderPixel(fb *Framebuffer) {
	x := p.cycle - 1
	y := p.scanline

	bg, attr := p.backgroundPixel()
	if x < 8 && !p.showLeftBackground {
		bg = 0
	}
	slot, sp, isSpriteZero := p.renderSpritePixel(p.cart)
	if x < 8 && !p.showLeftSprite {
		slot, sp = -1, 0
	}

	bgOpaque := bg != 0
	spOpaque := sp != 0 && slot >= 0

	var idx byte
	switch {
	case !bgOpaque && !spOpaque:
		idx = p.paletteRAM.read(0x3F00)
	case spOpaque && !bgOpaque:
		s := decodeSprite(p.secondaryOrigIndex[slot], p.secondaryOAM[slot*4:slot*4+4])
		idx = p.paletteRAM.read(s.paletteAddress(sp))
	case !spOpaque && bgOpaque:
		idx = p.paletteRAM.read(0x3F00 | uint16(attr)<<2 | uint16(bg))
	default:
		s := decodeSprite(p.secondaryOrigIndex[slot], p.secondaryOAM[slot*4:slot*4+4])
		if s.renderP == back {
			idx = p.paletteRAM.read(0x3F00 | uint16(attr)<<2 | uint16(bg))
		} else {
			idx = p.paletteRAM.read(s.paletteAddress(sp))
		}
		if isSpriteZero && x != 0 && x != 255 { // never on dot 1 (x=0) or at x=255
			p.spriteZeroHit = true
		}
	}
	fb[y*256+x] = idx
}
