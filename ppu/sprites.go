package ppu

// priority mirrors the teacher's ppu/oam.go FRONT/BACK naming for the
// sprite-attribute priority bit.
type priority uint8

const (
	front priority = iota
	back
)

// spriteEntry is the 4 bytes of one OAM entry, decoded. Field names follow
// the teacher's ppu/oam.go oam struct (y/tileID/palette/renderP/flipH/flipV/x);
// the bitfield decode is the teacher's OAMFromBytes, generalized to also
// carry which OAM index it came from (needed for sprite-0-hit) the way
// jyane's nes.sprite does.
type spriteEntry struct {
	oamIndex int
	y        byte
	tileID   byte
	palette  byte
	renderP  priority
	flipH    bool
	flipV    bool
	x        byte
}

func decodeSprite(oamIndex int, in []byte) spriteEntry {
	return spriteEntry{
		oamIndex: oamIndex,
		y:        in[0],
		tileID:   in[1],
		palette:  in[2] & 0x03,
		renderP:  priority((in[2] & 0x20) >> 5),
		flipH:    in[2]&0x40 != 0,
		flipV:    in[2]&0x80 != 0,
		x:        in[3],
	}
}

// paletteAddress mirrors jyane's sprite.paletteAddress: sprite palettes
// live in the upper 4 of the 8 background+sprite palette slots.
func (s *spriteEntry) paletteAddress(colorIndex byte) uint16 {
	return 0x3F10 | uint16(s.palette)<<2 | uint16(colorIndex)
}

func spriteHeight(tall bool) int {
	if tall {
		return 16
	}
	return 8
}

func (p *PPU) spriteInRange(y byte, targetScanline int) bool {
	top := int(y)
	return top <= targetScanline && targetScanline < top+spriteHeight(p.spriteSizeFlag == 1)
}

// evaluateSprites fills secondary OAM with the first 8 sprites in range for
// scanline+1 (sprite data is fetched one scanline ahead of render), then
// reproduces the hardware's "diagonal" sprite overflow bug: once secondary
// OAM is full, the real evaluation logic keeps incrementing both its
// sprite index and its within-sprite byte index together instead of
// resetting the byte index to 0, so overflow checks after the 8th sprite
// compare against the wrong byte of each subsequent OAM entry. This can
// both falsely set and falsely fail to set the overflow flag depending on
// OAM contents -- exactly the behavior real NES software relies on (or
// works around). No pack repo reproduces this; jyane's nes.evaluateSprite
// sets spriteOverflow as soon as a 9th in-range sprite is found, which is
// the correct *count* but the wrong *mechanism*.
func (p *PPU) evaluateSprites() {
	target := p.scanline + 1
	count := 0
	n := 0
	for n < 64 {
		if count == 8 {
			p.diagonalOverflowScan(n)
			break
		}
		y := p.primaryOAM[n*4]
		if p.spriteInRange(y, target) {
			copy(p.secondaryOAM[count*4:count*4+4], p.primaryOAM[n*4:n*4+4])
			p.secondaryOrigIndex[count] = n
			count++
		}
		n++
	}
	p.secondaryCount = count
}

func (p *PPU) diagonalOverflowScan(startN int) {
	target := p.scanline + 1
	n, m := startN, 0
	for i := 0; i < 64 && n < 64; i++ {
		b := byte(0)
		if n*4+m < 256 {
			b = p.primaryOAM[n*4+m]
		}
		if p.spriteInRange(b, target) {
			p.spriteOverflow = true
			return
		}
		n++
		m = (m + 1) % 4
	}
}

// renderSpritePixel returns which secondary-OAM slot (if any) is opaque at
// the current dot, its 2-bit color value, and whether that slot is OAM
// index 0 (for sprite-0-hit). Grounded on jyane's renderSpritePixel, with
// the pattern-table address/shift math unchanged.
func (p *PPU) renderSpritePixel(cart Cartridge) (slot int, colorVal byte, isSpriteZero bool) {
	if !p.showSprite {
		return -1, 0, false
	}
	x := p.cycle - 1
	for i := 0; i < p.secondaryCount; i++ {
		raw := p.secondaryOAM[i*4 : i*4+4]
		sx := raw[3]
		if int(sx) > x || x >= int(sx)+8 {
			continue
		}
		s := decodeSprite(p.secondaryOrigIndex[i], raw)
		height := spriteHeight(p.spriteSizeFlag == 1)
		row := p.scanline - int(s.y)
		if s.flipV {
			row = height - 1 - row
		}
		tile := s.tileID
		bank := uint16(p.spriteTableFlag) * 0x1000
		if height == 16 {
			bank = uint16(tile&1) * 0x1000
			tile &= 0xFE
			if row >= 8 {
				tile++
				row -= 8
			}
		}
		addr := bank + uint16(tile)*16 + uint16(row)
		lo := cart.PPURead(addr)
		hi := cart.PPURead(addr + 8)
		shift := 7 - (x - int(s.x))
		if s.flipH {
			shift = x - int(s.x)
		}
		lv := (lo >> uint(shift)) & 1
		hv := (hi >> uint(shift)) & 1
		val := lv | hv<<1
		if val == 0 {
			continue // transparent pixels of a lower-priority sprite don't block ones below it
		}
		return i, val, s.oamIndex == 0
	}
	return -1, 0, false
}
