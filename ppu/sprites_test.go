package ppu

import "testing"

func TestEvaluateSpritesPicksFirstEightInRange(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 10; i++ {
		p.primaryOAM[i*4] = 10 // all at y=10, all in range for target scanline 10
	}
	p.scanline = 9 // target = scanline+1 = 10, matches y=10 sprites' top row
	p.evaluateSprites()
	if p.secondaryCount != 8 {
		t.Fatalf("secondaryCount = %d, want 8", p.secondaryCount)
	}
	if !p.spriteOverflow {
		t.Fatal("expected overflow flag to be considered once a 9th in-range sprite is found")
	}
	for i := 0; i < 8; i++ {
		if p.secondaryOrigIndex[i] != i {
			t.Errorf("secondaryOrigIndex[%d] = %d, want %d", i, p.secondaryOrigIndex[i], i)
		}
	}
}

func TestEvaluateSpritesNoOverflowWhenEightOrFewer(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 5; i++ {
		p.primaryOAM[i*4] = 10
	}
	p.scanline = 9
	p.evaluateSprites()
	if p.secondaryCount != 5 {
		t.Fatalf("secondaryCount = %d, want 5", p.secondaryCount)
	}
	if p.spriteOverflow {
		t.Fatal("overflow should not be set with only 5 in-range sprites")
	}
}

func TestSpriteInRangeRespectsHeight(t *testing.T) {
	p, _ := newTestPPU()
	if !p.spriteInRange(10, 10) {
		t.Error("y=10 should be in range for target scanline 10 (top row)")
	}
	if p.spriteInRange(10, 18) {
		t.Error("y=10 8px sprite should not cover target scanline 18")
	}
	p.spriteSizeFlag = 1 // 8x16
	if !p.spriteInRange(10, 18) {
		t.Error("y=10 16px sprite should cover target scanline 18")
	}
}

func TestPaletteAddressUsesSpritePaletteRange(t *testing.T) {
	s := decodeSprite(0, []byte{0, 0, 0x01, 0}) // palette index 1
	addr := s.paletteAddress(2)
	if addr != 0x3F10|uint16(1)<<2|2 {
		t.Errorf("paletteAddress = %#04x, want %#04x", addr, 0x3F10|uint16(1)<<2|2)
	}
}

