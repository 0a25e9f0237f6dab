// Package palette holds the fixed 64-entry RP2C02 system color table. The
// numeric values are the teacher's (ppu.SYSTEM_PALETTE), rendered as
// image/color.RGBA the way jyane-jnes's nes.colors does, since the
// cmd/nescore host blits frames through ebiten's image types.
package palette

import "image/color"

// Table maps a 6-bit PPU color index to its display RGBA value.
var Table = [64]color.RGBA{
	{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, {R: 0x00, G: 0x3D, B: 0xA6, A: 0xff}, {R: 0x00, G: 0x12, B: 0xB0, A: 0xff}, {R: 0x44, G: 0x00, B: 0x96, A: 0xff},
	{R: 0xA1, G: 0x00, B: 0x5E, A: 0xff}, {R: 0xC7, G: 0x00, B: 0x28, A: 0xff}, {R: 0xBA, G: 0x06, B: 0x00, A: 0xff}, {R: 0x8C, G: 0x17, B: 0x00, A: 0xff},
	{R: 0x5C, G: 0x2F, B: 0x00, A: 0xff}, {R: 0x10, G: 0x45, B: 0x00, A: 0xff}, {R: 0x05, G: 0x4A, B: 0x00, A: 0xff}, {R: 0x00, G: 0x47, B: 0x2E, A: 0xff},
	{R: 0x00, G: 0x41, B: 0x66, A: 0xff}, {R: 0x00, G: 0x00, B: 0x00, A: 0xff}, {R: 0x05, G: 0x05, B: 0x05, A: 0xff}, {R: 0x05, G: 0x05, B: 0x05, A: 0xff},
	{R: 0xC7, G: 0xC7, B: 0xC7, A: 0xff}, {R: 0x00, G: 0x77, B: 0xFF, A: 0xff}, {R: 0x21, G: 0x55, B: 0xFF, A: 0xff}, {R: 0x82, G: 0x37, B: 0xFA, A: 0xff},
	{R: 0xEB, G: 0x2F, B: 0xB5, A: 0xff}, {R: 0xFF, G: 0x29, B: 0x50, A: 0xff}, {R: 0xFF, G: 0x22, B: 0x00, A: 0xff}, {R: 0xD6, G: 0x32, B: 0x00, A: 0xff},
	{R: 0xC4, G: 0x62, B: 0x00, A: 0xff}, {R: 0x35, G: 0x80, B: 0x00, A: 0xff}, {R: 0x05, G: 0x8F, B: 0x00, A: 0xff}, {R: 0x00, G: 0x8A, B: 0x55, A: 0xff},
	{R: 0x00, G: 0x99, B: 0xCC, A: 0xff}, {R: 0x21, G: 0x21, B: 0x21, A: 0xff}, {R: 0x09, G: 0x09, B: 0x09, A: 0xff}, {R: 0x09, G: 0x09, B: 0x09, A: 0xff},
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xff}, {R: 0x0F, G: 0xD7, B: 0xFF, A: 0xff}, {R: 0x69, G: 0xA2, B: 0xFF, A: 0xff}, {R: 0xD4, G: 0x80, B: 0xFF, A: 0xff},
	{R: 0xFF, G: 0x45, B: 0xF3, A: 0xff}, {R: 0xFF, G: 0x61, B: 0x8B, A: 0xff}, {R: 0xFF, G: 0x88, B: 0x33, A: 0xff}, {R: 0xFF, G: 0x9C, B: 0x12, A: 0xff},
	{R: 0xFA, G: 0xBC, B: 0x20, A: 0xff}, {R: 0x9F, G: 0xE3, B: 0x0E, A: 0xff}, {R: 0x2B, G: 0xF0, B: 0x35, A: 0xff}, {R: 0x0C, G: 0xF0, B: 0xA4, A: 0xff},
	{R: 0x05, G: 0xFB, B: 0xFF, A: 0xff}, {R: 0x5E, G: 0x5E, B: 0x5E, A: 0xff}, {R: 0x0D, G: 0x0D, B: 0x0D, A: 0xff}, {R: 0x0D, G: 0x0D, B: 0x0D, A: 0xff},
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xff}, {R: 0xA6, G: 0xFC, B: 0xFF, A: 0xff}, {R: 0xB3, G: 0xEC, B: 0xFF, A: 0xff}, {R: 0xDA, G: 0xAB, B: 0xEB, A: 0xff},
	{R: 0xFF, G: 0xA8, B: 0xF9, A: 0xff}, {R: 0xFF, G: 0xAB, B: 0xB3, A: 0xff}, {R: 0xFF, G: 0xD2, B: 0xB0, A: 0xff}, {R: 0xFF, G: 0xEF, B: 0xA6, A: 0xff},
	{R: 0xFF, G: 0xF7, B: 0x9C, A: 0xff}, {R: 0xD7, G: 0xE8, B: 0x95, A: 0xff}, {R: 0xA6, G: 0xED, B: 0xAF, A: 0xff}, {R: 0xA2, G: 0xF2, B: 0xDA, A: 0xff},
	{R: 0x99, G: 0xFF, B: 0xFC, A: 0xff}, {R: 0xDD, G: 0xDD, B: 0xDD, A: 0xff}, {R: 0x11, G: 0x11, B: 0x11, A: 0xff}, {R: 0x11, G: 0x11, B: 0x11, A: 0xff},
}

// RGBA returns the display color for a 6-bit PPU color index, masking to
// the valid range the way the real DAC ignores the unused top bits.
func RGBA(index byte) color.RGBA {
	return Table[index&0x3F]
}
