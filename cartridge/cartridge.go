// Package cartridge implements the Mapper interface and registry, following
// mappers/mapper_basics.go's RegisterMapper/Get pattern: mappers self-
// register by iNES id in an init() func and Get looks one up by the ROM's
// declared mapper number.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/kestrelnes/nescore/rom"
)

// ErrUnsupportedMapper is returned by Get when the ROM declares a mapper
// number with no registered implementation.
var ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")

// Mapper is implemented by every cartridge board. CPU-side reads/writes
// cover $4020-$FFFF (the cartridge's CPU address space); PPU-side
// reads/writes cover $0000-$1FFF (pattern tables) and $2000-$2FFF when the
// board performs its own nametable mirroring.
type Mapper interface {
	Name() string
	CPURead(addr uint16) byte
	CPUWrite(addr uint16, val byte)
	PPURead(addr uint16) byte
	PPUWrite(addr uint16, val byte)
	MirroringMode() uint8
	// Reset restores any mapper-internal register state to its power-on
	// value (bank registers, IRQ counters); NROM has none, so its Reset
	// is a no-op, but the method is part of the contract per spec §4.7
	// for boards that do carry switchable state.
	Reset()
	// PollIRQ reports whether the mapper is asserting its IRQ line (used
	// by scanline-counter boards like MMC3; NROM always returns false).
	PollIRQ() bool
}

// A12Ticker is implemented by mappers that count PPU address-bus A12
// rising edges to drive a scanline IRQ counter (MMC3 and similar). NROM
// does not implement it; the orchestrator checks for it with a type
// assertion before calling, so mappers that don't need it pay nothing.
type A12Ticker interface {
	TickA12()
}

type factory func(r *rom.ROM) Mapper

var registry = map[uint8]factory{}

// RegisterMapper registers a mapper constructor under an iNES mapper
// number. Called from each mapper file's init(), matching
// mappers/mapper_basics.go's RegisterMapper/panic-on-collision contract.
func RegisterMapper(id uint8, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("cartridge: mapper id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the mapper named by r's header.
func Get(r *rom.ROM) (Mapper, error) {
	f, ok := registry[r.MapperNum()]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnsupportedMapper, r.MapperNum())
	}
	return f(r), nil
}
