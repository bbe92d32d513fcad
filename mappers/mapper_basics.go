// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"fmt"

	"github.com/bdwalton/gintendo/nesrom"
	"github.com/golang/glog"
)

// A global registry of mappers, keyed by mapper id.
var allMappers map[uint16]Mapper = map[uint16]Mapper{}

// RegisterMapper is called from a mapper implementation's init() to
// add itself to the registry under its iNES mapper number.
func RegisterMapper(id uint16, m Mapper) {
	if om, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("Can't re-register mapper id %d. It's used by %q.", id, om.Name()))
	}
	allMappers[id] = m
}

// Get returns the mapper registered for rom's header-declared mapper
// number, initialized against rom, or an error if no mapper is
// registered for that id yet. Per spec, an unimplemented mapper
// number is a fatal load-time condition; the caller decides how to
// surface that (gintendo.go treats it as fatal via glog.Fatalf).
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	m, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("unknown mapper id %d", id)
	}

	m.Init(rom)
	glog.V(1).Infof("mappers: loaded %s (id %d)", m.Name(), id)
	return m, nil
}

// Mapper is the cartridge-side translation layer between CPU/PPU
// addresses and PRG/CHR bank offsets. Every mapper variant (bank
// switched or not) implements the same small capability set; the
// decision of which banks are live at a given moment belongs in the
// mapper, not in the bus's hot read/write path.
type Mapper interface {
	ID() uint16
	Init(*nesrom.ROM)
	Name() string
	PrgRead(uint16) uint8   // Read CPU-side addr in $4020..=$FFFF
	PrgWrite(uint16, uint8) // Write CPU-side addr in $4020..=$FFFF
	ChrRead(uint16) uint8   // Read CHR-side addr in $0000..=$1FFF
	ChrWrite(uint16, uint8) // Write CHR-side addr in $0000..=$1FFF
	MirroringMode() uint8   // Which mirroring mode is tilemap data stored in
	HasSaveRAM() bool       // Whether the cartridge declares battery-backed Save RAM at $6000-$7FFF
}

// baseMapper holds the fields every registered mapper needs (the
// loaded cartridge and its display name); mapper-specific PRG/CHR
// translation is left to the embedding type.
type baseMapper struct {
	id   uint16
	rom  *nesrom.ROM
	name string
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) String() string {
	return bm.name
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) Init(r *nesrom.ROM) {
	bm.rom = r
}

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}
