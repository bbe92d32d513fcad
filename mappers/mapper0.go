package mappers

import (
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/golang/glog"
)

func init() {
	RegisterMapper(0, &mapper0{baseMapper: &baseMapper{id: 0, name: "NROM"}})
}

// mapper0 implements iNES mapper 0 (NROM): no bank switching. PRG-ROM
// is 16 or 32 KiB, mirrored into both $8000-$BFFF and $C000-$FFFF
// when only one 16 KiB bank is present. CHR is either 8 KiB of
// read-only ROM, or, when the cartridge declares zero CHR-ROM banks,
// 8 KiB of writable CHR-RAM.
type mapper0 struct {
	*baseMapper

	prg []byte
	chr []byte

	chrIsRAM bool
}

const (
	chrBankSize = 8192
	prgBankSize = 16384
)

func (m *mapper0) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)

	m.prg = r.PRG()

	if chr := r.CHR(); len(chr) > 0 {
		m.chr = chr
		m.chrIsRAM = false
	} else {
		m.chr = make([]byte, chrBankSize)
		m.chrIsRAM = true
		glog.V(1).Infof("mappers: NROM cartridge has no CHR-ROM; allocating %d bytes of CHR-RAM", chrBankSize)
	}
}

// PrgRead serves the mapper's CPU-side window ($4020-$FFFF). NROM
// only decodes $8000-$FFFF; everything below that (APU/IO space,
// unmapped SRAM) reads as open bus.
func (m *mapper0) PrgRead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}

	off := addr - 0x8000
	if len(m.prg) == prgBankSize {
		// Single 16 KiB bank: $C000-$FFFF mirrors $8000-$BFFF.
		off %= prgBankSize
	}
	return m.prg[off]
}

// PrgWrite discards writes: NROM has no bank-select registers and no
// writable PRG space.
func (m *mapper0) PrgWrite(addr uint16, val uint8) {}

func (m *mapper0) ChrRead(addr uint16) uint8 {
	return m.chr[addr%chrBankSize]
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[addr%chrBankSize] = val
	}
}
