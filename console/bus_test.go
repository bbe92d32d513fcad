package console

import (
	"testing"

	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/ppu"
)

func TestBusRAMMirroring(t *testing.T) {
	b := New(mappers.Dummy)

	b.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := b.Read(mirror); got != 0x42 {
			t.Errorf("Read(%#04x) = %#02x, want 0x42", mirror, got)
		}
	}
}

func TestBusPPURegisterMirroring(t *testing.T) {
	b := New(mappers.Dummy)

	for _, mirror := range []uint16{0x2003, 0x200B, 0x3FFB} {
		b.Write(mirror, 0x10) // OAMADDR, mirrored every 8 bytes
		b.Write(0x2004, 0x77) // OAMDATA; advances OAMADDR to 0x11
		b.Write(mirror, 0x10) // rewind OAMADDR through the same mirror
		if got := b.Read(0x2004); got != 0x77 {
			t.Errorf("write via mirrored OAMADDR at %#04x did not reach the single PPU instance (got %#02x)", mirror, got)
		}
	}
}

func TestBusMapperWindow(t *testing.T) {
	b := New(mappers.Dummy)

	b.Write(0x8000, 0x99)
	if got := b.Read(0x8000); got != 0x99 {
		t.Errorf("Read(0x8000) = %#02x, want 0x99", got)
	}

	b.Write(0x6000, 0x55) // cartridge save RAM window
	if got := b.Read(0x6000); got != 0x55 {
		t.Errorf("Read(0x6000) = %#02x, want 0x55", got)
	}
}

func TestBusChrReadWrite(t *testing.T) {
	b := New(mappers.Dummy)

	b.ChrWrite(0x0010, 0xAB)
	if got := b.ChrRead(0x0010); got != 0xAB {
		t.Errorf("ChrRead(0x0010) = %#02x, want 0xAB", got)
	}
}

func TestBusClearMem(t *testing.T) {
	b := New(mappers.Dummy)

	b.Write(0x0000, 0x42)
	b.ClearMem()
	if got := b.Read(0x0000); got != 0 {
		t.Errorf("Read(0x0000) after ClearMem = %#02x, want 0", got)
	}
}

func TestBusOAMDMA(t *testing.T) {
	b := New(mappers.Dummy)

	for i := uint16(0); i < 256; i++ {
		b.Write(0x0200+i, uint8(i))
	}

	b.Write(OAMDMA, 0x02)

	for i := uint16(0); i < 256; i++ {
		b.ppu.WriteReg(ppu.OAMADDR, uint8(i))
		if got := b.ppu.ReadReg(ppu.OAMDATA); got != uint8(i) {
			t.Errorf("OAM[%#02x] = %#02x, want %#02x", i, got, uint8(i))
		}
	}
}
