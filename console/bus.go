package console

import (
	"context"
	"image/color"
	"math"

	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/mos6502"
	"github.com/bdwalton/gintendo/ppu"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	NES_BASE_MEMORY = 0x800 // 2KB built in RAM

	MAX_ADDRESS          = math.MaxUint16
	MEM_SIZE             = MAX_ADDRESS + 1
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MAX_IO_REG           = 0x4020
)

const (
	OAMDMA      = 0x4014 // Triggers DMA from CPU memory to OAM
	JOY1_STROBE = 0x4016 // Controller 1 strobe/read port
	JOY2_STROBE = 0x4017 // Controller 2 strobe/read port; unimplemented, reads open bus
)

type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	ram    []uint8
	ticks  uint64
	trace  bool
	joy1   controller
}

func New(m mappers.Mapper) *Bus {
	bus := &Bus{mapper: m, ram: make([]uint8, NES_BASE_MEMORY)}

	bus.cpu = mos6502.New(bus)
	bus.ppu = ppu.New(bus)
	bus.ppu.SetMirrorMode(m.MirroringMode())

	bus.SetScale(2) // Start with 2x the screen size
	ebiten.SetWindowTitle("Gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return bus
}

// SetScale resizes the ebiten window to n times the NES's native
// resolution.
func (b *Bus) SetScale(n int) {
	w, h := b.ppu.GetResolution()
	ebiten.SetWindowSize(w*n, h*n)
}

// SetTrace toggles nestest-style trace logging of every instruction
// Run executes, written via glog.Infof.
func (b *Bus) SetTrace(on bool) {
	b.trace = on
}

func (b *Bus) MirrorMode() uint8 {
	return b.mapper.MirroringMode()
}

// Layout returns the constant resolution of the NES and is part of
// the ebiten.Game interface. By returning constants here, we will
// force ebiten to scale the display when the window size changes.
func (b *Bus) Layout(w, h int) (int, int) {
	return b.ppu.GetResolution()
}

// Draw updates the displayed ebiten window with the current state of
// the PPU. GetPixels returns a flat row-major buffer, the same layout
// the pixel pipeline writes into it with.
func (b *Bus) Draw(screen *ebiten.Image) {
	px := b.ppu.GetPixels()
	w, h := b.ppu.GetResolution()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			screen.Set(x, y, color.RGBA{c[0], c[1], c[2], c[3]})
		}
	}
}

// Update is called by ebiten roughly every 1/60s and will be our
// driver for the emulation.
func (b *Bus) Update() error {
	// We do work in a different goroutine and don't need ebiten
	// to drive this. We have to be implemented and called though
	// as it's part of the required interface.
	return nil
}

// TriggerNMI is used by the PPU to signal the CPU that it is in vblank.
func (b *Bus) TriggerNMI() {
	b.cpu.NMI()
}

// ChrRead is used by the PPU to access CHR-ROM (or CHR-RAM) in the
// loaded Mapper.
func (b *Bus) ChrRead(addr uint16) uint8 {
	return b.mapper.ChrRead(addr)
}

// ChrWrite is used by the PPU to write CHR-RAM in the loaded Mapper.
// Mappers backed by CHR-ROM silently discard it.
func (b *Bus) ChrWrite(addr uint16, val uint8) {
	b.mapper.ChrWrite(addr, val)
}

func (b *Bus) Read(addr uint16) uint8 {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		return b.ram[addr&0x7FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		return b.ppu.ReadReg(addr & 0x2007)
	case addr == JOY1_STROBE:
		return b.joy1.read()
	case addr < MAX_IO_REG:
		// JOY2_STROBE and the APU register range: unimplemented,
		// open bus.
		return 0
	case addr <= MAX_ADDRESS:
		// 0x4020-0xFFFF: expansion ROM, cartridge save RAM, and
		// PRG-ROM. Whether any given address in this window is
		// backed by anything at all is the mapper's call, not ours.
		return b.mapper.PrgRead(addr)
	}

	panic("should never happen") // hah, prod crashes await!
}

func (b *Bus) ClearMem() {
	b.ram = make([]uint8, len(b.ram))
}

func (b *Bus) Write(addr uint16, val uint8) {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		b.ppu.WriteReg(addr&0x2007, val)
	case addr < MAX_IO_REG:
		// Handle Joysticks, APU and PPU DMA
		switch addr {
		case JOY1_STROBE:
			b.joy1.write(val)
		case OAMDMA:
			base := uint16(val) << 8
			for addr := base; addr < base+256; addr++ {
				b.ppu.WriteReg(ppu.OAMDATA, b.Read(addr))
			}
			cycles := 513
			if (b.ticks/3)%2 != 0 {
				cycles++
			}
			b.cpu.StallDMA(cycles)
		}
	case addr <= MAX_ADDRESS:
		b.mapper.PrgWrite(addr, val)
	}
}

func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick()
			if b.ticks%3 == 0 {
				if b.trace && b.cpu.Cycles() == 0 {
					if line, err := b.cpu.Disassemble(b.cpu.PC()); err == nil {
						glog.Infof("%s", line)
					}
				}
				b.cpu.Step()
			}
			b.ticks += 1
		}
	}
}

