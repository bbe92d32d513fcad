package console

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Buttons, as bits:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
var keys []ebiten.Key = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

// controller models a real NES joypad's 8-bit shift register: a
// strobe write latches the current button state, and each subsequent
// read shifts one bit out, starting with A.
type controller struct {
	strobe  bool
	buttons uint8
	idx     uint8
}

// write handles a CPU write to $4016. Real hardware reads the strobe
// line continuously while it's held high; we sample button state once
// strobe transitions back low, which is when games actually read back
// results.
func (c *controller) write(val uint8) {
	switch val & 0x01 {
	case 0:
		c.strobe = false
		c.buttons = 0
		c.poll()
	case 1:
		c.strobe = true
		c.idx = 0
	}
}

// read handles a CPU read from $4016: one bit of the latched
// button state, shifting to the next bit each call. Past the 8th read,
// real hardware (and this emulator) returns 1.
func (c *controller) read() uint8 {
	if c.idx > 7 {
		return 1
	}

	ret := c.buttons & (1 << c.idx) >> c.idx
	c.idx++
	return ret
}

// poll samples the host keyboard into the 8-bit button latch.
func (c *controller) poll() {
	for i, key := range keys {
		var pressed uint8
		if ebiten.IsKeyPressed(key) {
			pressed = 1
		}
		c.buttons |= (pressed << i)
	}
}
