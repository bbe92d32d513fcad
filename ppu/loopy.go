package ppu

// loopy stores one of the PPU's two internal 15-bit VRAM address
// registers (v, the current address, or t, the temporary address
// PPUSCROLL/PPUADDR build up) and the bit-level accessors for its
// fields, per the nesdev "loopy" scrolling model:
//
//	0 yyy NN YYYYY XXXXX
//	  ||| || ||||| +++++-- coarse X scroll
//	  ||| || +++++-------- coarse Y scroll
//	  ||| ++-------------- nametable select
//	  +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | (n & 0x001F)
}

// incrementCoarseX wraps coarse X at 31, flipping the horizontal
// nametable select bit rather than carrying into coarse Y.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
		return
	}
	l.data++
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | ((n & 0x001F) << 5)
}

// incrementCoarseY wraps at 29 (the last real row of the 30-row
// nametable), flipping the vertical nametable select bit; it also
// wraps (without flipping) at 31, the value some games deliberately
// write into coarse Y to read attribute data.
func (l *loopy) incrementCoarseY() {
	switch y := l.coarseY(); y {
	case 29:
		l.setCoarseY(0)
		l.data ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

// setNametableSelect loads both nametable-select bits at once, as
// PPUCTRL's bits 0-1 do.
func (l *loopy) setNametableSelect(n uint16) {
	l.data = (l.data & 0xF3FF) | ((n & 0x03) << 10)
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data & 0x0FFF) | ((n & 0x07) << 12)
}

// incrementFineY wraps fine Y at 7, carrying into coarse Y.
func (l *loopy) incrementFineY() {
	if l.fineY() == 7 {
		l.data &^= 0x7000
		l.incrementCoarseY()
		return
	}
	l.setFineY(l.fineY() + 1)
}

// copyHorizontalFrom copies the horizontal-scroll fields (coarse X
// and the horizontal nametable bit) from src, as happens at dot 257
// of every visible/pre-render scanline.
func (l *loopy) copyHorizontalFrom(src loopy) {
	const mask = 0x041F // nametable-X | coarse X
	l.data = (l.data &^ mask) | (src.data & mask)
}

// copyVerticalFrom copies the vertical-scroll fields (fine Y, the
// vertical nametable bit, and coarse Y) from src, as happens at dots
// 280-304 of the pre-render scanline.
func (l *loopy) copyVerticalFrom(src loopy) {
	const mask = 0x7BE0 // fine Y | nametable-Y | coarse Y
	l.data = (l.data &^ mask) | (src.data & mask)
}
