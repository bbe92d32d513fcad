package ppu

import (
	"testing"
)

func TestLoopyGet(t *testing.T) {
	cases := []struct {
		data                           uint16
		wantCoarseX, wantCoarseY       uint16
		wantNameTableX, wantNameTableY uint16
		wantFineY                      uint16
	}{
		{0b0000_0000_0000_0000, 0, 0, 0, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100, 0, 1, 0b111},
		{0b0011_0111_1001_0111, 0b10111, 0b11100, 1, 0, 0b011},
		{0b0011_1111_1001_0111, 0b10111, 0b11100, 1, 1, 0b011},
		{0b0011_0011_1011_0111, 0b10111, 0b11101, 0, 0, 0b011},
		{0b0011_0000_0001_0111, 0b10111, 0, 0, 0, 0b011},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		cx, cy, ntx, nty, fy := l.coarseX(), l.coarseY(), l.nametableX(), l.nametableY(), l.fineY()
		if cx != tc.wantCoarseX || cy != tc.wantCoarseY || ntx != tc.wantNameTableX || nty != tc.wantNameTableY || fy != tc.wantFineY {
			t.Errorf("%d: Got %016b, %016b, %016b, %016b, %016b, wanted %016b, %016b, %016b, %016b, %016b", i, cx, cy, ntx, nty, fy, tc.wantCoarseX, tc.wantCoarseY, tc.wantNameTableX, tc.wantNameTableY, tc.wantFineY)
		}
	}
}

func TestLoopySetCoarseX(t *testing.T) {
	cases := []struct {
		data     uint16
		ocx, ncx uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100},
		{0b0011_0111_1001_0111, 0b10111, 0b11100},
		{0b0011_1111_1001_0111, 0b10111, 0b10000},
		{0b0011_0011_1011_0111, 0b10111, 0b11101},
		{0b0011_0000_0001_0111, 0b10111, 0b00100},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ocx := l.coarseX()
		l.setCoarseX(tc.ncx)
		if got := l.coarseX(); ocx != tc.ocx || got != tc.ncx {
			t.Errorf("%d: Got ocx = %05b, ncx = %05b, wanted %05b, %05b", i, ocx, got, tc.ocx, tc.ncx)

		}
	}
}

func TestLoopyIncrementCoarseX(t *testing.T) {
	cases := []struct {
		data     uint16
		ocx, ncx uint16
	}{
		{0b0000_0000_0000_0000, 0, 1},
		{0b0111_1011_1001_1000, 0b11000, 0b11001},
		{0b0011_0111_1011_0111, 0b10111, 0b11000},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ocx := l.coarseX()
		l.incrementCoarseX()
		if got := l.coarseX(); ocx != tc.ocx || got != tc.ncx {
			t.Errorf("%d: Got ocx = %05b, ncx = %05b, wanted %05b, %05b", i, ocx, got, tc.ocx, tc.ncx)

		}
	}
}

func TestLoopyIncrementCoarseXWraps(t *testing.T) {
	l := &loopy{0x001F} // coarse X at its max value, 31
	ont := l.nametableX()
	l.incrementCoarseX()
	if got := l.coarseX(); got != 0 {
		t.Errorf("coarseX after wrap = %05b, want 0", got)
	}
	if got := l.nametableX(); got == ont {
		t.Errorf("nametableX did not flip on coarse X wrap")
	}
}

func TestLoopySetCoarseY(t *testing.T) {
	cases := []struct {
		data     uint16
		ocy, ncy uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b11100, 0b11100},
		{0b0011_0111_1011_0111, 0b11101, 0b10000},
		{0b0011_1111_1111_0111, 0b11111, 0b00000},
		{0b0011_0001_0101_0111, 0b01010, 0b10101},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ocy := l.coarseY()
		l.setCoarseY(tc.ncy)
		if got := l.coarseY(); ocy != tc.ocy || got != tc.ncy {
			t.Errorf("%d: Got ocy = %05b, ncy = %05b, wanted %05b, %05b", i, ocy, got, tc.ocy, tc.ncy)

		}
	}
}

func TestLoopyIncrementCoarseY(t *testing.T) {
	cases := []struct {
		data     uint16
		ocy, ncy uint16
	}{
		{0b0000_0000_0000_0000, 0, 1},
		{0b0111_1011_1001_1000, 0b11100, 0b11101},
		{0b0011_0111_1011_0111, 0b11101, 0b00000},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ocy := l.coarseY()
		l.incrementCoarseY()
		if got := l.coarseY(); ocy != tc.ocy || got != tc.ncy {
			t.Errorf("%d: Got ocy = %05b, ncy = %05b, wanted %05b, %05b", i, ocy, got, tc.ocy, tc.ncy)

		}
	}
}

func TestLoopyIncrementCoarseYWraps(t *testing.T) {
	cases := []struct {
		name       string
		coarseY    uint16
		wantY      uint16
		wantFlip   bool
	}{
		{"wraps and flips at 29", 29, 0, true},
		{"wraps without flipping at 31", 31, 0, false},
		{"ordinary increment", 10, 11, false},
	}

	for i, tc := range cases {
		l := &loopy{}
		l.setCoarseY(tc.coarseY)
		before := l.nametableY()
		l.incrementCoarseY()
		if got := l.coarseY(); got != tc.wantY {
			t.Errorf("%d (%s): coarseY = %d, want %d", i, tc.name, got, tc.wantY)
		}
		flipped := l.nametableY() != before
		if flipped != tc.wantFlip {
			t.Errorf("%d (%s): nametableY flipped = %t, want %t", i, tc.name, flipped, tc.wantFlip)
		}
	}
}

func TestLoopySetNametableSelect(t *testing.T) {
	cases := []struct {
		n        uint16
		wantX    uint16
		wantY    uint16
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 0, 1},
		{3, 1, 1},
	}

	for i, tc := range cases {
		l := &loopy{}
		l.setNametableSelect(tc.n)
		if got := l.nametableX(); got != tc.wantX {
			t.Errorf("%d: nametableX = %d, want %d", i, got, tc.wantX)
		}
		if got := l.nametableY(); got != tc.wantY {
			t.Errorf("%d: nametableY = %d, want %d", i, got, tc.wantY)
		}
	}
}

func TestLoopyCopyHorizontalFrom(t *testing.T) {
	v := &loopy{0b0111_1111_1111_1111}
	src := loopy{0b0000_0100_0001_0101}
	v.copyHorizontalFrom(src)
	if got := v.coarseX(); got != src.coarseX() {
		t.Errorf("coarseX = %05b, want %05b", got, src.coarseX())
	}
	if got := v.nametableX(); got != src.nametableX() {
		t.Errorf("nametableX = %d, want %d", got, src.nametableX())
	}
	// Vertical fields must be left untouched.
	if got := v.coarseY(); got != 0b11111 {
		t.Errorf("coarseY clobbered: %05b, want 11111", got)
	}
}

func TestLoopyCopyVerticalFrom(t *testing.T) {
	v := &loopy{0b0111_1111_1111_1111}
	src := loopy{0b0101_1000_1010_0000}
	v.copyVerticalFrom(src)
	if got := v.fineY(); got != src.fineY() {
		t.Errorf("fineY = %03b, want %03b", got, src.fineY())
	}
	if got := v.coarseY(); got != src.coarseY() {
		t.Errorf("coarseY = %05b, want %05b", got, src.coarseY())
	}
	if got := v.nametableY(); got != src.nametableY() {
		t.Errorf("nametableY = %d, want %d", got, src.nametableY())
	}
	// Horizontal fields must be left untouched.
	if got := v.coarseX(); got != 0b11111 {
		t.Errorf("coarseX clobbered: %05b, want 11111", got)
	}
}

func TestLoopySetFineY(t *testing.T) {
	cases := []struct {
		data     uint16
		ofy, nfy uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b111, 0b101},
		{0b0011_0111_1011_0111, 0b011, 0},
		{0b0111_1111_1111_0111, 0b111, 0b010},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ofy := l.fineY()
		l.setFineY(tc.nfy)
		if got := l.fineY(); ofy != tc.ofy || got != tc.nfy {
			t.Errorf("%d: Got ofy = %03b, nfy = %03b, wanted %03b, %03b", i, ofy, got, tc.ofy, tc.nfy)

		}
	}
}

func TestLoopyIncrementFineY(t *testing.T) {
	cases := []struct {
		data     uint16
		ofy, nfy uint16
	}{
		{0b0000_0000_0000_0000, 0, 1},
		{0b0110_1011_1001_1000, 0b110, 0b111},
		{0b0011_0111_1011_0111, 0b011, 0b100},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		ofy := l.fineY()
		l.incrementFineY()
		if got := l.fineY(); ofy != tc.ofy || got != tc.nfy {
			t.Errorf("%d: Got ofy = %03b, nfy = %03b, wanted %03b, %03b", i, ofy, got, tc.ofy, tc.nfy)

		}
	}
}

func TestLoopyIncrementFineYCarriesIntoCoarseY(t *testing.T) {
	l := &loopy{}
	l.setFineY(7)
	l.setCoarseY(10)

	l.incrementFineY()

	if got := l.fineY(); got != 0 {
		t.Errorf("fineY after carry = %03b, want 0", got)
	}
	if got := l.coarseY(); got != 11 {
		t.Errorf("coarseY after fineY carry = %d, want 11", got)
	}
}
