package nesrom

import (
	"bytes"
	"testing"
)

// buildROM constructs a minimal, well-formed iNES image in memory:
// header + prgBlocks*16KiB PRG + chrBlocks*8KiB CHR, all zero-filled.
func buildROM(prgBlocks, chrBlocks uint8, flags6, flags7 uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write([]byte{prgBlocks, chrBlocks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0})
	buf.Write(make([]byte, int(prgBlocks)*PRG_BLOCK_SIZE))
	buf.Write(make([]byte, int(chrBlocks)*CHR_BLOCK_SIZE))
	return buf.Bytes()
}

func TestNewFromReader(t *testing.T) {
	cases := []struct {
		name               string
		prgBlocks          uint8
		chrBlocks          uint8
		flags6             uint8
		wantPrgLen         int
		wantChrLen         int
		wantMirroringMode  uint8
	}{
		{"16k prg, 8k chr, horizontal", 1, 1, 0, PRG_BLOCK_SIZE, CHR_BLOCK_SIZE, MIRROR_HORIZONTAL},
		{"32k prg, chr-ram, vertical", 2, 0, MIRRORING, 2 * PRG_BLOCK_SIZE, 0, MIRROR_VERTICAL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rom, err := NewFromReader(bytes.NewReader(buildROM(tc.prgBlocks, tc.chrBlocks, tc.flags6, 0)))
			if err != nil {
				t.Fatalf("NewFromReader: %v", err)
			}
			if len(rom.PRG()) != tc.wantPrgLen {
				t.Errorf("PRG length = %d, want %d", len(rom.PRG()), tc.wantPrgLen)
			}
			if len(rom.CHR()) != tc.wantChrLen {
				t.Errorf("CHR length = %d, want %d", len(rom.CHR()), tc.wantChrLen)
			}
			if rom.MirroringMode() != tc.wantMirroringMode {
				t.Errorf("MirroringMode = %d, want %d", rom.MirroringMode(), tc.wantMirroringMode)
			}
		})
	}
}

func TestNewFromReaderBadMagic(t *testing.T) {
	data := buildROM(1, 1, 0, 0)
	data[0] = 'X'
	if _, err := NewFromReader(bytes.NewReader(data)); err == nil {
		t.Errorf("expected error for bad magic, got nil")
	}
}

func TestNewFromReaderTruncated(t *testing.T) {
	data := buildROM(1, 1, 0, 0)
	if _, err := NewFromReader(bytes.NewReader(data[:len(data)-100])); err == nil {
		t.Errorf("expected error for truncated ROM, got nil")
	}
}
