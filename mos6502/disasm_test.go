package mos6502

import "testing"

func TestDisassembleImmediate(t *testing.T) {
	c := New(NewMem())
	c.Write(0x0400, 0xA9) // LDA #$42
	c.Write(0x0401, 0x42)
	c.SetPC(0x0400)

	got, err := c.Disassemble(0x0400)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	for _, want := range []string{"0400", "A9 42", "LDA", "#$42", "A:00", "X:00", "Y:00", "P:24", "SP:FD"} {
		if !contains(got, want) {
			t.Errorf("Disassemble = %q, want it to contain %q", got, want)
		}
	}
}

func TestDisassembleAbsoluteX(t *testing.T) {
	c := New(NewMem())
	c.Write(0x0400, 0xBD) // LDA $1234,X
	c.Write(0x0401, 0x34)
	c.Write(0x0402, 0x12)

	got, err := c.Disassemble(0x0400)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if want := "$1234,X"; !contains(got, want) {
		t.Errorf("Disassemble = %q, want operand containing %q", got, want)
	}
}

func TestDisassembleInvalidOpcode(t *testing.T) {
	c := New(NewMem())
	c.Write(0x0400, 0x02) // JAM; not in the opcode table

	if _, err := c.Disassemble(0x0400); err == nil {
		t.Errorf("Disassemble of unimplemented opcode returned nil error")
	}
}

func TestDisassembleDoesNotMutateState(t *testing.T) {
	c := New(NewMem())
	c.Write(0x0400, 0xA9)
	c.Write(0x0401, 0x42)
	c.SetPC(0x0400)

	before := c.String()
	if _, err := c.Disassemble(0x0400); err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if after := c.String(); after != before {
		t.Errorf("Disassemble mutated CPU state: before %q, after %q", before, after)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
