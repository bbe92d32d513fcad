package mos6502

import "fmt"

// Peeker is satisfied by a Bus that can inspect memory without
// triggering read side effects (PPUSTATUS clearing the latch and
// vblank flag, controller shift-register advance, and so on).
// Disassembly uses it when available so trace output never perturbs
// emulated state; buses that don't implement it fall back to Read,
// which is safe everywhere except the small set of side-effecting
// registers a disassembler should never be pointed at anyway.
type Peeker interface {
	Peek(addr uint16) uint8
}

func (c *CPU) peek(addr uint16) uint8 {
	if p, ok := c.bus.(Peeker); ok {
		return p.Peek(addr)
	}
	return c.Read(addr)
}

func (c *CPU) peek16(addr uint16) uint16 {
	lo := uint16(c.peek(addr))
	hi := uint16(c.peek(addr + 1))
	return (hi << 8) | lo
}

// Disassemble renders one nestest-style trace line for the
// instruction at pc, without mutating CPU or bus state: register
// values, the raw opcode bytes, and the mnemonic with its resolved
// operand bytes (not its effective address, which for indexed/
// indirect modes can only be computed by actually executing).
func (c *CPU) Disassemble(pc uint16) (string, error) {
	m := c.peek(pc)
	op, ok := opcodes[m]
	if !ok {
		return "", fmt.Errorf("pc: %#04x, inst: %#02x - %w", pc, m, invalidInstruction)
	}

	raw := make([]uint8, op.bytes)
	for i := range raw {
		raw[i] = c.peek(pc + uint16(i))
	}

	operand := disasmOperand(op, raw)

	return fmt.Sprintf("%04X  %-9s %-4s%-28s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc, hexBytes(raw), op.name, operand, c.acc, c.x, c.y, c.status, c.sp), nil
}

func hexBytes(raw []uint8) string {
	s := ""
	for i, b := range raw {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02X", b)
	}
	return s
}

// disasmOperand formats the operand portion of a trace line purely
// from the already-fetched instruction bytes; it never re-reads
// memory, so it's safe to call for instructions that target
// side-effecting registers.
func disasmOperand(op opcode, raw []uint8) string {
	switch op.mode {
	case IMPLICIT:
		return ""
	case ACCUMULATOR:
		return "A"
	case IMMEDIATE:
		return fmt.Sprintf("#$%02X", raw[1])
	case ZERO_PAGE:
		return fmt.Sprintf("$%02X", raw[1])
	case ZERO_PAGE_X:
		return fmt.Sprintf("$%02X,X", raw[1])
	case ZERO_PAGE_Y:
		return fmt.Sprintf("$%02X,Y", raw[1])
	case RELATIVE:
		return fmt.Sprintf("*%+d", int8(raw[1]))
	case ABSOLUTE:
		return fmt.Sprintf("$%02X%02X", raw[2], raw[1])
	case ABSOLUTE_X:
		return fmt.Sprintf("$%02X%02X,X", raw[2], raw[1])
	case ABSOLUTE_Y:
		return fmt.Sprintf("$%02X%02X,Y", raw[2], raw[1])
	case INDIRECT:
		return fmt.Sprintf("($%02X%02X)", raw[2], raw[1])
	case INDIRECT_X:
		return fmt.Sprintf("($%02X,X)", raw[1])
	case INDIRECT_Y:
		return fmt.Sprintf("($%02X),Y", raw[1])
	default:
		return ""
	}
}
