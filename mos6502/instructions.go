package mos6502

import "errors"

var invalidInstruction = errors.New("invalid instruction")

// flagOrder lists status bits from N down to C, matching the
// conventional "NVUBDIZC" disassembler rendering.
var flagOrder = []struct {
	mask uint8
	ch   byte
}{
	{STATUS_FLAG_NEGATIVE, 'N'},
	{STATUS_FLAG_OVERFLOW, 'V'},
	{UNUSED_STATUS_FLAG, 'U'},
	{STATUS_FLAG_BREAK, 'B'},
	{STATUS_FLAG_DECIMAL, 'D'},
	{STATUS_FLAG_INTERRUPT_DISABLE, 'I'},
	{STATUS_FLAG_ZERO, 'Z'},
	{STATUS_FLAG_CARRY, 'C'},
}

func statusString(p uint8) string {
	b := make([]byte, len(flagOrder))
	for i, f := range flagOrder {
		if p&f.mask != 0 {
			b[i] = f.ch
		} else {
			b[i] = '-'
		}
	}
	return string(b)
}

func (c *CPU) ADC(mode uint8) {
	c.addWithOverflow(c.Read(c.getOperandAddr(mode)))
}

func (c *CPU) AND(mode uint8) {
	c.acc &= c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) ASL(mode uint8) {
	if mode == ACCUMULATOR {
		if c.acc&0x80 != 0 {
			c.flagsOn(STATUS_FLAG_CARRY)
		} else {
			c.flagsOff(STATUS_FLAG_CARRY)
		}
		c.acc <<= 1
		c.setNegativeAndZeroFlags(c.acc)
		return
	}

	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v <<= 1
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) BCC(mode uint8) { c.branch(STATUS_FLAG_CARRY, false) }
func (c *CPU) BCS(mode uint8) { c.branch(STATUS_FLAG_CARRY, true) }
func (c *CPU) BEQ(mode uint8) { c.branch(STATUS_FLAG_ZERO, true) }

func (c *CPU) BIT(mode uint8) {
	v := c.Read(c.getOperandAddr(mode))
	if c.acc&v == 0 {
		c.flagsOn(STATUS_FLAG_ZERO)
	} else {
		c.flagsOff(STATUS_FLAG_ZERO)
	}
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_NEGATIVE)
	} else {
		c.flagsOff(STATUS_FLAG_NEGATIVE)
	}
	if v&0x40 != 0 {
		c.flagsOn(STATUS_FLAG_OVERFLOW)
	} else {
		c.flagsOff(STATUS_FLAG_OVERFLOW)
	}
}

func (c *CPU) BMI(mode uint8) { c.branch(STATUS_FLAG_NEGATIVE, true) }
func (c *CPU) BNE(mode uint8) { c.branch(STATUS_FLAG_ZERO, false) }
func (c *CPU) BPL(mode uint8) { c.branch(STATUS_FLAG_NEGATIVE, false) }

// BRK pushes the return address (pc+1, skipping the padding byte) and
// status with B set, vectors through $FFFE, and disables further
// IRQs; a real 2-byte software interrupt, not a no-op.
func (c *CPU) BRK(mode uint8) {
	c.pushAddress(c.pc + 1)
	c.pushStack(c.status | STATUS_FLAG_BREAK)
	c.pc = c.Read16(INT_BRK)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
}

func (c *CPU) BVC(mode uint8) { c.branch(STATUS_FLAG_OVERFLOW, false) }
func (c *CPU) BVS(mode uint8) { c.branch(STATUS_FLAG_OVERFLOW, true) }

func (c *CPU) CLC(mode uint8) { c.flagsOff(STATUS_FLAG_CARRY) }
func (c *CPU) CLD(mode uint8) { c.flagsOff(STATUS_FLAG_DECIMAL) }
func (c *CPU) CLI(mode uint8) { c.flagsOff(STATUS_FLAG_INTERRUPT_DISABLE) }
func (c *CPU) CLV(mode uint8) { c.flagsOff(STATUS_FLAG_OVERFLOW) }

func (c *CPU) CMP(mode uint8) { c.baseCMP(c.acc, c.Read(c.getOperandAddr(mode))) }
func (c *CPU) CPX(mode uint8) { c.baseCMP(c.x, c.Read(c.getOperandAddr(mode))) }
func (c *CPU) CPY(mode uint8) { c.baseCMP(c.y, c.Read(c.getOperandAddr(mode))) }

func (c *CPU) DEC(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr) - 1
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) DEX(mode uint8) {
	c.x--
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) DEY(mode uint8) {
	c.y--
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) EOR(mode uint8) {
	c.acc ^= c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) INC(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr) + 1
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) INX(mode uint8) {
	c.x++
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) INY(mode uint8) {
	c.y++
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) JMP(mode uint8) {
	c.pc = c.getOperandAddr(mode)
}

func (c *CPU) JSR(mode uint8) {
	addr := c.getOperandAddr(mode)
	c.pushAddress(c.pc + 1)
	c.pc = addr
}

func (c *CPU) LDA(mode uint8) {
	c.acc = c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) LDX(mode uint8) {
	c.x = c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) LDY(mode uint8) {
	c.y = c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) LSR(mode uint8) {
	if mode == ACCUMULATOR {
		if c.acc&0x01 != 0 {
			c.flagsOn(STATUS_FLAG_CARRY)
		} else {
			c.flagsOff(STATUS_FLAG_CARRY)
		}
		c.acc >>= 1
		c.setNegativeAndZeroFlags(c.acc)
		return
	}

	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x01 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v >>= 1
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) NOP(mode uint8) {
	if mode != IMPLICIT {
		// Undocumented NOPs still touch memory/cross pages for
		// their cycle cost; the read is discarded.
		c.Read(c.getOperandAddr(mode))
	}
}

func (c *CPU) ORA(mode uint8) {
	c.acc |= c.Read(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) PHA(mode uint8) { c.pushStack(c.acc) }

func (c *CPU) PHP(mode uint8) {
	c.pushStack(c.status | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
}

func (c *CPU) PLA(mode uint8) {
	c.acc = c.popStack()
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) PLP(mode uint8) {
	c.status = (c.popStack() &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG
}

func (c *CPU) ROL(mode uint8) {
	carryIn := uint8(0)
	if c.status&STATUS_FLAG_CARRY != 0 {
		carryIn = 1
	}

	if mode == ACCUMULATOR {
		if c.acc&0x80 != 0 {
			c.flagsOn(STATUS_FLAG_CARRY)
		} else {
			c.flagsOff(STATUS_FLAG_CARRY)
		}
		c.acc = (c.acc << 1) | carryIn
		c.setNegativeAndZeroFlags(c.acc)
		return
	}

	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (v << 1) | carryIn
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) ROR(mode uint8) {
	carryIn := uint8(0)
	if c.status&STATUS_FLAG_CARRY != 0 {
		carryIn = 0x80
	}

	if mode == ACCUMULATOR {
		if c.acc&0x01 != 0 {
			c.flagsOn(STATUS_FLAG_CARRY)
		} else {
			c.flagsOff(STATUS_FLAG_CARRY)
		}
		c.acc = (c.acc >> 1) | carryIn
		c.setNegativeAndZeroFlags(c.acc)
		return
	}

	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x01 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (v >> 1) | carryIn
	c.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func (c *CPU) RTI(mode uint8) {
	c.status = (c.popStack() &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG
	c.pc = c.popAddress()
}

func (c *CPU) RTS(mode uint8) {
	c.pc = c.popAddress() + 1
}

func (c *CPU) SBC(mode uint8) {
	v := c.Read(c.getOperandAddr(mode))
	c.addWithOverflow(^v)
}

func (c *CPU) SEC(mode uint8) { c.flagsOn(STATUS_FLAG_CARRY) }
func (c *CPU) SED(mode uint8) { c.flagsOn(STATUS_FLAG_DECIMAL) }
func (c *CPU) SEI(mode uint8) { c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE) }

func (c *CPU) STA(mode uint8) { c.Write(c.getOperandAddr(mode), c.acc) }
func (c *CPU) STX(mode uint8) { c.Write(c.getOperandAddr(mode), c.x) }
func (c *CPU) STY(mode uint8) { c.Write(c.getOperandAddr(mode), c.y) }

func (c *CPU) TAX(mode uint8) {
	c.x = c.acc
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) TAY(mode uint8) {
	c.y = c.acc
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) TSX(mode uint8) {
	c.x = c.sp
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) TXA(mode uint8) {
	c.acc = c.x
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) TXS(mode uint8) { c.sp = c.x }

func (c *CPU) TYA(mode uint8) {
	c.acc = c.y
	c.setNegativeAndZeroFlags(c.acc)
}

// --- Undocumented NMOS opcodes ---
// Each combines two legal operations the NMOS 6502's ALU performs in
// the same cycle as a side effect of its microcode; semantics follow
// the standard references (nestest's "unofficial opcodes" appendix).

// LAX loads both acc and x from memory in one instruction.
func (c *CPU) LAX(mode uint8) {
	v := c.Read(c.getOperandAddr(mode))
	c.acc = v
	c.x = v
	c.setNegativeAndZeroFlags(v)
}

// SAX stores acc AND x, touching no flags.
func (c *CPU) SAX(mode uint8) {
	c.Write(c.getOperandAddr(mode), c.acc&c.x)
}

// DCP (a.k.a. DCM) decrements memory, then compares it against acc.
func (c *CPU) DCP(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr) - 1
	c.Write(addr, v)
	c.baseCMP(c.acc, v)
}

// ISC (a.k.a. ISB) increments memory, then subtracts it from acc.
func (c *CPU) ISC(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr) + 1
	c.Write(addr, v)
	c.addWithOverflow(^v)
}

// SLO shifts memory left, then ORs the result into acc.
func (c *CPU) SLO(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v <<= 1
	c.Write(addr, v)
	c.acc |= v
	c.setNegativeAndZeroFlags(c.acc)
}

// RLA rotates memory left through carry, then ANDs the result into acc.
func (c *CPU) RLA(mode uint8) {
	carryIn := uint8(0)
	if c.status&STATUS_FLAG_CARRY != 0 {
		carryIn = 1
	}
	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (v << 1) | carryIn
	c.Write(addr, v)
	c.acc &= v
	c.setNegativeAndZeroFlags(c.acc)
}

// SRE shifts memory right, then EORs the result into acc.
func (c *CPU) SRE(mode uint8) {
	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x01 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v >>= 1
	c.Write(addr, v)
	c.acc ^= v
	c.setNegativeAndZeroFlags(c.acc)
}

// RRA rotates memory right through carry, then ADCs the result into acc.
func (c *CPU) RRA(mode uint8) {
	carryIn := uint8(0)
	if c.status&STATUS_FLAG_CARRY != 0 {
		carryIn = 0x80
	}
	addr := c.getOperandAddr(mode)
	v := c.Read(addr)
	if v&0x01 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (v >> 1) | carryIn
	c.Write(addr, v)
	c.addWithOverflow(v)
}
