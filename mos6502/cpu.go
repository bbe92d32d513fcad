// Package mos6502 implements the MOS Technologies 6502 processor, including
// the NMOS illegal-opcode behavior exercised by real NES cartridges.
package mos6502

import (
	"fmt"
	"math"

	"github.com/golang/glog"
)

const MEM_SIZE = math.MaxUint16 + 1

// Interrupt vectors.
const (
	INT_NMI   = 0xFFFA
	INT_RESET = 0xFFFC
	INT_IRQ   = 0xFFFE
	INT_BRK   = INT_IRQ
)

// Status register flags.
const (
	STATUS_FLAG_CARRY             = 1 << 0
	STATUS_FLAG_ZERO              = 1 << 1
	STATUS_FLAG_INTERRUPT_DISABLE = 1 << 2
	STATUS_FLAG_DECIMAL           = 1 << 3
	STATUS_FLAG_BREAK             = 1 << 4
	UNUSED_STATUS_FLAG            = 1 << 5
	STATUS_FLAG_OVERFLOW          = 1 << 6
	STATUS_FLAG_NEGATIVE          = 1 << 7
)

const STACK_PAGE = 0x0100

// Bus is the minimal memory interface the CPU needs. console.Bus
// satisfies it by decoding the full CPU address space ($0000-$FFFF),
// including PPU register mirrors, controller ports and the cartridge
// mapper; the CPU itself owns no memory of its own.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// CPU holds 6502 register state and executes instructions against a Bus.
type CPU struct {
	acc, x, y uint8
	status    uint8
	sp        uint8
	pc        uint16

	bus Bus

	// cycles counts down the remaining cycles of the instruction
	// currently executing; Step only fetches a new instruction once
	// it reaches zero.
	cycles int
}

// New returns a CPU wired to bus, with registers in their documented
// power-on state (https://www.nesdev.org/wiki/CPU_power_up_state) and
// pc loaded from the reset vector.
func New(bus Bus) *CPU {
	c := &CPU{
		sp:     0xFD,
		bus:    bus,
		status: UNUSED_STATUS_FLAG | STATUS_FLAG_INTERRUPT_DISABLE,
	}
	c.pc = c.Read16(INT_RESET)
	return c
}

func (c *CPU) PC() uint16      { return c.pc }
func (c *CPU) SetPC(pc uint16) { c.pc = pc }

// Cycles returns the number of cycles left to drain from the
// instruction currently in flight, for callers (the bus's trace
// output, the monitor's single-step command) that need to know how
// much wall-clock the last Step() consumed.
func (c *CPU) Cycles() int { return c.cycles }

// StallDMA adds extra cycles the CPU must sit idle for, as real
// hardware does during OAM DMA (513 cycles, 514 if the stall begins
// on an odd CPU cycle).
func (c *CPU) StallDMA(cycles int) {
	c.cycles += cycles
}

// Inst describes the instruction about to execute, for the
// interactive monitor's instruction-dump command.
func (c *CPU) Inst() string {
	op, err := c.getInst()
	if err != nil {
		return err.Error()
	}
	return op.String()
}

// LoadMem copies data into the bus's address space starting at addr.
func (c *CPU) LoadMem(addr uint16, data []byte) {
	for i, b := range data {
		c.Write(addr+uint16(i), b)
	}
}

func (c *CPU) Read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) Write(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	lsb := uint16(c.Read(addr))
	msb := uint16(c.Read(addr + 1))
	return (msb << 8) | lsb
}

func (c *CPU) Write16(addr uint16, val uint16) {
	c.Write(addr, uint8(val&0x00FF))
	c.Write(addr+1, uint8(val>>8))
}

func (c *CPU) memRange(low, high uint16) []uint8 {
	ret := make([]uint8, 0, int(high-low)+1)
	for i := low; ; i++ {
		ret = append(ret, c.Read(i))
		if i == high || i == math.MaxUint16 {
			break
		}
	}
	return ret
}

// StackAddr returns the absolute address the stack pointer currently
// refers to, on the fixed zero-page-adjacent stack page.
func (c *CPU) StackAddr() uint16 {
	return STACK_PAGE + uint16(c.sp)
}

func (c *CPU) pushStack(val uint8) {
	c.Write(c.StackAddr(), val)
	c.sp--
}

func (c *CPU) popStack() uint8 {
	c.sp++
	return c.Read(c.StackAddr())
}

func (c *CPU) pushAddress(addr uint16) {
	c.pushStack(uint8(addr >> 8))
	c.pushStack(uint8(addr & 0x00FF))
}

func (c *CPU) popAddress() uint16 {
	lsb := uint16(c.popStack())
	msb := uint16(c.popStack())
	return (msb << 8) | lsb
}

func (c *CPU) flagsOn(mask uint8) {
	c.status |= mask
}

func (c *CPU) flagsOff(mask uint8) {
	c.status &^= mask
}

func (c *CPU) setNegativeAndZeroFlags(val uint8) {
	if val == 0 {
		c.flagsOn(STATUS_FLAG_ZERO)
	} else {
		c.flagsOff(STATUS_FLAG_ZERO)
	}

	if val&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_NEGATIVE)
	} else {
		c.flagsOff(STATUS_FLAG_NEGATIVE)
	}
}

// extraCycles returns 1 when addr1 and addr2 fall on different pages,
// the penalty NMOS 6502 indexed addressing modes pay for crossing one.
func extraCycles(addr1, addr2 uint16) uint8 {
	if addr1&0xFF00 != addr2&0xFF00 {
		return 1
	}
	return 0
}

// branch implements the eight conditional branch instructions: if
// predicate holds for the flag selected by mask, pc moves to the
// relative operand address and the instruction pays for the taken
// branch (and an extra cycle again if that crosses a page).
func (c *CPU) branch(mask uint8, predicate bool) {
	addr := c.getOperandAddr(RELATIVE)
	if (c.status&mask != 0) != predicate {
		return
	}

	c.cycles++
	c.cycles += int(extraCycles(c.pc, addr))
	c.pc = addr
}

// addWithOverflow implements binary ADC. The 2A03 used in this console
// has its decimal-mode circuitry disabled at the silicon level: D can
// be set and cleared but never affects arithmetic.
func (c *CPU) addWithOverflow(b uint8) {
	carryIn := uint16(0)
	if c.status&STATUS_FLAG_CARRY != 0 {
		carryIn = 1
	}

	sum := uint16(c.acc) + uint16(b) + carryIn
	result := uint8(sum)

	if sum > 0xFF {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}

	if (c.acc^result)&(b^result)&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_OVERFLOW)
	} else {
		c.flagsOff(STATUS_FLAG_OVERFLOW)
	}

	c.acc = result
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) baseCMP(a, b uint8) {
	if a >= b {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	c.setNegativeAndZeroFlags(a - b)
}

// getOperandAddr resolves the effective address for mode, consuming
// the operand bytes following the opcode at c.pc (which must already
// point at the first operand byte). It must never be called for
// ACCUMULATOR or IMPLICIT, which have no operand address.
func (c *CPU) getOperandAddr(mode uint8) uint16 {
	switch mode {
	case IMMEDIATE:
		return c.pc
	case ZERO_PAGE:
		return uint16(c.Read(c.pc))
	case ZERO_PAGE_X:
		return uint16(c.Read(c.pc) + c.x)
	case ZERO_PAGE_Y:
		return uint16(c.Read(c.pc) + c.y)
	case RELATIVE:
		offset := int8(c.Read(c.pc))
		return uint16(int32(c.pc+1) + int32(offset))
	case ABSOLUTE:
		return c.Read16(c.pc)
	case ABSOLUTE_X:
		base := c.Read16(c.pc)
		addr := base + uint16(c.x)
		c.cycles += int(extraCycles(base, addr))
		return addr
	case ABSOLUTE_Y:
		base := c.Read16(c.pc)
		addr := base + uint16(c.y)
		c.cycles += int(extraCycles(base, addr))
		return addr
	case INDIRECT:
		ptr := c.Read16(c.pc)
		// The indirect JMP bug: if the pointer's low byte is
		// 0xFF, the high byte wraps within the same page
		// instead of crossing into the next one.
		if ptr&0x00FF == 0x00FF {
			lsb := uint16(c.Read(ptr))
			msb := uint16(c.Read(ptr & 0xFF00))
			return (msb << 8) | lsb
		}
		return c.Read16(ptr)
	case INDIRECT_X:
		ptr := c.Read(c.pc) + c.x
		lsb := uint16(c.Read(uint16(ptr)))
		msb := uint16(c.Read(uint16(ptr + 1)))
		return (msb << 8) | lsb
	case INDIRECT_Y:
		ptr := c.Read(c.pc)
		lsb := uint16(c.Read(uint16(ptr)))
		msb := uint16(c.Read(uint16(ptr + 1)))
		base := (msb << 8) | lsb
		addr := base + uint16(c.y)
		c.cycles += int(extraCycles(base, addr))
		return addr
	default:
		panic(fmt.Sprintf("mos6502: getOperandAddr called with non-memory mode %d", mode))
	}
}

func (c *CPU) getInst() (opcode, error) {
	m := c.Read(c.pc)
	op, ok := opcodes[m]
	if !ok {
		return opcode{}, fmt.Errorf("pc: %#04x, inst: %#02x - %w", c.pc, m, invalidInstruction)
	}
	return op, nil
}

// Step executes one instruction's worth of work, or, if the previous
// instruction's cycles haven't fully elapsed, simply consumes one.
func (c *CPU) Step() {
	if c.cycles > 0 {
		c.cycles--
		return
	}

	op, err := c.getInst()
	if err != nil {
		glog.Fatalf("mos6502: %v", err)
	}

	fn, ok := dispatch[op.inst]
	if !ok {
		glog.Fatalf("mos6502: no dispatch entry for instruction %s", op.name)
	}

	c.cycles += int(op.cycles)
	c.pc++
	opc := c.pc

	fn(c, op.mode)

	if c.pc == opc {
		c.pc += uint16(op.bytes) - 1
	}
}

// Reset puts the CPU through its reset sequence: interrupts disabled,
// pc reloaded from the reset vector. Unlike power-on, acc/x/y/sp are
// left untouched.
func (c *CPU) Reset() {
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE | UNUSED_STATUS_FLAG)
	c.pc = c.Read16(INT_RESET)
}

// NMI services a non-maskable interrupt: push pc and status (with B
// clear, U set), vector through $FFFA, disable further IRQs.
func (c *CPU) NMI() {
	c.pushAddress(c.pc)
	c.pushStack((c.status &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.Read16(INT_NMI)
	c.cycles += 7
}

// IRQ services a maskable interrupt, a no-op while I is set.
func (c *CPU) IRQ() {
	if c.status&STATUS_FLAG_INTERRUPT_DISABLE != 0 {
		return
	}
	c.pushAddress(c.pc)
	c.pushStack((c.status &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.Read16(INT_IRQ)
	c.cycles += 7
}

func (c *CPU) String() string {
	op, err := c.getInst()
	name := "???"
	if err == nil {
		name = op.name
	}
	return fmt.Sprintf("pc=%#04x acc=%#02x x=%#02x y=%#02x sp=%#02x status=%s next=%s",
		c.pc, c.acc, c.x, c.y, c.sp, statusString(c.status), name)
}
