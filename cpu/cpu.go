// Package cpu implements the MOS 6502 core as embedded in the NES
// (Ricoh 2A03: NMOS 6502 minus decimal-mode arithmetic). It provides
// the register file, flag byte, addressing-mode resolver and the full
// instruction set, driven one instruction at a time through Step.
package cpu

import (
	"fmt"

	"github.com/nesquik/nescore/memory"
)

const (
	ResetVector = uint16(0xFFFC)
	NMIVector   = uint16(0xFFFA)
	IRQVector   = uint16(0xFFFE)

	// Flag bit positions within the status byte P.
	PCarry    = uint8(0x01)
	PZero     = uint8(0x02)
	PInterupt = uint8(0x04)
	PDecimal  = uint8(0x08)
	PBreak    = uint8(0x10)
	PUnused   = uint8(0x20) // Always reads as 1.
	POverflow = uint8(0x40)
	PNegative = uint8(0x80)

	stackBase = uint16(0x0100)
)

// InvalidCPUState describes a violation of the CPU's internal
// bookkeeping (e.g. an addressing mode invoked for an instruction it
// doesn't support). No code path in this package returns it: every
// dispatched opcode is bound to a mode its semantic handles.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// UnknownOpcodeError is returned by Step when the fetched byte has no
// entry in the dispatch table. All 256 byte values are in fact bound
// (official + undocumented + multi-byte NOPs), so this only fires if
// the dispatch table itself is corrupted.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02X at PC 0x%04X", e.Opcode, e.PC)
}

// HaltError is returned by Step when a HLT (a.k.a. KIL/JAM) opcode is
// executed. Real silicon locks up solid at that point; this package
// reports it as a terminal condition on the step loop instead.
type HaltError struct {
	Opcode uint8
	PC     uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("HLT(0x%02X) executed at PC 0x%04X", e.Opcode, e.PC)
}

// CPU holds the 6502 register file, flag state and a reference to the
// memory bus it fetches and operates against. A CPU owns nothing else;
// instances are freely constructed for tests.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	// Flags, tracked individually per the Design Notes and packed only
	// at push/trace time.
	flagC bool
	flagZ bool
	flagI bool
	flagD bool
	flagV bool
	flagN bool

	Bus memory.Bus

	// Halted latches once a HLT opcode has executed; Step keeps
	// returning HaltError without consuming further bytes.
	Halted     bool
	haltOpcode uint8
}

// New returns a CPU wired to the given bus. Registers are zeroed; call
// Reset to bring it to power-on state from the cartridge's reset vector.
func New(bus memory.Bus) *CPU {
	return &CPU{Bus: bus}
}

// Reset initializes the CPU the way a real 6502 does when /RESET is
// pulled low then released: SP is set to 0xFD, the I flag is set, and
// PC is loaded from the reset vector. A, X, Y and the other flags are
// left as they were (PowerOn is the one that zeroes them).
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.flagI = true
	c.Halted = false
	c.haltOpcode = 0
	lo := c.Bus.Read(ResetVector)
	hi := c.Bus.Read(ResetVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

// PowerOn resets the CPU to a cold-boot state: A/X/Y are zeroed (real
// hardware is undefined here; zero is the deterministic choice test
// ROMs expect), flags are cleared but for the always-set bit 5, and
// Reset is then run to load PC from the vector.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.flagC, c.flagZ, c.flagD, c.flagV, c.flagN = false, false, false, false, false
	c.Reset()
}

// P returns the packed status byte with bit 5 forced high and bit 4
// (B) clear, matching the value of P outside of a pushed status byte.
func (c *CPU) P() uint8 {
	return c.packP(false)
}

// packP packs the six logical flags into a status byte. brk controls
// bit 4 (B): true when called to build the byte BRK/PHP push, false
// for every other read of P.
func (c *CPU) packP(brk bool) uint8 {
	var p uint8 = PUnused
	if c.flagN {
		p |= PNegative
	}
	if c.flagV {
		p |= POverflow
	}
	if brk {
		p |= PBreak
	}
	if c.flagD {
		p |= PDecimal
	}
	if c.flagI {
		p |= PInterupt
	}
	if c.flagZ {
		p |= PZero
	}
	if c.flagC {
		p |= PCarry
	}
	return p
}

// SetP unpacks a status byte into the six logical flags, ignoring bits
// 4 and 5 (B is not a latched flag outside of a pushed byte).
func (c *CPU) SetP(b uint8) {
	c.flagN = b&PNegative != 0
	c.flagV = b&POverflow != 0
	c.flagD = b&PDecimal != 0
	c.flagI = b&PInterupt != 0
	c.flagZ = b&PZero != 0
	c.flagC = b&PCarry != 0
}

func (c *CPU) setZN(v uint8) {
	c.flagZ = v == 0
	c.flagN = v&0x80 != 0
}

// push writes val to the stack page and decrements SP, wrapping modulo
// 256 as the stack always stays within [0x0100, 0x01FF].
func (c *CPU) push(val uint8) {
	c.Bus.Write(stackBase+uint16(c.SP), val)
	c.SP--
}

// pop increments SP (wrapping) and reads the resulting stack slot.
func (c *CPU) pop() uint8 {
	c.SP++
	return c.Bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// branchOffset interprets b as a signed 8-bit relative offset and
// returns PC + sign_extend(b).
func branchOffset(pc uint16, b uint8) uint16 {
	return uint16(int32(pc) + int32(int8(b)))
}
