package cpu

// opcodeEntry binds one opcode byte to its addressing mode, base cycle
// count and semantic. exec always has the same shape regardless of
// instruction family so the dispatcher below never branches on what
// kind of instruction it is running; see the L/S/R/I/B/J/H
// constructors for how each family adapts into it.
type opcodeEntry struct {
	name        string
	mode        AddrMode
	cycles      int
	pageCrossed bool // true for read-class instructions that charge +1 on a page cross.
	exec        func(*CPU, operand) int
}

func wrap(f func(*CPU, operand)) func(*CPU, operand) int {
	return func(c *CPU, o operand) int { f(c, o); return 0 }
}

func wrapImplied(f func(*CPU)) func(*CPU, operand) int {
	return func(c *CPU, o operand) int { f(c); return 0 }
}

// L builds a load-class entry: resolves mode, reads the operand,
// never writes it back. cross charges +1 cycle on a page-crossing
// AbsoluteX/AbsoluteY/IndirectY effective address.
func L(name string, mode AddrMode, cycles int, cross bool, f func(*CPU, operand)) opcodeEntry {
	return opcodeEntry{name: name, mode: mode, cycles: cycles, pageCrossed: cross, exec: wrap(f)}
}

// S builds a store-class entry: resolves mode, writes the operand.
// Stores never charge a page-cross penalty.
func S(name string, mode AddrMode, cycles int, f func(*CPU, operand)) opcodeEntry {
	return opcodeEntry{name: name, mode: mode, cycles: cycles, exec: wrap(f)}
}

// R builds a read-modify-write entry (or an Accumulator-mode shift,
// which takes the same shape). RMW cycle counts already reflect the
// worst case, so no page-cross bookkeeping applies.
func R(name string, mode AddrMode, cycles int, f func(*CPU, operand)) opcodeEntry {
	return opcodeEntry{name: name, mode: mode, cycles: cycles, exec: wrap(f)}
}

// I builds an implied-mode entry: no addressing resolution consumes
// any byte beyond the opcode itself.
func I(name string, cycles int, f func(*CPU)) opcodeEntry {
	return opcodeEntry{name: name, mode: Implied, cycles: cycles, exec: wrapImplied(f)}
}

// B builds a branch entry. The branch semantic itself reports how many
// extra cycles (0, 1 or 2) the branch costs beyond the base.
func B(name string, cycles int, f func(*CPU, operand) int) opcodeEntry {
	return opcodeEntry{name: name, mode: Relative, cycles: cycles, exec: f}
}

// J builds a JMP/JSR entry: resolves mode (Absolute or Indirect for
// JMP, always Absolute for JSR) then jumps.
func J(name string, mode AddrMode, cycles int, f func(*CPU, operand)) opcodeEntry {
	return opcodeEntry{name: name, mode: mode, cycles: cycles, exec: wrap(f)}
}

// H builds a HLT entry: the illegal opcode that locks the bus solid on
// real NMOS silicon.
func H() opcodeEntry {
	return opcodeEntry{name: "HLT", mode: Implied, cycles: 2, exec: func(c *CPU, o operand) int {
		c.Halted = true
		return 0
	}}
}

// opcodes is the 256-entry dispatch table: opcode byte -> (addressing
// mode, base cycle count, semantic). The mapping of byte to
// mnemonic/mode follows the standard NMOS 6502 matrix (official
// opcodes per the usual references, undocumented ones per the common
// nesdev/ffd2 "extra opcodes" catalogue used by the Blargg conformance
// suite).
var opcodes = [256]opcodeEntry{
	0x00: I("BRK", 7, (*CPU).brk),
	0x01: L("ORA", IndirectX, 6, false, (*CPU).ora),
	0x02: H(),
	0x03: R("SLO", IndirectX, 8, (*CPU).slo),
	0x04: L("NOP", ZeroPage, 3, false, (*CPU).nop),
	0x05: L("ORA", ZeroPage, 3, false, (*CPU).ora),
	0x06: R("ASL", ZeroPage, 5, (*CPU).asl),
	0x07: R("SLO", ZeroPage, 5, (*CPU).slo),
	0x08: I("PHP", 3, (*CPU).php),
	0x09: L("ORA", Immediate, 2, false, (*CPU).ora),
	0x0A: R("ASL", Accumulator, 2, (*CPU).asl),
	0x0B: L("ANC", Immediate, 2, false, (*CPU).anc),
	0x0C: L("NOP", Absolute, 4, false, (*CPU).nop),
	0x0D: L("ORA", Absolute, 4, false, (*CPU).ora),
	0x0E: R("ASL", Absolute, 6, (*CPU).asl),
	0x0F: R("SLO", Absolute, 6, (*CPU).slo),
	0x10: B("BPL", 2, (*CPU).bpl),
	0x11: L("ORA", IndirectY, 5, true, (*CPU).ora),
	0x12: H(),
	0x13: R("SLO", IndirectY, 8, (*CPU).slo),
	0x14: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0x15: L("ORA", ZeroPageX, 4, false, (*CPU).ora),
	0x16: R("ASL", ZeroPageX, 6, (*CPU).asl),
	0x17: R("SLO", ZeroPageX, 6, (*CPU).slo),
	0x18: I("CLC", 2, (*CPU).clc),
	0x19: L("ORA", AbsoluteY, 4, true, (*CPU).ora),
	0x1A: I("NOP", 2, func(*CPU) {}),
	0x1B: R("SLO", AbsoluteY, 7, (*CPU).slo),
	0x1C: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0x1D: L("ORA", AbsoluteX, 4, true, (*CPU).ora),
	0x1E: R("ASL", AbsoluteX, 7, (*CPU).asl),
	0x1F: R("SLO", AbsoluteX, 7, (*CPU).slo),
	0x20: J("JSR", Absolute, 6, (*CPU).jsr),
	0x21: L("AND", IndirectX, 6, false, (*CPU).and),
	0x22: H(),
	0x23: R("RLA", IndirectX, 8, (*CPU).rla),
	0x24: L("BIT", ZeroPage, 3, false, (*CPU).bit),
	0x25: L("AND", ZeroPage, 3, false, (*CPU).and),
	0x26: R("ROL", ZeroPage, 5, (*CPU).rol),
	0x27: R("RLA", ZeroPage, 5, (*CPU).rla),
	0x28: I("PLP", 4, (*CPU).plp),
	0x29: L("AND", Immediate, 2, false, (*CPU).and),
	0x2A: R("ROL", Accumulator, 2, (*CPU).rol),
	0x2B: L("ANC", Immediate, 2, false, (*CPU).anc),
	0x2C: L("BIT", Absolute, 4, false, (*CPU).bit),
	0x2D: L("AND", Absolute, 4, false, (*CPU).and),
	0x2E: R("ROL", Absolute, 6, (*CPU).rol),
	0x2F: R("RLA", Absolute, 6, (*CPU).rla),
	0x30: B("BMI", 2, (*CPU).bmi),
	0x31: L("AND", IndirectY, 5, true, (*CPU).and),
	0x32: H(),
	0x33: R("RLA", IndirectY, 8, (*CPU).rla),
	0x34: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0x35: L("AND", ZeroPageX, 4, false, (*CPU).and),
	0x36: R("ROL", ZeroPageX, 6, (*CPU).rol),
	0x37: R("RLA", ZeroPageX, 6, (*CPU).rla),
	0x38: I("SEC", 2, (*CPU).sec),
	0x39: L("AND", AbsoluteY, 4, true, (*CPU).and),
	0x3A: I("NOP", 2, func(*CPU) {}),
	0x3B: R("RLA", AbsoluteY, 7, (*CPU).rla),
	0x3C: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0x3D: L("AND", AbsoluteX, 4, true, (*CPU).and),
	0x3E: R("ROL", AbsoluteX, 7, (*CPU).rol),
	0x3F: R("RLA", AbsoluteX, 7, (*CPU).rla),
	0x40: I("RTI", 6, (*CPU).rti),
	0x41: L("EOR", IndirectX, 6, false, (*CPU).eor),
	0x42: H(),
	0x43: R("SRE", IndirectX, 8, (*CPU).sre),
	0x44: L("NOP", ZeroPage, 3, false, (*CPU).nop),
	0x45: L("EOR", ZeroPage, 3, false, (*CPU).eor),
	0x46: R("LSR", ZeroPage, 5, (*CPU).lsr),
	0x47: R("SRE", ZeroPage, 5, (*CPU).sre),
	0x48: I("PHA", 3, (*CPU).pha),
	0x49: L("EOR", Immediate, 2, false, (*CPU).eor),
	0x4A: R("LSR", Accumulator, 2, (*CPU).lsr),
	0x4B: L("ALR", Immediate, 2, false, (*CPU).alr),
	0x4C: J("JMP", Absolute, 3, (*CPU).jmp),
	0x4D: L("EOR", Absolute, 4, false, (*CPU).eor),
	0x4E: R("LSR", Absolute, 6, (*CPU).lsr),
	0x4F: R("SRE", Absolute, 6, (*CPU).sre),
	0x50: B("BVC", 2, (*CPU).bvc),
	0x51: L("EOR", IndirectY, 5, true, (*CPU).eor),
	0x52: H(),
	0x53: R("SRE", IndirectY, 8, (*CPU).sre),
	0x54: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0x55: L("EOR", ZeroPageX, 4, false, (*CPU).eor),
	0x56: R("LSR", ZeroPageX, 6, (*CPU).lsr),
	0x57: R("SRE", ZeroPageX, 6, (*CPU).sre),
	0x58: I("CLI", 2, (*CPU).cli),
	0x59: L("EOR", AbsoluteY, 4, true, (*CPU).eor),
	0x5A: I("NOP", 2, func(*CPU) {}),
	0x5B: R("SRE", AbsoluteY, 7, (*CPU).sre),
	0x5C: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0x5D: L("EOR", AbsoluteX, 4, true, (*CPU).eor),
	0x5E: R("LSR", AbsoluteX, 7, (*CPU).lsr),
	0x5F: R("SRE", AbsoluteX, 7, (*CPU).sre),
	0x60: I("RTS", 6, (*CPU).rts),
	0x61: L("ADC", IndirectX, 6, false, (*CPU).adcOperand),
	0x62: H(),
	0x63: R("RRA", IndirectX, 8, (*CPU).rra),
	0x64: L("NOP", ZeroPage, 3, false, (*CPU).nop),
	0x65: L("ADC", ZeroPage, 3, false, (*CPU).adcOperand),
	0x66: R("ROR", ZeroPage, 5, (*CPU).ror),
	0x67: R("RRA", ZeroPage, 5, (*CPU).rra),
	0x68: I("PLA", 4, (*CPU).pla),
	0x69: L("ADC", Immediate, 2, false, (*CPU).adcOperand),
	0x6A: R("ROR", Accumulator, 2, (*CPU).ror),
	0x6B: L("ARR", Immediate, 2, false, (*CPU).arr),
	0x6C: J("JMP", Indirect, 5, (*CPU).jmp),
	0x6D: L("ADC", Absolute, 4, false, (*CPU).adcOperand),
	0x6E: R("ROR", Absolute, 6, (*CPU).ror),
	0x6F: R("RRA", Absolute, 6, (*CPU).rra),
	0x70: B("BVS", 2, (*CPU).bvs),
	0x71: L("ADC", IndirectY, 5, true, (*CPU).adcOperand),
	0x72: H(),
	0x73: R("RRA", IndirectY, 8, (*CPU).rra),
	0x74: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0x75: L("ADC", ZeroPageX, 4, false, (*CPU).adcOperand),
	0x76: R("ROR", ZeroPageX, 6, (*CPU).ror),
	0x77: R("RRA", ZeroPageX, 6, (*CPU).rra),
	0x78: I("SEI", 2, (*CPU).sei),
	0x79: L("ADC", AbsoluteY, 4, true, (*CPU).adcOperand),
	0x7A: I("NOP", 2, func(*CPU) {}),
	0x7B: R("RRA", AbsoluteY, 7, (*CPU).rra),
	0x7C: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0x7D: L("ADC", AbsoluteX, 4, true, (*CPU).adcOperand),
	0x7E: R("ROR", AbsoluteX, 7, (*CPU).ror),
	0x7F: R("RRA", AbsoluteX, 7, (*CPU).rra),
	0x80: L("NOP", Immediate, 2, false, (*CPU).nop),
	0x81: S("STA", IndirectX, 6, (*CPU).sta),
	0x82: L("NOP", Immediate, 2, false, (*CPU).nop),
	0x83: S("SAX", IndirectX, 6, (*CPU).sax),
	0x84: S("STY", ZeroPage, 3, (*CPU).sty),
	0x85: S("STA", ZeroPage, 3, (*CPU).sta),
	0x86: S("STX", ZeroPage, 3, (*CPU).stx),
	0x87: S("SAX", ZeroPage, 3, (*CPU).sax),
	0x88: I("DEY", 2, (*CPU).dey),
	0x89: L("NOP", Immediate, 2, false, (*CPU).nop),
	0x8A: I("TXA", 2, (*CPU).txa),
	0x8B: L("XAA", Immediate, 2, false, (*CPU).xaa),
	0x8C: S("STY", Absolute, 4, (*CPU).sty),
	0x8D: S("STA", Absolute, 4, (*CPU).sta),
	0x8E: S("STX", Absolute, 4, (*CPU).stx),
	0x8F: S("SAX", Absolute, 4, (*CPU).sax),
	0x90: B("BCC", 2, (*CPU).bcc),
	0x91: S("STA", IndirectY, 6, (*CPU).sta),
	0x92: H(),
	0x93: S("AHX", IndirectY, 6, (*CPU).ahx),
	0x94: S("STY", ZeroPageX, 4, (*CPU).sty),
	0x95: S("STA", ZeroPageX, 4, (*CPU).sta),
	0x96: S("STX", ZeroPageY, 4, (*CPU).stx),
	0x97: S("SAX", ZeroPageY, 4, (*CPU).sax),
	0x98: I("TYA", 2, (*CPU).tya),
	0x99: S("STA", AbsoluteY, 5, (*CPU).sta),
	0x9A: I("TXS", 2, (*CPU).txs),
	0x9B: S("TAS", AbsoluteY, 5, (*CPU).tas),
	0x9C: S("SHY", AbsoluteX, 5, (*CPU).shy),
	0x9D: S("STA", AbsoluteX, 5, (*CPU).sta),
	0x9E: S("SHX", AbsoluteY, 5, (*CPU).shx),
	0x9F: S("AHX", AbsoluteY, 5, (*CPU).ahx),
	0xA0: L("LDY", Immediate, 2, false, (*CPU).ldy),
	0xA1: L("LDA", IndirectX, 6, false, (*CPU).lda),
	0xA2: L("LDX", Immediate, 2, false, (*CPU).ldx),
	0xA3: L("LAX", IndirectX, 6, false, (*CPU).lax),
	0xA4: L("LDY", ZeroPage, 3, false, (*CPU).ldy),
	0xA5: L("LDA", ZeroPage, 3, false, (*CPU).lda),
	0xA6: L("LDX", ZeroPage, 3, false, (*CPU).ldx),
	0xA7: L("LAX", ZeroPage, 3, false, (*CPU).lax),
	0xA8: I("TAY", 2, (*CPU).tay),
	0xA9: L("LDA", Immediate, 2, false, (*CPU).lda),
	0xAA: I("TAX", 2, (*CPU).tax),
	0xAB: L("ATX", Immediate, 2, false, (*CPU).atx),
	0xAC: L("LDY", Absolute, 4, false, (*CPU).ldy),
	0xAD: L("LDA", Absolute, 4, false, (*CPU).lda),
	0xAE: L("LDX", Absolute, 4, false, (*CPU).ldx),
	0xAF: L("LAX", Absolute, 4, false, (*CPU).lax),
	0xB0: B("BCS", 2, (*CPU).bcs),
	0xB1: L("LDA", IndirectY, 5, true, (*CPU).lda),
	0xB2: H(),
	0xB3: L("LAX", IndirectY, 5, true, (*CPU).lax),
	0xB4: L("LDY", ZeroPageX, 4, false, (*CPU).ldy),
	0xB5: L("LDA", ZeroPageX, 4, false, (*CPU).lda),
	0xB6: L("LDX", ZeroPageY, 4, false, (*CPU).ldx),
	0xB7: L("LAX", ZeroPageY, 4, false, (*CPU).lax),
	0xB8: I("CLV", 2, (*CPU).clv),
	0xB9: L("LDA", AbsoluteY, 4, true, (*CPU).lda),
	0xBA: I("TSX", 2, (*CPU).tsx),
	0xBB: L("LAS", AbsoluteY, 4, true, (*CPU).las),
	0xBC: L("LDY", AbsoluteX, 4, true, (*CPU).ldy),
	0xBD: L("LDA", AbsoluteX, 4, true, (*CPU).lda),
	0xBE: L("LDX", AbsoluteY, 4, true, (*CPU).ldx),
	0xBF: L("LAX", AbsoluteY, 4, true, (*CPU).lax),
	0xC0: L("CPY", Immediate, 2, false, (*CPU).cpy),
	0xC1: L("CMP", IndirectX, 6, false, (*CPU).cmp),
	0xC2: L("NOP", Immediate, 2, false, (*CPU).nop),
	0xC3: R("DCP", IndirectX, 8, (*CPU).dcp),
	0xC4: L("CPY", ZeroPage, 3, false, (*CPU).cpy),
	0xC5: L("CMP", ZeroPage, 3, false, (*CPU).cmp),
	0xC6: R("DEC", ZeroPage, 5, (*CPU).dec),
	0xC7: R("DCP", ZeroPage, 5, (*CPU).dcp),
	0xC8: I("INY", 2, (*CPU).iny),
	0xC9: L("CMP", Immediate, 2, false, (*CPU).cmp),
	0xCA: I("DEX", 2, (*CPU).dex),
	0xCB: L("AXS", Immediate, 2, false, (*CPU).axs),
	0xCC: L("CPY", Absolute, 4, false, (*CPU).cpy),
	0xCD: L("CMP", Absolute, 4, false, (*CPU).cmp),
	0xCE: R("DEC", Absolute, 6, (*CPU).dec),
	0xCF: R("DCP", Absolute, 6, (*CPU).dcp),
	0xD0: B("BNE", 2, (*CPU).bne),
	0xD1: L("CMP", IndirectY, 5, true, (*CPU).cmp),
	0xD2: H(),
	0xD3: R("DCP", IndirectY, 8, (*CPU).dcp),
	0xD4: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0xD5: L("CMP", ZeroPageX, 4, false, (*CPU).cmp),
	0xD6: R("DEC", ZeroPageX, 6, (*CPU).dec),
	0xD7: R("DCP", ZeroPageX, 6, (*CPU).dcp),
	0xD8: I("CLD", 2, (*CPU).cld),
	0xD9: L("CMP", AbsoluteY, 4, true, (*CPU).cmp),
	0xDA: I("NOP", 2, func(*CPU) {}),
	0xDB: R("DCP", AbsoluteY, 7, (*CPU).dcp),
	0xDC: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0xDD: L("CMP", AbsoluteX, 4, true, (*CPU).cmp),
	0xDE: R("DEC", AbsoluteX, 7, (*CPU).dec),
	0xDF: R("DCP", AbsoluteX, 7, (*CPU).dcp),
	0xE0: L("CPX", Immediate, 2, false, (*CPU).cpx),
	0xE1: L("SBC", IndirectX, 6, false, (*CPU).sbcOperand),
	0xE2: L("NOP", Immediate, 2, false, (*CPU).nop),
	0xE3: R("ISC", IndirectX, 8, (*CPU).isc),
	0xE4: L("CPX", ZeroPage, 3, false, (*CPU).cpx),
	0xE5: L("SBC", ZeroPage, 3, false, (*CPU).sbcOperand),
	0xE6: R("INC", ZeroPage, 5, (*CPU).inc),
	0xE7: R("ISC", ZeroPage, 5, (*CPU).isc),
	0xE8: I("INX", 2, (*CPU).inx),
	0xE9: L("SBC", Immediate, 2, false, (*CPU).sbcOperand),
	0xEA: I("NOP", 2, func(*CPU) {}),
	0xEB: L("SBC", Immediate, 2, false, (*CPU).sbcOperand),
	0xEC: L("CPX", Absolute, 4, false, (*CPU).cpx),
	0xED: L("SBC", Absolute, 4, false, (*CPU).sbcOperand),
	0xEE: R("INC", Absolute, 6, (*CPU).inc),
	0xEF: R("ISC", Absolute, 6, (*CPU).isc),
	0xF0: B("BEQ", 2, (*CPU).beq),
	0xF1: L("SBC", IndirectY, 5, true, (*CPU).sbcOperand),
	0xF2: H(),
	0xF3: R("ISC", IndirectY, 8, (*CPU).isc),
	0xF4: L("NOP", ZeroPageX, 4, false, (*CPU).nop),
	0xF5: L("SBC", ZeroPageX, 4, false, (*CPU).sbcOperand),
	0xF6: R("INC", ZeroPageX, 6, (*CPU).inc),
	0xF7: R("ISC", ZeroPageX, 6, (*CPU).isc),
	0xF8: I("SED", 2, (*CPU).sed),
	0xF9: L("SBC", AbsoluteY, 4, true, (*CPU).sbcOperand),
	0xFA: I("NOP", 2, func(*CPU) {}),
	0xFB: R("ISC", AbsoluteY, 7, (*CPU).isc),
	0xFC: L("NOP", AbsoluteX, 4, true, (*CPU).nop),
	0xFD: L("SBC", AbsoluteX, 4, true, (*CPU).sbcOperand),
	0xFE: R("INC", AbsoluteX, 7, (*CPU).inc),
	0xFF: R("ISC", AbsoluteX, 7, (*CPU).isc),
}

// Step executes exactly one instruction: fetch the opcode at PC,
// advance PC, resolve its addressing mode, run its semantic, and
// return the total number of cycles the real chip would have spent.
// A HLT opcode or an addressing/dispatch inconsistency ends the step
// with an error; PC and registers reflect the state at the point of
// failure.
func (c *CPU) Step() (int, error) {
	if c.Halted {
		return 0, HaltError{c.haltOpcode, c.PC}
	}
	pc := c.PC
	op := c.fetch()
	entry := opcodes[op]
	if entry.exec == nil {
		return 0, UnknownOpcodeError{op, pc}
	}

	o := c.resolve(entry.mode)
	extra := entry.exec(c, o)

	cycles := entry.cycles + extra
	if entry.pageCrossed && o.pageCrossed {
		cycles++
	}

	if c.Halted {
		c.haltOpcode = op
		return cycles, HaltError{op, pc}
	}
	return cycles, nil
}
