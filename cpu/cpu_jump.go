package cpu

// Jump/return family.

// jmp is shared by JMP absolute and JMP indirect; the addressing
// resolver has already computed the final target (including the
// indirect page-wrap hardware bug for the indirect form).
func (c *CPU) jmp(o operand) {
	c.PC = o.addr
}

// jsr pushes (PC-1) of the instruction following the JSR, high byte
// first then low, then jumps to the resolved target. PC already points
// past the two operand bytes by the time resolve(Absolute) returns.
func (c *CPU) jsr(o operand) {
	c.push16(c.PC - 1)
	c.PC = o.addr
}

// rts pops low-then-high and sets PC to that value plus one, undoing
// the "minus one" JSR pushed.
func (c *CPU) rts() {
	c.PC = c.pop16() + 1
}

// rti pops the status byte then PC (low then high); unlike RTS it does
// not add one, since what was pushed was the exact interrupted PC.
func (c *CPU) rti() {
	c.SetP(c.pop())
	c.PC = c.pop16()
}

// brk implements the full interrupt-style BRK: push PC+1 (PC already
// points past the BRK opcode; the 6502 additionally skips the padding
// byte following it) and P with B set, disable further interrupts, and
// jump through the IRQ/BRK vector. Blargg conformance ROMs never
// execute BRK and instead signal completion through memory (see
// package harness), so this only matters for code that deliberately
// uses BRK as a software interrupt.
func (c *CPU) brk() {
	c.PC++ // Skip the signature/padding byte after the opcode.
	c.push16(c.PC)
	c.push(c.packP(true))
	c.flagI = true
	lo := c.Bus.Read(IRQVector)
	hi := c.Bus.Read(IRQVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}
