package cpu

// Load family: LDA, LDX, LDY copy an operand into a register and set
// N/Z from the result.

func (c *CPU) lda(o operand) {
	c.A = c.load(o)
	c.setZN(c.A)
}

func (c *CPU) ldx(o operand) {
	c.X = c.load(o)
	c.setZN(c.X)
}

func (c *CPU) ldy(o operand) {
	c.Y = c.load(o)
	c.setZN(c.Y)
}

// Store family: STA, STX, STY copy a register to memory. No flags.

func (c *CPU) sta(o operand) {
	c.store(o, c.A)
}

func (c *CPU) stx(o operand) {
	c.store(o, c.X)
}

func (c *CPU) sty(o operand) {
	c.store(o, c.Y)
}
