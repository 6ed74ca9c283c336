package cpu

// Compare family: CMP, CPX, CPY.

func (c *CPU) cmp(o operand) { c.compare(c.A, c.load(o)) }
func (c *CPU) cpx(o operand) { c.compare(c.X, c.load(o)) }
func (c *CPU) cpy(o operand) { c.compare(c.Y, c.load(o)) }

// Increment/decrement family: INC/DEC (memory), INX/DEX, INY/DEY.

func (c *CPU) inc(o operand) {
	res := c.load(o) + 1
	c.store(o, res)
	c.setZN(res)
}

func (c *CPU) dec(o operand) {
	res := c.load(o) - 1
	c.store(o, res)
	c.setZN(res)
}

func (c *CPU) inx() { c.X++; c.setZN(c.X) }
func (c *CPU) dex() { c.X--; c.setZN(c.X) }
func (c *CPU) iny() { c.Y++; c.setZN(c.Y) }
func (c *CPU) dey() { c.Y--; c.setZN(c.Y) }
