package cpu

// Stack family. PHA/PHP push; PLA/PLP pop. PHP always pushes bits 4
// and 5 set; PLP reconstructs P ignoring those bits on the way back in.

func (c *CPU) pha() {
	c.push(c.A)
}

func (c *CPU) php() {
	c.push(c.packP(true))
}

func (c *CPU) pla() {
	c.A = c.pop()
	c.setZN(c.A)
}

func (c *CPU) plp() {
	c.SetP(c.pop())
}
