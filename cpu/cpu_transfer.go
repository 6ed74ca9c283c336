package cpu

// Transfer family. TAX/TAY/TSX/TXA/TYA set N/Z from the destination;
// TXS is the one exception and leaves flags untouched.

func (c *CPU) tax() { c.X = c.A; c.setZN(c.X) }
func (c *CPU) tay() { c.Y = c.A; c.setZN(c.Y) }
func (c *CPU) tsx() { c.X = c.SP; c.setZN(c.X) }
func (c *CPU) txa() { c.A = c.X; c.setZN(c.A) }
func (c *CPU) tya() { c.A = c.Y; c.setZN(c.A) }
func (c *CPU) txs() { c.SP = c.X }
