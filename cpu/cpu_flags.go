package cpu

// Flag family: single-flag setters/clearers.

func (c *CPU) clc() { c.flagC = false }
func (c *CPU) sec() { c.flagC = true }
func (c *CPU) cli() { c.flagI = false }
func (c *CPU) sei() { c.flagI = true }
func (c *CPU) clv() { c.flagV = false }

// cld/sed store the D flag (it is testable via PHP/PLP/trace) but, per
// the Ricoh 2A03 used in the NES, no instruction actually consults it
// to alter arithmetic; adc/sbc in cpu_arith.go never branch on flagD.
func (c *CPU) cld() { c.flagD = false }
func (c *CPU) sed() { c.flagD = true }
