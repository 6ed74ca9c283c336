package cpu

// System family: NOP and the undocumented multi-byte NOPs (DOP/TOP).
// Addressing-mode resolution has already consumed the right number of
// operand bytes and advanced PC by the time this runs; there is
// nothing left to do.
func (c *CPU) nop(operand) {}
