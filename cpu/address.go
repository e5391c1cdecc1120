package cpu

// OperandAddress resolves the effective operand address for mode, with the
// operand bytes starting at addr. It only reads bus state, so the trace
// formatter can resolve the same address the execution loop would.
//
// Zero-page indexed forms wrap within page zero (8-bit addition); absolute
// indexed forms wrap within the full 16-bit space.
func (c *Cpu) OperandAddress(mode Mode, addr uint16) (target uint16, err error) {
	switch mode {
	case MODE_IMMEDIATE:
		target = addr

	case MODE_ZERO_PAGE:
		target = uint16(c.Bus.Read(addr))

	case MODE_ZERO_PAGE_X:
		target = uint16(c.Bus.Read(addr) + c.X)

	case MODE_ZERO_PAGE_Y:
		target = uint16(c.Bus.Read(addr) + c.Y)

	case MODE_ABSOLUTE:
		target = c.Bus.ReadWord(addr)

	case MODE_ABSOLUTE_X:
		target = c.Bus.ReadWord(addr) + uint16(c.X)

	case MODE_ABSOLUTE_Y:
		target = c.Bus.ReadWord(addr) + uint16(c.Y)

	case MODE_INDIRECT_X:
		// Pre-indexed: the pointer lives in page zero at base+X, both
		// pointer bytes wrapped within the page.
		ptr := c.Bus.Read(addr) + c.X
		low := c.Bus.Read(uint16(ptr))
		high := c.Bus.Read(uint16(ptr + 1))
		target = uint16(high)<<8 | uint16(low)

	case MODE_INDIRECT_Y:
		// Post-indexed: the pointer lives in page zero at base; Y is
		// added to the dereferenced address with 16-bit wraparound.
		base := c.Bus.Read(addr)
		low := c.Bus.Read(uint16(base))
		high := c.Bus.Read(uint16(base + 1))
		target = (uint16(high)<<8 | uint16(low)) + uint16(c.Y)

	default:
		err = ErrNoAddressing
	}

	return
}

// operandAddress resolves the operand address at the current program
// counter, which points at the byte after the opcode.
func (c *Cpu) operandAddress(mode Mode) (uint16, error) {
	return c.OperandAddress(mode, c.Pc)
}

// fetch reads the operand byte designated by mode.
func (c *Cpu) fetch(mode Mode) (value byte, err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value = c.Bus.Read(addr)

	return
}
