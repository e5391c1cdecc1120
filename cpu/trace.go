package cpu

import (
	"fmt"
	"strings"
)

// Trace renders the instruction at the program counter as a fixed-width
// diagnostic line: address, raw bytes, mnemonic with mode-specific operand
// syntax, and the register/flag/stack-pointer snapshot. It never mutates
// processor or bus state, so it can run from the per-instruction callback.
func Trace(c *Cpu) (line string, err error) {
	start := c.Pc
	code := c.Bus.Read(start)

	op, err := Lookup(code)
	if err != nil {
		return
	}

	hexDump := []byte{code}

	var memAddr uint16
	var stored byte
	switch op.Mode {
	case MODE_IMMEDIATE, MODE_NONE:
		// No effective address to show.
	default:
		memAddr, err = c.OperandAddress(op.Mode, start+1)
		if err != nil {
			return
		}
		stored = c.Bus.Read(memAddr)
	}

	var operand string
	switch op.Length {
	case 1:
		switch code {
		case 0x0A, 0x4A, 0x2A, 0x6A:
			operand = "A "
		}

	case 2:
		addr := c.Bus.Read(start + 1)
		hexDump = append(hexDump, addr)

		switch op.Mode {
		case MODE_IMMEDIATE:
			operand = fmt.Sprintf("#$%02X", addr)
		case MODE_ZERO_PAGE:
			operand = fmt.Sprintf("$%02X = %02X", memAddr, stored)
		case MODE_ZERO_PAGE_X:
			operand = fmt.Sprintf("$%02X,X @ %02X = %02X", addr, memAddr, stored)
		case MODE_ZERO_PAGE_Y:
			operand = fmt.Sprintf("$%02X,Y @ %02X = %02X", addr, memAddr, stored)
		case MODE_INDIRECT_X:
			operand = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X",
				addr, addr+c.X, memAddr, stored)
		case MODE_INDIRECT_Y:
			operand = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X",
				addr, memAddr-uint16(c.Y), memAddr, stored)
		case MODE_NONE:
			// Branches: target is the next instruction plus the
			// signed displacement.
			target := start + 2 + uint16(int8(addr))
			operand = fmt.Sprintf("$%04X", target)
		}

	case 3:
		low := c.Bus.Read(start + 1)
		high := c.Bus.Read(start + 2)
		hexDump = append(hexDump, low, high)

		addr := c.Bus.ReadWord(start + 1)

		switch op.Mode {
		case MODE_NONE:
			if code == 0x6C {
				// Indirect jump, with the page-boundary bug
				// reflected in the rendered target.
				var target uint16
				if addr&0x00FF == 0x00FF {
					low := uint16(c.Bus.Read(addr))
					high := uint16(c.Bus.Read(addr & 0xFF00))
					target = high<<8 | low
				} else {
					target = c.Bus.ReadWord(addr)
				}
				operand = fmt.Sprintf("($%04X) = %04X", addr, target)
			} else {
				operand = fmt.Sprintf("$%04X", addr)
			}
		case MODE_ABSOLUTE:
			operand = fmt.Sprintf("$%04X = %02X", memAddr, stored)
		case MODE_ABSOLUTE_X:
			operand = fmt.Sprintf("$%04X,X @ %04X = %02X", addr, memAddr, stored)
		case MODE_ABSOLUTE_Y:
			operand = fmt.Sprintf("$%04X,Y @ %04X = %02X", addr, memAddr, stored)
		}
	}

	hex := make([]string, len(hexDump))
	for i, b := range hexDump {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	asm := strings.TrimSpace(fmt.Sprintf("%04X  %-8s %4s %s",
		start, strings.Join(hex, " "), op.Mnemonic, operand))

	line = fmt.Sprintf("%-47s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		asm, c.A, c.X, c.Y, byte(c.Status), c.Sp)

	return
}
