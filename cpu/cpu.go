package cpu

import (
	"iter"
	"log"

	"github.com/arhipochki/FamEmu/bus"
)

const (
	// STACK_BASE is the fixed page holding the 256-byte stack. Only the
	// 8-bit stack pointer moves; the page never changes.
	STACK_BASE = uint16(0x0100)
	// STACK_RESET is the stack pointer's power-on sentinel.
	STACK_RESET = byte(0xFD)
)

// Cpu is the processor state and execution engine. It exclusively owns its
// Bus for the lifetime of a run; all memory effects go through it.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A      byte   // Accumulator.
	X      byte   // Index register X.
	Y      byte   // Index register Y.
	Status Flags  // Status register.
	Pc     uint16 // Program counter.
	Sp     byte   // Stack pointer, offset into STACK_BASE page.

	Bus *bus.Bus
}

// New creates a CPU attached to the given address space, in its power-on
// state. Reset must run before execution so the program counter is loaded
// from the reset vector.
func New(b *bus.Bus) (c *Cpu) {
	c = &Cpu{
		Status: FLAGS_RESET,
		Sp:     STACK_RESET,
		Bus:    b,
	}

	return
}

// Reset re-initializes registers and flags to the power-on pattern and
// loads the program counter from the reset vector.
func (c *Cpu) Reset() {
	if c.Verbose {
		log.Printf("cpu: reset")
	}

	c.A = 0
	c.X = 0
	c.Y = 0
	c.Sp = STACK_RESET
	c.Status = FLAGS_RESET

	c.Pc = c.Bus.ReadWord(bus.RESET_VECTOR)
}

// String returns the current CPU state as a string.
func (c *Cpu) String() (text string) {
	text += f("   pc: %04X\n", c.Pc)
	text += f("    a: %02X\n", c.A)
	text += f("    x: %02X\n", c.X)
	text += f("    y: %02X\n", c.Y)
	text += f("    p: %02X\n", byte(c.Status))
	text += f("   sp: %02X\n", c.Sp)

	return
}

// Registers returns the register file as named values, for embedders that
// evaluate expressions over processor state.
func (c *Cpu) Registers() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		regs := []struct {
			name  string
			value int
		}{
			{"a", int(c.A)},
			{"x", int(c.X)},
			{"y", int(c.Y)},
			{"p", int(c.Status)},
			{"sp", int(c.Sp)},
			{"pc", int(c.Pc)},
		}
		for _, reg := range regs {
			if !yield(reg.name, reg.value) {
				return
			}
		}
	}
}

// Stack helpers. Push writes then decrements; pop increments then reads;
// the offset wraps modulo 256 in both directions.

func (c *Cpu) stackPush(value byte) (err error) {
	err = c.Bus.Write(STACK_BASE+uint16(c.Sp), value)
	c.Sp--

	return
}

func (c *Cpu) stackPop() byte {
	c.Sp++
	return c.Bus.Read(STACK_BASE + uint16(c.Sp))
}

func (c *Cpu) stackPushWord(value uint16) (err error) {
	err = c.stackPush(byte(value >> 8))
	if err != nil {
		return
	}
	err = c.stackPush(byte(value))

	return
}

func (c *Cpu) stackPopWord() uint16 {
	low := uint16(c.stackPop())
	high := uint16(c.stackPop())

	return high<<8 | low
}

// setA stores value in the accumulator and recomputes Zero and Negative.
func (c *Cpu) setA(value byte) {
	c.A = value
	c.Status.updateZeroNeg(c.A)
}

// addToA adds value and the carry-in to the accumulator in a wide
// accumulator: Carry is bit 8 of the sum, Overflow is the two's-complement
// sign test on the truncated result.
func (c *Cpu) addToA(value byte) {
	sum := uint16(c.A) + uint16(value)
	if c.Status.Contains(FLAG_CARRY) {
		sum++
	}

	c.Status.Set(FLAG_CARRY, sum > 0xFF)

	result := byte(sum)
	c.Status.Set(FLAG_OVERFLOW, (value^result)&(result^c.A)&0x80 != 0)

	c.setA(result)
}

func (c *Cpu) adc(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.addToA(value)

	return
}

// sbc adds the two's complement of the fetched byte decremented by one,
// reusing the same carry/overflow derivation as adc.
func (c *Cpu) sbc(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.addToA(byte(-int8(value) - 1))

	return
}

func (c *Cpu) and(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.setA(value & c.A)

	return
}

func (c *Cpu) eor(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.setA(value ^ c.A)

	return
}

func (c *Cpu) ora(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.setA(value | c.A)

	return
}

func (c *Cpu) aslAccumulator() {
	value := c.A
	c.Status.Set(FLAG_CARRY, value>>7 == 1)
	c.setA(value << 1)
}

func (c *Cpu) asl(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr)

	c.Status.Set(FLAG_CARRY, value>>7 == 1)
	value <<= 1

	err = c.Bus.Write(addr, value)
	c.Status.updateZeroNeg(value)

	return
}

func (c *Cpu) lsrAccumulator() {
	value := c.A
	c.Status.Set(FLAG_CARRY, value&1 == 1)
	c.setA(value >> 1)
}

func (c *Cpu) lsr(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr)

	c.Status.Set(FLAG_CARRY, value&1 == 1)
	value >>= 1

	err = c.Bus.Write(addr, value)
	c.Status.updateZeroNeg(value)

	return
}

func (c *Cpu) rolAccumulator() {
	value := c.A
	carry := c.Status.Contains(FLAG_CARRY)

	c.Status.Set(FLAG_CARRY, value>>7 == 1)
	value <<= 1
	if carry {
		value |= 1
	}

	c.setA(value)
}

func (c *Cpu) rol(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr)
	carry := c.Status.Contains(FLAG_CARRY)

	c.Status.Set(FLAG_CARRY, value>>7 == 1)
	value <<= 1
	if carry {
		value |= 1
	}

	err = c.Bus.Write(addr, value)
	c.Status.updateZeroNeg(value)

	return
}

func (c *Cpu) rorAccumulator() {
	value := c.A
	carry := c.Status.Contains(FLAG_CARRY)

	c.Status.Set(FLAG_CARRY, value&1 == 1)
	value >>= 1
	if carry {
		value |= byte(FLAG_NEGATIVE)
	}

	c.setA(value)
}

func (c *Cpu) ror(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr)
	carry := c.Status.Contains(FLAG_CARRY)

	c.Status.Set(FLAG_CARRY, value&1 == 1)
	value >>= 1
	if carry {
		value |= byte(FLAG_NEGATIVE)
	}

	err = c.Bus.Write(addr, value)
	// Negative comes from the new top bit, after the carry-in folds in.
	c.Status.updateZeroNeg(value)

	return
}

// bit ANDs the accumulator with the fetched byte for Zero, and copies the
// byte's top two bits directly into Negative and Overflow.
func (c *Cpu) bit(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}

	c.Status.Set(FLAG_ZERO, value&c.A == 0)
	c.Status.Set(FLAG_NEGATIVE, value&byte(FLAG_NEGATIVE) > 0)
	c.Status.Set(FLAG_OVERFLOW, value&byte(FLAG_OVERFLOW) > 0)

	return
}

// branch adds the signed 8-bit displacement to the address of the next
// instruction when cond holds, with 16-bit wraparound.
func (c *Cpu) branch(cond bool) {
	if cond {
		jump := int8(c.Bus.Read(c.Pc))
		c.Pc = c.Pc + 1 + uint16(jump)
	}
}

// compare sets Carry when the fetched byte is less than or equal to the
// register, and Zero/Negative from the wrapping difference.
func (c *Cpu) compare(mode Mode, with byte) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}

	c.Status.Set(FLAG_CARRY, value <= with)
	c.Status.updateZeroNeg(with - value)

	return
}

func (c *Cpu) inc(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr) + 1

	err = c.Bus.Write(addr, value)
	c.Status.updateZeroNeg(value)

	return
}

func (c *Cpu) dec(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}
	value := c.Bus.Read(addr) - 1

	err = c.Bus.Write(addr, value)
	c.Status.updateZeroNeg(value)

	return
}

func (c *Cpu) inx() {
	c.X++
	c.Status.updateZeroNeg(c.X)
}

func (c *Cpu) iny() {
	c.Y++
	c.Status.updateZeroNeg(c.Y)
}

func (c *Cpu) dex() {
	c.X--
	c.Status.updateZeroNeg(c.X)
}

func (c *Cpu) dey() {
	c.Y--
	c.Status.updateZeroNeg(c.Y)
}

func (c *Cpu) lda(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.setA(value)

	return
}

func (c *Cpu) ldx(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.X = value
	c.Status.updateZeroNeg(c.X)

	return
}

func (c *Cpu) ldy(mode Mode) (err error) {
	value, err := c.fetch(mode)
	if err != nil {
		return
	}
	c.Y = value
	c.Status.updateZeroNeg(c.Y)

	return
}

func (c *Cpu) sta(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}

	return c.Bus.Write(addr, c.A)
}

func (c *Cpu) stx(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}

	return c.Bus.Write(addr, c.X)
}

func (c *Cpu) sty(mode Mode) (err error) {
	addr, err := c.operandAddress(mode)
	if err != nil {
		return
	}

	return c.Bus.Write(addr, c.Y)
}

func (c *Cpu) jmpAbsolute() {
	c.Pc = c.Bus.ReadWord(c.Pc)
}

// jmpIndirect loads the program counter from the pointer at the operand
// address, reproducing the hardware bug: when the pointer's low byte is
// 0xFF, the high byte of the target is fetched from the start of the same
// page, not the next one.
func (c *Cpu) jmpIndirect() {
	addr := c.Bus.ReadWord(c.Pc)

	var target uint16
	if addr&0x00FF == 0x00FF {
		low := uint16(c.Bus.Read(addr))
		high := uint16(c.Bus.Read(addr & 0xFF00))
		target = high<<8 | low
	} else {
		target = c.Bus.ReadWord(addr)
	}

	c.Pc = target
}

// jsr pushes the address of the next instruction minus one (high byte
// first) and jumps to the operand address.
func (c *Cpu) jsr() (err error) {
	err = c.stackPushWord(c.Pc + 1)
	if err != nil {
		return
	}
	c.Pc = c.Bus.ReadWord(c.Pc)

	return
}

// rts pops the return address and resumes one byte past it.
func (c *Cpu) rts() {
	c.Pc = c.stackPopWord() + 1
}

// rti pops flags with the Break/Break2 fix-up, then pops the program
// counter without the +1 adjustment of rts.
func (c *Cpu) rti() {
	c.Status = Flags(c.stackPop())
	c.Status.Remove(FLAG_BREAK)
	c.Status.Insert(FLAG_BREAK_2)

	c.Pc = c.stackPopWord()
}

func (c *Cpu) pha() (err error) {
	return c.stackPush(c.A)
}

func (c *Cpu) pla() {
	c.setA(c.stackPop())
}

// php pushes the flags with Break and Break2 forced on in the pushed byte,
// without touching the live flags.
func (c *Cpu) php() (err error) {
	flags := c.Status
	flags.Insert(FLAG_BREAK)
	flags.Insert(FLAG_BREAK_2)

	return c.stackPush(byte(flags))
}

// plp restores the flags with Break cleared and Break2 forced on.
func (c *Cpu) plp() {
	c.Status = Flags(c.stackPop())
	c.Status.Remove(FLAG_BREAK)
	c.Status.Insert(FLAG_BREAK_2)
}

func (c *Cpu) tax() {
	c.X = c.A
	c.Status.updateZeroNeg(c.X)
}

func (c *Cpu) tay() {
	c.Y = c.A
	c.Status.updateZeroNeg(c.Y)
}

func (c *Cpu) txa() {
	c.setA(c.X)
}

func (c *Cpu) tya() {
	c.setA(c.Y)
}

// txs does not touch Zero/Negative; the stack pointer is not a general
// register.
func (c *Cpu) txs() {
	c.Sp = c.X
}

func (c *Cpu) tsx() {
	c.X = c.Sp
	c.Status.updateZeroNeg(c.X)
}

// Run executes instructions until the software break opcode is decoded.
func (c *Cpu) Run() (err error) {
	return c.RunWithCallback(nil)
}

// RunWithCallback executes instructions until the software break opcode is
// decoded, invoking callback before each instruction with the state that
// instruction will see. The callback must not mutate processor or bus
// state and must not re-enter the run loop; returning a non-nil error
// stops execution and propagates to the caller.
func (c *Cpu) RunWithCallback(callback func(*Cpu) error) (err error) {
	for {
		if callback != nil {
			err = callback(c)
			if err != nil {
				return
			}
		}

		code := c.Bus.Read(c.Pc)
		c.Pc++
		pcState := c.Pc

		var op *OpCode
		op, err = Lookup(code)
		if err != nil {
			return
		}

		if c.Verbose {
			log.Printf("cpu: %04X: %v", pcState-1, op)
		}

		switch code {
		case 0x00: // BRK halts execution and returns to the embedder.
			return

		case 0xEA: // NOP

		case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
			err = c.adc(op.Mode)

		case 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1:
			err = c.sbc(op.Mode)

		case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
			err = c.and(op.Mode)

		case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
			err = c.eor(op.Mode)

		case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
			err = c.ora(op.Mode)

		case 0x0A:
			c.aslAccumulator()
		case 0x06, 0x16, 0x0E, 0x1E:
			err = c.asl(op.Mode)

		case 0x4A:
			c.lsrAccumulator()
		case 0x46, 0x56, 0x4E, 0x5E:
			err = c.lsr(op.Mode)

		case 0x2A:
			c.rolAccumulator()
		case 0x26, 0x36, 0x2E, 0x3E:
			err = c.rol(op.Mode)

		case 0x6A:
			c.rorAccumulator()
		case 0x66, 0x76, 0x6E, 0x7E:
			err = c.ror(op.Mode)

		case 0x24, 0x2C:
			err = c.bit(op.Mode)

		case 0x10: // BPL
			c.branch(!c.Status.Contains(FLAG_NEGATIVE))
		case 0x30: // BMI
			c.branch(c.Status.Contains(FLAG_NEGATIVE))
		case 0x50: // BVC
			c.branch(!c.Status.Contains(FLAG_OVERFLOW))
		case 0x70: // BVS
			c.branch(c.Status.Contains(FLAG_OVERFLOW))
		case 0x90: // BCC
			c.branch(!c.Status.Contains(FLAG_CARRY))
		case 0xB0: // BCS
			c.branch(c.Status.Contains(FLAG_CARRY))
		case 0xD0: // BNE
			c.branch(!c.Status.Contains(FLAG_ZERO))
		case 0xF0: // BEQ
			c.branch(c.Status.Contains(FLAG_ZERO))

		case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
			err = c.compare(op.Mode, c.A)
		case 0xE0, 0xE4, 0xEC:
			err = c.compare(op.Mode, c.X)
		case 0xC0, 0xC4, 0xCC:
			err = c.compare(op.Mode, c.Y)

		case 0xE6, 0xF6, 0xEE, 0xFE:
			err = c.inc(op.Mode)
		case 0xC6, 0xD6, 0xCE, 0xDE:
			err = c.dec(op.Mode)

		case 0xE8:
			c.inx()
		case 0xC8:
			c.iny()
		case 0xCA:
			c.dex()
		case 0x88:
			c.dey()

		case 0x18: // CLC
			c.Status.Set(FLAG_CARRY, false)
		case 0x38: // SEC
			c.Status.Set(FLAG_CARRY, true)
		case 0x58: // CLI
			c.Status.Set(FLAG_INTERRUPT_DISABLE, false)
		case 0x78: // SEI
			c.Status.Set(FLAG_INTERRUPT_DISABLE, true)
		case 0xB8: // CLV
			c.Status.Set(FLAG_OVERFLOW, false)
		case 0xD8: // CLD
			c.Status.Set(FLAG_DECIMAL, false)
		case 0xF8: // SED
			c.Status.Set(FLAG_DECIMAL, true)

		case 0x4C:
			c.jmpAbsolute()
		case 0x6C:
			c.jmpIndirect()
		case 0x20:
			err = c.jsr()
		case 0x60:
			c.rts()
		case 0x40:
			c.rti()

		case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
			err = c.lda(op.Mode)
		case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
			err = c.ldx(op.Mode)
		case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
			err = c.ldy(op.Mode)

		case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
			err = c.sta(op.Mode)
		case 0x86, 0x96, 0x8E:
			err = c.stx(op.Mode)
		case 0x84, 0x94, 0x8C:
			err = c.sty(op.Mode)

		case 0x48:
			err = c.pha()
		case 0x68:
			c.pla()
		case 0x08:
			err = c.php()
		case 0x28:
			c.plp()

		case 0xAA:
			c.tax()
		case 0xA8:
			c.tay()
		case 0x8A:
			c.txa()
		case 0x98:
			c.tya()
		case 0x9A:
			c.txs()
		case 0xBA:
			c.tsx()

		default:
			err = ErrUnknownOpcode(code)
		}

		if err != nil {
			return &ErrInstruction{Pc: pcState - 1, Code: code, Err: err}
		}

		// Skip the operand bytes unless the handler moved the program
		// counter itself.
		if pcState == c.Pc {
			c.Pc += uint16(op.Length - 1)
		}
	}
}
