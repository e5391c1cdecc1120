package cpu

// Mode is an operand addressing mode tag.
type Mode int

const (
	MODE_NONE = Mode(iota) // none
	MODE_IMMEDIATE         // immediate
	MODE_ZERO_PAGE         // zeropage
	MODE_ZERO_PAGE_X       // zeropage,x
	MODE_ZERO_PAGE_Y       // zeropage,y
	MODE_ABSOLUTE          // absolute
	MODE_ABSOLUTE_X        // absolute,x
	MODE_ABSOLUTE_Y        // absolute,y
	MODE_INDIRECT_X        // (indirect,x)
	MODE_INDIRECT_Y        // (indirect),y
)

var modeNames = []string{
	"none",
	"immediate",
	"zeropage",
	"zeropage,x",
	"zeropage,y",
	"absolute",
	"absolute,x",
	"absolute,y",
	"(indirect,x)",
	"(indirect),y",
}

func (m Mode) String() string {
	if int(m) >= len(modeNames) {
		return "invalid"
	}
	return modeNames[m]
}

// OpCode is the immutable descriptor of one instruction encoding: its
// mnemonic, total encoded length in bytes, and addressing mode.
type OpCode struct {
	Code     byte
	Mnemonic string
	Length   int
	Mode     Mode
}

func (op *OpCode) String() string {
	return f("%v (0x%02X, %v)", op.Mnemonic, op.Code, op.Mode)
}

// Control-flow instructions carry MODE_NONE: their handlers consume the
// operand bytes themselves, so only the encoded length matters for decode.
var opcodes = []OpCode{
	{0x00, "BRK", 1, MODE_NONE},
	{0xEA, "NOP", 1, MODE_NONE},

	{0x69, "ADC", 2, MODE_IMMEDIATE},
	{0x65, "ADC", 2, MODE_ZERO_PAGE},
	{0x75, "ADC", 2, MODE_ZERO_PAGE_X},
	{0x6D, "ADC", 3, MODE_ABSOLUTE},
	{0x7D, "ADC", 3, MODE_ABSOLUTE_X},
	{0x79, "ADC", 3, MODE_ABSOLUTE_Y},
	{0x61, "ADC", 2, MODE_INDIRECT_X},
	{0x71, "ADC", 2, MODE_INDIRECT_Y},

	{0xE9, "SBC", 2, MODE_IMMEDIATE},
	{0xE5, "SBC", 2, MODE_ZERO_PAGE},
	{0xF5, "SBC", 2, MODE_ZERO_PAGE_X},
	{0xED, "SBC", 3, MODE_ABSOLUTE},
	{0xFD, "SBC", 3, MODE_ABSOLUTE_X},
	{0xF9, "SBC", 3, MODE_ABSOLUTE_Y},
	{0xE1, "SBC", 2, MODE_INDIRECT_X},
	{0xF1, "SBC", 2, MODE_INDIRECT_Y},

	{0x29, "AND", 2, MODE_IMMEDIATE},
	{0x25, "AND", 2, MODE_ZERO_PAGE},
	{0x35, "AND", 2, MODE_ZERO_PAGE_X},
	{0x2D, "AND", 3, MODE_ABSOLUTE},
	{0x3D, "AND", 3, MODE_ABSOLUTE_X},
	{0x39, "AND", 3, MODE_ABSOLUTE_Y},
	{0x21, "AND", 2, MODE_INDIRECT_X},
	{0x31, "AND", 2, MODE_INDIRECT_Y},

	{0x49, "EOR", 2, MODE_IMMEDIATE},
	{0x45, "EOR", 2, MODE_ZERO_PAGE},
	{0x55, "EOR", 2, MODE_ZERO_PAGE_X},
	{0x4D, "EOR", 3, MODE_ABSOLUTE},
	{0x5D, "EOR", 3, MODE_ABSOLUTE_X},
	{0x59, "EOR", 3, MODE_ABSOLUTE_Y},
	{0x41, "EOR", 2, MODE_INDIRECT_X},
	{0x51, "EOR", 2, MODE_INDIRECT_Y},

	{0x09, "ORA", 2, MODE_IMMEDIATE},
	{0x05, "ORA", 2, MODE_ZERO_PAGE},
	{0x15, "ORA", 2, MODE_ZERO_PAGE_X},
	{0x0D, "ORA", 3, MODE_ABSOLUTE},
	{0x1D, "ORA", 3, MODE_ABSOLUTE_X},
	{0x19, "ORA", 3, MODE_ABSOLUTE_Y},
	{0x01, "ORA", 2, MODE_INDIRECT_X},
	{0x11, "ORA", 2, MODE_INDIRECT_Y},

	{0x0A, "ASL", 1, MODE_NONE},
	{0x06, "ASL", 2, MODE_ZERO_PAGE},
	{0x16, "ASL", 2, MODE_ZERO_PAGE_X},
	{0x0E, "ASL", 3, MODE_ABSOLUTE},
	{0x1E, "ASL", 3, MODE_ABSOLUTE_X},

	{0x4A, "LSR", 1, MODE_NONE},
	{0x46, "LSR", 2, MODE_ZERO_PAGE},
	{0x56, "LSR", 2, MODE_ZERO_PAGE_X},
	{0x4E, "LSR", 3, MODE_ABSOLUTE},
	{0x5E, "LSR", 3, MODE_ABSOLUTE_X},

	{0x2A, "ROL", 1, MODE_NONE},
	{0x26, "ROL", 2, MODE_ZERO_PAGE},
	{0x36, "ROL", 2, MODE_ZERO_PAGE_X},
	{0x2E, "ROL", 3, MODE_ABSOLUTE},
	{0x3E, "ROL", 3, MODE_ABSOLUTE_X},

	{0x6A, "ROR", 1, MODE_NONE},
	{0x66, "ROR", 2, MODE_ZERO_PAGE},
	{0x76, "ROR", 2, MODE_ZERO_PAGE_X},
	{0x6E, "ROR", 3, MODE_ABSOLUTE},
	{0x7E, "ROR", 3, MODE_ABSOLUTE_X},

	{0x24, "BIT", 2, MODE_ZERO_PAGE},
	{0x2C, "BIT", 3, MODE_ABSOLUTE},

	{0x10, "BPL", 2, MODE_NONE},
	{0x30, "BMI", 2, MODE_NONE},
	{0x50, "BVC", 2, MODE_NONE},
	{0x70, "BVS", 2, MODE_NONE},
	{0x90, "BCC", 2, MODE_NONE},
	{0xB0, "BCS", 2, MODE_NONE},
	{0xD0, "BNE", 2, MODE_NONE},
	{0xF0, "BEQ", 2, MODE_NONE},

	{0xC9, "CMP", 2, MODE_IMMEDIATE},
	{0xC5, "CMP", 2, MODE_ZERO_PAGE},
	{0xD5, "CMP", 2, MODE_ZERO_PAGE_X},
	{0xCD, "CMP", 3, MODE_ABSOLUTE},
	{0xDD, "CMP", 3, MODE_ABSOLUTE_X},
	{0xD9, "CMP", 3, MODE_ABSOLUTE_Y},
	{0xC1, "CMP", 2, MODE_INDIRECT_X},
	{0xD1, "CMP", 2, MODE_INDIRECT_Y},

	{0xE0, "CPX", 2, MODE_IMMEDIATE},
	{0xE4, "CPX", 2, MODE_ZERO_PAGE},
	{0xEC, "CPX", 3, MODE_ABSOLUTE},

	{0xC0, "CPY", 2, MODE_IMMEDIATE},
	{0xC4, "CPY", 2, MODE_ZERO_PAGE},
	{0xCC, "CPY", 3, MODE_ABSOLUTE},

	{0xE6, "INC", 2, MODE_ZERO_PAGE},
	{0xF6, "INC", 2, MODE_ZERO_PAGE_X},
	{0xEE, "INC", 3, MODE_ABSOLUTE},
	{0xFE, "INC", 3, MODE_ABSOLUTE_X},

	{0xC6, "DEC", 2, MODE_ZERO_PAGE},
	{0xD6, "DEC", 2, MODE_ZERO_PAGE_X},
	{0xCE, "DEC", 3, MODE_ABSOLUTE},
	{0xDE, "DEC", 3, MODE_ABSOLUTE_X},

	{0xE8, "INX", 1, MODE_NONE},
	{0xC8, "INY", 1, MODE_NONE},
	{0xCA, "DEX", 1, MODE_NONE},
	{0x88, "DEY", 1, MODE_NONE},

	{0x18, "CLC", 1, MODE_NONE},
	{0x38, "SEC", 1, MODE_NONE},
	{0x58, "CLI", 1, MODE_NONE},
	{0x78, "SEI", 1, MODE_NONE},
	{0xB8, "CLV", 1, MODE_NONE},
	{0xD8, "CLD", 1, MODE_NONE},
	{0xF8, "SED", 1, MODE_NONE},

	{0x4C, "JMP", 3, MODE_NONE},
	{0x6C, "JMP", 3, MODE_NONE},
	{0x20, "JSR", 3, MODE_NONE},
	{0x60, "RTS", 1, MODE_NONE},
	{0x40, "RTI", 1, MODE_NONE},

	{0xA9, "LDA", 2, MODE_IMMEDIATE},
	{0xA5, "LDA", 2, MODE_ZERO_PAGE},
	{0xB5, "LDA", 2, MODE_ZERO_PAGE_X},
	{0xAD, "LDA", 3, MODE_ABSOLUTE},
	{0xBD, "LDA", 3, MODE_ABSOLUTE_X},
	{0xB9, "LDA", 3, MODE_ABSOLUTE_Y},
	{0xA1, "LDA", 2, MODE_INDIRECT_X},
	{0xB1, "LDA", 2, MODE_INDIRECT_Y},

	{0xA2, "LDX", 2, MODE_IMMEDIATE},
	{0xA6, "LDX", 2, MODE_ZERO_PAGE},
	{0xB6, "LDX", 2, MODE_ZERO_PAGE_Y},
	{0xAE, "LDX", 3, MODE_ABSOLUTE},
	{0xBE, "LDX", 3, MODE_ABSOLUTE_Y},

	{0xA0, "LDY", 2, MODE_IMMEDIATE},
	{0xA4, "LDY", 2, MODE_ZERO_PAGE},
	{0xB4, "LDY", 2, MODE_ZERO_PAGE_X},
	{0xAC, "LDY", 3, MODE_ABSOLUTE},
	{0xBC, "LDY", 3, MODE_ABSOLUTE_X},

	{0x85, "STA", 2, MODE_ZERO_PAGE},
	{0x95, "STA", 2, MODE_ZERO_PAGE_X},
	{0x8D, "STA", 3, MODE_ABSOLUTE},
	{0x9D, "STA", 3, MODE_ABSOLUTE_X},
	{0x99, "STA", 3, MODE_ABSOLUTE_Y},
	{0x81, "STA", 2, MODE_INDIRECT_X},
	{0x91, "STA", 2, MODE_INDIRECT_Y},

	{0x86, "STX", 2, MODE_ZERO_PAGE},
	{0x96, "STX", 2, MODE_ZERO_PAGE_Y},
	{0x8E, "STX", 3, MODE_ABSOLUTE},

	{0x84, "STY", 2, MODE_ZERO_PAGE},
	{0x94, "STY", 2, MODE_ZERO_PAGE_X},
	{0x8C, "STY", 3, MODE_ABSOLUTE},

	{0x48, "PHA", 1, MODE_NONE},
	{0x68, "PLA", 1, MODE_NONE},
	{0x08, "PHP", 1, MODE_NONE},
	{0x28, "PLP", 1, MODE_NONE},

	{0xAA, "TAX", 1, MODE_NONE},
	{0xA8, "TAY", 1, MODE_NONE},
	{0x8A, "TXA", 1, MODE_NONE},
	{0x98, "TYA", 1, MODE_NONE},
	{0x9A, "TXS", 1, MODE_NONE},
	{0xBA, "TSX", 1, MODE_NONE},
}

var optable [256]*OpCode

func init() {
	for i := range opcodes {
		op := &opcodes[i]
		optable[op.Code] = op
	}
}

// Lookup returns the descriptor for an opcode byte. An opcode with no
// descriptor is a fatal decode error.
func Lookup(code byte) (op *OpCode, err error) {
	op = optable[code]
	if op == nil {
		err = ErrUnknownOpcode(code)
	}

	return
}
