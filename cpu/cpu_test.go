package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReset(t *testing.T) {
	assert := assert.New(t)

	c := testCpu(t, []byte{0x00})
	c.A = 0x55
	c.X = 0x55
	c.Y = 0x55
	c.Reset()

	assert.Equal(byte(0), c.A)
	assert.Equal(byte(0), c.X)
	assert.Equal(byte(0), c.Y)
	assert.Equal(FLAGS_RESET, c.Status)
	assert.Equal(STACK_RESET, c.Sp)
	assert.Equal(uint16(0x0600), c.Pc)
}

func TestAdc(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		carryIn  byte // SEC or CLC
		a        byte
		value    byte
		want     byte
		carry    bool
		overflow bool
	}){
		{"plain", 0x18, 0x10, 0x20, 0x30, false, false},
		{"carry_in", 0x38, 0x10, 0x20, 0x31, false, false},
		{"carry_out", 0x18, 0xFF, 0x01, 0x00, true, false},
		{"overflow_pos", 0x18, 0x50, 0x50, 0xA0, false, true},
		{"overflow_neg", 0x18, 0x90, 0x90, 0x20, true, true},
	}

	for _, entry := range table {
		c := testCpu(t, []byte{entry.carryIn, 0xA9, entry.a, 0x69, entry.value, 0x00})
		assert.NoError(c.Run(), entry.name)

		assert.Equal(entry.want, c.A, entry.name)
		assert.Equal(entry.carry, c.Status.Contains(FLAG_CARRY), entry.name)
		assert.Equal(entry.overflow, c.Status.Contains(FLAG_OVERFLOW), entry.name)
	}
}

func TestSbc(t *testing.T) {
	assert := assert.New(t)

	// SEC, LDA #$50, SBC #$30 -> A = $20, borrow clear (carry set).
	c := testCpu(t, []byte{0x38, 0xA9, 0x50, 0xE9, 0x30, 0x00})
	assert.NoError(c.Run())

	assert.Equal(byte(0x20), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.False(c.Status.Contains(FLAG_OVERFLOW))
}

func TestLogical(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		op   byte
		want byte
	}){
		{"and", 0x29, 0x0C},
		{"ora", 0x09, 0x3F},
		{"eor", 0x49, 0x33},
	}

	for _, entry := range table {
		// LDA #$0F, <op> #$3C.
		c := testCpu(t, []byte{0xA9, 0x0F, entry.op, 0x3C, 0x00})
		assert.NoError(c.Run(), entry.name)
		assert.Equal(entry.want, c.A, entry.name)
	}
}

func TestShiftAccumulator(t *testing.T) {
	assert := assert.New(t)

	// LDA #$81, ASL A: bit 7 leaves via carry.
	c := testCpu(t, []byte{0xA9, 0x81, 0x0A, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x02), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.False(c.Status.Contains(FLAG_NEGATIVE))

	// LDA #$01, LSR A: bit 0 leaves via carry, result is zero.
	c = testCpu(t, []byte{0xA9, 0x01, 0x4A, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x00), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.True(c.Status.Contains(FLAG_ZERO))
}

func TestRotateAccumulator(t *testing.T) {
	assert := assert.New(t)

	// SEC, LDA #$81, ROL A: carry-in enters bit 0, bit 7 leaves.
	c := testCpu(t, []byte{0x38, 0xA9, 0x81, 0x2A, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x03), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))

	// SEC, LDA #$01, ROR A: carry-in enters bit 7, negative recomputed
	// after the fold-in.
	c = testCpu(t, []byte{0x38, 0xA9, 0x01, 0x6A, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x80), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.True(c.Status.Contains(FLAG_NEGATIVE))
}

func TestRotateMemory(t *testing.T) {
	assert := assert.New(t)

	// SEC, ROL $10 on $80: carry out, carry-in becomes bit 0.
	c := testCpu(t, []byte{0x38, 0x26, 0x10, 0x00})
	assert.NoError(c.Bus.Write(0x0010, 0x80))
	assert.NoError(c.Run())

	assert.Equal(byte(0x01), c.Bus.Read(0x0010))
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.False(c.Status.Contains(FLAG_ZERO))
	assert.False(c.Status.Contains(FLAG_NEGATIVE))
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		a     byte
		value byte
		carry bool
		zero  bool
		neg   bool
	}){
		{"equal", 0x10, 0x10, true, true, false},
		{"greater", 0x20, 0x10, true, false, false},
		{"less", 0x10, 0x20, false, false, true},
	}

	for _, entry := range table {
		c := testCpu(t, []byte{0xA9, entry.a, 0xC9, entry.value, 0x00})
		assert.NoError(c.Run(), entry.name)

		assert.Equal(entry.carry, c.Status.Contains(FLAG_CARRY), entry.name)
		assert.Equal(entry.zero, c.Status.Contains(FLAG_ZERO), entry.name)
		assert.Equal(entry.neg, c.Status.Contains(FLAG_NEGATIVE), entry.name)
	}
}

func TestIncDecWrap(t *testing.T) {
	assert := assert.New(t)

	// LDA #$00, TAX, DEX: decrementing zero wraps to $FF.
	c := testCpu(t, []byte{0xA9, 0x00, 0xAA, 0xCA, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0xFF), c.X)
	assert.False(c.Status.Contains(FLAG_ZERO))
	assert.True(c.Status.Contains(FLAG_NEGATIVE))

	// DEC $10 on zero wraps the memory byte.
	c = testCpu(t, []byte{0xC6, 0x10, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0xFF), c.Bus.Read(0x0010))

	// INC $10 on $FF wraps to zero and sets Zero.
	c = testCpu(t, []byte{0xE6, 0x10, 0x00})
	assert.NoError(c.Bus.Write(0x0010, 0xFF))
	assert.NoError(c.Run())
	assert.Equal(byte(0x00), c.Bus.Read(0x0010))
	assert.True(c.Status.Contains(FLAG_ZERO))
}

func TestBit(t *testing.T) {
	assert := assert.New(t)

	// LDA #$0F, BIT $10 against $C0: Zero from the AND, N/V copied from
	// the memory byte's top bits.
	c := testCpu(t, []byte{0xA9, 0x0F, 0x24, 0x10, 0x00})
	assert.NoError(c.Bus.Write(0x0010, 0xC0))
	assert.NoError(c.Run())

	assert.Equal(byte(0x0F), c.A)
	assert.True(c.Status.Contains(FLAG_ZERO))
	assert.True(c.Status.Contains(FLAG_NEGATIVE))
	assert.True(c.Status.Contains(FLAG_OVERFLOW))
}

func TestBranch(t *testing.T) {
	assert := assert.New(t)

	// LDA #$01, BNE +1 skips the BRK; the second LDA runs.
	c := testCpu(t, []byte{0xA9, 0x01, 0xD0, 0x01, 0x00, 0xA9, 0x05, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x05), c.A)

	// LDA #$00 leaves Zero set; BNE falls through to the BRK.
	c = testCpu(t, []byte{0xA9, 0x00, 0xD0, 0x01, 0x00, 0xA9, 0x05, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x00), c.A)
}

func TestBranch_Backward(t *testing.T) {
	assert := assert.New(t)

	// LDX #$03, DEX, BNE -3: loops until X reaches zero.
	c := testCpu(t, []byte{0xA2, 0x03, 0xCA, 0xD0, 0xFD, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x00), c.X)
	assert.True(c.Status.Contains(FLAG_ZERO))
}

func TestStackDiscipline(t *testing.T) {
	assert := assert.New(t)

	// LDA #$55, PHA, LDA #$00, PLA: the value round-trips and the stack
	// pointer is restored.
	c := testCpu(t, []byte{0xA9, 0x55, 0x48, 0xA9, 0x00, 0x68, 0x00})
	assert.NoError(c.Run())

	assert.Equal(byte(0x55), c.A)
	assert.Equal(STACK_RESET, c.Sp)
	assert.False(c.Status.Contains(FLAG_ZERO))
}

func TestStackWrap(t *testing.T) {
	assert := assert.New(t)

	c := testCpu(t, nil)
	c.Sp = 0x00

	assert.NoError(c.stackPush(0x42))
	assert.Equal(byte(0xFF), c.Sp)
	assert.Equal(byte(0x42), c.stackPop())
	assert.Equal(byte(0x00), c.Sp)
}

func TestPhpPlp(t *testing.T) {
	assert := assert.New(t)

	// PHP forces Break and Break2 into the pushed byte only.
	c := testCpu(t, []byte{0x08, 0x00})
	assert.NoError(c.Run())

	pushed := c.Bus.Read(STACK_BASE + uint16(STACK_RESET))
	assert.Equal(byte(FLAGS_RESET|FLAG_BREAK|FLAG_BREAK_2), pushed)
	assert.Equal(FLAGS_RESET, c.Status)

	// PLP clears Break and forces Break2 in the restored flags.
	c = testCpu(t, []byte{0xA9, 0xFF, 0x48, 0x28, 0x00})
	assert.NoError(c.Run())
	assert.Equal(Flags(0xEF), c.Status)
}

func TestJsrRts(t *testing.T) {
	assert := assert.New(t)

	// 0600: JSR $0609 / 0603: LDA #$01 / 0605: BRK
	// 0609: LDX #$05 / 060B: RTS
	c := testCpu(t, []byte{
		0x20, 0x09, 0x06,
		0xA9, 0x01,
		0x00,
		0xEA, 0xEA, 0xEA,
		0xA2, 0x05,
		0x60,
	})
	assert.NoError(c.Run())

	assert.Equal(byte(0x05), c.X)
	assert.Equal(byte(0x01), c.A)
	assert.Equal(STACK_RESET, c.Sp)
}

func TestJmpAbsolute(t *testing.T) {
	assert := assert.New(t)

	// 0600: JMP $0605 / 0603: LDA #$01 (skipped) / 0605: LDA #$07
	c := testCpu(t, []byte{0x4C, 0x05, 0x06, 0xA9, 0x01, 0xA9, 0x07, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x07), c.A)
}

func TestJmpIndirect_PageBoundaryBug(t *testing.T) {
	assert := assert.New(t)

	// Pointer at $02FF: the high byte comes from $0200, not $0300.
	c := testCpu(t, []byte{0x6C, 0xFF, 0x02})
	assert.NoError(c.Bus.Write(0x02FF, 0x34))
	assert.NoError(c.Bus.Write(0x0200, 0x06))
	assert.NoError(c.Bus.Write(0x0300, 0x07))

	// Target $0634: LDA #$42, BRK.
	assert.NoError(c.Bus.Write(0x0634, 0xA9))
	assert.NoError(c.Bus.Write(0x0635, 0x42))
	assert.NoError(c.Bus.Write(0x0636, 0x00))

	assert.NoError(c.Run())
	assert.Equal(byte(0x42), c.A)
}

func TestRti(t *testing.T) {
	assert := assert.New(t)

	c := testCpu(t, []byte{0x40})
	assert.NoError(c.stackPushWord(0x0700))
	assert.NoError(c.stackPush(0xC3))
	assert.NoError(c.Bus.Write(0x0700, 0x00))

	assert.NoError(c.Run())

	// Flags restored with the Break/Break2 fix-up, PC without the RTS +1.
	assert.Equal(Flags(0xE3), c.Status)
	assert.Equal(uint16(0x0701), c.Pc)
}

func TestTransfers(t *testing.T) {
	assert := assert.New(t)

	// LDX #$80, TXS: no flag change from the stack-pointer transfer.
	c := testCpu(t, []byte{0xA2, 0x80, 0x9A, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x80), c.Sp)
	assert.True(c.Status.Contains(FLAG_NEGATIVE))

	// TSX recomputes Zero/Negative from the new X.
	c = testCpu(t, []byte{0xA9, 0x01, 0xBA, 0x00})
	assert.NoError(c.Run())
	assert.Equal(STACK_RESET, c.X)
	assert.True(c.Status.Contains(FLAG_NEGATIVE))

	// TAY/TYA round-trip.
	c = testCpu(t, []byte{0xA9, 0x0A, 0xA8, 0xA9, 0x00, 0x98, 0x00})
	assert.NoError(c.Run())
	assert.Equal(byte(0x0A), c.A)
	assert.Equal(byte(0x0A), c.Y)
}

func TestStoreLoadMemory(t *testing.T) {
	assert := assert.New(t)

	// LDA #$77, STA $10, LDX $10.
	c := testCpu(t, []byte{0xA9, 0x77, 0x85, 0x10, 0xA6, 0x10, 0x00})
	assert.NoError(c.Run())

	assert.Equal(byte(0x77), c.Bus.Read(0x0010))
	assert.Equal(byte(0x77), c.X)
}

func TestLoad_PreservesUnrelatedFlags(t *testing.T) {
	assert := assert.New(t)

	// SEC, LDA #$05: the load recomputes Zero/Negative only.
	c := testCpu(t, []byte{0x38, 0xA9, 0x05, 0x00})
	assert.NoError(c.Run())

	assert.Equal(byte(0x05), c.A)
	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.False(c.Status.Contains(FLAG_ZERO))
	assert.False(c.Status.Contains(FLAG_NEGATIVE))

	// SEC, LDA #$00: Zero set, Carry still untouched.
	c = testCpu(t, []byte{0x38, 0xA9, 0x00, 0x00})
	assert.NoError(c.Run())

	assert.True(c.Status.Contains(FLAG_CARRY))
	assert.True(c.Status.Contains(FLAG_ZERO))
}

func TestRun_UnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	c := testCpu(t, []byte{0x02})
	err := c.Run()
	assert.Error(err)
	assert.True(errors.Is(err, ErrUnknownOpcode(0)))
}

func TestRun_WriteToProgramStorage(t *testing.T) {
	assert := assert.New(t)

	// STA $8000 is a fatal protection violation.
	c := testCpu(t, []byte{0xA9, 0x01, 0x8D, 0x00, 0x80, 0x00})
	err := c.Run()
	assert.Error(err)

	var instr *ErrInstruction
	assert.True(errors.As(err, &instr))
	assert.Equal(byte(0x8D), instr.Code)
}

func TestRunWithCallback_Stop(t *testing.T) {
	assert := assert.New(t)

	stop := errors.New("stop")

	// An endless loop, cut by the callback after a few instructions.
	c := testCpu(t, []byte{0x4C, 0x00, 0x06})
	steps := 0
	err := c.RunWithCallback(func(c *Cpu) error {
		steps++
		if steps > 5 {
			return stop
		}
		return nil
	})

	assert.True(errors.Is(err, stop))
	assert.Equal(6, steps)
}
