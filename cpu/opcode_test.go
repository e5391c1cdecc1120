package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	op, err := Lookup(0xA9)
	assert.NoError(err)
	assert.Equal("LDA", op.Mnemonic)
	assert.Equal(2, op.Length)
	assert.Equal(MODE_IMMEDIATE, op.Mode)

	op, err = Lookup(0x00)
	assert.NoError(err)
	assert.Equal("BRK", op.Mnemonic)
	assert.Equal(1, op.Length)
}

func TestLookup_Unknown(t *testing.T) {
	assert := assert.New(t)

	_, err := Lookup(0x02)
	assert.Error(err)
	assert.True(errors.Is(err, ErrUnknownOpcode(0)))
}

func TestOpcodes_Consistent(t *testing.T) {
	assert := assert.New(t)

	seen := map[byte]bool{}
	for i := range opcodes {
		op := &opcodes[i]
		assert.False(seen[op.Code], "duplicate opcode 0x%02X", op.Code)
		seen[op.Code] = true

		assert.GreaterOrEqual(op.Length, 1, "%v", op)
		assert.LessOrEqual(op.Length, 3, "%v", op)

		// The mode fixes the operand byte count for every mode that
		// resolves an address.
		switch op.Mode {
		case MODE_IMMEDIATE, MODE_ZERO_PAGE, MODE_ZERO_PAGE_X,
			MODE_ZERO_PAGE_Y, MODE_INDIRECT_X, MODE_INDIRECT_Y:
			assert.Equal(2, op.Length, "%v", op)
		case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y:
			assert.Equal(3, op.Length, "%v", op)
		}
	}
}
