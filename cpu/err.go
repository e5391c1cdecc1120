package cpu

import (
	"errors"

	"github.com/arhipochki/FamEmu/translate"
)

var f = translate.From

var (
	// ErrNoAddressing reports an operand-address query against a mode
	// that takes no memory operand.
	ErrNoAddressing = errors.New(f("addressing mode has no operand"))
)

// ErrUnknownOpcode reports an opcode byte with no descriptor.
type ErrUnknownOpcode byte

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02X", byte(err))
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	return
}

// ErrInstruction locates a failed instruction by program counter and opcode.
type ErrInstruction struct {
	Pc   uint16
	Code byte
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("0x%04X: opcode 0x%02X: %v", err.Pc, err.Code, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
