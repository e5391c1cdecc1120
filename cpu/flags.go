package cpu

import (
	"iter"
)

// Flags is the 8-bit processor status register.
//
//	7 6 5 4 3 2 1 0
//	N V _ B D I Z C
//	| | | | | | | +--- Carry
//	| | | | | | +----- Zero
//	| | | | | +------- Interrupt Disable
//	| | | | +--------- Decimal (storable, unused by this chip variant)
//	| | | +----------- Break
//	| | +------------- Break2 (always-one companion bit)
//	| +--------------- Overflow
//	+----------------- Negative
type Flags uint8

const (
	FLAG_CARRY             = Flags(1 << 0)
	FLAG_ZERO              = Flags(1 << 1)
	FLAG_INTERRUPT_DISABLE = Flags(1 << 2)
	FLAG_DECIMAL           = Flags(1 << 3)
	FLAG_BREAK             = Flags(1 << 4)
	FLAG_BREAK_2           = Flags(1 << 5)
	FLAG_OVERFLOW          = Flags(1 << 6)
	FLAG_NEGATIVE          = Flags(1 << 7)
)

// FLAGS_RESET is the power-on status pattern.
const FLAGS_RESET = FLAG_INTERRUPT_DISABLE | FLAG_BREAK_2

// Contains reports whether every bit of flag is set.
func (fl Flags) Contains(flag Flags) bool {
	return fl&flag == flag
}

// Insert sets the bits of flag.
func (fl *Flags) Insert(flag Flags) {
	*fl |= flag
}

// Remove clears the bits of flag.
func (fl *Flags) Remove(flag Flags) {
	*fl &^= flag
}

// Set inserts flag when cond is true, and removes it otherwise.
func (fl *Flags) Set(flag Flags, cond bool) {
	if cond {
		fl.Insert(flag)
	} else {
		fl.Remove(flag)
	}
}

// updateZeroNeg recomputes Zero and Negative from an 8-bit result.
func (fl *Flags) updateZeroNeg(result byte) {
	fl.Set(FLAG_ZERO, result == 0)
	fl.Set(FLAG_NEGATIVE, result>>7 == 1)
}

var flagNames = []struct {
	name string
	flag Flags
}{
	{"carry", FLAG_CARRY},
	{"zero", FLAG_ZERO},
	{"interrupt", FLAG_INTERRUPT_DISABLE},
	{"decimal", FLAG_DECIMAL},
	{"brk", FLAG_BREAK},
	{"brk2", FLAG_BREAK_2},
	{"overflow", FLAG_OVERFLOW},
	{"negative", FLAG_NEGATIVE},
}

// Named returns the flag bits as named 0/1 values, lowest bit first.
func (fl Flags) Named() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, entry := range flagNames {
			value := 0
			if fl.Contains(entry.flag) {
				value = 1
			}
			if !yield(entry.name, value) {
				return
			}
		}
	}
}
