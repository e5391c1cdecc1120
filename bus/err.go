package bus

import (
	"github.com/arhipochki/FamEmu/translate"
)

var f = translate.From

// ErrReadOnly reports a write into the read-only program-storage range.
type ErrReadOnly uint16

func (err ErrReadOnly) Error() string {
	return f("write to read-only program storage at 0x%04X", uint16(err))
}

func (err ErrReadOnly) Is(target error) (ok bool) {
	_, ok = target.(ErrReadOnly)
	return
}
