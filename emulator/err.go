package emulator

import (
	"errors"

	"github.com/arhipochki/FamEmu/translate"
)

var f = translate.From

var (
	// ErrStepLimit stops a limited run once the instruction cap is hit.
	ErrStepLimit = errors.New(f("instruction limit reached"))
)

// ErrWatchExpression reports a watch expression that did not evaluate to a
// value.
type ErrWatchExpression string

func (err ErrWatchExpression) Error() string {
	return f("watch expression %q produced no value", string(err))
}
