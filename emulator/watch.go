package emulator

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/arhipochki/FamEmu/cpu"
	"github.com/arhipochki/FamEmu/internal"
)

// Watch evaluates an expression against the processor state after each
// instruction. Register names (a, x, y, p, sp, pc) and flag names (carry,
// zero, interrupt, decimal, brk, brk2, overflow, negative) are in scope as
// integers; flags read as 0 or 1.
type Watch struct {
	Expr string
}

// Eval reports whether the expression is true for the current state.
func (w *Watch) Eval(c *cpu.Cpu) (hit bool, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for name, value := range internal.IterSeq2Concat(c.Registers(), c.Status.Named()) {
		pred[name] = starlark.MakeInt(value)
	}

	prog := "rc = " + w.Expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "watch", prog, pred)
	if err != nil {
		return
	}

	rc, ok := dict["rc"]
	if !ok {
		err = ErrWatchExpression(w.Expr)
		return
	}
	hit = bool(rc.Truth())

	return
}
