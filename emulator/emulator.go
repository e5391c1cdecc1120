// Package emulator wires one CPU to one address space and exposes the
// operations an embedder needs: loading self-contained test programs,
// reset, run-to-halt with optional tracing, step limits, and watch
// expressions over processor state.
package emulator

import (
	"github.com/arhipochki/FamEmu/bus"
	"github.com/arhipochki/FamEmu/cpu"
)

// PROGRAM_LOAD is the fixed work-memory address where self-contained test
// programs are placed, bypassing full cartridge emulation.
const PROGRAM_LOAD = uint16(0x0600)

// Emulator owns a CPU and its Bus for the lifetime of a run.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	*cpu.Cpu
	Bus *bus.Bus
}

// New creates an emulator whose program storage is backed by the given
// read-only image. A nil image leaves program storage unmapped, for use
// with Load.
func New(prg []byte) (emu *Emulator) {
	b := bus.New(prg)
	emu = &Emulator{
		Cpu: cpu.New(b),
		Bus: b,
	}

	return
}

// Load copies a program into work memory at PROGRAM_LOAD and points the
// reset vector at it.
func (emu *Emulator) Load(program []byte) (err error) {
	for i, value := range program {
		err = emu.Bus.Write(PROGRAM_LOAD+uint16(i), value)
		if err != nil {
			return
		}
	}
	emu.Bus.PointReset(PROGRAM_LOAD)

	return
}

// LoadAndRun loads a program, resets the CPU, and runs to halt.
func (emu *Emulator) LoadAndRun(program []byte) (err error) {
	err = emu.Load(program)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return emu.Cpu.Run()
}

// RunWithLimit runs to halt, but stops with ErrStepLimit once limit
// instructions have executed. The callback may be nil.
func (emu *Emulator) RunWithLimit(limit int, callback func(*cpu.Cpu) error) (err error) {
	steps := 0

	return emu.Cpu.RunWithCallback(func(c *cpu.Cpu) (err error) {
		if steps >= limit {
			return ErrStepLimit
		}
		steps++

		if callback != nil {
			err = callback(c)
		}

		return
	})
}
