package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/arhipochki/FamEmu/cpu"
	"github.com/arhipochki/FamEmu/emulator"
)

func main() {
	var rom string
	var load string
	var trace bool
	var watch string
	var limit int
	var verbose bool

	flag.StringVar(&rom, "rom", "", "Raw program-storage image to map at 0x8000")
	flag.StringVar(&load, "load", "", "Raw test program to load into work memory")
	flag.BoolVar(&trace, "trace", false, "Print a trace line per instruction")
	flag.StringVar(&watch, "watch", "", "Stop when this expression over CPU state is true")
	flag.IntVar(&limit, "limit", 0, "Stop after this many instructions (0 = no limit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}
	if (rom == "") == (load == "") {
		log.Fatalf("%v: exactly one of -rom or -load is required", os.Args[0])
	}

	var emu *emulator.Emulator
	if rom != "" {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		emu = emulator.New(data)
	} else {
		data, err := os.ReadFile(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		emu = emulator.New(nil)
		if err := emu.Load(data); err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	}

	emu.Verbose = verbose
	emu.Cpu.Verbose = verbose
	emu.Cpu.Reset()

	var watcher *emulator.Watch
	if watch != "" {
		watcher = &emulator.Watch{Expr: watch}
	}

	callback := func(c *cpu.Cpu) error {
		if trace {
			line, err := cpu.Trace(c)
			if err != nil {
				return err
			}
			fmt.Println(line)
		}
		if watcher != nil {
			hit, err := watcher.Eval(c)
			if err != nil {
				return err
			}
			if hit {
				return errWatchHit
			}
		}
		return nil
	}

	var err error
	if limit > 0 {
		err = emu.RunWithLimit(limit, callback)
	} else {
		err = emu.Cpu.RunWithCallback(callback)
	}

	switch {
	case errors.Is(err, emulator.ErrStepLimit):
		log.Printf("stopped: %v", err)
	case errors.Is(err, errWatchHit):
		log.Printf("watch hit: %v", watch)
	case err != nil:
		log.Fatal(err)
	}

	if verbose {
		fmt.Print(emu.Cpu.String())
	}
}

var errWatchHit = errors.New("watch expression is true")
