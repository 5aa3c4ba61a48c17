// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

const (
	EXIT_HALT    = 0 // Program executed HLT.
	EXIT_FAULT   = 1 // Program failed during execution.
	EXIT_PROGRAM = 2 // Program could not be read.
)

func exitf(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}

// loadProgram reads a binary text or assembly program from filename.
func loadProgram(emu *emulator.Emulator, filename string, assemble bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	if assemble {
		prog, err = emu.Assembler().Parse(inf)
	} else {
		prog, err = cpu.ParseBinary(inf)
	}

	return
}

// runProgram runs prog until it halts, sending PRN output to the file
// output, or to stdout if output is "-". The output file is closed on return.
func runProgram(emu *emulator.Emulator, prog *cpu.Program, output string) (err error) {
	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		defer func() {
			err = errors.Join(err, ouf.Close())
		}()
	}
	emu.Tape.Output = ouf

	emu.Program = prog
	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()

	return
}

func main() {
	var assemble bool
	var output string
	var verbose bool

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%v [options] <program>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&assemble, "a", false, "Program is LS-8 assembly, not binary text")
	flag.StringVar(&output, "o", "-", "PRN output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode, traces every instruction")

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(EXIT_PROGRAM)
	}

	filename := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	prog, err := loadProgram(emu, filename, assemble)
	if err != nil {
		exitf(EXIT_PROGRAM, "%v: %v", os.Args[0], err)
	}

	err = runProgram(emu, prog, output)
	if err != nil {
		var rterr *emulator.ErrRuntime
		if !errors.As(err, &rterr) {
			exitf(EXIT_PROGRAM, "%v: %v", os.Args[0], err)
		}

		var insn *cpu.ErrInstruction
		if errors.As(err, &insn) && errors.Is(err, cpu.ErrInstructionInvalid) {
			log.Printf("Invalid Instruction %d", insn.Code)
		}
		if verbose {
			log.Printf("%v", emu.Cpu.String())
		}
		exitf(EXIT_FAULT, "%v: %v", filename, err)
	}
}
