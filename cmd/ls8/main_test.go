package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/emulator"
)

func writeFile(t *testing.T, name string, lines ...string) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
	assert.NoError(t, err)

	return
}

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()

	path := writeFile(t, "mult.ls8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"00000001 # HLT",
	)
	prog, err := loadProgram(emu, path, false)
	assert.NoError(err)
	assert.Equal([]uint8{0b10000010, 0, 8, 1}, prog.Binary())

	path = writeFile(t, "mult.asm", "LDI r0, 8", "HLT")
	prog, err = loadProgram(emu, path, true)
	assert.NoError(err)
	assert.Equal([]uint8{0b10000010, 0, 8, 1}, prog.Binary())

	_, err = loadProgram(emu, filepath.Join(t.TempDir(), "missing.ls8"), false)
	assert.ErrorIs(err, fs.ErrNotExist)

	// A directory opens, but cannot be read as a program.
	_, err = loadProgram(emu, t.TempDir(), false)
	assert.Error(err)
	assert.False(errors.Is(err, fs.ErrNotExist))
}

func TestRunProgram(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()
	prog, err := emu.Assembler().Parse(strings.NewReader(strings.Join([]string{
		"LDI r0, 8",
		"LDI r1, 9",
		"MUL r0, r1",
		"PRN r0",
		"HLT",
	}, "\n")))
	assert.NoError(err)

	output := filepath.Join(t.TempDir(), "out.txt")
	assert.NoError(runProgram(emu, prog, output))

	text, err := os.ReadFile(output)
	assert.NoError(err)
	assert.Equal("72\n", string(text))

	// Closed output files reject further writes.
	_, err = emu.Tape.Output.Write([]byte("x"))
	assert.ErrorIs(err, os.ErrClosed)

	err = runProgram(emu, prog, filepath.Join(t.TempDir(), "none", "out.txt"))
	assert.ErrorIs(err, fs.ErrNotExist)
}

func TestRunProgram_Fault(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()
	prog, err := emu.Assembler().Parse(strings.NewReader("LDI r0, 1\nPRN r0\n.byte 0b11111111\n"))
	assert.NoError(err)

	output := filepath.Join(t.TempDir(), "out.txt")
	err = runProgram(emu, prog, output)

	var rterr *emulator.ErrRuntime
	assert.True(errors.As(err, &rterr))
	assert.Equal(3, rterr.LineNo)

	text, err := os.ReadFile(output)
	assert.NoError(err)
	assert.Equal("1\n", string(text))
}
