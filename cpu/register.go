package cpu

import (
	"fmt"
	"strings"
)

const (
	REGISTER_COUNT = 8    // Number of general purpose registers.
	REG_SP         = 7    // Register holding the stack pointer.
	STACK_TOP      = 0xff // Reset value of the stack pointer.
)

// Registers is the register bank. Values wrap modulo 256.
type Registers [REGISTER_COUNT]uint8

func checkRegister(index int) {
	if index < 0 || index >= REGISTER_COUNT {
		panic(fmt.Errorf("%w: r%d", ErrRegisterInvalid, index))
	}
}

// Get returns the value of register index.
func (reg *Registers) Get(index int) uint8 {
	checkRegister(index)
	return reg[index]
}

// Set sets register index to value.
func (reg *Registers) Set(index int, value uint8) {
	checkRegister(index)
	reg[index] = value
}

// Reset zeros all registers, and sets the stack pointer to the top of memory.
func (reg *Registers) Reset() {
	clear(reg[:])
	reg[REG_SP] = STACK_TOP
}

// Flags holds the outcome of the most recent comparison.
type Flags uint8

const (
	FLAG_EQ = Flags(1 << 0) // a == b
	FLAG_GT = Flags(1 << 1) // a > b
	FLAG_LT = Flags(1 << 2) // a < b

	FLAG_MASK = FLAG_EQ | FLAG_GT | FLAG_LT
)

// String returns the set flags as letters, with '-' for each clear flag.
func (fl Flags) String() string {
	var sb strings.Builder
	for _, flag := range []struct {
		bit  Flags
		name byte
	}{{FLAG_LT, 'L'}, {FLAG_GT, 'G'}, {FLAG_EQ, 'E'}} {
		if fl&flag.bit != 0 {
			sb.WriteByte(flag.name)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
