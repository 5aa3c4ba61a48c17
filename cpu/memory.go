package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE = 256 // Bytes of addressable memory.
)

// Memory is the flat, byte addressed memory of the machine.
// It holds no interpretation of the bytes it stores.
type Memory [MEMORY_SIZE]uint8

// checkAddress panics if the address is outside of memory.
// No instruction can produce such an address; reaching it is a decoder bug.
func checkAddress(address int) {
	if address < 0 || address >= MEMORY_SIZE {
		panic(fmt.Errorf("%w: %#x", ErrOutOfBounds, address))
	}
}

// Read returns the byte at address.
func (mem *Memory) Read(address int) uint8 {
	checkAddress(address)
	return mem[address]
}

// Write stores value at address.
func (mem *Memory) Write(address int, value uint8) {
	checkAddress(address)
	mem[address] = value
}

// Reset zero fills the memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
