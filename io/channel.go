// Package io provides the output channels for the LS-8 emulator.
package io

// Output is a line oriented sink for values printed by the CPU.
// Values are delivered in the order they were printed.
type Output interface {
	// Print emits a single value.
	Print(value uint8) error
}
