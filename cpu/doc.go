// Package cpu implements the LS-8 microprocessor and its program loaders.
//
// The LS-8 has 256 bytes of flat memory, eight 8-bit registers (r0-r7, with
// r7 reserved as the stack pointer), a flags register set by comparisons,
// and an 8-bit program counter. The stack lives in memory and grows down
// from 0xff.
//
// Programs are loaded either from the binary text format (one base-2 byte
// per line) or from the mnemonic assembly language, which supports labels,
// equates, and compile-time $(...) expression evaluation.
package cpu
