package cpu

import (
	"fmt"
)

// AluOp is an ALU operation type. The values match the low nibble of the
// ALU class opcodes.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(2) // mul
	ALU_OP_INC = AluOp(5) // inc
	ALU_OP_DEC = AluOp(6) // dec
	ALU_OP_CMP = AluOp(7) // cmp
)

// Alu performs op over the operands a and b.
//
// Arithmetic operations return their result modulo 256 and leave flags
// untouched. ALU_OP_CMP returns a unchanged and replaces flags with exactly one
// of FLAG_GT, FLAG_EQ or FLAG_LT.
//
// An unknown op panics, as only a broken dispatch can produce one.
func Alu(op AluOp, a, b uint8, flags Flags) (output uint8, flags_out Flags) {
	output = a
	flags_out = flags

	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_INC:
		output = a + 1
	case ALU_OP_DEC:
		output = a - 1
	case ALU_OP_CMP:
		switch {
		case a > b:
			flags_out = FLAG_GT
		case a == b:
			flags_out = FLAG_EQ
		default:
			flags_out = FLAG_LT
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrAluInvalid, op))
	}

	return
}

// alu applies op to registers reg_a and reg_b, storing the result in reg_a or
// in the flags register.
func (cpu *Cpu) alu(op AluOp, reg_a, reg_b int) {
	a := cpu.Register.Get(reg_a)
	b := cpu.Register.Get(reg_b)

	output, flags := Alu(op, a, b, cpu.Flags)

	cpu.Register.Set(reg_a, output)
	cpu.Flags = flags
}
