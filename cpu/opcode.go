package cpu

import (
	"fmt"
	"strings"
)

// Opcode is a decoded LS-8 instruction byte.
//
// The opcode byte is laid out as AABCDDDD:
//   - AA: number of operand bytes following the opcode.
//   - B: ALU operation, DDDD selects the AluOp.
//   - C: the instruction sets PC itself.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT  = Opcode(0b00000001) // HLT
	OP_RET  = Opcode(0b00010001) // RET
	OP_PUSH = Opcode(0b01000101) // PUSH
	OP_POP  = Opcode(0b01000110) // POP
	OP_PRN  = Opcode(0b01000111) // PRN
	OP_CALL = Opcode(0b01010000) // CALL
	OP_LDI  = Opcode(0b10000010) // LDI
	OP_ADD  = Opcode(0b10100000) // ADD
	OP_MUL  = Opcode(0b10100010) // MUL
	OP_CMP  = Opcode(0b10100111) // CMP
)

// Opcodes lists every implemented instruction.
var Opcodes = []Opcode{
	OP_HLT,
	OP_RET,
	OP_PUSH,
	OP_POP,
	OP_PRN,
	OP_CALL,
	OP_LDI,
	OP_ADD,
	OP_MUL,
	OP_CMP,
}

var opcodeByName = func() (names map[string]Opcode) {
	names = make(map[string]Opcode, len(Opcodes))
	for _, op := range Opcodes {
		names[op.String()] = op
	}
	return
}()

// LookupOpcode returns the opcode for a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodeByName[strings.ToUpper(mnemonic)]
	return
}

// DecodeOpcode decodes an opcode byte.
func DecodeOpcode(code uint8) (op Opcode, err error) {
	op = Opcode(code)
	switch op {
	case OP_HLT, OP_RET, OP_PUSH, OP_POP, OP_PRN, OP_CALL, OP_LDI, OP_ADD, OP_MUL, OP_CMP:
		// valid
	default:
		err = ErrInstructionInvalid
	}

	return
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Width returns the total size of the instruction in bytes.
func (op Opcode) Width() uint8 {
	return 1 + uint8(op.Operands())
}

// IsAlu returns true if the instruction is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// SetsPc returns true if the instruction assigns PC itself, rather than
// advancing by its width.
func (op Opcode) SetsPc() bool {
	return (op & 0b00010000) != 0
}

// AluOp returns the ALU operation of an ALU class opcode.
func (op Opcode) AluOp() AluOp {
	return AluOp(op & 0x0f)
}

// HasImmediate returns true if the second operand is an immediate value
// rather than a register index.
func (op Opcode) HasImmediate() bool {
	return op == OP_LDI
}

// Instruction is a transient view of the three bytes at an address.
type Instruction struct {
	Pc       uint8    // Address of the opcode.
	Code     uint8    // Opcode byte.
	Operands [2]uint8 // Speculatively fetched operand bytes.
}

// String returns the assembly language representation of the instruction.
func (insn Instruction) String() string {
	op, err := DecodeOpcode(insn.Code)
	if err != nil {
		return fmt.Sprintf(".byte 0b%08b", insn.Code)
	}

	args := make([]string, 0, 2)
	for n := range op.Operands() {
		value := insn.Operands[n]
		if n == 1 && op.HasImmediate() {
			args = append(args, fmt.Sprintf("%d", value))
		} else {
			args = append(args, fmt.Sprintf("R%d", value))
		}
	}

	if len(args) == 0 {
		return op.String()
	}

	return op.String() + " " + strings.Join(args, ", ")
}
