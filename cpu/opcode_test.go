package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Layout(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       Opcode
		operands int
		alu      bool
		setsPc   bool
	}){
		{OP_HLT, 0, false, false},
		{OP_RET, 0, false, true},
		{OP_PUSH, 1, false, false},
		{OP_POP, 1, false, false},
		{OP_PRN, 1, false, false},
		{OP_CALL, 1, false, true},
		{OP_LDI, 2, false, false},
		{OP_ADD, 2, true, false},
		{OP_MUL, 2, true, false},
		{OP_CMP, 2, true, false},
	}

	assert.Equal(len(Opcodes), len(table))

	for _, entry := range table {
		name := entry.op.String()
		assert.Equal(entry.operands, entry.op.Operands(), name)
		assert.Equal(uint8(1+entry.operands), entry.op.Width(), name)
		assert.Equal(entry.alu, entry.op.IsAlu(), name)
		assert.Equal(entry.setsPc, entry.op.SetsPc(), name)

		op, err := DecodeOpcode(uint8(entry.op))
		assert.NoError(err, name)
		assert.Equal(entry.op, op)

		op, ok := LookupOpcode(name)
		assert.True(ok, name)
		assert.Equal(entry.op, op)
	}

	assert.Equal(ALU_OP_ADD, OP_ADD.AluOp())
	assert.Equal(ALU_OP_MUL, OP_MUL.AluOp())
	assert.Equal(ALU_OP_CMP, OP_CMP.AluOp())
}

func TestOpcode_Invalid(t *testing.T) {
	assert := assert.New(t)

	valid := map[uint8]bool{}
	for _, op := range Opcodes {
		valid[uint8(op)] = true
	}

	for code := range 256 {
		_, err := DecodeOpcode(uint8(code))
		if valid[uint8(code)] {
			assert.NoError(err)
		} else {
			assert.ErrorIs(err, ErrInstructionInvalid, "0x%02x", code)
		}
	}

	_, ok := LookupOpcode("NOP")
	assert.False(ok)

	op, ok := LookupOpcode("ldi")
	assert.True(ok)
	assert.Equal(OP_LDI, op)

	assert.Equal("Opcode(255)", Opcode(0xff).String())
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		insn Instruction
		text string
	}){
		{Instruction{Code: uint8(OP_LDI), Operands: [2]uint8{0, 8}}, "LDI R0, 8"},
		{Instruction{Code: uint8(OP_MUL), Operands: [2]uint8{0, 1}}, "MUL R0, R1"},
		{Instruction{Code: uint8(OP_PRN), Operands: [2]uint8{3, 9}}, "PRN R3"},
		{Instruction{Code: uint8(OP_RET), Operands: [2]uint8{3, 9}}, "RET"},
		{Instruction{Code: 0xff}, ".byte 0b11111111"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.insn.String())
	}
}
