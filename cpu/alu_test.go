package cpu

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     AluOp
		a, b   uint8
		output uint8
	}){
		{"add", ALU_OP_ADD, 2, 3, 5},
		{"add_wrap", ALU_OP_ADD, 200, 100, 44},
		{"add_max", ALU_OP_ADD, 255, 1, 0},
		{"mul", ALU_OP_MUL, 8, 9, 72},
		{"mul_wrap", ALU_OP_MUL, 16, 16, 0},
		{"mul_wrap_odd", ALU_OP_MUL, 100, 3, 44},
		{"inc", ALU_OP_INC, 0x41, 0x99, 0x42},
		{"inc_wrap", ALU_OP_INC, 0xff, 0, 0},
		{"dec", ALU_OP_DEC, 0x42, 0x99, 0x41},
		{"dec_wrap", ALU_OP_DEC, 0, 0, 0xff},
	}

	for _, entry := range table {
		output, flags := Alu(entry.op, entry.a, entry.b, FLAG_LT)
		assert.Equal(entry.output, output, entry.name)
		assert.Equal(FLAG_LT, flags, entry.name)
	}
}

func TestAlu_Cmp(t *testing.T) {
	assert := assert.New(t)

	values := []uint8{0, 1, 2, 127, 128, 254, 255}

	for _, a := range values {
		for _, b := range values {
			output, flags := Alu(ALU_OP_CMP, a, b, FLAG_MASK)
			assert.Equal(a, output)
			assert.Equal(1, bits.OnesCount8(uint8(flags)), "%d cmp %d", a, b)
			assert.Equal(Flags(0), flags & ^FLAG_MASK)
			switch {
			case a == b:
				assert.Equal(FLAG_EQ, flags, "%d cmp %d", a, b)
			case a > b:
				assert.Equal(FLAG_GT, flags, "%d cmp %d", a, b)
			default:
				assert.Equal(FLAG_LT, flags, "%d cmp %d", a, b)
			}
		}
	}
}

func TestAlu_Invalid(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() { Alu(AluOp(1), 1, 2, 0) })
	assert.Equal("AluOp(1)", AluOp(1).String())
	assert.Equal("cmp", ALU_OP_CMP.String())
}

func TestCpu_Alu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register.Set(0, 5)
	cpu.Register.Set(1, 7)

	cpu.alu(ALU_OP_CMP, 0, 1)
	assert.Equal(FLAG_LT, cpu.Flags)
	assert.Equal(uint8(5), cpu.Register.Get(0))

	cpu.alu(ALU_OP_ADD, 0, 1)
	assert.Equal(uint8(12), cpu.Register.Get(0))
	assert.Equal(uint8(7), cpu.Register.Get(1))
	assert.Equal(FLAG_LT, cpu.Flags)

	cpu.alu(ALU_OP_CMP, 0, 1)
	assert.Equal(FLAG_GT, cpu.Flags)
}
