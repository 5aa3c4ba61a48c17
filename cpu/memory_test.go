package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for addr := range MEMORY_SIZE {
		assert.Equal(uint8(0), mem.Read(addr))
	}

	mem.Write(0, 0x12)
	mem.Write(0xff, 0x34)
	assert.Equal(uint8(0x12), mem.Read(0))
	assert.Equal(uint8(0x34), mem.Read(0xff))

	mem.Reset()
	assert.Equal(uint8(0), mem.Read(0))
	assert.Equal(uint8(0), mem.Read(0xff))
}

func TestMemory_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.Panics(func() { mem.Read(-1) })
	assert.Panics(func() { mem.Read(MEMORY_SIZE) })
	assert.Panics(func() { mem.Write(MEMORY_SIZE, 1) })
	assert.Panics(func() { mem.Write(-1, 1) })
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}
	reg.Reset()

	for n := range REGISTER_COUNT - 1 {
		assert.Equal(uint8(0), reg.Get(n))
	}
	assert.Equal(uint8(STACK_TOP), reg.Get(REG_SP))

	reg.Set(3, 0xaa)
	assert.Equal(uint8(0xaa), reg.Get(3))

	assert.Panics(func() { reg.Get(REGISTER_COUNT) })
	assert.Panics(func() { reg.Set(-1, 0) })
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("---", Flags(0).String())
	assert.Equal("--E", FLAG_EQ.String())
	assert.Equal("-G-", FLAG_GT.String())
	assert.Equal("L--", FLAG_LT.String())
}
