package cpu

// The stack is a convention over memory and the stack pointer register. It
// grows downward from STACK_TOP, and SP always addresses the top entry.
//
// Wrapping the stack pointer is fatal: a push with SP at 0x00, or a pop
// with SP at STACK_TOP, fails without touching memory or SP.

// Push decrements the stack pointer, then writes value at the new top of stack.
func (cpu *Cpu) Push(value uint8) (err error) {
	if cpu.Register.Get(REG_SP) == 0 {
		err = ErrStackOverflow
		return
	}

	cpu.alu(ALU_OP_DEC, REG_SP, REG_SP)
	cpu.Memory.Write(int(cpu.Register.Get(REG_SP)), value)

	return
}

// Pop reads the top of stack, then increments the stack pointer.
func (cpu *Cpu) Pop() (value uint8, err error) {
	if cpu.Register.Get(REG_SP) == STACK_TOP {
		err = ErrStackUnderflow
		return
	}

	value = cpu.Memory.Read(int(cpu.Register.Get(REG_SP)))
	cpu.alu(ALU_OP_INC, REG_SP, REG_SP)

	return
}

// Peek returns the value at the top of stack, if any.
func (cpu *Cpu) Peek() (value uint8, ok bool) {
	sp := cpu.Register.Get(REG_SP)
	if sp == STACK_TOP {
		return
	}

	return cpu.Memory.Read(int(sp)), true
}

// Depth returns the number of bytes on the stack.
func (cpu *Cpu) Depth() int {
	return STACK_TOP - int(cpu.Register.Get(REG_SP))
}
