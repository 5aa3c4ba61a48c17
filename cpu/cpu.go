package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Output is the channel PRN prints to.
type Output io.Output

// State is the execution state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_TOP":   fmt.Sprintf("%#x", STACK_TOP),
	"FLAG_EQ":     fmt.Sprintf("%#x", uint8(FLAG_EQ)),
	"FLAG_GT":     fmt.Sprintf("%#x", uint8(FLAG_GT)),
	"FLAG_LT":     fmt.Sprintf("%#x", uint8(FLAG_LT)),
}

// Cpu is the simulation context for the LS-8.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Output  Output // Destination of PRN.

	Memory   Memory    // Main memory.
	Register Registers // Register bank, r7 is the stack pointer.
	Flags    Flags     // Result of the last CMP.
	Pc       uint8     // Address of the next instruction.
	State    State     // Execution state.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU, reset and ready to load a program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Zero fills memory.
// - Clears the registers and flags, and sets SP to STACK_TOP.
// - Sets PC to 0 and the state to running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// Load writes a program into memory, starting at address 0.
// If the program does not fit, nothing is written.
func (cpu *Cpu) Load(values []uint8) (err error) {
	if len(values) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	for addr, value := range values {
		cpu.Memory.Write(addr, value)
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(values))
	}

	return
}

// Fetch returns the instruction at PC. Both operand bytes are always read;
// their addresses wrap at the end of memory.
func (cpu *Cpu) Fetch() (insn Instruction) {
	pc := cpu.Pc
	insn = Instruction{
		Pc:   pc,
		Code: cpu.Memory.Read(int(pc)),
		Operands: [2]uint8{
			cpu.Memory.Read(int(pc + 1)),
			cpu.Memory.Read(int(pc + 2)),
		},
	}

	return
}

// Tick executes a single CPU instruction cycle.
// A fault leaves the machine state as it was at the failing instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State != STATE_RUNNING {
		err = ErrNotRunning
		return
	}

	insn := cpu.Fetch()

	if cpu.Verbose {
		log.Print(cpu.Trace())
	}

	err = cpu.Execute(insn)
	if err != nil {
		cpu.State = STATE_FAULTED
	}

	return
}

// Run ticks the CPU until it halts or faults.
func (cpu *Cpu) Run() (err error) {
	for cpu.State == STATE_RUNNING {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// register decodes a register operand.
func register(operand uint8) (index int, err error) {
	if operand >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	index = int(operand)
	return
}

// Execute executes a single instruction.
func (cpu *Cpu) Execute(insn Instruction) (err error) {
	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: insn.Pc, Code: insn.Code, Err: err}
		}
	}()

	op, err := DecodeOpcode(insn.Code)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%02x: %v", insn.Pc, insn)
	}

	var reg_a, reg_b int
	if op.Operands() >= 1 {
		reg_a, err = register(insn.Operands[0])
		if err != nil {
			err = errors.Join(ErrOperandA, err)
			return
		}
	}
	if op.Operands() >= 2 && !op.HasImmediate() {
		reg_b, err = register(insn.Operands[1])
		if err != nil {
			err = errors.Join(ErrOperandB, err)
			return
		}
	}

	next_pc := insn.Pc
	if !op.SetsPc() {
		next_pc += op.Width()
	}

	switch op {
	case OP_HLT:
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Printf("cpu: halted after %d ticks", cpu.Ticks)
		}
		return
	case OP_LDI:
		cpu.Register.Set(reg_a, insn.Operands[1])
	case OP_PRN:
		if cpu.Output == nil {
			err = ErrOutputMissing
			return
		}
		err = cpu.Output.Print(cpu.Register.Get(reg_a))
		if err != nil {
			return
		}
	case OP_ADD, OP_MUL, OP_CMP:
		cpu.alu(op.AluOp(), reg_a, reg_b)
	case OP_PUSH:
		err = cpu.Push(cpu.Register.Get(reg_a))
		if err != nil {
			return
		}
	case OP_POP:
		var value uint8
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		cpu.Register.Set(reg_a, value)
	case OP_CALL:
		err = cpu.Push(insn.Pc + 2)
		if err != nil {
			return
		}
		next_pc = cpu.Register.Get(reg_a)
	case OP_RET:
		next_pc, err = cpu.Pop()
		if err != nil {
			return
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

// Trace returns a single line snapshot of PC, the three bytes at PC, and the
// register bank.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	pc := cpu.Pc
	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		pc,
		cpu.Memory.Read(int(pc)),
		cpu.Memory.Read(int(pc+1)),
		cpu.Memory.Read(int(pc+2)),
	)

	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
		"state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X (%d)", val, val)
		case "stack":
			val, ok := cpu.Peek()
			if ok {
				strval = fmt.Sprintf("%02X depth %d", val, cpu.Depth())
			} else {
				strval = "--"
			}
		case "state":
			strval = cpu.State.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
