package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrOutOfBounds        = errors.New(f("address out of bounds"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrAluInvalid         = errors.New(f("alu operation invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
	ErrNotRunning         = errors.New(f("cpu not running"))
	ErrOutputMissing      = errors.New(f("output missing"))

	// Instruction decode errors
	ErrOperandA = errors.New(f("operand a"))
	ErrOperandB = errors.New(f("operand b"))

	// Program intake errors
	ErrEquateSyntax   = errors.New(f(".equ syntax"))
	ErrEquateLoop     = errors.New(f(".equ recursion"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelRange     = errors.New(f("label address out of range"))
	ErrLabelSyntax    = errors.New(f("label syntax"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrOperandCount   = errors.New(f("operand count"))
)

// ErrInstruction locates an execution error at the instruction that caused it.
type ErrInstruction struct {
	Pc   uint8 // Address of the instruction.
	Code uint8 // Opcode byte as fetched.
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("pc 0x%02x: opcode 0b%08b (%d) %v", err.Pc, err.Code, err.Code, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a byte value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
