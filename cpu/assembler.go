// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Maximum depth of .equ to .equ references.
const equateDepth = 16

var (
	reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a macro-less assembler for the LS-8 instruction set.
//
// Source lines have the form:
//
//	[label:] [MNEMONIC [operand[, operand]]] [; comment]
//
// Registers are written r0-r7, with sp as an alias for r7. Immediates may
// be numbers in Go syntax, labels, equates, or $(...) Starlark expressions.
// The directives are '.equ NAME value' and '.byte value[, value...]'.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]int{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

// expand follows equates until a word is not an equate.
func (asm *Assembler) expand(word string) (expanded string, err error) {
	expanded = word
	for range equateDepth {
		value, ok := asm.Equate[expanded]
		if !ok {
			return
		}
		expanded = value
	}

	err = ErrEquateLoop
	return
}

// valueOf returns the byte value of a number. Negative numbers down to -128
// are stored in two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil || v64 < -128 || v64 > 0xff {
		err = ErrParseNumber(word)
		return
	}

	value = uint8(v64)
	return
}

// registerOf returns the register index named by word.
func (asm *Assembler) registerOf(word string) (index int, err error) {
	word, err = asm.expand(word)
	if err != nil {
		return
	}

	index, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	return
}

// labelValue returns the byte address of a label. A label past the end of
// memory has no address.
func labelValue(addr int) (value uint8, err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrLabelRange
		return
	}

	value = uint8(addr)
	return
}

// immediate appends the value of word to line. Labels that are not yet
// defined are recorded in line.Links, and resolved after the last line.
func (asm *Assembler) immediate(line *Line, word string) (err error) {
	word, err = asm.expand(word)
	if err != nil {
		return
	}

	value, err := asm.valueOf(word)
	if err == nil {
		line.Bytes = append(line.Bytes, value)
		return
	}

	if !reIdent.MatchString(word) {
		return
	}
	err = nil

	if addr, ok := asm.Label[word]; ok {
		value, err = labelValue(addr)
		if err != nil {
			return
		}
		line.Bytes = append(line.Bytes, value)
		return
	}

	if line.Links == nil {
		line.Links = map[int]string{}
	}
	line.Links[len(line.Bytes)] = word
	line.Bytes = append(line.Bytes, 0)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	for key, str := range asm.Equate {
		var word string
		word, err = asm.expand(str)
		if err != nil {
			return
		}
		v64, perr := strconv.ParseInt(word, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -128 || st_int64 > 0xff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint8(st_int64)
	return
}

// parseLine splits a single line into words, after removing comments and
// evaluating $(...) expressions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	if n := strings.IndexAny(line, ";#"); n >= 0 {
		line = line[:n]
	}

	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	return
}

// assembleLine generates the bytes for a single line of source at addr.
func (asm *Assembler) assembleLine(text string, lineno int, addr int) (line Line, err error) {
	line = Line{LineNo: lineno, Addr: addr}

	words, err := asm.parseLine(text, lineno)
	if err != nil {
		return
	}

	if len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reIdent.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		if _, dup := asm.Label[label]; dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = addr
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	line.Words = words

	switch strings.ToLower(words[0]) {
	case ".equ":
		if len(words) != 3 || !reIdent.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		asm.Equate[words[1]] = words[2]
	case ".byte":
		if len(words) < 2 {
			err = ErrOperandCount
			return
		}
		for _, word := range words[1:] {
			err = asm.immediate(&line, word)
			if err != nil {
				return
			}
		}
	default:
		op, ok := LookupOpcode(words[0])
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		args := words[1:]
		if len(args) != op.Operands() {
			err = ErrOperandCount
			return
		}
		line.Bytes = append(line.Bytes, uint8(op))
		for n, arg := range args {
			if n == 1 && op.HasImmediate() {
				err = asm.immediate(&line, arg)
			} else {
				var reg int
				reg, err = asm.registerOf(arg)
				line.Bytes = append(line.Bytes, uint8(reg))
			}
			if err != nil {
				err = errors.Join([]error{ErrOperandA, ErrOperandB}[n], err)
				return
			}
		}
	}

	if asm.Verbose && len(line.Bytes) > 0 {
		log.Printf("asm: %02x: %v % 02x", addr, words, line.Bytes)
	}

	return
}

// Parse assembles a program from source.
func (asm *Assembler) Parse(in io.Reader) (prog *Program, err error) {
	asm.Label = map[string]int{}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	prog = &Program{}

	scanner := bufio.NewScanner(in)
	addr := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := scanner.Text()

		var line Line
		line, err = asm.assembleLine(text, lineno, addr)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		if len(line.Bytes) == 0 {
			continue
		}

		addr += len(line.Bytes)
		if addr > MEMORY_SIZE {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrProgramTooLarge}
			return
		}

		prog.Lines = append(prog.Lines, line)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Resolve forward label references.
	for n := range prog.Lines {
		line := &prog.Lines[n]
		for index, label := range line.Links {
			target, ok := asm.Label[label]
			if !ok {
				err = ErrSyntax{LineNo: line.LineNo, Line: strings.Join(line.Words, " "), Err: ErrLabelMissing(label)}
				return
			}
			line.Bytes[index], err = labelValue(target)
			if err != nil {
				err = ErrSyntax{LineNo: line.LineNo, Line: strings.Join(line.Words, " "), Err: err}
				return
			}
		}
	}

	return
}
