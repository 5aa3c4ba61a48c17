package cpu

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseBinary reads a program in the binary text format.
//
// Each line holds at most one byte, written in base 2 with an optional 0b
// prefix. Anything after a '#' is a comment. Blank lines are ignored.
func ParseBinary(in io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(in)
	addr := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		digits := strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B")
		value, perr := strconv.ParseUint(digits, 2, 8)
		if perr != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseNumber(text)}
			return
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo: lineno,
			Addr:   addr,
			Words:  []string{text},
			Bytes:  []uint8{uint8(value)},
		})
		addr++
	}

	err = scanner.Err()

	return
}
