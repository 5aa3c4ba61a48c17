package cpu

import (
	"iter"
)

// Line is a line of program source with the bytes it generated.
type Line struct {
	LineNo int            // Source line number, starting at 1.
	Addr   int            // Address of the first generated byte.
	Words  []string       // Source words, after comment and expression removal.
	Bytes  []uint8        // Generated bytes.
	Links  map[int]string // Offsets into Bytes awaiting a label address.
}

// Program is a loadable program and its source mapping.
type Program struct {
	Lines []Line
}

// Debug locates the source of a memory address.
type Debug struct {
	*Line
	Index int // Offset of the address into Line.Bytes.
}

// Debug returns the source line that generated the byte at addr.
// If no line did, the returned Debug has a nil Line.
func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes the program occupies, from address 0.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size = max(size, line.Addr+len(line.Bytes))
	}

	return
}

// Binary returns the program image, starting at address 0.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Size())
	for addr, value := range prog.Bytes() {
		bins[addr] = value
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Addr+n, value) {
					return
				}
			}
		}
	}
}
