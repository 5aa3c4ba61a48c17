package io

import (
	"fmt"
	"io"
)

// Tape prints each value as a decimal line to an io.Writer.
type Tape struct {
	Output io.Writer

	Count int // Number of values printed.
}

var _ Output = (*Tape)(nil)

// Print writes value as a decimal line.
func (tc *Tape) Print(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelMissing
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Count++

	return
}

// Rewind clears the count of printed values. Output already written is
// not recalled.
func (tc *Tape) Rewind() {
	tc.Count = 0
}

// Recorder keeps every printed value in memory.
type Recorder struct {
	Values []uint8
}

var _ Output = (*Recorder)(nil)

// Print appends value to the recording.
func (rc *Recorder) Print(value uint8) error {
	rc.Values = append(rc.Values, value)
	return nil
}

// Rewind discards the recording.
func (rc *Recorder) Rewind() {
	rc.Values = rc.Values[:0]
}
