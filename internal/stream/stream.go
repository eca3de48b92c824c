// Package stream provides a sequential text reader that reports its
// condition through sticky end-of-data and failure indicators instead of
// returned errors.
package stream

import (
	"bufio"
	"errors"
	"io"
)

// State is a set of condition bits.
type State uint8

const (
	EOFBit State = 1 << iota
	FailBit
	BadBit
)

// Newline selects how line endings are delivered to readers of the stream
type Newline int

const (
	// NewlineLF delivers bytes exactly as stored
	NewlineLF Newline = iota
	// NewlineCRLF delivers a CR LF pair as a single LF
	NewlineCRLF
)

// Text is a sequential character stream. Once any bit is set the stream is
// no longer good and stays that way until Clear is called.
type Text struct {
	r       *bufio.Reader
	closer  io.Closer
	newline Newline
	state   State
}

// New wraps r. If r is an io.Closer it is closed by Close.
func New(r io.Reader, newline Newline) *Text {
	t := &Text{
		r:       bufio.NewReader(r),
		newline: newline,
	}

	if c, ok := r.(io.Closer); ok {
		t.closer = c
	}

	return t
}

// Failed returns a stream that never opened: FAIL is set and nothing can be read.
func Failed() *Text {
	return &Text{state: FailBit}
}

func (t *Text) State() State { return t.state }

// Good reports whether no bit is set.
func (t *Text) Good() bool { return t.state == 0 }

// EOF reports whether a read attempt has run into the end of the input.
func (t *Text) EOF() bool { return t.state&EOFBit != 0 }

// Fail reports whether the last operation failed, including unrecoverable read errors.
func (t *Text) Fail() bool { return t.state&(FailBit|BadBit) != 0 }

// Bad reports whether the underlying reader returned an error other than io.EOF.
func (t *Text) Bad() bool { return t.state&BadBit != 0 }

// SetState adds bits to the current state.
func (t *Text) SetState(s State) { t.state |= s }

// Clear resets the state to good.
func (t *Text) Clear() { t.state = 0 }

// Peek returns the next character without consuming it. When there is none,
// EOF (or Bad on a read error) is set and ok is false.
func (t *Text) Peek() (c byte, ok bool) {
	c, _, ok = t.peek()
	return c, ok
}

// Next consumes and returns the next character. It sets the same bits as Peek.
func (t *Text) Next() (c byte, ok bool) {
	c, width, ok := t.peek()
	if !ok {
		return 0, false
	}

	_, _ = t.r.Discard(width)

	return c, true
}

func (t *Text) peek() (byte, int, bool) {
	if t.r == nil {
		t.state |= EOFBit
		return 0, 0, false
	}

	b, err := t.r.Peek(1)
	if err != nil {
		t.readFailed(err)
		return 0, 0, false
	}

	if t.newline == NewlineCRLF && b[0] == '\r' {
		if p, _ := t.r.Peek(2); len(p) == 2 && p[1] == '\n' {
			return '\n', 2, true
		}
	}

	return b[0], 1, true
}

func (t *Text) readFailed(err error) {
	if errors.Is(err, io.EOF) {
		t.state |= EOFBit
		return
	}

	t.state |= BadBit
}

// Close releases the underlying reader. The state is left untouched.
func (t *Text) Close() error {
	if t.closer == nil {
		return nil
	}

	err := t.closer.Close()
	t.closer = nil

	return err
}
