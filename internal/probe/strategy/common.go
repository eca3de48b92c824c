package strategy

import "eofprobe/internal/stream"

// isSpace matches the C locale's whitespace class
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// enter checks the stream before an extraction. A stream that is not good
// gets FAIL added and must not be read.
func enter(s *stream.Text) bool {
	if !s.Good() {
		s.SetState(stream.FailBit)
		return false
	}

	return true
}
