package strategy

import (
	"strings"

	"eofprobe/internal/stream"
)

// LineStrategy extracts everything up to and including the next LF. The LF
// is consumed but not returned.
type LineStrategy struct{}

func (s *LineStrategy) Name() string { return "line" }

func (s *LineStrategy) Extract(in *stream.Text) (string, bool) {
	if !enter(in) {
		return "", false
	}

	var (
		line     strings.Builder
		consumed int
	)

	for {
		c, ok := in.Next()
		if !ok {
			break
		}

		consumed++

		if c == '\n' {
			break
		}

		line.WriteByte(c)
	}

	// An empty line still counts as an extraction, the delimiter was consumed
	if consumed == 0 {
		in.SetState(stream.FailBit)
		return "", false
	}

	return line.String(), true
}
