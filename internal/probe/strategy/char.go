package strategy

import "eofprobe/internal/stream"

// CharStrategy extracts a single character, whitespace included
type CharStrategy struct{}

func (s *CharStrategy) Name() string { return "char" }

func (s *CharStrategy) Extract(in *stream.Text) (string, bool) {
	if !enter(in) {
		return "", false
	}

	c, ok := in.Next()
	if !ok {
		in.SetState(stream.FailBit)
		return "", false
	}

	return string(c), true
}
