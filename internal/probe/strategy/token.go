package strategy

import (
	"strings"

	"eofprobe/internal/stream"
)

// TokenStrategy extracts one whitespace-delimited token
type TokenStrategy struct{}

func (s *TokenStrategy) Name() string { return "token" }

func (s *TokenStrategy) Extract(in *stream.Text) (string, bool) {
	if !enter(in) {
		return "", false
	}

	// Skip leading whitespace. Running out here means nothing was extracted.
	for {
		c, ok := in.Peek()
		if !ok {
			in.SetState(stream.FailBit)
			return "", false
		}

		if !isSpace(c) {
			break
		}

		in.Next()
	}

	var token strings.Builder

	// The delimiter that ends the token is left in the stream
	for {
		c, ok := in.Peek()
		if !ok || isSpace(c) {
			break
		}

		in.Next()
		token.WriteByte(c)
	}

	if token.Len() == 0 {
		in.SetState(stream.FailBit)
		return "", false
	}

	return token.String(), true
}
