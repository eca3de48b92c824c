package strategy

import (
	"strings"
	"testing"

	"eofprobe/internal/stream"
)

type extractor interface {
	Extract(in *stream.Text) (string, bool)
}

type step struct {
	value string
	ok    bool
	eof   bool
	fail  bool
}

func runSteps(t *testing.T, ex extractor, input string, newline stream.Newline, steps []step) {
	t.Helper()

	in := stream.New(strings.NewReader(input), newline)

	for i, want := range steps {
		value, ok := ex.Extract(in)

		if ok != want.ok {
			t.Errorf("step %d: expected ok=%v, got %v", i, want.ok, ok)
		}

		if value != want.value {
			t.Errorf("step %d: expected value %q, got %q", i, want.value, value)
		}

		if in.EOF() != want.eof {
			t.Errorf("step %d: expected eof=%v, got %v", i, want.eof, in.EOF())
		}

		if in.Fail() != want.fail {
			t.Errorf("step %d: expected fail=%v, got %v", i, want.fail, in.Fail())
		}
	}
}

func TestTokenStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		newline stream.Newline
		steps   []step
	}{
		{
			name:  "trailing crlf",
			input: "A\r\nB\r\nC\r\n",
			steps: []step{
				{value: "A", ok: true},
				{value: "B", ok: true},
				{value: "C", ok: true},
				{eof: true, fail: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "no trailing delimiter",
			input: "ABC",
			steps: []step{
				{value: "ABC", ok: true, eof: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "last token runs into end",
			input: "A\r\nB\r\nC",
			steps: []step{
				{value: "A", ok: true},
				{value: "B", ok: true},
				{value: "C", ok: true, eof: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "lone cr is whitespace",
			input: "A\rB\rC\r",
			steps: []step{
				{value: "A", ok: true},
				{value: "B", ok: true},
				{value: "C", ok: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "all whitespace classes",
			input: " \t\v\fX\n",
			steps: []step{
				{value: "X", ok: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "empty input",
			input: "",
			steps: []step{
				{eof: true, fail: true},
			},
		},
		{
			name:    "crlf translation does not change token boundaries",
			input:   "A\r\nB\r\n",
			newline: stream.NewlineCRLF,
			steps: []step{
				{value: "A", ok: true},
				{value: "B", ok: true},
				{eof: true, fail: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSteps(t, &TokenStrategy{}, tt.input, tt.newline, tt.steps)
		})
	}
}

func TestLineStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		newline stream.Newline
		steps   []step
	}{
		{
			name:  "crlf lines keep cr without translation",
			input: "A\r\nB\r\n",
			steps: []step{
				{value: "A\r", ok: true},
				{value: "B\r", ok: true},
				{eof: true, fail: true},
			},
		},
		{
			name:    "crlf lines with translation",
			input:   "A\r\nB\r\n",
			newline: stream.NewlineCRLF,
			steps: []step{
				{value: "A", ok: true},
				{value: "B", ok: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "last line without newline",
			input: "A\nBC",
			steps: []step{
				{value: "A", ok: true},
				{value: "BC", ok: true, eof: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "empty line is a successful extraction",
			input: "\n",
			steps: []step{
				{value: "", ok: true},
				{eof: true, fail: true},
			},
		},
		{
			name:  "cr only input is one line",
			input: "A\rB\rC\r",
			steps: []step{
				{value: "A\rB\rC\r", ok: true, eof: true},
				{eof: true, fail: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSteps(t, &LineStrategy{}, tt.input, tt.newline, tt.steps)
		})
	}
}

func TestCharStrategy(t *testing.T) {
	runSteps(t, &CharStrategy{}, "A\r", stream.NewlineLF, []step{
		{value: "A", ok: true},
		{value: "\r", ok: true},
		{eof: true, fail: true},
		{eof: true, fail: true},
	})

	runSteps(t, &CharStrategy{}, "\r\n", stream.NewlineCRLF, []step{
		{value: "\n", ok: true},
		{eof: true, fail: true},
	})
}

func TestFailedStreamIsNeverRead(t *testing.T) {
	for _, ex := range []extractor{&TokenStrategy{}, &LineStrategy{}, &CharStrategy{}} {
		in := stream.Failed()

		value, ok := ex.Extract(in)
		if ok || value != "" {
			t.Errorf("%T: expected failed extraction, got %q", ex, value)
		}

		if in.EOF() {
			t.Errorf("%T: a stream that never opened must not report eof", ex)
		}

		if !in.Fail() {
			t.Errorf("%T: expected fail to stay set", ex)
		}
	}
}

func TestEOFWithoutFailStillBlocksExtraction(t *testing.T) {
	in := stream.New(strings.NewReader("ABC"), stream.NewlineLF)

	if _, ok := (&TokenStrategy{}).Extract(in); !ok {
		t.Fatal("expected first token to succeed")
	}

	if !in.EOF() || in.Fail() {
		t.Fatalf("expected eof only, got state %v", in.State())
	}

	if _, ok := (&CharStrategy{}).Extract(in); ok {
		t.Error("expected extraction on a non-good stream to fail")
	}

	if !in.Fail() {
		t.Error("expected fail to be set")
	}
}
