package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"eofprobe/internal/probe/strategy"
	"eofprobe/internal/stream"
	"eofprobe/internal/types"
)

var (
	// ErrInvalidSamples is returned when fewer than one sample is requested.
	ErrInvalidSamples = errors.New("samples must be at least 1")
	// ErrUnknownExtraction is returned for an unregistered extraction strategy.
	ErrUnknownExtraction = errors.New("unknown extraction strategy")
	// ErrUnknownNewline is returned for a newline mode other than lf or crlf.
	ErrUnknownNewline = errors.New("unknown newline mode")
	// ErrInputTooLarge is returned when a fixture holds more bytes than allowed.
	ErrInputTooLarge = errors.New("input too large for fixture")
)

// Extractor performs one extraction attempt on a text stream. Failures are
// reported through the stream's indicators, never as errors.
type Extractor interface {
	Name() string
	Extract(in *stream.Text) (string, bool)
}

// CreateExtractor is factory function to create extraction strategies
func CreateExtractor(name string) (Extractor, error) {
	switch name {
	case "", "token":
		return &strategy.TokenStrategy{}, nil
	case "line":
		return &strategy.LineStrategy{}, nil
	case "char":
		return &strategy.CharStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtraction, name)
	}
}

// ParseNewline maps a newline mode name to its stream setting
func ParseNewline(name string) (stream.Newline, error) {
	switch name {
	case "", "lf":
		return stream.NewlineLF, nil
	case "crlf":
		return stream.NewlineCRLF, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownNewline, name)
	}
}

// Samples holds the indicator values observed at each sampling point.
// Index 0 is taken before any extraction, index i after the i-th.
type Samples struct {
	EOF  []bool
	Fail []bool
}

// Result is everything the report needs for one fixture
type Result struct {
	Label   string
	Samples Samples
	Bytes   []byte
}

// Sample records the indicators of in before the first extraction and after
// each of the n-1 extractions that follow. Extracted values are discarded.
func Sample(in *stream.Text, ex Extractor, n int) (Samples, error) {
	if n < 1 {
		return Samples{}, fmt.Errorf("%w: got %d", ErrInvalidSamples, n)
	}

	s := Samples{
		EOF:  make([]bool, n),
		Fail: make([]bool, n),
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			ex.Extract(in)
		}

		s.EOF[i] = in.EOF()
		s.Fail[i] = in.Fail()
	}

	return s, nil
}

// DumpBytes returns the raw content of the file at path, read one byte at a
// time. maxBytes > 0 bounds the length; longer files give ErrInputTooLarge.
func DumpBytes(path string, maxBytes int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	data := []byte{}

	for {
		b, err := reader.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return data, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if maxBytes > 0 && len(data) >= maxBytes {
			return data, fmt.Errorf("%w: %s exceeds %d bytes", ErrInputTooLarge, path, maxBytes)
		}

		data = append(data, b)
	}

	return data, nil
}

// Prober runs the sampler and the byte dumper over fixtures
type Prober struct {
	config    types.ProbeRequest
	extractor Extractor
	newline   stream.Newline
	log       *slog.Logger
}

func NewProber(config types.ProbeRequest) (*Prober, error) {
	if config.Samples < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamples, config.Samples)
	}

	if config.MaxBytes < 0 {
		return nil, fmt.Errorf("max bytes must not be negative: %d", config.MaxBytes)
	}

	extractor, err := CreateExtractor(config.Extraction)
	if err != nil {
		return nil, err
	}

	newline, err := ParseNewline(config.Newline)
	if err != nil {
		return nil, err
	}

	return &Prober{
		config:    config,
		extractor: extractor,
		newline:   newline,
		log:       slog.With("component", "probe", "extraction", extractor.Name()),
	}, nil
}

// Samples returns the number of sampling points per fixture
func (p *Prober) Samples() int {
	return p.config.Samples
}

// SampleFile opens path as a text stream and samples it. A file that cannot
// be opened is sampled as a stream that failed to open.
func (p *Prober) SampleFile(path string) Samples {
	in := p.openText(path)
	defer in.Close()

	// The sample count was validated by NewProber
	s, _ := Sample(in, p.extractor, p.config.Samples)

	if in.Bad() {
		p.log.Warn("Read error while sampling", "path", path)
	}

	return s
}

func (p *Prober) openText(path string) *stream.Text {
	file, err := os.Open(path)
	if err != nil {
		p.log.Warn("Failed to open fixture as text", "path", path, "error", err)
		return stream.Failed()
	}

	return stream.New(file, p.newline)
}

// ProbeFile samples the file at path and dumps its bytes. Open failures are
// logged and show up as indicator state and an empty dump; only an input
// that exceeds MaxBytes is returned as an error.
func (p *Prober) ProbeFile(path, label string) (Result, error) {
	res := Result{
		Label:   label,
		Samples: p.SampleFile(path),
	}

	data, err := DumpBytes(path, p.config.MaxBytes)
	if errors.Is(err, ErrInputTooLarge) {
		return res, err
	}

	if err != nil {
		p.log.Warn("Failed to dump fixture bytes", "path", path, "error", err)
		data = []byte{}
	}

	res.Bytes = data

	p.log.Debug("Fixture probed", "label", label, "bytes", len(data))

	return res, nil
}

// Run probes every configured fixture in order and hands each result to
// the report as soon as it is ready.
func (p *Prober) Run(report *Report) error {
	for _, label := range p.config.Fixtures {
		res, err := p.ProbeFile(filepath.Join(p.config.Directory, label), label)
		if err != nil {
			return fmt.Errorf("failed to probe %s: %w", label, err)
		}

		err = report.Write(res)
		if err != nil {
			return fmt.Errorf("failed to write report for %s: %w", label, err)
		}
	}

	return nil
}
