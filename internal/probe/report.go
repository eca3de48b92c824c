package probe

import (
	"fmt"
	"io"
	"strings"
)

const (
	markerSet   = " -1-"
	markerClear = "  0 "
)

// Report renders probe results as the two-line indicator table. The column
// header is written once, before the first record.
type Report struct {
	w       io.Writer
	samples int
	started bool
}

func NewReport(w io.Writer, samples int) *Report {
	return &Report{w: w, samples: samples}
}

func (r *Report) Write(res Result) error {
	var buf strings.Builder

	if !r.started {
		writeHeader(&buf, r.samples)
	}

	buf.WriteString("EOF  ")
	writeMarkers(&buf, res.Samples.EOF)
	fmt.Fprintf(&buf, "  filename: %s\n", res.Label)

	buf.WriteString("FAIL ")
	writeMarkers(&buf, res.Samples.Fail)
	buf.WriteString("  bytes:    ")
	buf.WriteString(FormatHex(res.Bytes))
	buf.WriteString("\n\n")

	_, err := io.WriteString(r.w, buf.String())
	if err != nil {
		return err
	}

	r.started = true

	return nil
}

// Sample indices are printed in hex, same as the byte column
func writeHeader(buf *strings.Builder, samples int) {
	buf.WriteString("\n\n>>'s")

	for i := 0; i < samples; i++ {
		fmt.Fprintf(buf, "   %X", i)
	}

	buf.WriteString("\n\n")
}

func writeMarkers(buf *strings.Builder, values []bool) {
	for _, v := range values {
		if v {
			buf.WriteString(markerSet)
		} else {
			buf.WriteString(markerClear)
		}
	}
}

// FormatHex renders each byte as two uppercase hex digits followed by a space
func FormatHex(data []byte) string {
	var buf strings.Builder

	for _, b := range data {
		fmt.Fprintf(&buf, "%02X ", b)
	}

	return buf.String()
}
