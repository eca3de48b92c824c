package types

// ProbeRequest represents one probe run over a set of fixtures
type ProbeRequest struct {
	Directory  string   // Directory the fixture labels are resolved against
	Fixtures   []string // Fixture labels, in report order
	Samples    int      // Indicator samples per fixture; extractions = Samples-1
	Extraction string   // Extraction strategy name
	Newline    string   // Text stream newline mode: "lf" or "crlf"
	MaxBytes   int      // Upper bound on dumped bytes per fixture, 0 for none
}
