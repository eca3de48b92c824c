// Package config loads probe settings from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"eofprobe/internal/types"
)

var (
	// ErrNoFixtures is returned when the fixture list is empty.
	ErrNoFixtures = errors.New("at least one fixture is required")
	// ErrInvalidSamples is returned when fewer than one sample is configured.
	ErrInvalidSamples = errors.New("samples must be at least 1")
	// ErrInvalidExtraction is returned for an unknown extraction strategy.
	ErrInvalidExtraction = errors.New("invalid extraction strategy")
	// ErrInvalidNewline is returned for an unknown newline mode.
	ErrInvalidNewline = errors.New("invalid newline mode")
	// ErrInvalidMaxBytes is returned for a negative byte limit.
	ErrInvalidMaxBytes = errors.New("max bytes must not be negative")
	// ErrInvalidLogLevel is returned when log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

//go:embed default.toml
var defaultConfig []byte

// Config holds the application configuration.
type Config struct {
	Directory  string
	Fixtures   []string
	Samples    int
	Extraction string
	Newline    string
	MaxBytes   int
	Pause      bool
	Log        struct {
		Level string
	}
	Server struct {
		Addr string
	}
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	var cfg Config

	err := toml.Unmarshal(defaultConfig, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	return &cfg, nil
}

// Load reads path over the built-in defaults, so a file only needs the keys
// it changes. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	err = Parse(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML data into cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Fixtures) == 0 {
		return ErrNoFixtures
	}

	if c.Samples < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.Samples)
	}

	switch c.Extraction {
	case "token", "line", "char":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExtraction, c.Extraction)
	}

	switch c.Newline {
	case "lf", "crlf":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNewline, c.Newline)
	}

	if c.MaxBytes < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxBytes, c.MaxBytes)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// LogLevel maps the configured level name to a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
}

// Request builds the probe request described by the configuration.
func (c *Config) Request() types.ProbeRequest {
	return types.ProbeRequest{
		Directory:  c.Directory,
		Fixtures:   append([]string(nil), c.Fixtures...),
		Samples:    c.Samples,
		Extraction: c.Extraction,
		Newline:    c.Newline,
		MaxBytes:   c.MaxBytes,
	}
}
