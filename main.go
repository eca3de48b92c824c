// Command eofprobe reports how a text stream's end-of-data and failure
// indicators change across repeated extractions, for a set of small fixture
// files that differ only in their line endings.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eofprobe/internal/config"
	"eofprobe/internal/fixture"
	"eofprobe/internal/probe"
	"eofprobe/internal/webserver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath    string
	dir           string
	samples       int
	extraction    string
	newline       string
	maxBytes      int
	noPause       bool
	logLevel      string
	serve         string
	writeFixtures bool
}

func parseFlags(args []string, stderr io.Writer) (*options, map[string]bool, error) {
	opts := &options{}

	fs := flag.NewFlagSet("eofprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	fs.StringVar(&opts.dir, "dir", "", "Fixture directory")
	fs.IntVar(&opts.samples, "samples", 0, "Indicator samples per fixture")
	fs.StringVar(&opts.extraction, "extraction", "", "Extraction strategy (token, line, char)")
	fs.StringVar(&opts.newline, "newline", "", "Text stream newline mode (lf, crlf)")
	fs.IntVar(&opts.maxBytes, "max-bytes", 0, "Maximum bytes per fixture, 0 for no limit")
	fs.BoolVar(&opts.noPause, "no-pause", false, "Exit without waiting for a line on stdin")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.serve, "serve", "", "Serve the probe over HTTP on this address instead of printing the report")
	fs.BoolVar(&opts.writeFixtures, "write-fixtures", false, "Write the configured fixtures into the fixture directory and exit")

	err := fs.Parse(args)
	if err != nil {
		return nil, nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return opts, set, nil
}

// loadConfig applies explicitly set flags over the config file.
func loadConfig(opts *options, set map[string]bool) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if set["dir"] {
		cfg.Directory = opts.dir
	}

	if set["samples"] {
		cfg.Samples = opts.samples
	}

	if set["extraction"] {
		cfg.Extraction = opts.extraction
	}

	if set["newline"] {
		cfg.Newline = opts.newline
	}

	if set["max-bytes"] {
		cfg.MaxBytes = opts.maxBytes
	}

	if opts.noPause {
		cfg.Pause = false
	}

	if set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}

	if set["serve"] {
		cfg.Server.Addr = opts.serve
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg, err := loadConfig(opts, set)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case opts.writeFixtures:
		err = fixture.Write(cfg.Directory, cfg.Fixtures)
		if err != nil {
			slog.Error("Failed to write fixtures", "error", err)
			return 1
		}

		slog.Info("Fixtures written", "dir", cfg.Directory, "count", len(cfg.Fixtures))

		return 0
	case set["serve"]:
		err = serve(cfg)
		if err != nil {
			slog.Error("Server error", "error", err)
			return 1
		}

		return 0
	}

	prober, err := probe.NewProber(cfg.Request())
	if err != nil {
		slog.Error("Failed to create prober", "error", err)
		return 1
	}

	err = prober.Run(probe.NewReport(stdout, prober.Samples()))
	if err != nil {
		slog.Error("Probe run failed", "error", err)
		return 1
	}

	if cfg.Pause {
		_, _ = bufio.NewReader(stdin).ReadString('\n')
	}

	return 0
}

func serve(cfg *config.Config) error {
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           webserver.Routes(cfg.Request()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to gracefully shutdown", "error", err)
		}
	}()

	slog.Info("Server started", "addr", cfg.Server.Addr)

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.Info("Server stopped")

	return nil
}
