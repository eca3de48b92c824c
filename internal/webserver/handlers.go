package webserver

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"eofprobe/internal/probe"
	"eofprobe/internal/types"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>eofprobe</title></head>
<body>
<h1>Probe a file</h1>
<form action="/probe" method="post" enctype="multipart/form-data">
<p><input type="file" name="file"></p>
<p>Samples <input type="number" name="samples" min="1" max="{{.MaxSamples}}" value="{{.Samples}}"></p>
<p>Extraction
<select name="extraction">
{{range .Extractions}}<option value="{{.}}"{{if eq . $.Extraction}} selected{{end}}>{{.}}</option>
{{end}}</select></p>
<p>Newline
<select name="newline">
{{range .Newlines}}<option value="{{.}}"{{if eq . $.Newline}} selected{{end}}>{{.}}</option>
{{end}}</select></p>
<p><button type="submit">Probe</button></p>
</form>
</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// TemplateData holds data for template rendering
type TemplateData struct {
	Samples     int
	MaxSamples  int
	Extraction  string
	Newline     string
	Extractions []string
	Newlines    []string
}

// Routes returns the probe server's handler with middleware applied.
// defaults supplies every form field the client leaves out.
func Routes(defaults types.ProbeRequest) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", HomeHandler(defaults))
	mux.Handle("/probe", ProbeHandler(defaults))

	return LoggingMiddleware(CompressionMiddleware(mux))
}

func HomeHandler(defaults types.ProbeRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := TemplateData{
			Samples:     defaults.Samples,
			MaxSamples:  MaxSamples,
			Extraction:  defaults.Extraction,
			Newline:     defaults.Newline,
			Extractions: []string{"token", "line", "char"},
			Newlines:    []string{"lf", "crlf"},
		}

		var buf bytes.Buffer

		err := indexTmpl.Execute(&buf, data)
		if err != nil {
			slog.Error("Error executing template:", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// ProbeHandler probes a single uploaded file and answers with its report
func ProbeHandler(defaults types.ProbeRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slog.With("handler", "ProbeHandler")
		log.Info("Received probe request", "remote_addr", r.RemoteAddr)

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		workDir, err := os.MkdirTemp("", "eofprobe-upload-")
		if err != nil {
			log.Error("Failed to create upload directory", "error", err)
			WriteErrorResponse(w, err, http.StatusInternalServerError)

			return
		}
		defer os.RemoveAll(workDir)

		req, err := receiveRequest(w, r, defaults, workDir)
		if err != nil {
			log.Error("Failed to receive request", "error", err)
			WriteErrorResponse(w, err, statusFor(err))

			return
		}

		label := req.Fixtures[0]

		report, err := probeUpload(req, label)
		if err != nil {
			log.Error("Probe failed", "error", err)
			WriteErrorResponse(w, err, statusFor(err))

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		_, err = w.Write(report)
		if err != nil {
			log.Error("Failed to send response", "error", err)
			return
		}

		log.Info("Request processed", "filename", label, "samples", req.Samples)
	}
}

func probeUpload(req types.ProbeRequest, label string) ([]byte, error) {
	prober, err := probe.NewProber(req)
	if err != nil {
		return nil, err
	}

	res, err := prober.ProbeFile(filepath.Join(req.Directory, label), label)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer

	err = probe.NewReport(&out, prober.Samples()).Write(res)
	if err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge), errors.Is(err, probe.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidForm), errors.Is(err, ErrInvalidFilename),
		errors.Is(err, probe.ErrInvalidSamples), errors.Is(err, probe.ErrUnknownExtraction),
		errors.Is(err, probe.ErrUnknownNewline),
		errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// receiveRequest stores the uploaded file in dir and returns a request that
// probes exactly that file.
func receiveRequest(w http.ResponseWriter, r *http.Request, defaults types.ProbeRequest, dir string) (types.ProbeRequest, error) {
	req := defaults
	req.Directory = dir
	req.Fixtures = nil

	r.Body = http.MaxBytesReader(w, r.Body, MaxFileSize+MaxFormSize)

	err := r.ParseMultipartForm(MaxFormSize)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, fmt.Errorf("%w: request body over %d bytes", ErrFileTooLarge, maxErr.Limit)
		}

		return req, fmt.Errorf("form parsing error: %w", err)
	}

	if samplesS := r.FormValue("samples"); samplesS != "" {
		samples, err := strconv.ParseInt(samplesS, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: samples %q is not a number", ErrInvalidForm, samplesS)
		}

		err = ValidateNumericInput(samples, 1, MaxSamples, "samples")
		if err != nil {
			return req, err
		}

		req.Samples = int(samples)
	}

	if extraction := r.FormValue("extraction"); extraction != "" {
		req.Extraction = extraction
	}

	if newline := r.FormValue("newline"); newline != "" {
		req.Newline = newline
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("file retrieval error: %w", err)
	}
	defer file.Close()

	err = ValidateFileUpload(header)
	if err != nil {
		return req, err
	}

	label := SanitizeFilename(header.Filename)

	dst, err := os.Create(filepath.Join(dir, label))
	if err != nil {
		return req, fmt.Errorf("file creation failed: %w", err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		return req, fmt.Errorf("file saving error: %w", err)
	}

	req.Fixtures = []string{label}

	return req, nil
}
