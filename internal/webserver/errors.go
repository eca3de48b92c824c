package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"eofprobe/internal/probe"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeUpload     ErrorType = "upload"
	ErrorTypeFileIO     ErrorType = "file_io"
	ErrorTypeInternal   ErrorType = "internal"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// CategorizeError analyzes an error and returns an appropriate ErrorResponse
func CategorizeError(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{
			Type:        ErrorTypeInternal,
			Code:        "unknown_error",
			Title:       "Probe failed",
			Description: "The upload could not be probed.",
			Details:     "No error details available",
		}
	}

	errMsg := err.Error()

	switch {
	case errors.Is(err, probe.ErrInvalidSamples):
		return ErrorResponse{
			Type:        ErrorTypeValidation,
			Code:        "invalid_samples",
			Title:       "Invalid sample count",
			Description: "The number of samples is out of range.",
			Details:     errMsg,
			Suggestions: []string{
				fmt.Sprintf("Use a value between 1 and %d", MaxSamples),
			},
		}
	case errors.Is(err, probe.ErrUnknownExtraction):
		return ErrorResponse{
			Type:        ErrorTypeValidation,
			Code:        "unknown_extraction",
			Title:       "Unknown extraction",
			Description: "The requested extraction strategy does not exist.",
			Details:     errMsg,
			Suggestions: []string{"Use one of: token, line, char"},
		}
	case errors.Is(err, probe.ErrUnknownNewline):
		return ErrorResponse{
			Type:        ErrorTypeValidation,
			Code:        "unknown_newline",
			Title:       "Unknown newline mode",
			Description: "The requested newline mode does not exist.",
			Details:     errMsg,
			Suggestions: []string{"Use lf or crlf"},
		}
	case errors.Is(err, ErrInvalidForm):
		return ErrorResponse{
			Type:        ErrorTypeValidation,
			Code:        "invalid_form_value",
			Title:       "Invalid form value",
			Description: "One of the submitted fields could not be used.",
			Details:     errMsg,
		}
	case errors.Is(err, ErrFileTooLarge), errors.Is(err, probe.ErrInputTooLarge):
		return ErrorResponse{
			Type:        ErrorTypeUpload,
			Code:        "file_too_large",
			Title:       "File too large",
			Description: "The uploaded file exceeds the allowed size.",
			Details:     errMsg,
			Suggestions: []string{
				fmt.Sprintf("Upload at most %d bytes", MaxFileSize),
			},
		}
	case errors.Is(err, ErrInvalidFilename):
		return ErrorResponse{
			Type:        ErrorTypeUpload,
			Code:        "invalid_filename",
			Title:       "Invalid filename",
			Description: "The uploaded file name is empty or contains path characters.",
			Details:     errMsg,
			Suggestions: []string{"Rename the file and upload it again"},
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return ErrorResponse{
			Type:        ErrorTypeUpload,
			Code:        "upload_form_error",
			Title:       "Upload failed",
			Description: "The request did not carry a file.",
			Details:     errMsg,
			Suggestions: []string{
				"Send the file as multipart/form-data in the \"file\" field",
			},
		}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ErrorResponse{
			Type:        ErrorTypeFileIO,
			Code:        "file_io_error",
			Title:       "File access failed",
			Description: "The upload could not be stored for probing.",
			Details:     errMsg,
		}
	}

	// Default fallback for unrecognized errors
	return ErrorResponse{
		Type:        ErrorTypeInternal,
		Code:        "probe_error",
		Title:       "Probe failed",
		Description: "The upload could not be probed.",
		Details:     errMsg,
		Suggestions: []string{"Try again"},
	}
}

// WriteErrorResponse writes a structured error response as JSON
func WriteErrorResponse(w http.ResponseWriter, err error, statusCode int) {
	errorResp := CategorizeError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if jsonErr := json.NewEncoder(w).Encode(errorResp); jsonErr != nil {
		fmt.Fprintf(w, "Error: %v", err)
	}
}
