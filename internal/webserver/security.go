package webserver

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
)

const (
	// MaxFileSize limits uploaded file size to 64KB
	MaxFileSize = 64 * 1024
	// MaxFormSize limits form data kept in memory to 1MB
	MaxFormSize = 1024 * 1024
	// MaxSamples bounds the samples a single request may ask for
	MaxSamples = 256
)

var (
	// ErrInvalidFilename is returned for empty or path-like upload names.
	ErrInvalidFilename = errors.New("invalid filename")
	// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidForm is returned for malformed or out of range form values.
	ErrInvalidForm = errors.New("invalid form value")
)

// ValidateFileUpload checks the upload header. Content is not inspected:
// control bytes are exactly what gets probed.
func ValidateFileUpload(header *multipart.FileHeader) error {
	if strings.TrimSpace(header.Filename) == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidFilename)
	}

	if header.Size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, header.Size, MaxFileSize)
	}

	if strings.Contains(header.Filename, "..") || strings.ContainsAny(header.Filename, "/\\") {
		return fmt.Errorf("%w: contains path traversal characters", ErrInvalidFilename)
	}

	return nil
}

// SanitizeFilename sanitizes filenames to prevent issues
func SanitizeFilename(filename string) string {
	filename = strings.NewReplacer(
		"/", "",
		"\\", "",
		"..", "",
		":", "",
		"*", "",
		"?", "",
		"<", "",
		">", "",
		"|", "",
	).Replace(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" {
		filename = "upload"
	}

	return filename
}

// ValidateNumericInput validates numeric input within bounds
func ValidateNumericInput(value, min, max int64, fieldName string) error {
	if value < min {
		return fmt.Errorf("%w: %s must be at least %d", ErrInvalidForm, fieldName, min)
	}

	if value > max {
		return fmt.Errorf("%w: %s must be at most %d", ErrInvalidForm, fieldName, max)
	}

	return nil
}
