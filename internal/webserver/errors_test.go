package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"eofprobe/internal/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeError(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")

	tests := []struct {
		name         string
		err          error
		expectedType ErrorType
		expectedCode string
	}{
		{name: "nil", err: nil, expectedType: ErrorTypeInternal, expectedCode: "unknown_error"},
		{name: "samples", err: fmt.Errorf("wrapped: %w", probe.ErrInvalidSamples), expectedType: ErrorTypeValidation, expectedCode: "invalid_samples"},
		{name: "extraction", err: probe.ErrUnknownExtraction, expectedType: ErrorTypeValidation, expectedCode: "unknown_extraction"},
		{name: "newline", err: probe.ErrUnknownNewline, expectedType: ErrorTypeValidation, expectedCode: "unknown_newline"},
		{name: "form", err: ErrInvalidForm, expectedType: ErrorTypeValidation, expectedCode: "invalid_form_value"},
		{name: "upload too large", err: ErrFileTooLarge, expectedType: ErrorTypeUpload, expectedCode: "file_too_large"},
		{name: "input too large", err: probe.ErrInputTooLarge, expectedType: ErrorTypeUpload, expectedCode: "file_too_large"},
		{name: "filename", err: ErrInvalidFilename, expectedType: ErrorTypeUpload, expectedCode: "invalid_filename"},
		{name: "missing file", err: fmt.Errorf("file retrieval error: %w", http.ErrMissingFile), expectedType: ErrorTypeUpload, expectedCode: "upload_form_error"},
		{name: "path error", err: fmt.Errorf("file creation failed: %w", statErr), expectedType: ErrorTypeFileIO, expectedCode: "file_io_error"},
		{name: "unknown", err: errors.New("boom"), expectedType: ErrorTypeInternal, expectedCode: "probe_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := CategorizeError(tt.err)

			assert.Equal(t, tt.expectedType, resp.Type)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.NotEmpty(t, resp.Title)

			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), resp.Details)
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteErrorResponse(rr, ErrInvalidFilename, http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_filename", resp.Code)
	assert.NotEmpty(t, resp.Suggestions)
}
