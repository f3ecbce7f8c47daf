package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError(ErrCodeInvalidResume, "resume must be an object", nil),
			expected: "INVALID_RESUME: resume must be an object",
		},
		{
			name:     "with cause",
			err:      NewStorageError(ErrCodeStorageFailed, "query failed", fmt.Errorf("conn reset")),
			expected: "STORAGE_FAILED: query failed (caused by: conn reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsType(t *testing.T) {
	base := NewNotFoundError(ErrCodeResumeNotFound, "resume not found")
	wrapped := fmt.Errorf("loading: %w", base)

	assert.True(t, IsType(base, ErrorTypeNotFound))
	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(wrapped, ErrorTypeStorage))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeNotFound))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("reading: %w", NewIOError(ErrCodeFileNotFound, "missing", nil))

	assert.Equal(t, ErrCodeFileNotFound, CodeOf(wrapped))
	assert.Equal(t, "UNKNOWN", CodeOf(fmt.Errorf("plain")))
}

func TestWithContext(t *testing.T) {
	err := NewIOError(ErrCodeFileNotFound, "missing", nil).
		WithContext("file", "resume.json").
		WithContext("attempt", 2)

	assert.Equal(t, "resume.json", err.Context["file"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestLogErrorIncludesAppErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)

	err := NewValidationError(ErrCodeInvalidRequest, "bad body", fmt.Errorf("eof")).
		WithContext("path", "/score")
	logger.LogError(fmt.Errorf("wrapped: %w", err), "request failed", "client", "10.0.0.1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request failed", entry["msg"])
	assert.Equal(t, "validation", entry["error_type"])
	assert.Equal(t, ErrCodeInvalidRequest, entry["error_code"])
	assert.Equal(t, "eof", entry["cause"])
	assert.Equal(t, "/score", entry["path"])
	assert.Equal(t, "10.0.0.1", entry["client"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)

	logger, err := New("warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
