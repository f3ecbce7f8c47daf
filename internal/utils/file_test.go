package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.json", "b.yaml", "notes.txt", "nested/c.yml", "nested/deep/d.json")

	paths, err := ExpandInputs([]string{filepath.Join(dir, "**", "*")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yml"),
		filepath.Join(dir, "nested", "deep", "d.json"),
	}, paths)
}

func TestExpandInputsKeepsLiteralsAndDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.json")
	literal := filepath.Join(dir, "a.json")

	paths, err := ExpandInputs([]string{literal, filepath.Join(dir, "*.json"), "missing.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{literal, "missing.json"}, paths)
}

func TestExpandInputsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ExpandInputs([]string{filepath.Join(dir, "*.json")})
	assert.ErrorContains(t, err, "no files match")

	_, err = ExpandInputs([]string{filepath.Join(dir, "[.json")})
	assert.ErrorContains(t, err, "invalid glob pattern")
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "ok.json")
	big := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(big, make([]byte, 2048), 0o600))

	tests := []struct {
		name    string
		file    string
		maxSize int64
		wantErr string
	}{
		{"ok", filepath.Join(dir, "ok.json"), 1024, ""},
		{"empty name", "", 0, "cannot be empty"},
		{"missing", filepath.Join(dir, "nope.json"), 0, "does not exist"},
		{"directory", dir, 0, "directory"},
		{"too large", big, 1024, "larger than the 1.0 KB limit"},
		{"size check disabled", big, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.file, tt.maxSize)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIsResumeFile(t *testing.T) {
	assert.True(t, IsResumeFile("cv.JSON"))
	assert.True(t, IsResumeFile("cv.yml"))
	assert.False(t, IsResumeFile("cv.pdf"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "1.0 MB", FormatFileSize(1<<20))
}
