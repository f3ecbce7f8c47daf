package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"atsscore/internal/errors"
	"atsscore/internal/snapshot"
	"atsscore/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger      *errors.Logger
	maxFileSize int64
}

// NewFileProcessor creates a file processor; maxFileSize of zero means unlimited
func NewFileProcessor(logger *errors.Logger, maxFileSize int64) *FileProcessor {
	return &FileProcessor{logger: logger, maxFileSize: maxFileSize}
}

// ReadFile validates and reads filename
func (fp *FileProcessor) ReadFile(filename string) ([]byte, error) {
	if err := utils.ValidateInputFile(filename, fp.maxFileSize); err != nil {
		if os.IsNotExist(statErr(filename)) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil && fp.logger != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}
	return content, nil
}

// ReadResume reads a JSON or YAML resume file into a raw object
func (fp *FileProcessor) ReadResume(filename string) (map[string]any, error) {
	if !utils.IsResumeFile(filename) && fp.logger != nil {
		fp.logger.Warn("File may not be a JSON or YAML resume", "filename", filename)
	}

	content, err := fp.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	raw, err := snapshot.ParseRaw(content)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr.WithContext("file", filename)
		}
		return nil, err
	}
	return raw, nil
}

// WriteFile writes content to a file, creating its directory
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}
	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}
	return nil
}

func statErr(filename string) error {
	_, err := os.Stat(filename)
	return err
}
