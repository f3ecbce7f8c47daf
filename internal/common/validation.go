package common

import (
	"fmt"
	"slices"

	"atsscore/internal/errors"
	"atsscore/internal/types"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // no restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ValidateThreshold checks a --fail-under value
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %d", threshold)
	}
	return nil
}

// CheckThreshold returns a SCORE_BELOW_THRESHOLD error naming every result
// under threshold. A threshold of zero disables the check.
func CheckThreshold(results []types.ScoredResume, threshold int) error {
	if threshold <= 0 {
		return nil
	}

	var below []string
	for _, r := range results {
		if r.Score < threshold {
			below = append(below, fmt.Sprintf("%s (%d)", r.Source, r.Score))
		}
	}
	if len(below) == 0 {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeScoreBelow,
		fmt.Sprintf("%d resume(s) scored below %d", len(below), threshold), nil).
		WithContext("resumes", below)
}
