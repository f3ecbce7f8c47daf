// Package store persists resume documents and their score history.
package store

import (
	"context"
	"strings"

	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/google/uuid"
)

// ResumeRepository stores raw resume documents keyed by UUID and the scores
// computed for them.
type ResumeRepository interface {
	// SaveResume stores doc and returns its new id
	SaveResume(ctx context.Context, doc map[string]any) (string, error)
	// GetResume returns a NOT_FOUND AppError when id is unknown
	GetResume(ctx context.Context, id string) (map[string]any, error)
	SaveScore(ctx context.Context, record types.ScoreRecord) error
	// ScoreHistory returns the newest records first
	ScoreHistory(ctx context.Context, resumeID string, limit int) ([]types.ScoreRecord, error)
	Close()
}

// ParseID normalises a resume id, rejecting anything that is not a UUID
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest, "resume id must be a UUID", err).
			WithContext("id", id)
	}
	return parsed.String(), nil
}

// NewRecord builds a score record for resumeID with a fresh id
func NewRecord(resumeID string, scored types.ScoredResume) types.ScoreRecord {
	id := scored.ID
	if id == "" {
		id = uuid.NewString()
	}
	return types.ScoreRecord{
		ID:       id,
		ResumeID: resumeID,
		Score:    scored.Score,
		Rating:   scored.Rating,
		Report:   scored.ScoreReport,
		ScoredAt: scored.ScoredAt,
	}
}

func notFound(id string) error {
	return errors.NewNotFoundError(errors.ErrCodeResumeNotFound, "resume not found").WithContext("id", id)
}
