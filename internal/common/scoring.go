package common

import (
	"context"
	"time"

	"atsscore/internal/ats"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/snapshot"
	"atsscore/internal/types"

	"github.com/google/uuid"
)

// ScoreDocument decodes raw, scores it and records metrics under channel
// ("cli", "http", "store"). Schema diagnostics are attached when diagnose is
// set; a diagnostics failure never fails the score.
func ScoreDocument(ctx context.Context, raw map[string]any, channel string, diagnose bool,
	metrics *observability.Metrics, logger *errors.Logger) types.ScoredResume {
	resume := snapshot.Decode(raw)
	report := ats.Score(resume)

	scored := types.ScoredResume{
		ID:          uuid.NewString(),
		ScoredAt:    time.Now().UTC(),
		ScoreReport: report,
	}

	if diagnose {
		issues, err := snapshot.Diagnose(raw)
		if err != nil {
			if logger != nil {
				logger.Warn("Schema diagnostics unavailable", "error", err)
			}
		} else {
			scored.Diagnostics = issues
			metrics.RecordSchemaIssues(ctx, len(issues), channel)
		}
	}

	metrics.RecordScore(ctx, report, ats.IsFresher(resume), channel)
	return scored
}
