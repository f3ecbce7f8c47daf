package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"atsscore/internal/common"
	"atsscore/internal/errors"
	"atsscore/internal/snapshot"
	"atsscore/internal/store"
	"atsscore/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "atsscore.api"

// scoreHandler scores the posted resume object once, synchronously
func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.score")
	defer span.End()

	raw, err := s.readResumeObject(r)
	if err != nil {
		failSpan(span, err)
		s.Observability.Metrics().RecordScoringFailure(ctx, errors.CodeOf(err), "http")
		s.writeAppError(w, err)
		return
	}

	scored := s.scoreDocument(ctx, raw, "http", s.wantDiagnostics(r))
	span.SetAttributes(
		attribute.Int("ats.score", scored.Score),
		attribute.String("ats.rating", string(scored.Rating)),
	)
	writeJSON(w, http.StatusOK, scored)
}

// validateHandler returns schema diagnostics without scoring
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.validate")
	defer span.End()

	raw, err := s.readResumeObject(r)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	issues, err := snapshot.Diagnose(raw)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, errors.NewInternalError("SCHEMA_UNAVAILABLE", "schema validation failed", err))
		return
	}
	s.Observability.Metrics().RecordSchemaIssues(ctx, len(issues), "http")

	writeJSON(w, http.StatusOK, types.ValidationReport{
		Source: "request",
		Valid:  len(issues) == 0,
		Issues: issues,
	})
}

// enhanceHandler rewrites one piece of text through the configured model
func (s *Server) enhanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.enhance")
	defer span.End()

	if s.Enhancer == nil {
		err := errors.NewConfigError(errors.ErrCodeAIDisabled, "text enhancement is not configured", nil)
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	var input types.EnhanceInput
	if err := parseJSONRequest(r, &input); err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}
	span.SetAttributes(
		attribute.String("enhance.section", string(input.Section)),
		attribute.Int("enhance.text_length", len(input.Text)),
	)

	output, err := s.Enhancer.Enhance(ctx, input)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// saveResumeHandler stores a resume document and returns its id
func (s *Server) saveResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.resumes.save")
	defer span.End()

	repo, err := s.repository()
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	raw, err := s.readResumeObject(r)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	id, err := repo.SaveResume(ctx, raw)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}
	span.SetAttributes(attribute.String("resume.id", id))

	w.Header().Set("Location", "/resumes/"+id+"/score")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// storedScoreHandler scores a stored resume and appends the result to its history
func (s *Server) storedScoreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.resumes.score")
	defer span.End()

	repo, err := s.repository()
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}
	span.SetAttributes(attribute.String("resume.id", id))

	raw, err := repo.GetResume(ctx, id)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	scored := s.scoreDocument(ctx, raw, "store", s.wantDiagnostics(r))
	scored.Source = id

	// A failed history write does not hide a computed score
	if err := repo.SaveScore(ctx, store.NewRecord(id, scored)); err != nil {
		span.RecordError(err)
		s.Logger.LogError(err, "Failed to record score history", "resume_id", id)
	}

	writeJSON(w, http.StatusOK, scored)
}

// scoreHistoryHandler lists previous scores for a stored resume, newest first
func (s *Server) scoreHistoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer(tracerName).Start(r.Context(), "api.resumes.history")
	defer span.End()

	repo, err := s.repository()
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	limit, err := s.historyLimit(r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	history, err := repo.ScoreHistory(ctx, id, limit)
	if err != nil {
		failSpan(span, err)
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"resumeId": id,
		"scores":   history,
	})
}

// scoreDocument runs the shared scoring pipeline with the server's telemetry
func (s *Server) scoreDocument(ctx context.Context, raw map[string]any, channel string, diagnose bool) types.ScoredResume {
	return common.ScoreDocument(ctx, raw, channel, diagnose, s.Observability.Metrics(), s.Logger)
}

// readResumeObject decodes the body and insists on a JSON object
func (s *Server) readResumeObject(r *http.Request) (map[string]any, error) {
	var doc any
	if err := parseJSONRequest(r, &doc); err != nil {
		return nil, err
	}
	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume must be a JSON object", nil)
	}
	return raw, nil
}

func (s *Server) repository() (store.ResumeRepository, error) {
	if s.Repository == nil {
		return nil, errors.NewConfigError(errors.ErrCodeStoreDisabled, "resume storage is not configured", nil)
	}
	return s.Repository, nil
}

func (s *Server) wantDiagnostics(r *http.Request) bool {
	if v := r.URL.Query().Get("diagnose"); v != "" {
		on, err := strconv.ParseBool(v)
		return err == nil && on
	}
	return s.Scoring.Diagnose
}

// historyLimit reads ?limit, defaulting to the configured history size
func (s *Server) historyLimit(r *http.Request) (int, error) {
	limit := s.Scoring.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxHistoryPageLimit {
			return 0, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("limit must be between 1 and %d", maxHistoryPageLimit), err)
		}
		limit = n
	}
	if limit <= 0 {
		limit = maxHistoryPageLimit
	}
	return limit, nil
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if appErr, ok := err.(*errors.AppError); ok {
		span.SetAttributes(
			attribute.String("error.type", string(appErr.Type)),
			attribute.String("error.code", appErr.Code),
		)
	}
}
