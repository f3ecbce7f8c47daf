package observability

import (
	"context"
	"fmt"
	"time"

	"atsscore/internal/config"
	"atsscore/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's custom instruments
type Metrics struct {
	flags config.CustomMetricsConfig

	// scoring
	ScoresComputed  metric.Int64Counter
	ScoreValue      metric.Int64Histogram
	CriticalIssues  metric.Int64Counter
	SchemaIssues    metric.Int64Counter
	ScoringFailures metric.Int64Counter

	// enhancer
	EnhanceDuration metric.Float64Histogram
	EnhanceRequests metric.Int64Counter
	EnhanceErrors   metric.Int64Counter
	EnhanceTokens   metric.Int64Histogram

	// infrastructure
	CertReloads   metric.Int64Counter
	RateLimitHits metric.Int64Counter
}

// NewMetrics creates every instrument on meter
func NewMetrics(meter metric.Meter, flags config.CustomMetricsConfig) (*Metrics, error) {
	m := &Metrics{flags: flags}
	var err error

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
	}{
		{&m.ScoresComputed, "atsscore_scores_computed_total", "Resumes scored, by rating and experience level"},
		{&m.CriticalIssues, "atsscore_critical_issues_total", "Critical issues reported across scored resumes"},
		{&m.SchemaIssues, "atsscore_schema_issues_total", "Schema diagnostics reported for submitted documents"},
		{&m.ScoringFailures, "atsscore_scoring_failures_total", "Documents rejected before scoring"},
		{&m.EnhanceRequests, "atsscore_enhance_requests_total", "Text enhancement requests"},
		{&m.EnhanceErrors, "atsscore_enhance_errors_total", "Failed text enhancement requests"},
		{&m.CertReloads, "atsscore_cert_reloads_total", "TLS certificate reloads"},
		{&m.RateLimitHits, "atsscore_rate_limit_hits_total", "Requests rejected by the rate limiter"},
	}
	for _, c := range counters {
		if *c.target, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
	}

	m.ScoreValue, err = meter.Int64Histogram(
		"atsscore_score_value",
		metric.WithDescription("Distribution of ATS scores"),
		metric.WithExplicitBucketBoundaries(20, 40, 55, 70, 85, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}

	m.EnhanceDuration, err = meter.Float64Histogram(
		"atsscore_enhance_duration_seconds",
		metric.WithDescription("Time spent in text enhancement calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create enhance duration metric: %w", err)
	}

	m.EnhanceTokens, err = meter.Int64Histogram(
		"atsscore_enhance_tokens",
		metric.WithDescription("Token usage for text enhancement (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create enhance token metric: %w", err)
	}

	return m, nil
}

// RecordScore counts one scored resume. source is "cli" or "http".
func (m *Metrics) RecordScore(ctx context.Context, report types.ScoreReport, fresher bool, source string) {
	if m == nil || !m.flags.Scoring {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("rating", string(report.Rating)),
		attribute.Bool("fresher", fresher),
		attribute.String("source", source),
	)
	m.ScoresComputed.Add(ctx, 1, attrs)
	m.ScoreValue.Record(ctx, int64(report.Score), metric.WithAttributes(attribute.String("source", source)))
	if n := len(report.CriticalIssues); n > 0 {
		m.CriticalIssues.Add(ctx, int64(n), metric.WithAttributes(attribute.String("source", source)))
	}
}

// RecordSchemaIssues counts schema diagnostics for one document
func (m *Metrics) RecordSchemaIssues(ctx context.Context, count int, source string) {
	if m == nil || !m.flags.Scoring || count == 0 {
		return
	}
	m.SchemaIssues.Add(ctx, int64(count), metric.WithAttributes(attribute.String("source", source)))
}

// RecordScoringFailure counts a document that could not be parsed
func (m *Metrics) RecordScoringFailure(ctx context.Context, code, source string) {
	if m == nil || !m.flags.Scoring {
		return
	}
	m.ScoringFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("source", source),
	))
}

// TokenUsage represents token usage reported by the model
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// EnhanceResult is what an instrumented enhancement call reports back
type EnhanceResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// TrackEnhance runs fn inside a span and records duration, outcome and tokens
func (m *Metrics) TrackEnhance(ctx context.Context, section string, fn func(context.Context) *EnhanceResult) error {
	ctx, span := otel.Tracer("atsscore.ai").Start(ctx, "ai.enhance."+section)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if result != nil && result.TokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", result.TokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", result.TokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", result.TokenUsage.TotalTokens),
		)
	}

	if m == nil || !m.flags.Enhance {
		return err
	}

	attrs := []attribute.KeyValue{
		attribute.String("section", section),
		attribute.Bool("success", err == nil),
	}
	m.EnhanceRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.EnhanceDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	if err != nil {
		m.EnhanceErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if result != nil && result.TokenUsage != nil && m.flags.TrackTokens {
		m.recordTokens(ctx, section, result.TokenUsage)
	}
	return err
}

func (m *Metrics) recordTokens(ctx context.Context, section string, usage *TokenUsage) {
	for tokenType, value := range map[string]int64{
		"input":  usage.InputTokens,
		"output": usage.OutputTokens,
		"total":  usage.TotalTokens,
	} {
		m.EnhanceTokens.Record(ctx, value, metric.WithAttributes(
			attribute.String("section", section),
			attribute.String("token_type", tokenType),
		))
	}
}

// RecordRateLimitHit counts a rejected request. limitedBy is "ip" or "api_key".
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limitedBy string) {
	if m == nil || !m.flags.Infrastructure {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limited_by", limitedBy)))
}

// RecordCertReload counts a certificate reload attempt
func (m *Metrics) RecordCertReload(ctx context.Context, success bool) {
	if m == nil || !m.flags.Infrastructure {
		return
	}
	m.CertReloads.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}
