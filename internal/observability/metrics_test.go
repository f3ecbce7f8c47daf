package observability

import (
	"context"
	"errors"
	"testing"

	"atsscore/internal/config"
	"atsscore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var allMetrics = config.CustomMetricsConfig{Scoring: true, Enhance: true, TrackTokens: true, Infrastructure: true}

func newTestMetrics(t *testing.T, flags config.CustomMetricsConfig) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"), flags)
	require.NoError(t, err)
	return m, reader
}

// collect returns metric data points keyed by instrument name
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordScore(t *testing.T) {
	m, reader := newTestMetrics(t, allMetrics)
	ctx := context.Background()

	m.RecordScore(ctx, types.ScoreReport{Score: 90, Rating: types.RatingExcellent}, false, "http")
	m.RecordScore(ctx, types.ScoreReport{Score: 30, Rating: types.RatingVeryPoor, CriticalIssues: []string{"a", "b"}}, true, "cli")
	m.RecordSchemaIssues(ctx, 3, "http")
	m.RecordScoringFailure(ctx, "INVALID_FORMAT", "http")

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, data["atsscore_scores_computed_total"]))
	assert.Equal(t, int64(2), sumOf(t, data["atsscore_critical_issues_total"]))
	assert.Equal(t, int64(3), sumOf(t, data["atsscore_schema_issues_total"]))
	assert.Equal(t, int64(1), sumOf(t, data["atsscore_scoring_failures_total"]))

	hist, ok := data["atsscore_score_value"].(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestTrackEnhance(t *testing.T) {
	m, reader := newTestMetrics(t, allMetrics)
	ctx := context.Background()

	err := m.TrackEnhance(ctx, "summary", func(context.Context) *EnhanceResult {
		return &EnhanceResult{TokenUsage: &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = m.TrackEnhance(ctx, "bullet", func(context.Context) *EnhanceResult {
		return &EnhanceResult{Error: boom}
	})
	assert.ErrorIs(t, err, boom)

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, data["atsscore_enhance_requests_total"]))
	assert.Equal(t, int64(1), sumOf(t, data["atsscore_enhance_errors_total"]))
	assert.Contains(t, data, "atsscore_enhance_duration_seconds")
	assert.Contains(t, data, "atsscore_enhance_tokens")
}

func TestDisabledFamiliesRecordNothing(t *testing.T) {
	m, reader := newTestMetrics(t, config.CustomMetricsConfig{})
	ctx := context.Background()

	m.RecordScore(ctx, types.ScoreReport{Score: 50, Rating: types.RatingPoor}, false, "cli")
	m.RecordRateLimitHit(ctx, "ip")
	m.RecordCertReload(ctx, true)
	_ = m.TrackEnhance(ctx, "project", func(context.Context) *EnhanceResult { return nil })

	assert.Empty(t, collect(t, reader))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordScore(ctx, types.ScoreReport{}, false, "cli")
		m.RecordSchemaIssues(ctx, 1, "cli")
		m.RecordRateLimitHit(ctx, "ip")
		m.RecordCertReload(ctx, false)
	})

	called := false
	err := m.TrackEnhance(ctx, "summary", func(context.Context) *EnhanceResult {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestDisabledManager(t *testing.T) {
	om, err := NewManager(config.ObservabilityConfig{Enabled: false}, "v1")
	require.NoError(t, err)

	assert.Nil(t, om.Metrics())
	assert.NotNil(t, om.Tracer("x"))
	assert.NoError(t, om.Shutdown(context.Background()))
}

func TestEnabledManagerWithoutExporters(t *testing.T) {
	om, err := NewManager(config.ObservabilityConfig{
		Enabled:       true,
		ServiceName:   "atsscore-test",
		SampleRate:    1,
		CustomMetrics: allMetrics,
	}, "v1")
	require.NoError(t, err)

	assert.NotNil(t, om.Metrics())
	assert.NoError(t, om.Shutdown(context.Background()))
}
