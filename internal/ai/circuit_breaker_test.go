package ai

import (
	"errors"
	"testing"
	"time"

	"atsscore/internal/config"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestBreakerTripsAfterFailures(t *testing.T) {
	b := NewBreaker[string]("test", breakerConfig(), nil)
	require.NotNil(t, b)
	assert.True(t, b.Healthy())

	failing := func() (string, error) { return "", errors.New("upstream down") }
	for range 3 {
		_, err := b.Execute(failing)
		assert.Error(t, err)
	}

	assert.False(t, b.Healthy())
	_, err := b.Execute(func() (string, error) { return "ok", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	stats := b.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, "test", stats["name"])
	assert.Equal(t, "open", stats["state"])
}

func TestBreakerStaysClosedBelowMinRequests(t *testing.T) {
	b := NewBreaker[int]("test", breakerConfig(), nil)

	_, _ = b.Execute(func() (int, error) { return 0, errors.New("x") })
	_, _ = b.Execute(func() (int, error) { return 0, errors.New("x") })

	assert.True(t, b.Healthy())
}

func TestDisabledBreakerPassesThrough(t *testing.T) {
	cfg := breakerConfig()
	cfg.Enabled = false
	b := NewBreaker[int]("off", cfg, nil)
	assert.Nil(t, b)

	got, err := b.Execute(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.True(t, b.Healthy())
	assert.Equal(t, map[string]any{"enabled": false}, b.Stats())
}
