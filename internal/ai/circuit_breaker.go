package ai

import (
	"atsscore/internal/config"
	"atsscore/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps calls returning T with a circuit breaker. A nil Breaker
// runs calls directly.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// NewBreaker returns nil when the breaker is disabled in cfg
func NewBreaker[T any](name string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests || counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String())
			}
		},
	}

	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn through the breaker
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats describes breaker state for the /stats endpoint
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil {
		return map[string]any{"enabled": false}
	}
	counts := b.cb.Counts()
	return map[string]any{
		"enabled":  true,
		"name":     b.cb.Name(),
		"state":    b.cb.State().String(),
		"requests": counts.Requests,
		"failures": counts.TotalFailures,
	}
}

// Healthy reports whether calls are currently allowed through
func (b *Breaker[T]) Healthy() bool {
	return b == nil || b.cb.State() == gobreaker.StateClosed
}
