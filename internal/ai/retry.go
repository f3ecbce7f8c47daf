package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"time"

	apperrors "atsscore/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const maxBackoff = 30 * time.Second

// retrier retries transient failures with exponential backoff and jitter
type retrier struct {
	maxRetries int
	baseDelay  time.Duration
	logger     *apperrors.Logger
}

func (r retrier) backoff(attempt int) time.Duration {
	delay := r.baseDelay << (attempt - 1)
	if delay <= 0 || delay > maxBackoff {
		delay = maxBackoff
	}
	if tenth := int64(delay / 10); tenth > 0 {
		if jitter, err := rand.Int(rand.Reader, big.NewInt(tenth)); err == nil {
			delay += time.Duration(jitter.Int64())
		}
	}
	return min(delay, maxBackoff)
}

func retryDo[T any](ctx context.Context, r retrier, operation string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			if r.logger != nil {
				r.logger.Warn("Retrying model call",
					"operation", operation,
					"attempt", attempt,
					"error", lastErr.Error())
			}
			select {
			case <-time.After(r.backoff(attempt)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableError(err) {
			break
		}
	}

	return zero, fmt.Errorf("operation '%s' failed: %w", operation, lastErr)
}

// isRetryableError reports whether err is a transient network or server failure
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if code, ok := statusCode(err); ok {
		switch code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// statusCode extracts an HTTP status from either client library's error type
func statusCode(err error) (int, bool) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code, true
	}
	return 0, false
}
