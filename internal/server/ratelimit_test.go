package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(60, 2, quietLogger())
	t.Cleanup(rl.Close)

	assert.True(t, rl.Allow("ip:a"))
	assert.True(t, rl.Allow("ip:a"))
	assert.False(t, rl.Allow("ip:a"))
	assert.True(t, rl.Allow("ip:b"))
	assert.Equal(t, 2, rl.Stats()["active_limiters"])
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(60, 1, quietLogger())
	t.Cleanup(rl.Close)

	rl.Allow("ip:a")
	rl.cleanup(-time.Second)

	assert.Equal(t, 0, rl.Stats()["active_limiters"])
	rl.Close()
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name      string
		headers   map[string]string
		byAPIKey  bool
		byIP      bool
		wantKey   string
		limitedBy string
	}{
		{"api key preferred", map[string]string{"X-API-Key": "k1"}, true, true, "api:k1", "api_key"},
		{"bearer", map[string]string{"Authorization": "Bearer k2"}, true, false, "api:k2", "api_key"},
		{"falls back to ip", nil, true, true, "ip:192.0.2.1", "ip"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "bogus, 203.0.113.7"}, false, true, "ip:203.0.113.7", "ip"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, false, true, "ip:198.51.100.4", "ip"},
		{"disabled", map[string]string{"X-API-Key": "k1"}, false, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/score", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			key, by := getRateLimitKey(req, tt.byAPIKey, tt.byIP)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.limitedBy, by)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcdefgh****", maskAPIKey("abcdefghijkl"))
}
