package server

import (
	"time"

	"atsscore/internal/ai"
	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/store"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	TLSConfig          config.TLSConfig
	CertificateManager *CertificateManager

	// APIKeys guards every route except /health when non-empty
	APIKeys map[string]bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxRequestSize  int64

	RateLimit   config.RateLimitConfig
	RateLimiter *RateLimiter

	Scoring config.ScoringConfig

	// Optional collaborators; nil disables the routes that need them
	Repository store.ResumeRepository
	Enhancer   *ai.Service

	Observability *observability.Manager
	Logger        *errors.Logger
}

// Deps are the collaborators a Server needs besides configuration
type Deps struct {
	Repository    store.ResumeRepository
	Enhancer      *ai.Service
	Observability *observability.Manager
	Logger        *errors.Logger
}

// NewServer creates a Server from the loaded configuration
func NewServer(cfg *config.Config, version string, deps Deps) *Server {
	apiKeys := make(map[string]bool, len(cfg.Server.APIKeys))
	for _, key := range cfg.Server.APIKeys {
		if key != "" {
			apiKeys[key] = true
		}
	}

	var limiter *RateLimiter
	if cfg.Server.RateLimit.Enabled {
		limiter = NewRateLimiter(cfg.Server.RateLimit.RequestsPerMin, cfg.Server.RateLimit.BurstCapacity, deps.Logger)
	}

	return &Server{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Version:         version,
		TLSConfig:       cfg.Server.TLS,
		APIKeys:         apiKeys,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxRequestSize:  cfg.Server.MaxRequestBytes,
		RateLimit:       cfg.Server.RateLimit,
		RateLimiter:     limiter,
		Scoring:         cfg.Scoring,
		Repository:      deps.Repository,
		Enhancer:        deps.Enhancer,
		Observability:   deps.Observability,
		Logger:          deps.Logger,
	}
}
