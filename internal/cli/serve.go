package cli

import (
	"context"
	"fmt"

	"atsscore/internal/ai"
	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/server"
	"atsscore/internal/store"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP scoring service",
	Long: `Start an HTTP server exposing the scorer as a REST API.

Available endpoints:
- GET  /health: Health check endpoint
- GET  /stats: Rate limiting and circuit breaker statistics
- POST /score: Score a resume object (?diagnose=true adds schema issues)
- POST /validate: Schema diagnostics for a resume object
- POST /enhance: AI rewrite of a summary, bullet or project (needs an AI key)
- POST /resumes: Store a resume document (needs a database)
- GET  /resumes/{id}/score: Score a stored resume and record the result
- GET  /resumes/{id}/scores: Score history for a stored resume

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

// applyServeFlags copies explicitly set flags over the loaded configuration
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := map[string]*string{
		"port":      &cfg.Server.Port,
		"host":      &cfg.Server.Host,
		"tls-mode":  &cfg.Server.TLS.Mode,
		"cert-file": &cfg.Server.TLS.CertFile,
		"key-file":  &cfg.Server.TLS.KeyFile,
		"ca-file":   &cfg.Server.TLS.CAFile,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			*target, _ = cmd.Flags().GetString(name)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	applyServeFlags(cmd, cfg)
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	obs, err := observability.NewManager(cfg.Observability, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability(obs, logger)

	repo, err := openRepository(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
	}

	enhancer, err := ai.NewService(ctx, cfg.AI, obs.Metrics(), logger)
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeAIDisabled {
			return err
		}
		logger.Info("AI enhancer disabled, POST /enhance will return 503")
	} else {
		defer func() {
			if err := enhancer.Close(); err != nil {
				logger.Warn("Failed to close AI service", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, Version, server.Deps{
		Repository:    repo,
		Enhancer:      enhancer,
		Observability: obs,
		Logger:        logger,
	})
	return srv.Start(ctx)
}

// openRepository connects to PostgreSQL when a database URL is configured.
// A nil repository leaves the stored-resume endpoints answering 503.
func openRepository(ctx context.Context, cfg config.DatabaseConfig, logger *errors.Logger) (store.ResumeRepository, error) {
	if !cfg.Enabled() {
		logger.Info("No database configured, resume storage disabled")
		return nil, nil
	}
	repo, err := store.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to resume store", "max_conns", cfg.MaxConns, "auto_migrate", cfg.AutoMigrate)
	return repo, nil
}
