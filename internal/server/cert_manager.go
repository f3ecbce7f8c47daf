package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
)

// CertificateManager holds the served certificate and client CA pool and
// swaps them in place when the files on disk change.
type CertificateManager struct {
	mu sync.RWMutex

	serverCert       *tls.Certificate
	caCertPool       *x509.CertPool
	serverCertExpiry time.Time

	config  config.TLSConfig
	watcher *CertWatcher
	metrics *observability.Metrics
	logger  *errors.Logger

	reloadCount        int64
	reloadFailureCount int64
	lastReloadTime     time.Time
	lastReloadError    string
}

// NewCertificateManager creates a manager for cfg; call Start to load certificates
func NewCertificateManager(cfg config.TLSConfig, metrics *observability.Metrics, logger *errors.Logger) *CertificateManager {
	return &CertificateManager{
		config:  cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// Start loads certificates and, for file-based certificates with auto
// reload enabled, begins watching them.
func (cm *CertificateManager) Start() error {
	if err := cm.Reload(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	if !cm.config.AutoReload.Enabled || cm.config.CertContent != "" {
		return nil
	}

	cm.watcher = NewCertWatcher(
		[]string{cm.config.CertFile, cm.config.KeyFile, cm.config.CAFile},
		cm.config.AutoReload.DebounceDelay,
		func() {
			if err := cm.Reload(); err != nil {
				cm.logger.LogError(err, "Failed to reload TLS certificates")
			}
		},
		cm.logger,
	)
	return cm.watcher.Start()
}

// Stop stops the file watcher if one is running
func (cm *CertificateManager) Stop() error {
	if cm.watcher == nil {
		return nil
	}
	return cm.watcher.Stop()
}

// Reload reads the certificate, key and CA again and swaps them in on success.
// On failure the previous certificates stay in service.
func (cm *CertificateManager) Reload() error {
	cert, expiry, pool, err := cm.load()

	cm.mu.Lock()
	cm.reloadCount++
	cm.lastReloadTime = time.Now()
	if err != nil {
		cm.reloadFailureCount++
		cm.lastReloadError = err.Error()
	} else {
		cm.serverCert = &cert
		cm.serverCertExpiry = expiry
		cm.caCertPool = pool
		cm.lastReloadError = ""
	}
	cm.mu.Unlock()

	cm.metrics.RecordCertReload(context.Background(), err == nil)
	if err != nil {
		return err
	}
	cm.logger.Info("TLS certificates loaded", "server_cert_expiry", expiry)
	return nil
}

func (cm *CertificateManager) load() (tls.Certificate, time.Time, *x509.CertPool, error) {
	var cert tls.Certificate
	var err error
	if cm.config.CertContent != "" {
		cert, err = tls.X509KeyPair([]byte(cm.config.CertContent), []byte(cm.config.KeyContent))
	} else {
		cert, err = tls.LoadX509KeyPair(cm.config.CertFile, cm.config.KeyFile)
	}
	if err != nil {
		return tls.Certificate{}, time.Time{}, nil, fmt.Errorf("failed to load server cert/key: %w", err)
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return tls.Certificate{}, time.Time{}, nil, fmt.Errorf("failed to parse server certificate: %w", err)
	}
	cert.Leaf = leaf

	if cm.config.Mode != "mutual" {
		return cert, leaf.NotAfter, nil, nil
	}

	caPEM := []byte(cm.config.CAContent)
	if len(caPEM) == 0 {
		caPEM, err = os.ReadFile(cm.config.CAFile)
		if err != nil {
			return tls.Certificate{}, time.Time{}, nil, fmt.Errorf("failed to read CA file: %w", err)
		}
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return tls.Certificate{}, time.Time{}, nil, fmt.Errorf("failed to parse CA certificate")
	}
	return cert, leaf.NotAfter, pool, nil
}

// GetCertificate serves the current certificate during handshakes
func (cm *CertificateManager) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}
	return cm.serverCert, nil
}

// CACertPool returns the current client CA pool; nil outside mutual mode
func (cm *CertificateManager) CACertPool() *x509.CertPool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.caCertPool
}

// CheckExpiry returns the time until the served certificate expires
func (cm *CertificateManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCertExpiry.IsZero() {
		return 0, fmt.Errorf("no certificates loaded")
	}
	return time.Until(cm.serverCertExpiry), nil
}

// Status summarises reload activity for the health endpoint
func (cm *CertificateManager) Status() map[string]any {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	status := map[string]any{
		"enabled":              cm.watcher != nil,
		"reload_count":         cm.reloadCount,
		"reload_failure_count": cm.reloadFailureCount,
		"last_reload_time":     cm.lastReloadTime,
	}
	if cm.lastReloadError != "" {
		status["last_reload_error"] = cm.lastReloadError
	}
	if cm.watcher != nil {
		status["watcher_running"] = cm.watcher.IsRunning()
		status["watched_files"] = cm.watcher.Files()
	}
	return status
}
