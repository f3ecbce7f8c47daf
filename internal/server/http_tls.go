package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
)

// configureTLS sets up TLS on httpServer according to the configured mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	switch s.TLSConfig.Mode {
	case "disabled", "":
		fmt.Printf("Starting server on http://%s\n", httpServer.Addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
		return nil
	case "server":
		fmt.Printf("Starting server with HTTPS (server-only TLS) on https://%s\n", httpServer.Addr)
	case "mutual":
		fmt.Printf("Starting server with mTLS (mutual TLS) on https://%s\n", httpServer.Addr)
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", s.TLSConfig.Mode)
	}

	certManager := NewCertificateManager(s.TLSConfig, s.Observability.Metrics(), s.Logger)
	if err := certManager.Start(); err != nil {
		return fmt.Errorf("failed to start certificate manager: %w", err)
	}
	s.CertificateManager = certManager

	if s.TLSConfig.AutoReload.Enabled && s.TLSConfig.CertContent == "" {
		fmt.Println("TLS auto-reload: ENABLED (file watching)")
	}

	httpServer.TLSConfig = s.buildTLSConfig()
	return nil
}

// buildTLSConfig returns a config whose certificate and client CAs are read
// from the certificate manager on every handshake.
func (s *Server) buildTLSConfig() *tls.Config {
	base := &tls.Config{
		MinVersion:     tlsVersion(s.TLSConfig.MinVersion),
		GetCertificate: s.CertificateManager.GetCertificate,
		ClientAuth:     tls.NoClientCert,
	}
	if s.TLSConfig.Mode != "mutual" {
		return base
	}

	base.ClientAuth = clientAuthPolicy(s.TLSConfig.ClientAuthPolicy)
	base.ClientCAs = s.CertificateManager.CACertPool()
	base.GetConfigForClient = func(*tls.ClientHelloInfo) (*tls.Config, error) {
		cfg := base.Clone()
		cfg.GetConfigForClient = nil
		cfg.ClientCAs = s.CertificateManager.CACertPool()
		return cfg, nil
	}
	return base
}

func tlsVersion(version string) uint16 {
	if version == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func clientAuthPolicy(policy string) tls.ClientAuthType {
	switch policy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}
