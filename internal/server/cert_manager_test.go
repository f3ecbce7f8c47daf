package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"atsscore/internal/config"
	"atsscore/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSelfSigned writes a self-signed certificate valid for validFor and
// returns the cert and key paths.
func writeSelfSigned(t *testing.T, dir string, validFor time.Duration) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: "atsscore.test"},
		DNSNames:              []string{"localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(validFor),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certPath, keyPath
}

func quietLogger() *errors.Logger {
	return errors.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

func TestCertificateManagerLoadsFiles(t *testing.T) {
	certPath, keyPath := writeSelfSigned(t, t.TempDir(), 30*24*time.Hour)
	cm := NewCertificateManager(config.TLSConfig{Mode: "server", CertFile: certPath, KeyFile: keyPath}, nil, quietLogger())

	require.NoError(t, cm.Start())
	t.Cleanup(func() { _ = cm.Stop() })

	cert, err := cm.GetCertificate(&tls.ClientHelloInfo{})
	require.NoError(t, err)
	require.NotNil(t, cert.Leaf)
	assert.Equal(t, "atsscore.test", cert.Leaf.Subject.CommonName)

	remaining, err := cm.CheckExpiry()
	require.NoError(t, err)
	assert.Greater(t, remaining, 29*24*time.Hour)
	assert.Nil(t, cm.CACertPool())
}

func TestCertificateManagerMutualLoadsCA(t *testing.T) {
	certPath, keyPath := writeSelfSigned(t, t.TempDir(), 24*time.Hour)
	cm := NewCertificateManager(config.TLSConfig{
		Mode:     "mutual",
		CertFile: certPath,
		KeyFile:  keyPath,
		CAFile:   certPath,
	}, nil, quietLogger())

	require.NoError(t, cm.Start())
	assert.NotNil(t, cm.CACertPool())
}

func TestCertificateManagerKeepsCertOnFailedReload(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeSelfSigned(t, dir, 24*time.Hour)
	cm := NewCertificateManager(config.TLSConfig{Mode: "server", CertFile: certPath, KeyFile: keyPath}, nil, quietLogger())
	require.NoError(t, cm.Start())

	before, err := cm.GetCertificate(nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(certPath, []byte("garbage"), 0o600))
	assert.Error(t, cm.Reload())

	after, err := cm.GetCertificate(nil)
	require.NoError(t, err)
	assert.Same(t, before, after)

	status := cm.Status()
	assert.EqualValues(t, 2, status["reload_count"])
	assert.EqualValues(t, 1, status["reload_failure_count"])
	assert.NotEmpty(t, status["last_reload_error"])
}

func TestCertificateManagerRejectsMissingFiles(t *testing.T) {
	cm := NewCertificateManager(config.TLSConfig{Mode: "server", CertFile: "/nope.crt", KeyFile: "/nope.key"}, nil, quietLogger())
	assert.Error(t, cm.Start())
}

func TestCertWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeSelfSigned(t, dir, 24*time.Hour)
	cm := NewCertificateManager(config.TLSConfig{
		Mode:       "server",
		CertFile:   certPath,
		KeyFile:    keyPath,
		AutoReload: config.AutoReloadConfig{Enabled: true, DebounceDelay: 20 * time.Millisecond},
	}, nil, quietLogger())
	require.NoError(t, cm.Start())
	t.Cleanup(func() { _ = cm.Stop() })

	first, err := cm.CheckExpiry()
	require.NoError(t, err)

	// ensure the rewrite has a strictly newer mtime
	time.Sleep(20 * time.Millisecond)
	writeSelfSigned(t, dir, 72*time.Hour)

	assert.Eventually(t, func() bool {
		remaining, err := cm.CheckExpiry()
		return err == nil && remaining > first+24*time.Hour
	}, 5*time.Second, 20*time.Millisecond)
}

func TestBuildTLSConfig(t *testing.T) {
	certPath, keyPath := writeSelfSigned(t, t.TempDir(), 24*time.Hour)

	tests := []struct {
		name       string
		tls        config.TLSConfig
		minVersion uint16
		clientAuth tls.ClientAuthType
	}{
		{"server", config.TLSConfig{Mode: "server", MinVersion: "1.3"}, tls.VersionTLS13, tls.NoClientCert},
		{"mutual default", config.TLSConfig{Mode: "mutual", CAFile: certPath}, tls.VersionTLS12, tls.RequireAndVerifyClientCert},
		{"mutual verify", config.TLSConfig{Mode: "mutual", CAFile: certPath, ClientAuthPolicy: "verify"}, tls.VersionTLS12, tls.VerifyClientCertIfGiven},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tls.CertFile, tt.tls.KeyFile = certPath, keyPath
			s := &Server{TLSConfig: tt.tls, Logger: quietLogger()}
			s.CertificateManager = NewCertificateManager(tt.tls, nil, s.Logger)
			require.NoError(t, s.CertificateManager.Start())

			cfg := s.buildTLSConfig()
			assert.Equal(t, tt.minVersion, cfg.MinVersion)
			assert.Equal(t, tt.clientAuth, cfg.ClientAuth)
			if tt.tls.Mode == "mutual" {
				perClient, err := cfg.GetConfigForClient(&tls.ClientHelloInfo{})
				require.NoError(t, err)
				assert.NotNil(t, perClient.ClientCAs)
			}
		})
	}
}
