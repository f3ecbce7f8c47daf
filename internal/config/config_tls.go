package config

import "fmt"

// pemSource is one certificate input that may come from a file or inline PEM
type pemSource struct {
	name    string
	file    string
	content string
}

func (p pemSource) set() bool {
	return p.file != "" || p.content != ""
}

func (p pemSource) ambiguous() bool {
	return p.file != "" && p.content != ""
}

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	if err := validateTLSMode(tls); err != nil {
		return err
	}
	return validateTLSVersion(tls.MinVersion)
}

func validateTLSMode(tls TLSConfig) error {
	cert := pemSource{"cert", tls.CertFile, tls.CertContent}
	key := pemSource{"key", tls.KeyFile, tls.KeyContent}
	ca := pemSource{"ca", tls.CAFile, tls.CAContent}

	switch tls.Mode {
	case "disabled", "":
		return nil
	case "server":
		return validateSources(tls.Mode, cert, key)
	case "mutual":
		if err := validateSources(tls.Mode, cert, key, ca); err != nil {
			return err
		}
		return validateClientAuthPolicy(tls.ClientAuthPolicy)
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", tls.Mode)
	}
}

// validateSources requires every source to be set exactly once
func validateSources(mode string, sources ...pemSource) error {
	for _, src := range sources {
		if !src.set() {
			return fmt.Errorf("TLS %s is required for %s mode (provide %sFile or %sContent)", src.name, mode, src.name, src.name)
		}
		if src.ambiguous() {
			return fmt.Errorf("cannot specify both %sFile and %sContent - choose one", src.name, src.name)
		}
	}
	return nil
}

func validateClientAuthPolicy(policy string) error {
	switch policy {
	case "require", "request", "verify", "":
		return nil
	default:
		return fmt.Errorf("invalid clientAuthPolicy: %s (must be 'require', 'request', or 'verify')", policy)
	}
}

func validateTLSVersion(version string) error {
	switch version {
	case "", "1.2", "1.3":
		return nil
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", version)
	}
}
