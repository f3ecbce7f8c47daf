package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"atsscore/internal/errors"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets holds KVv2 paths. An empty path skips that secret.
type VaultSecrets struct {
	APIKeys     string `mapstructure:"apiKeys"`     // key "keys", comma separated
	GeminiKey   string `mapstructure:"geminiKey"`   // key "api_key"
	DatabaseURL string `mapstructure:"databaseURL"` // key "url"
	TLSCerts    string `mapstructure:"tlsCerts"`    // keys "cert", "key", "ca"
}

// secretReader is the subset of VaultClient used when applying secrets
type secretReader interface {
	GetSecretV2(path string) (*VaultSecret, error)
	GetStringSecret(path, key string) (string, error)
	GetStringSliceSecret(path, key string) ([]string, error)
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	config VaultConfig
	logger *errors.Logger
}

// NewVaultClient creates a new Vault client, or nil when Vault is disabled
func NewVaultClient(config VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if !config.Enabled {
		return nil, nil
	}

	vaultConfig := api.DefaultConfig()
	if config.Address != "" {
		vaultConfig.Address = config.Address
	}
	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to create vault client", err)
	}
	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	token, err := resolveVaultToken(config)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeNetworkTimeout, "failed to connect to vault", err).
			WithContext("address", config.Address)
	}
	if logger != nil {
		logger.Info("Connected to Vault",
			"address", config.Address,
			"version", health.Version,
			"sealed", health.Sealed)
	}

	return &VaultClient{client: client, config: config, logger: logger}, nil
}

// resolveVaultToken prefers the inline token and falls back to the token file
func resolveVaultToken(config VaultConfig) (string, error) {
	token := config.Token
	if token == "" && config.TokenFile != "" {
		raw, err := os.ReadFile(config.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}
	return token, nil
}

// VaultSecret represents a secret read from Vault's KVv2 engine.
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

// GetSecretV2 retrieves a secret from a Vault KVv2 store.
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}
	return parseKVv2(secret.Data, path)
}

// parseKVv2 unpacks the data and metadata envelope of a KVv2 read
func parseKVv2(raw map[string]any, path string) (*VaultSecret, error) {
	data, ok := raw["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}
	metadata, ok := raw["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'metadata' field)", path)
	}
	versionRaw, ok := metadata["version"]
	if !ok {
		return nil, fmt.Errorf("secret metadata at %s is missing 'version' field", path)
	}
	version, err := parseVersionValue(versionRaw, path)
	if err != nil {
		return nil, err
	}
	return &VaultSecret{Data: data, Version: version}, nil
}

// parseVersionValue parses version value from the types Vault's JSON decoding yields
func parseVersionValue(versionRaw any, path string) (int64, error) {
	switch v := versionRaw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected type for version at %s: %T", path, versionRaw)
	}
}

// GetStringSecret retrieves a string value from a Vault secret
func (vc *VaultClient) GetStringSecret(path, key string) (string, error) {
	secret, err := vc.GetSecretV2(path)
	if err != nil {
		return "", err
	}
	value, err := stringField(secret, path, key)
	if err != nil {
		return "", err
	}
	if vc.logger != nil {
		vc.logger.Debug("String secret retrieved from Vault",
			"path", path,
			"key", key,
			"masked_value", maskSecret(value))
	}
	return value, nil
}

func stringField(secret *VaultSecret, path, key string) (string, error) {
	value, ok := secret.Data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}
	return str, nil
}

// GetStringSliceSecret retrieves a comma-separated string as a slice from Vault
func (vc *VaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	value, err := vc.GetStringSecret(path, key)
	if err != nil {
		return nil, err
	}
	return splitList(value), nil
}

// ApplyVaultSecrets loads secrets from Vault and applies them to the config
func ApplyVaultSecrets(config *Config, logger *errors.Logger) error {
	if !config.Vault.Enabled {
		return nil
	}

	client, err := NewVaultClient(config.Vault, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	if client == nil {
		return nil
	}
	return applySecrets(client, config, logger)
}

// applySecrets copies every configured secret path into config
func applySecrets(reader secretReader, config *Config, logger *errors.Logger) error {
	paths := config.Vault.Secrets

	if paths.APIKeys != "" {
		keys, err := reader.GetStringSliceSecret(paths.APIKeys, "keys")
		if err != nil {
			return fmt.Errorf("failed to load API keys from vault: %w", err)
		}
		if len(keys) > 0 {
			config.Server.APIKeys = keys
		}
		logSecretLoaded(logger, "api_keys", paths.APIKeys, len(keys))
	}

	if paths.GeminiKey != "" {
		key, err := reader.GetStringSecret(paths.GeminiKey, "api_key")
		if err != nil {
			return fmt.Errorf("failed to load Gemini API key from vault: %w", err)
		}
		if key != "" {
			config.AI.APIKey = key
		}
		logSecretLoaded(logger, "gemini_key", paths.GeminiKey, boolCount(key != ""))
	}

	if paths.DatabaseURL != "" {
		url, err := reader.GetStringSecret(paths.DatabaseURL, "url")
		if err != nil {
			return fmt.Errorf("failed to load database URL from vault: %w", err)
		}
		if url != "" {
			config.Database.URL = url
		}
		logSecretLoaded(logger, "database_url", paths.DatabaseURL, boolCount(url != ""))
	}

	if paths.TLSCerts != "" {
		secret, err := reader.GetSecretV2(paths.TLSCerts)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificates from vault: %w", err)
		}
		logSecretLoaded(logger, "tls_certs", paths.TLSCerts, applyTLSContent(&config.Server.TLS, secret))
	}

	return nil
}

// applyTLSContent copies inline PEM blocks and returns how many were present
func applyTLSContent(tls *TLSConfig, secret *VaultSecret) int {
	targets := map[string]*string{
		"cert": &tls.CertContent,
		"key":  &tls.KeyContent,
		"ca":   &tls.CAContent,
	}
	loaded := 0
	for key, target := range targets {
		if content, ok := secret.Data[key].(string); ok && content != "" {
			*target = content
			loaded++
		}
	}
	return loaded
}

func boolCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

func logSecretLoaded(logger *errors.Logger, secret, path string, count int) {
	if logger == nil {
		return
	}
	if count == 0 {
		logger.Warn("Vault secret was empty", "secret", secret, "path", path)
		return
	}
	logger.Info("Secret loaded from Vault", "secret", secret, "path", path, "count", count)
}
