// Package config loads and persists CLI settings. Values are merged from
// four layers, highest precedence first: command-line flags, SIGMA_*
// environment variables, ~/.sigma/config.json, built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultBaseURL is the platform API root used when nothing else sets it.
const DefaultBaseURL = "https://aws-api.sigmacomputing.com/v2"

// Source names where a setting came from, for `--verbose` diagnostics.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "config file"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// Config holds the resolved settings plus the source of each one.
type Config struct {
	ClientID string `json:"client_id,omitempty"`
	Secret   string `json:"secret,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`

	sources map[string]Source
	path    string
}

// Overrides carries flag values; empty strings mean "not set".
type Overrides struct {
	ClientID string
	Secret   string
	BaseURL  string
}

// envConfig is the environment layer, parsed separately so precedence
// stays explicit.
type envConfig struct {
	ClientID string `env:"SIGMA_CLIENT_ID"`
	Secret   string `env:"SIGMA_SECRET"`
	BaseURL  string `env:"SIGMA_BASE_URL"`
}

// DefaultPath returns ~/.sigma/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".sigma", "config.json"), nil
}

// Load merges all four layers using the default config file path.
func Load(overrides Overrides) (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path, overrides)
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string, overrides Overrides) (*Config, error) {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		sources: map[string]Source{
			"client_id": SourceDefault,
			"secret":    SourceDefault,
			"base_url":  SourceDefault,
		},
		path: path,
	}

	// Layer 2 (lowest above defaults): config file. A missing file is
	// normal; a corrupt one is an error the operator should see.
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.apply(fileCfg.ClientID, fileCfg.Secret, fileCfg.BaseURL, SourceFile)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Layer 3: environment, with .env support.
	_ = godotenv.Load()
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.apply(envCfg.ClientID, envCfg.Secret, envCfg.BaseURL, SourceEnv)

	// Layer 4 (highest): flags.
	cfg.apply(overrides.ClientID, overrides.Secret, overrides.BaseURL, SourceFlag)

	return cfg, nil
}

func (c *Config) apply(clientID, secret, baseURL string, source Source) {
	if clientID != "" {
		c.ClientID = clientID
		c.sources["client_id"] = source
	}
	if secret != "" {
		c.Secret = secret
		c.sources["secret"] = source
	}
	if baseURL != "" {
		c.BaseURL = baseURL
		c.sources["base_url"] = source
	}
}

// HasCredentials reports whether both client ID and secret are present.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.Secret != ""
}

// SourceOf returns where the named setting ("client_id", "secret",
// "base_url") came from.
func (c *Config) SourceOf(key string) Source {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Save persists the current settings to the path the config was loaded
// from, with owner-only permissions.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the config file location backing this Config.
func (c *Config) Path() string { return c.path }

// MaskedSecret renders the secret safe for display.
func (c *Config) MaskedSecret() string {
	return mask(c.Secret)
}

func mask(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
