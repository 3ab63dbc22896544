// Package config loads the bot's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when --config is not given.
const DefaultPath = "escalate.yaml"

// TokenEnv overrides the token from the config file.
const TokenEnv = "ESCALATE_TOKEN"

const defaultConfigYAML = `# escalate bot configuration

# Bot token. Prefer setting ESCALATE_TOKEN instead of committing it here.
token: ""

# Command prefix, e.g. "?escalate billing".
prefix: "?"

# SQLite database path. Empty uses ~/.escalate/escalate.db.
database: ""

debug: false

# Address for the Prometheus /metrics endpoint, e.g. ":9090". Empty disables it.
metrics_addr: ""

# Author name shown on anonymous replies.
anonymous_name: "Support Team"

# User IDs with every permission.
owners: []

# Role or user IDs per permission level.
permissions:
  administrator: []
  moderator: []
  supporter: []
`

// Permissions maps each permission level to the role or user IDs holding it.
type Permissions struct {
	Administrator []string `yaml:"administrator"`
	Moderator     []string `yaml:"moderator"`
	Supporter     []string `yaml:"supporter"`
}

// Config represents the bot configuration.
type Config struct {
	Token         string      `yaml:"token"`
	Prefix        string      `yaml:"prefix"`
	Database      string      `yaml:"database"`
	Debug         bool        `yaml:"debug"`
	MetricsAddr   string      `yaml:"metrics_addr"`
	AnonymousName string      `yaml:"anonymous_name"`
	Owners        []string    `yaml:"owners"`
	Permissions   Permissions `yaml:"permissions"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Prefix:        "?",
		AnonymousName: "Support Team",
	}
}

// LoadConfig reads the YAML file at path. A missing file yields the defaults.
// ESCALATE_TOKEN, when set, replaces the token from the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		cfg.Token = token
	}
	if cfg.AnonymousName == "" {
		cfg.AnonymousName = "Support Team"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings every command needs. The token is checked
// separately by RequireToken since only serve uses it.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("invalid config: prefix must not be empty")
	}
	return nil
}

// RequireToken returns an error when no bot token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("no bot token configured: set token in the config file or %s", TokenEnv)
	}
	return nil
}

// WriteDefault writes a commented default config file to path.
// An existing file is left alone and reported via the returned bool.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0600); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
