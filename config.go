package meiligo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds each HTTP request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config carries the location and credentials of the search service.
// It is shared read-only by every handle spawned from a Client.
type Config struct {
	// URL is the base URL of the service (ex: http://localhost:7700).
	URL string `env:"MEILI_URL"`

	// APIKey is the optional bearer token attached to every request.
	APIKey string `env:"MEILI_API_KEY"`

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration `env:"MEILI_TIMEOUT"`
}

func (c *Config) normalize() error {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.URL == "" {
		return fmt.Errorf("config: URL is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// ConfigFromEnv loads the client configuration from the MEILI_URL,
// MEILI_API_KEY and MEILI_TIMEOUT environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromFile loads the client configuration from a YAML file with
// url, api_key and timeout keys.
func ConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var raw struct {
		URL     string `yaml:"url"`
		APIKey  string `yaml:"api_key"`
		Timeout string `yaml:"timeout"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	cfg := Config{URL: raw.URL, APIKey: raw.APIKey}
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", raw.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
