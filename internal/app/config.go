// Package app holds runtime configuration shared by the CLI and the scoring
// daemon.
package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayeshahabib/scamshield/internal/server"
	"github.com/ayeshahabib/scamshield/internal/webclient"
)

// ClientConfig configures the CLI side: where the scoring service lives and
// how to reach it.
type ClientConfig struct {
	// BaseURL is the scoring service origin, without a trailing slash.
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds bounds each request to the scoring service.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// Backend selects the web client implementation by name.
	Backend string `yaml:"backend"`
}

// ServerConfig configures the scoring daemon.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`

	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// Config is the top-level configuration file layout.
type Config struct {
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	cfg := &Config{
		Client: ClientConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
			Backend:        string(webclient.BackendNetHTTP),
		},
		Server: ServerConfig{
			ListenAddr: ":8000",
			DBPath:     "scamshield.db",
		},
	}
	cfg.Server.RateLimit.Enabled = false
	cfg.Server.RateLimit.RPS = 5
	cfg.Server.RateLimit.Burst = 10
	return cfg
}

// LoadConfig reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// WebClientConfig maps the client section onto the web client layer.
func (c *Config) WebClientConfig() webclient.Config {
	return webclient.Config{
		Backend: webclient.Backend(c.Client.Backend),
		Timeout: time.Duration(c.Client.TimeoutSeconds) * time.Second,
	}
}

// HTTPServerConfig maps the server section onto the HTTP layer.
func (c *Config) HTTPServerConfig() server.Config {
	return server.Config{
		ListenAddr: c.Server.ListenAddr,
		DBPath:     c.Server.DBPath,
		RateLimit: server.RateLimitConfig{
			Enabled: c.Server.RateLimit.Enabled,
			RPS:     c.Server.RateLimit.RPS,
			Burst:   c.Server.RateLimit.Burst,
		},
	}
}
