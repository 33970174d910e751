// Package config loads the agent's TOML configuration file.
//
// Configuration covers the agent identity advertised in the capability
// discovery document, the HTTP listen address, the upstream API location,
// and per-entrypoint price overrides. Every field has a sensible default so
// the agent runs without any file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

// Config is the full agent configuration.
type Config struct {
	Agent    Agent            `toml:"agent"`
	Server   Server           `toml:"server"`
	Upstream Upstream         `toml:"upstream"`
	Prices   map[string]int64 `toml:"prices"`
}

// Agent is the identity advertised for capability discovery.
type Agent struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Endpoint    string `toml:"endpoint"` // Public URL clients reach the agent at
}

// Server configures the HTTP transport.
type Server struct {
	Listen string `toml:"listen"`
}

// Upstream configures the statistics API client.
type Upstream struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: Agent{
			Name:        "gridfare",
			Description: "Monetized read-only Formula 1 data endpoints",
		},
		Server: Server{
			Listen: ":8080",
		},
		Upstream: Upstream{
			TimeoutSeconds: 10,
		},
	}
}

// Load reads a TOML configuration file, overlaying it on [Default]. An empty
// path returns the defaults untouched. Unknown keys in the file are
// rejected so typos fail loudly at startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, gerrors.New(gerrors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks loaded values for internal consistency.
func (c Config) Validate() error {
	if c.Agent.Name == "" {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "agent name cannot be empty")
	}
	if c.Server.Listen == "" {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "server listen address cannot be empty")
	}
	if c.Upstream.BaseURL != "" {
		if err := gerrors.ValidateBaseURL(c.Upstream.BaseURL); err != nil {
			return err
		}
	}
	if c.Upstream.TimeoutSeconds < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "upstream timeout cannot be negative")
	}
	for key, price := range c.Prices {
		if price < 0 {
			return gerrors.New(gerrors.ErrCodeInvalidInput, "price for %q cannot be negative", key)
		}
	}
	return nil
}

// UpstreamTimeout returns the configured upstream request timeout.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}
