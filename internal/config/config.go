// Package config loads the fuzzypath server configuration from an optional
// TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultPort             = 8080
	defaultTimeoutSeconds   = 30
	defaultMaxRequestSize   = 10 * 1024 * 1024 // 10MB
	defaultMaxPaths         = 10000
	defaultWarmUpIterations = 1000
	defaultWarmUpSeconds    = 5
)

// Server contains HTTP listener settings.
type Server struct {
	Port                int `toml:"port"`
	ReadTimeoutSeconds  int `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
	MaxRequestSize      int `toml:"max_request_size"`
	// Concurrency limits concurrent requests, 0 means the fasthttp default.
	Concurrency int `toml:"concurrency"`
	// MaxPaths caps the number of paths accepted in one request.
	MaxPaths int `toml:"max_paths"`
}

// WarmUp controls the normalizer warm-up at startup.
type WarmUp struct {
	Enabled     bool `toml:"enabled"`
	Iterations  int  `toml:"iterations"`
	Concurrency int  `toml:"concurrency"`
	Seconds     int  `toml:"seconds"`
}

// Logging selects where and how logs are written.
type Logging struct {
	File string `toml:"file"`
	JSON bool   `toml:"json"`
}

// Config is the complete server configuration.
type Config struct {
	Server  Server  `toml:"server"`
	WarmUp  WarmUp  `toml:"warmup"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Server: Server{
			Port:                defaultPort,
			ReadTimeoutSeconds:  defaultTimeoutSeconds,
			WriteTimeoutSeconds: defaultTimeoutSeconds,
			MaxRequestSize:      defaultMaxRequestSize,
			MaxPaths:            defaultMaxPaths,
		},
		WarmUp: WarmUp{
			Enabled:    true,
			Iterations: defaultWarmUpIterations,
			Seconds:    defaultWarmUpSeconds,
		},
		Logging: Logging{
			JSON: true,
		},
	}
}

// Load reads the TOML file at path on top of the defaults and validates the
// result. An empty path yields the defaults; a path that cannot be opened is
// an error. The boolean reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		exists = true

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		return errors.New("server.read_timeout_seconds must be positive")
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		return errors.New("server.write_timeout_seconds must be positive")
	}
	if c.Server.MaxRequestSize <= 0 {
		return errors.New("server.max_request_size must be positive")
	}
	if c.Server.Concurrency < 0 {
		return errors.New("server.concurrency must not be negative")
	}
	if c.Server.MaxPaths <= 0 {
		return errors.New("server.max_paths must be positive")
	}
	if c.WarmUp.Iterations < 0 || c.WarmUp.Concurrency < 0 || c.WarmUp.Seconds < 0 {
		return errors.New("warmup settings must not be negative")
	}
	return nil
}

// ReadTimeout returns the read timeout as a duration.
func (s Server) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s Server) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Address returns the listen address.
func (s Server) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Duration returns the warm-up time limit.
func (w WarmUp) Duration() time.Duration {
	return time.Duration(w.Seconds) * time.Second
}
