package config

import (
	"fmt"
	"time"

	"linkshortener/internal/slug"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sweeper  SweeperConfig
	Logging  LoggingConfig
	Slug     slug.Config
}

// ServerConfig holds server-related configuration. The management API and
// the redirect server listen on separate ports.
type ServerConfig struct {
	APIPort        string
	RedirectPort   string
	ForwardURL     string
	AllowedOrigins string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// SweeperConfig holds expiry sweeper configuration
type SweeperConfig struct {
	Interval time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Verbose bool
}

// New creates a new config with the given parameters
func New(apiPort, redirectPort, forwardURL, allowedOrigins, dbPath string, sweepInterval time.Duration, verbose bool, slugConfig slug.Config) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			APIPort:        apiPort,
			RedirectPort:   redirectPort,
			ForwardURL:     forwardURL,
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Sweeper: SweeperConfig{
			Interval: sweepInterval,
		},
		Logging: LoggingConfig{
			Verbose: verbose,
		},
		Slug: slugConfig,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.APIPort == "" {
		return fmt.Errorf("API port cannot be empty")
	}

	if c.Server.RedirectPort == "" {
		return fmt.Errorf("redirect port cannot be empty")
	}

	if c.Server.APIPort == c.Server.RedirectPort {
		return fmt.Errorf("API and redirect ports must differ, both are %s", c.Server.APIPort)
	}

	if c.Server.ForwardURL == "" {
		return fmt.Errorf("forward URL cannot be empty")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Sweeper.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got: %v", c.Sweeper.Interval)
	}

	if c.Slug.Length <= 0 {
		return fmt.Errorf("slug length must be positive, got: %d", c.Slug.Length)
	}

	if c.Slug.MaxAttempts <= 0 {
		return fmt.Errorf("slug max attempts must be positive, got: %d", c.Slug.MaxAttempts)
	}

	return nil
}
