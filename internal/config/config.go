package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-version"
)

const (
	// DefaultServer is the DDC demo server the CLI talks to when no
	// server is configured.
	DefaultServer = "http://localhost:9374"

	// DefaultTimeout bounds every request. The original trigger script
	// had no timeout and a hung connection blocked forever; the bound is
	// a deliberate deviation.
	DefaultTimeout = 10 * time.Second

	// DefaultFileName is the config file looked up in the working
	// directory when --config is not given.
	DefaultFileName = "democtl.yaml"
)

// Config holds all configuration for the CLI
type Config struct {
	// Server is the base URL of the DDC demo server
	Server string

	// Timeout is the per-request timeout
	Timeout time.Duration

	// User and Password are HTTP basic auth credentials. The DDC log
	// routes require them; the demo trigger endpoints do not.
	User     string
	Password string

	// MinServerVersion, when set, makes `democtl status` fail if the
	// server reports an older semantic version
	MinServerVersion string
}

// Default returns a Config with built-in defaults
func Default() *Config {
	return &Config{
		Server:  DefaultServer,
		Timeout: DefaultTimeout,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server == "" {
		return NewConfigError("server must not be empty")
	}

	u, err := url.Parse(c.Server)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewConfigError(fmt.Sprintf("server must be an http(s) URL, got %q", c.Server))
	}

	if c.Timeout <= 0 {
		return NewConfigError("timeout must be greater than zero")
	}

	if c.MinServerVersion != "" {
		if _, err := version.NewVersion(c.MinServerVersion); err != nil {
			return NewConfigError(fmt.Sprintf("min_server_version %q is not a semantic version: %v", c.MinServerVersion, err))
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
