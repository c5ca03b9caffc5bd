package config

import (
	"fmt"
	"time"
)

// File represents the on-disk structure of democtl.yaml.
//
// Example:
//
//	schema_version: v1
//	server: "http://localhost:9374"
//	timeout: 10s
//	auth:
//	  user: admin
//	  password: secret
//	min_server_version: "1.2.0"
type File struct {
	// SchemaVersion is the explicit config schema version (e.g., "v1")
	SchemaVersion string `yaml:"schema_version"`

	// Server is the base URL of the DDC demo server
	Server string `yaml:"server"`

	// Timeout is the per-request timeout as a Go duration string (e.g. "10s")
	Timeout string `yaml:"timeout"`

	// Auth holds optional HTTP basic auth credentials
	Auth AuthConfig `yaml:"auth"`

	// MinServerVersion is the minimum accepted server version (optional)
	MinServerVersion string `yaml:"min_server_version"`
}

// AuthConfig holds HTTP basic auth credentials
type AuthConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Validate checks that the File is structurally valid.
// Returns descriptive errors for validation failures.
func (f *File) Validate() error {
	if f.SchemaVersion != "v1" {
		return NewConfigError(fmt.Sprintf(
			"unsupported schema_version: %q (expected \"v1\")",
			f.SchemaVersion,
		))
	}

	if f.Timeout != "" {
		if _, err := time.ParseDuration(f.Timeout); err != nil {
			return NewConfigError(fmt.Sprintf(
				"timeout %q is not a duration (use values like \"10s\")",
				f.Timeout,
			))
		}
	}

	return nil
}

// apply overlays the file's non-empty values onto cfg.
// Validate must have been called first so the timeout is known to parse.
func (f *File) apply(cfg *Config) {
	if f.Server != "" {
		cfg.Server = f.Server
	}
	if f.Timeout != "" {
		d, _ := time.ParseDuration(f.Timeout)
		cfg.Timeout = d
	}
	if f.Auth.User != "" {
		cfg.User = f.Auth.User
	}
	if f.Auth.Password != "" {
		cfg.Password = f.Auth.Password
	}
	if f.MinServerVersion != "" {
		cfg.MinServerVersion = f.MinServerVersion
	}
}
