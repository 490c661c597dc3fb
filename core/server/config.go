package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of uploaded feeds.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// ShutdownSeconds bounds graceful shutdown.
	ShutdownSeconds int `mapstructure:"shutdown_seconds" default:"30"`
}

// Validate checks the values that cannot be defaulted safely.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("server body limit must be positive, got %d", c.BodyLimitMB)
	}
	return nil
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
