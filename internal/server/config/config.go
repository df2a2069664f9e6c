// Package config handles configuration for the reel proxy, including
// defaults, JSON overlay, process environment and command-line flags.
package config

import (
	"errors"
	"net"
	"time"
)

// ErrMissingAPIKey is returned by Validate when no provider credential is
// configured. The proxy refuses to start in that case.
var ErrMissingAPIKey = errors.New("API_KEY is missing from environment variables")

// Config holds runtime settings for the reel proxy.
//
// Fields:
//   - Port: TCP port the HTTP server listens on.
//   - APIKey: provider credential, never sent to browsers.
//   - Model: provider video model name.
//   - ProviderEndpoint: base URL of the provider REST API.
//   - PollInterval / PollMaxAttempts: job polling cadence and ceiling.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     optional archive of rendered reels. Empty bucket disables it.
type Config struct {
	Port             string
	APIKey           string
	Model            string
	ProviderEndpoint string
	PollInterval     time.Duration
	PollMaxAttempts  int
	ShutdownTimeout  time.Duration
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3AccessKey      string
	S3SecretKey      string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.Model = "veo-3.1-fast-generate-preview"
	c.ProviderEndpoint = "https://generativelanguage.googleapis.com"
	c.PollInterval = 5 * time.Second
	c.PollMaxAttempts = 120
	c.ShutdownTimeout = 15 * time.Second
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the process environment (including a .env
// file when present) and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports configuration the proxy cannot serve with.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// ArchiveEnabled reports whether rendered reels should be copied to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}
