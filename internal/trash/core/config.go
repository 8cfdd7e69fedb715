package core

import (
	"fmt"
	"net/url"
	"time"
)

const DefaultConcurrency = 20

// Config holds the connection settings of a storage.
// It is not modified after the storage is created.
type Config struct {
	// BaseURL is the server root, e.g. https://cloud.example.com
	BaseURL string

	User     string
	Password string

	// Concurrency is the worker-pool size; the connection pool is sized to match
	Concurrency int

	// Timeout bounds a single request, zero means no limit
	Timeout time.Duration

	UserAgent string
}

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
	}
}

// Validate checks that the configuration is structurally usable.
// It does not contact the server.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url must be http or https: %q", ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base url has no host: %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.User == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}
