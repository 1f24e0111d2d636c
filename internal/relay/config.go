package relay

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Env maps environment variable names for a remote endpoint.
type Env struct {
	BaseURL         string
	APIKey          string
	Timeout         string
	LongTimeout     string
	MaxResponseSize string
}

// Config describes one remote endpoint.
type Config struct {
	BaseURL string `toml:"base_url"`

	// APIKey is sent as x-api-key. Empty means the endpoint is unauthenticated
	// or, for endpoints that require it, not configured.
	APIKey string `toml:"api_key"`

	// Timeout bounds a single call. LongTimeout applies to slow operations
	// such as mockup rendering.
	Timeout     string `toml:"timeout"`
	LongTimeout string `toml:"long_timeout"`

	MaxResponseSize    string `toml:"max_response_size"`
	maxResponseSizeVal int64
}

// Defaults seed a Config before Finalize fills the remaining zero values.
type Defaults struct {
	BaseURL     string
	Timeout     string
	LongTimeout string
}

// TimeoutDuration returns the parsed per-call timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// LongTimeoutDuration returns the parsed timeout for slow operations.
func (c *Config) LongTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.LongTimeout)
	return d
}

// MaxResponseSizeBytes returns the parsed response body limit.
func (c *Config) MaxResponseSizeBytes() int64 {
	return c.maxResponseSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the endpoint.
func (c *Config) Finalize(defaults Defaults, env *Env) error {
	c.loadDefaults(defaults)
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.LongTimeout != "" {
		c.LongTimeout = overlay.LongTimeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
}

func (c *Config) loadDefaults(d Defaults) {
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.LongTimeout == "" {
		c.LongTimeout = d.LongTimeout
	}
	if c.LongTimeout == "" {
		c.LongTimeout = c.Timeout
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.BaseURL, &c.BaseURL)
	set(env.APIKey, &c.APIKey)
	set(env.Timeout, &c.Timeout)
	set(env.LongTimeout, &c.LongTimeout)
	set(env.MaxResponseSize, &c.MaxResponseSize)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.LongTimeout); err != nil {
		return fmt.Errorf("invalid long_timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxResponseSize)
	if err != nil {
		return fmt.Errorf("invalid max_response_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_response_size must be positive")
	}
	c.maxResponseSizeVal = size

	return nil
}
