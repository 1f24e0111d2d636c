package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Env maps environment variable names for storage configuration.
type Env struct {
	BasePath      string
	MaxObjectSize string
}

// Config contains result storage configuration.
type Config struct {
	// BasePath is the directory binary transform results are written to.
	// Default: ".data/results"
	BasePath string `toml:"base_path"`

	// MaxObjectSize caps a single stored object, in human units ("100MB").
	MaxObjectSize    string `toml:"max_object_size"`
	maxObjectSizeVal int64
}

// MaxObjectSizeBytes returns the parsed object size limit.
func (c *Config) MaxObjectSizeBytes() int64 {
	return c.maxObjectSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxObjectSize != "" {
		c.MaxObjectSize = overlay.MaxObjectSize
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/results"
	}
	if c.MaxObjectSize == "" {
		c.MaxObjectSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxObjectSize != "" {
		if v := os.Getenv(env.MaxObjectSize); v != "" {
			c.MaxObjectSize = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.FromHumanSize(c.MaxObjectSize)
	if err != nil {
		return fmt.Errorf("invalid max_object_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_object_size must be positive")
	}
	c.maxObjectSizeVal = size

	return nil
}
