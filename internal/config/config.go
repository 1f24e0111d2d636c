// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/pkg/logging"
	"github.com/JaimeStill/porcus-tools/pkg/storage"
)

const (
	// BaseConfigFile is the primary configuration file name. It is optional;
	// every setting has a default or an environment override.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"

	// EnvServiceVersion overrides the reported service version.
	EnvServiceVersion = "SERVICE_VERSION"
)

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var storageEnv = &storage.Env{
	BasePath:      "STORAGE_BASE_PATH",
	MaxObjectSize: "STORAGE_MAX_OBJECT_SIZE",
}

var remoteEnv = &relay.Env{
	BaseURL:         "PORCUS_LARDUM_BASE_URL",
	APIKey:          "PORCUS_LARDUM_API_KEY",
	Timeout:         "PORCUS_LARDUM_TIMEOUT",
	LongTimeout:     "PORCUS_LARDUM_MOCKUP_TIMEOUT",
	MaxResponseSize: "PORCUS_LARDUM_MAX_RESPONSE_SIZE",
}

var prodigiEnv = &relay.Env{
	BaseURL: "PRODIGI_BASE_URL",
	APIKey:  "PRODIGI_API_KEY",
	Timeout: "PRODIGI_TIMEOUT",
}

var catalogEnv = &relay.Env{
	BaseURL: "MOCKUP_CATALOG_URL",
	Timeout: "MOCKUP_CATALOG_TIMEOUT",
}

var (
	remoteDefaults = relay.Defaults{
		BaseURL:     "https://porcus-lardum-func-dev.azurewebsites.net",
		Timeout:     "30s",
		LongTimeout: "60s",
	}
	prodigiDefaults = relay.Defaults{
		BaseURL: "https://api.sandbox.prodigi.com/v4.0",
		Timeout: "30s",
	}
	catalogDefaults = relay.Defaults{
		BaseURL: "https://blender-mockups-func-dev.azurewebsites.net/api/json",
		Timeout: "30s",
	}
)

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Logging         logging.Config `toml:"logging"`
	Storage         storage.Config `toml:"storage"`
	API             APIConfig      `toml:"api"`
	Remote          relay.Config   `toml:"remote"`
	Prodigi         relay.Config   `toml:"prodigi"`
	Catalog         relay.Config   `toml:"catalog"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
	Domain          string         `toml:"domain"`
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Env returns the active overlay environment name.
func (c *Config) Env() string {
	return os.Getenv(EnvServiceEnv)
}

// Load reads the optional base configuration file, applies any
// environment-specific overlay, and finalizes the result.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Remote.Finalize(remoteDefaults, remoteEnv); err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	if err := c.Prodigi.Finalize(prodigiDefaults, prodigiEnv); err != nil {
		return fmt.Errorf("prodigi: %w", err)
	}
	if err := c.Catalog.Finalize(catalogDefaults, catalogEnv); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Domain != "" {
		c.Domain = overlay.Domain
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Remote.Merge(&overlay.Remote)
	c.Prodigi.Merge(&overlay.Prodigi)
	c.Catalog.Merge(&overlay.Catalog)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
