package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/porcus-tools/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed without config.toml: %v", err)
	}

	if cfg.Remote.BaseURL != "https://porcus-lardum-func-dev.azurewebsites.net" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.TimeoutDuration() != 30*time.Second {
		t.Errorf("Remote timeout = %v, want 30s", cfg.Remote.TimeoutDuration())
	}
	if cfg.Remote.LongTimeoutDuration() != 60*time.Second {
		t.Errorf("Remote long timeout = %v, want 60s", cfg.Remote.LongTimeoutDuration())
	}
	if cfg.Prodigi.BaseURL != "https://api.sandbox.prodigi.com/v4.0" {
		t.Errorf("Prodigi.BaseURL = %q", cfg.Prodigi.BaseURL)
	}
	if cfg.Catalog.BaseURL != "https://blender-mockups-func-dev.azurewebsites.net/api/json" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.Remote.APIKey != "" {
		t.Errorf("Remote.APIKey = %q, want empty", cfg.Remote.APIKey)
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, "config.toml", `
shutdown_timeout = "15s"

[server]
port = 8080

[remote]
base_url = "https://remote.example"
timeout = "10s"
`)
	writeFile(t, dir, "config.staging.toml", `
[remote]
timeout = "20s"
`)
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Remote.BaseURL != "https://remote.example" {
		t.Errorf("Remote.BaseURL = %q, base value lost", cfg.Remote.BaseURL)
	}
	if cfg.Remote.TimeoutDuration() != 20*time.Second {
		t.Errorf("Remote timeout = %v, want overlay 20s", cfg.Remote.TimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration() != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("PORCUS_LARDUM_API_KEY", "porcus-key")
	t.Setenv("PORCUS_LARDUM_BASE_URL", "http://localhost:9000")
	t.Setenv("PRODIGI_API_KEY", "prodigi-key")
	t.Setenv("MOCKUP_CATALOG_URL", "http://localhost:9001/catalog")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv(config.EnvFunctionsPort, "4000")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Remote.APIKey != "porcus-key" {
		t.Errorf("Remote.APIKey = %q", cfg.Remote.APIKey)
	}
	if cfg.Remote.BaseURL != "http://localhost:9000" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Prodigi.APIKey != "prodigi-key" {
		t.Errorf("Prodigi.APIKey = %q", cfg.Prodigi.APIKey)
	}
	if cfg.Catalog.BaseURL != "http://localhost:9001/catalog" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want functions port 4000", cfg.Server.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"duration", `shutdown_timeout = "soon"`},
		{"base url", "[remote]\nbase_url = \"::\""},
		{"response size", "[remote]\nmax_response_size = \"huge\""},
		{"log format", "[logging]\nformat = \"xml\""},
		{"malformed toml", "[server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			writeFile(t, dir, "config.toml", tt.content)

			if _, err := config.Load(); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 7071}
	if got := cfg.Addr(); got != "127.0.0.1:7071" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestServerConfig_Merge(t *testing.T) {
	base := &config.ServerConfig{Port: 7071, ReadTimeout: "30s", WriteTimeout: "30s"}
	base.Merge(&config.ServerConfig{WriteTimeout: "60s"})

	if base.ReadTimeout != "30s" {
		t.Errorf("ReadTimeout = %q, should not change", base.ReadTimeout)
	}
	if base.WriteTimeout != "60s" {
		t.Errorf("WriteTimeout = %q, want 60s", base.WriteTimeout)
	}
	if base.Port != 7071 {
		t.Errorf("Port = %d, should not change", base.Port)
	}
}
