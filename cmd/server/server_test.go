package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/JaimeStill/porcus-tools/internal/config"
)

func availablePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find available port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServer_Lifecycle(t *testing.T) {
	port := availablePort(t)

	t.Chdir(t.TempDir())
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", strconv.Itoa(port))
	t.Setenv("STORAGE_BASE_PATH", t.TempDir())
	t.Setenv("LOGGING_LEVEL", "error")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	base := fmt.Sprintf("http://127.0.0.1:%d", port)

	if status, body := get(t, base+"/healthz"); status != http.StatusOK || body != "OK" {
		t.Errorf("healthz = %d %q", status, body)
	}

	srv.infra.Lifecycle.WaitForStartup()
	if status, body := get(t, base+"/readyz"); status != http.StatusOK || body != "READY" {
		t.Errorf("readyz = %d %q", status, body)
	}

	if status, _ := get(t, base+"/api/openapi.json"); status != http.StatusOK {
		t.Errorf("openapi.json status = %d", status)
	}

	if status, _ := get(t, base+"/scalar"); status != http.StatusOK {
		t.Errorf("scalar status = %d", status)
	}

	if err := srv.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get(base + "/healthz"); err == nil {
		t.Error("server still accepting connections after shutdown")
	}
}

type readiness bool

func (r readiness) Ready() bool { return bool(r) }

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		ready      bool
		wantStatus int
	}{
		{true, http.StatusOK},
		{false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatBool(tt.ready), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleReadinessCheck(rec, readiness(tt.ready))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
