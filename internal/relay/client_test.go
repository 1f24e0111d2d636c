package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/pkg/logging"
)

func newClient(t *testing.T, baseURL, apiKey, maxSize string) *relay.Client {
	t.Helper()
	cfg := &relay.Config{BaseURL: baseURL, APIKey: apiKey, MaxResponseSize: maxSize}
	if err := cfg.Finalize(relay.Defaults{Timeout: "2s"}, nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	return relay.New(cfg, nil, logging.Discard())
}

func TestClient_Do_Success(t *testing.T) {
	var gotKey, gotCT, gotPath, gotQuery string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotCT = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"job_id":"r-1"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/", "secret", "")

	resp, err := c.Do(context.Background(), relay.Request{
		Method: http.MethodPost,
		Path:   "/transform",
		Query:  url.Values{"extension": {"png"}},
		Body:   map[string]any{"source_image_url": "https://x/y.png"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if resp.Status != http.StatusAccepted {
		t.Errorf("Status = %d, want 202", resp.Status)
	}
	if !resp.IsJSON() {
		t.Errorf("IsJSON() = false for %q", resp.ContentType)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q, want secret", gotKey)
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotCT)
	}
	if gotPath != "/transform" {
		t.Errorf("path = %q, want /transform", gotPath)
	}
	if gotQuery != "extension=png" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotBody["source_image_url"] != "https://x/y.png" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestClient_Do_NoKeyNoHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey("x-api-key")]
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, "", "")
	if c.Configured() {
		t.Error("Configured() = true without a key")
	}

	if _, err := c.Do(context.Background(), relay.Request{Method: http.MethodGet, Path: "/api/json"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if present {
		t.Error("x-api-key sent without a configured key")
	}
}

func TestClient_Do_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"bad crop"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "k", "").Do(context.Background(), relay.Request{Method: http.MethodPost, Path: "/sync_transform"})

	se, ok := relay.AsStatus(err)
	if !ok {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.Status != http.StatusUnprocessableEntity || se.Body != `{"detail":"bad crop"}` {
		t.Errorf("StatusError = %+v", se)
	}
	if !errors.Is(err, relay.ErrRemoteStatus) {
		t.Error("StatusError does not unwrap to ErrRemoteStatus")
	}
	if se.Error() != "API request failed with status 422" {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestClient_Do_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newClient(t, addr, "k", "").Do(context.Background(), relay.Request{Method: http.MethodGet, Path: "/openapi.json"})
	if !errors.Is(err, relay.ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newClient(t, srv.URL, "k", "").Do(context.Background(), relay.Request{
		Method:  http.MethodGet,
		Path:    "/slow",
		Timeout: 50 * time.Millisecond,
	})
	if !errors.Is(err, relay.ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}

func TestClient_Do_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, strings.NewReader(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "k", "16B").Do(context.Background(), relay.Request{Method: http.MethodGet, Path: "/"})
	if !errors.Is(err, relay.ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}

func TestStatusError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{401, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			se := &relay.StatusError{Status: tt.status}
			if got := se.Retryable(); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_REMOTE_KEY", "from-env")

	cfg := &relay.Config{}
	err := cfg.Finalize(
		relay.Defaults{BaseURL: "https://porcus-lardum-func-dev.azurewebsites.net", LongTimeout: "60s"},
		&relay.Env{APIKey: "TEST_REMOTE_KEY"},
	)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.APIKey)
	}
	if cfg.TimeoutDuration() != 30*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 30s", cfg.TimeoutDuration())
	}
	if cfg.LongTimeoutDuration() != 60*time.Second {
		t.Errorf("LongTimeoutDuration() = %v, want 60s", cfg.LongTimeoutDuration())
	}
	if cfg.MaxResponseSizeBytes() != 100_000_000 {
		t.Errorf("MaxResponseSizeBytes() = %d", cfg.MaxResponseSizeBytes())
	}
}

func TestConfig_Finalize_InvalidBaseURL(t *testing.T) {
	cfg := &relay.Config{BaseURL: "not a url"}
	if err := cfg.Finalize(relay.Defaults{}, nil); err == nil {
		t.Error("Finalize() accepted invalid base_url")
	}
}
