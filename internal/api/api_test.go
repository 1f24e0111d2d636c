package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/JaimeStill/porcus-tools/internal/api"
	"github.com/JaimeStill/porcus-tools/internal/config"
	"github.com/JaimeStill/porcus-tools/internal/infrastructure"
	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/pkg/module"
)

type remote struct {
	calls atomic.Int32
	path  atomic.Value
}

// newRouter serves the API module against a fake remote that replies
// with status and body.
func newRouter(t *testing.T, key string, status int, body string) (*module.Router, *remote) {
	t.Helper()

	rem := &remote{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rem.calls.Add(1)
		rem.path.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BASE_PATH", t.TempDir())
	t.Setenv("PORCUS_LARDUM_BASE_URL", srv.URL)
	t.Setenv("PORCUS_LARDUM_API_KEY", key)
	t.Setenv("PRODIGI_BASE_URL", srv.URL)
	t.Setenv("PRODIGI_API_KEY", key)
	t.Setenv("MOCKUP_CATALOG_URL", srv.URL+"/catalog")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	infra, err := infrastructure.New(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router, rem
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestEndpoints_Success(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		remotePath string
	}{
		{"transform", "POST", "/api/transform", `{"source_image_url":"s","grayscale":true}`, "/sync_transform"},
		{"async", "POST", "/api/transform/async", `{"source_image_url":"s","output_image_url":"o"}`, "/transform"},
		{"remove background", "POST", "/api/remove_background", `{"source_image_url":"s","output_image_url":"o"}`, "/transform"},
		{"validate sku", "POST", "/api/validate_sku", `{"sku":"GLOBAL-CAN-10x10"}`, "/mockup/GLOBAL-CAN-10x10"},
		{"mockup", "POST", "/api/mockup", `{"sku":"x","width":10,"height":10,"output_image_url":"o"}`, "/mockup"},
		{"temp url", "POST", "/api/temp_url", `{"extension":"png"}`, "/temp_blob"},
		{"schema", "GET", "/api/schema", "", "/openapi.json"},
		{"catalog", "GET", "/api/catalog", "", "/catalog"},
		{"product", "GET", "/api/products/GLOBAL-CAN-10x10", "", "/products/GLOBAL-CAN-10x10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, rem := newRouter(t, "k", http.StatusOK, `{"url":"https://blob/x","job_id":"r-1"}`)

			rec, env := do(t, router, tt.method, tt.path, tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if env["success"] != true {
				t.Errorf("success = %v", env["success"])
			}
			if got := rem.path.Load(); got != tt.remotePath {
				t.Errorf("remote path = %v, want %s", got, tt.remotePath)
			}
		})
	}
}

func TestMissingKey_500BeforeDecode(t *testing.T) {
	router, rem := newRouter(t, "", http.StatusOK, `{}`)

	rec, env := do(t, router, "POST", "/api/transform", `not json`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if env["kind"] != "config" || env["retryable"] != false {
		t.Errorf("envelope = %v", env)
	}
	if !strings.Contains(env["error"].(string), "PORCUS_LARDUM_API_KEY") {
		t.Errorf("error = %v", env["error"])
	}
	if rem.calls.Load() != 0 {
		t.Errorf("remote calls = %d, want 0", rem.calls.Load())
	}
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/api/transform", `{"source_image_url":`},
		{"missing source", "/api/transform", `{}`},
		{"missing output", "/api/transform/async", `{"source_image_url":"s"}`},
		{"bad crop box", "/api/transform", `{"source_image_url":"s","crop_box_pixels":[1,2]}`},
		{"bad rotate_to", "/api/transform", `{"source_image_url":"s","rotate_to":"sideways"}`},
		{"mockup width", "/api/mockup", `{"sku":"x","width":0,"height":1,"output_image_url":"o"}`},
		{"empty extension", "/api/temp_url", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, rem := newRouter(t, "k", http.StatusOK, `{}`)

			rec, env := do(t, router, "POST", tt.path, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if env["kind"] != "validation" {
				t.Errorf("kind = %v", env["kind"])
			}
			if rem.calls.Load() != 0 {
				t.Errorf("remote calls = %d, want 0", rem.calls.Load())
			}
		})
	}
}

func TestRemoteStatusPassthrough(t *testing.T) {
	router, _ := newRouter(t, "k", http.StatusServiceUnavailable, `{"detail":"busy"}`)

	rec, env := do(t, router, "POST", "/api/transform", `{"source_image_url":"s"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if env["kind"] != "remote" || env["retryable"] != true {
		t.Errorf("envelope = %v", env)
	}
	if env["details"] != `{"detail":"busy"}` {
		t.Errorf("details = %v", env["details"])
	}
}

func TestValidateSKU_NotFound(t *testing.T) {
	router, _ := newRouter(t, "k", http.StatusNotFound, `{"detail":"unknown"}`)

	rec, env := do(t, router, "POST", "/api/validate_sku", `{"sku":"NOPE"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if env["valid"] != false || env["status"] != float64(404) {
		t.Errorf("envelope = %v", env)
	}
}

func TestAsyncStatusPassthrough(t *testing.T) {
	router, _ := newRouter(t, "k", http.StatusAccepted, `{"job_id":"remote-9"}`)

	rec, env := do(t, router, "POST", "/api/transform/async",
		`{"source_image_url":"s","output_image_url":"o","transform_job_id":"mine"}`)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if env["job_id"] != "remote-9" || env["transform_job_id"] != "mine" {
		t.Errorf("envelope = %v", env)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	router, _ := newRouter(t, "k", http.StatusOK, `{}`)

	req := httptest.NewRequest("GET", "/api/openapi.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var doc struct {
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, path := range []string{"/api/transform", "/api/transform/async", "/api/products/{sku}"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("document missing path %s", path)
		}
	}
	for _, name := range []string{tools.SchemaTransformParams, tools.SchemaEnvelope} {
		if _, ok := doc.Components.Schemas[name]; !ok {
			t.Errorf("document missing schema %s", name)
		}
	}
}

func TestBodyTooLarge(t *testing.T) {
	router, _ := newRouter(t, "k", http.StatusOK, `{}`)

	big := `{"source_image_url":"` + string(bytes.Repeat([]byte("a"), 2<<20)) + `"}`
	rec, _ := do(t, router, "POST", "/api/transform", big)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config", tools.ErrNotConfigured, http.StatusInternalServerError},
		{"validation", tools.ErrValidation, http.StatusBadRequest},
		{"remote", &relay.StatusError{Status: 422}, 422},
		{"transport", relay.ErrTransport, http.StatusBadGateway},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := api.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
