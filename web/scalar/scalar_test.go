package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/porcus-tools/pkg/module"
	"github.com/JaimeStill/porcus-tools/web/scalar"
)

func TestModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", "Porcus Tools API", "/api/openapi.json")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/scalar", http.StatusOK},
		{"/scalar/", http.StatusOK},
		{"/scalar/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			body := rec.Body.String()
			if !strings.Contains(body, `data-url="/api/openapi.json"`) {
				t.Errorf("page does not reference the document: %s", body)
			}
			if !strings.Contains(body, "<title>Porcus Tools API</title>") {
				t.Errorf("page title missing: %s", body)
			}
		})
	}
}
