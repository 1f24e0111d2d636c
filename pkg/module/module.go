// Package module mounts self-contained HTTP handlers under single-segment
// URL prefixes. Each module owns its middleware chain and sees request
// paths relative to its prefix.
package module

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/porcus-tools/pkg/middleware"
)

// Module is an http.Handler mounted at a fixed prefix.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a module at prefix. The prefix must be a single path
// segment with a leading slash, e.g. "/api".
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}

	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module chain.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the router wrapped in the module middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve strips the module prefix and dispatches the request.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = path
	r.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r)
}

func validatePrefix(prefix string) string {
	if prefix == "" {
		return "empty prefix"
	}
	if !strings.HasPrefix(prefix, "/") {
		return "prefix must start with /"
	}
	if strings.Count(prefix, "/") > 1 {
		return "prefix must be a single segment"
	}
	return ""
}
