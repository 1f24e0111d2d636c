// Package api exposes the tool operations as JSON-over-HTTP endpoints.
package api

import (
	"net/http"

	"github.com/JaimeStill/porcus-tools/internal/config"
	"github.com/JaimeStill/porcus-tools/internal/infrastructure"
	"github.com/JaimeStill/porcus-tools/pkg/middleware"
	"github.com/JaimeStill/porcus-tools/pkg/module"
	"github.com/JaimeStill/porcus-tools/pkg/openapi"
	"github.com/JaimeStill/porcus-tools/pkg/routes"
)

// NewModule builds the API module mounted at cfg.API.BasePath, including
// its generated OpenAPI document at /openapi.json.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	handler := NewHandler(runtime.Tools, runtime.Logger, runtime.MaxBodySize)

	mux := http.NewServeMux()
	routes.Register(mux, cfg.API.BasePath, spec, handler.Routes())

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
