package main

import (
	"net/http"

	"github.com/JaimeStill/porcus-tools/internal/api"
	"github.com/JaimeStill/porcus-tools/internal/config"
	"github.com/JaimeStill/porcus-tools/internal/infrastructure"
	"github.com/JaimeStill/porcus-tools/pkg/lifecycle"
	"github.com/JaimeStill/porcus-tools/pkg/module"
	"github.com/JaimeStill/porcus-tools/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule, err := scalar.NewModule(
		"/scalar",
		cfg.API.OpenAPI.Title,
		cfg.API.BasePath+"/openapi.json",
	)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", handleHealthCheck)
	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, infra.Lifecycle)
	})

	return router
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
