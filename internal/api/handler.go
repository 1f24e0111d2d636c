package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/porcus-tools/internal/mockup"
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/internal/transform"
	"github.com/JaimeStill/porcus-tools/pkg/decode"
	"github.com/JaimeStill/porcus-tools/pkg/routes"
)

type Handler struct {
	sys         tools.System
	logger      *slog.Logger
	maxBodySize int64
}

func NewHandler(sys tools.System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Tools"},
		Description: "Image transformation and mockup relay",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/transform", Handler: h.Transform, OpenAPI: Spec.Transform},
			{Method: "POST", Pattern: "/transform/async", Handler: h.TransformAsync, OpenAPI: Spec.TransformAsync},
			{Method: "POST", Pattern: "/remove_background", Handler: h.RemoveBackground, OpenAPI: Spec.RemoveBackground},
			{Method: "POST", Pattern: "/validate_sku", Handler: h.ValidateSKU, OpenAPI: Spec.ValidateSKU},
			{Method: "POST", Pattern: "/mockup", Handler: h.GenerateMockup, OpenAPI: Spec.GenerateMockup},
			{Method: "POST", Pattern: "/temp_url", Handler: h.TempURL, OpenAPI: Spec.TempURL},
			{Method: "GET", Pattern: "/schema", Handler: h.Schema, OpenAPI: Spec.Schema},
			{Method: "GET", Pattern: "/catalog", Handler: h.Catalog, OpenAPI: Spec.Catalog},
			{Method: "GET", Pattern: "/products/{sku}", Handler: h.ProductSpec, OpenAPI: Spec.ProductSpec},
		},
	}
}

// bind checks the API key before reading the body, so an unconfigured
// service answers 500 regardless of payload.
func bind[T any](h *Handler, w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T

	if err := h.sys.CheckAPIKey(); err != nil {
		respondFailure(w, r, h.logger, err)
		return zero, false
	}

	body, err := decode.Body[T](r, h.maxBodySize)
	if err != nil {
		respondFailure(w, r, h.logger, malformed(err))
		return zero, false
	}
	return body, true
}

func (h *Handler) finish(w http.ResponseWriter, r *http.Request, env tools.Envelope, err error) {
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respond(w, env)
}

func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	params, ok := bind[transform.Params](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.Transform(r.Context(), params)
	h.finish(w, r, env, err)
}

func (h *Handler) TransformAsync(w http.ResponseWriter, r *http.Request) {
	params, ok := bind[transform.Params](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.TransformAsync(r.Context(), params)
	h.finish(w, r, env, err)
}

func (h *Handler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[tools.BackgroundRequest](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.RemoveBackground(r.Context(), req)
	h.finish(w, r, env, err)
}

func (h *Handler) ValidateSKU(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[tools.SKURequest](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.ValidateSKU(r.Context(), req.SKU)
	h.finish(w, r, env, err)
}

func (h *Handler) GenerateMockup(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[mockup.Request](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.GenerateMockup(r.Context(), req)
	h.finish(w, r, env, err)
}

func (h *Handler) TempURL(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[tools.TempURLRequest](h, w, r)
	if !ok {
		return
	}

	env, err := h.sys.TempURL(r.Context(), req.Extension)
	h.finish(w, r, env, err)
}

func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	env, err := h.sys.Schema(r.Context())
	h.finish(w, r, env, err)
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	env, err := h.sys.Catalog(r.Context())
	h.finish(w, r, env, err)
}

func (h *Handler) ProductSpec(w http.ResponseWriter, r *http.Request) {
	env, err := h.sys.ProductSpec(r.Context(), r.PathValue("sku"))
	h.finish(w, r, env, err)
}
