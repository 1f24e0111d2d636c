package tools

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/porcus-tools/internal/relay"
)

// Schema fetches the remote service's OpenAPI document.
func (s *system) Schema(ctx context.Context) (Envelope, error) {
	resp, err := s.remote.Do(ctx, relay.Request{
		Method: http.MethodGet,
		Path:   "/openapi.json",
	})
	if err != nil {
		return nil, err
	}

	env := succeeded(resp)
	env["schema"] = decodeBody(resp)
	return env, nil
}

// Catalog fetches the mockup scene catalog.
func (s *system) Catalog(ctx context.Context) (Envelope, error) {
	resp, err := s.catalog.Do(ctx, relay.Request{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}

	env := succeeded(resp)
	env["catalog"] = decodeBody(resp)
	return env, nil
}

// ProductSpec fetches print specifications for sku from the print-on-demand API.
func (s *system) ProductSpec(ctx context.Context, sku string) (Envelope, error) {
	if !s.prodigi.Configured() {
		return nil, notConfigured(EnvProdigiAPIKey)
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, missing("sku")
	}

	resp, err := s.prodigi.Do(ctx, relay.Request{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(sku),
	})
	if err != nil {
		return nil, err
	}

	env := succeeded(resp)
	env["sku"] = sku
	env["product"] = decodeBody(resp)
	return env, nil
}
