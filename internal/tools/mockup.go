package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/porcus-tools/internal/mockup"
	"github.com/JaimeStill/porcus-tools/internal/relay"
)

// ValidateSKU checks the SKU against the mockup service. A 404 is a
// definitive "not valid" answer and returns an envelope, not an error.
func (s *system) ValidateSKU(ctx context.Context, sku string) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, missing("sku")
	}

	resp, err := s.remote.Do(ctx, relay.Request{
		Method: http.MethodGet,
		Path:   "/mockup/" + url.PathEscape(sku),
	})
	if err != nil {
		if se, isStatus := relay.AsStatus(err); isStatus && se.Status == http.StatusNotFound {
			return Envelope{
				"success": false,
				"valid":   false,
				"sku":     sku,
				"status":  se.Status,
				"error":   fmt.Sprintf("SKU %s not found", sku),
				"details": se.Body,
			}, nil
		}
		return nil, err
	}

	env := succeeded(resp)
	env["valid"] = true
	env["sku"] = sku
	env["details"] = decodeBody(resp)
	return env, nil
}

func (s *system) GenerateMockup(ctx context.Context, req mockup.Request) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	if err := req.Validate(s.validate); err != nil {
		return nil, invalid(err)
	}

	s.logger.Info("generate mockup", "sku", req.SKU, "width", req.Width, "height", req.Height)

	resp, err := s.remote.Do(ctx, relay.Request{
		Method:  http.MethodPost,
		Path:    "/mockup",
		Body:    req,
		Timeout: s.remote.Config().LongTimeoutDuration(),
	})
	if err != nil {
		return nil, err
	}

	result := decodeBody(resp)

	env := succeeded(resp)
	env["sku"] = req.SKU
	env["mockup_url"] = pick(result, "mockup_url", "url")
	env["job_id"] = pick(result, "job_id")
	env["metadata"] = pick(result, "metadata")
	env["output_image_url"] = req.OutputImageURL
	return env, nil
}

// TempURL requests a writable temporary blob URL for the given file extension.
func (s *system) TempURL(ctx context.Context, extension string) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	extension = strings.TrimPrefix(strings.TrimSpace(extension), ".")
	if extension == "" {
		return nil, missing("extension")
	}

	resp, err := s.remote.Do(ctx, relay.Request{
		Method: http.MethodGet,
		Path:   "/temp_blob",
		Query:  url.Values{"extension": {extension}},
	})
	if err != nil {
		return nil, err
	}

	result := decodeBody(resp)

	env := succeeded(resp)
	env["extension"] = extension
	switch v := result.(type) {
	case string:
		env["temp_url"] = strings.Trim(strings.TrimSpace(v), `"`)
	default:
		env["temp_url"] = pick(v, "temp_url", "url")
	}
	return env, nil
}
