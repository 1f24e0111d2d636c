package tools

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/internal/transform"
)

// ResultKeyPrefix names persisted binary transform results.
const ResultKeyPrefix = "transformed_image"

// pdfcpu otherwise creates config.yml under the user config dir on first use
// and exits the process if it cannot.
func init() {
	model.ConfigPath = "disable"
}

func (s *system) Transform(ctx context.Context, p transform.Params) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.SourceImageURL) == "" {
		return nil, missing("source_image_url")
	}

	payload, err := s.builder.Sync(p)
	if err != nil {
		return nil, invalid(err)
	}

	s.logger.Info("sync transform", "source", p.SourceImageURL, "operations", payload.Transform.Count())

	resp, err := s.remote.Do(ctx, relay.Request{
		Method: http.MethodPost,
		Path:   "/sync_transform",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	if resp.IsJSON() {
		result := decodeBody(resp)

		env := succeeded(resp)
		env["transformed_url"] = pick(result, "url")
		env["metadata"] = pick(result, "metadata")
		env["processing_time"] = pick(result, "processing_time")
		if env["metadata"] == nil {
			env["metadata"] = map[string]any{}
		}
		return env, nil
	}

	return s.persist(ctx, resp)
}

// persist stores a binary transform result under an extension derived
// from its content type.
func (s *system) persist(ctx context.Context, resp *relay.Response) (Envelope, error) {
	ext := Extension(resp.ContentType)
	key := ResultKeyPrefix + "." + ext

	if err := s.store.Store(ctx, key, resp.Body); err != nil {
		return nil, err
	}

	path, err := s.store.Path(ctx, key)
	if err != nil {
		return nil, err
	}

	env := succeeded(resp)
	env["message"] = "Image transformed successfully"
	env["saved_to"] = path
	env["content_type"] = resp.ContentType
	env["size"] = len(resp.Body)

	if ext == "pdf" {
		count, err := api.PageCount(bytes.NewReader(resp.Body), model.NewDefaultConfiguration())
		if err != nil {
			s.logger.Warn("pdf page count failed", "error", err)
		} else {
			env["page_count"] = count
		}
	}

	s.logger.Info("transform result stored",
		"path", path,
		"content_type", resp.ContentType,
		"size", units.HumanSize(float64(len(resp.Body))),
	)

	return env, nil
}

// Extension maps a content type to the stored file extension.
// Unrecognized types fall back to jpg.
func Extension(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "gif"):
		return "gif"
	case strings.Contains(ct, "webp"):
		return "webp"
	case strings.Contains(ct, "pdf"):
		return "pdf"
	default:
		return "jpg"
	}
}

func (s *system) TransformAsync(ctx context.Context, p transform.Params) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.SourceImageURL) == "" {
		return nil, missing("source_image_url")
	}
	if strings.TrimSpace(p.OutputImageURL) == "" {
		return nil, missing("output_image_url")
	}

	payload, err := s.builder.Async(p)
	if err != nil {
		return nil, invalid(err)
	}

	s.logger.Info("async transform",
		"source", p.SourceImageURL,
		"transform_job_id", payload.TransformJobID,
		"operations", payload.Transform.Count(),
	)

	return s.queue(ctx, payload)
}

func (s *system) RemoveBackground(ctx context.Context, req BackgroundRequest) (Envelope, error) {
	if err := s.CheckAPIKey(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SourceImageURL) == "" {
		return nil, missing("source_image_url")
	}
	if strings.TrimSpace(req.OutputImageURL) == "" {
		return nil, missing("output_image_url")
	}

	payload := s.builder.RemoveBackground(req.SourceImageURL, req.OutputImageURL, req.TransformJobID)

	s.logger.Info("remove background", "source", req.SourceImageURL, "transform_job_id", payload.TransformJobID)

	return s.queue(ctx, payload)
}

// queue submits an async payload. The remote job id is echoed unchanged
// next to the correlation id the payload carried.
func (s *system) queue(ctx context.Context, payload *transform.Payload) (Envelope, error) {
	resp, err := s.remote.Do(ctx, relay.Request{
		Method: http.MethodPost,
		Path:   "/transform",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	result := decodeBody(resp)

	env := succeeded(resp)
	env["message"] = "Transformation queued"
	env["transform_job_id"] = payload.TransformJobID
	env["job_id"] = pick(result, "job_id")
	env["output_image_url"] = payload.OutputImageURL
	env["response"] = result
	return env, nil
}
