// Package relay performs single outbound HTTP calls to remote services
// and classifies their outcome as success, remote failure or transport failure.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// APIKeyHeader carries the static API key on authenticated endpoints.
const APIKeyHeader = "x-api-key"

// Request describes one outbound call. Path is joined onto the
// endpoint's base URL; Body, when non-nil, is sent as JSON.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Timeout time.Duration
}

// Response is a successful (2xx) remote answer.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// MediaType returns the content type without parameters, lowercased.
func (r *Response) MediaType() string {
	mt, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(r.ContentType, ";")[0]))
	}
	return mt
}

// IsJSON reports whether the response declares a JSON body.
func (r *Response) IsJSON() bool {
	mt := r.MediaType()
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Client issues calls against one configured endpoint. No retries are attempted.
type Client struct {
	http    *http.Client
	cfg     *Config
	logger  *slog.Logger
	baseURL string
}

// New creates a Client for cfg. A nil httpClient uses http.DefaultClient.
func New(cfg *Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:    httpClient,
		cfg:     cfg,
		logger:  logger.With("system", "relay", "endpoint", cfg.BaseURL),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Configured reports whether an API key is present for this endpoint.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Config returns the endpoint configuration.
func (c *Client) Config() *Config {
	return c.cfg
}

// Do performs exactly one HTTP request. A non-2xx answer returns a
// *StatusError; anything that prevents reading a response wraps ErrTransport.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.TimeoutDuration()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("remote call failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := c.read(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Info(
		"remote call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"size", units.HumanSize(float64(len(body))),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		httpReq.Header.Set(APIKeyHeader, c.cfg.APIKey)
	}

	return httpReq, nil
}

func (c *Client) read(r io.Reader) ([]byte, error) {
	limit := c.cfg.MaxResponseSizeBytes()
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if limit > 0 && int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: response exceeds %s", ErrTransport, units.HumanSize(float64(limit)))
	}
	return body, nil
}
