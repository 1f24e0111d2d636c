// Package tools implements the operations shared by the HTTP and
// tool-protocol front-ends: guard checks, payload assembly, one relayed
// call, and mapping of the outcome to an Envelope.
package tools

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/porcus-tools/internal/mockup"
	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/internal/transform"
	"github.com/JaimeStill/porcus-tools/pkg/storage"
	"github.com/JaimeStill/porcus-tools/pkg/validation"
)

// Environment variables named in configuration errors.
const (
	EnvAPIKey        = "PORCUS_LARDUM_API_KEY"
	EnvProdigiAPIKey = "PRODIGI_API_KEY"
)

// BackgroundRequest identifies the images for background removal.
type BackgroundRequest struct {
	SourceImageURL string `json:"source_image_url"`
	OutputImageURL string `json:"output_image_url"`
	TransformJobID string `json:"transform_job_id,omitempty"`
}

// SKURequest names a product SKU.
type SKURequest struct {
	SKU string `json:"sku"`
}

// TempURLRequest names the file extension of a temporary blob.
type TempURLRequest struct {
	Extension string `json:"extension"`
}

// System defines the relay operations. Each returns an Envelope on any
// outcome the remote service decided, and an error for guard, transport
// or remote failures.
type System interface {
	CheckAPIKey() error

	Transform(ctx context.Context, p transform.Params) (Envelope, error)
	TransformAsync(ctx context.Context, p transform.Params) (Envelope, error)
	RemoveBackground(ctx context.Context, req BackgroundRequest) (Envelope, error)

	ValidateSKU(ctx context.Context, sku string) (Envelope, error)
	GenerateMockup(ctx context.Context, req mockup.Request) (Envelope, error)
	TempURL(ctx context.Context, extension string) (Envelope, error)

	Schema(ctx context.Context) (Envelope, error)
	Catalog(ctx context.Context) (Envelope, error)
	ProductSpec(ctx context.Context, sku string) (Envelope, error)
}

// Clients groups the remote endpoints the system relays to.
type Clients struct {
	Remote  *relay.Client
	Prodigi *relay.Client
	Catalog *relay.Client
}

type system struct {
	remote   *relay.Client
	prodigi  *relay.Client
	catalog  *relay.Client
	builder  *transform.Builder
	validate *validation.Validator
	store    storage.System
	logger   *slog.Logger
}

// New creates the tools System.
func New(clients Clients, store storage.System, v *validation.Validator, logger *slog.Logger) System {
	return &system{
		remote:   clients.Remote,
		prodigi:  clients.Prodigi,
		catalog:  clients.Catalog,
		builder:  transform.NewBuilder(v, logger),
		validate: v,
		store:    store,
		logger:   logger.With("system", "tools"),
	}
}

// CheckAPIKey fails with ErrNotConfigured when the primary API key is absent.
func (s *system) CheckAPIKey() error {
	if !s.remote.Configured() {
		return notConfigured(EnvAPIKey)
	}
	return nil
}
