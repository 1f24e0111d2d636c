package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/porcus-tools/internal/mockup"
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/internal/transform"
	"github.com/JaimeStill/porcus-tools/pkg/decode"
	"github.com/JaimeStill/porcus-tools/pkg/openapi"
)

// Tool is a tool definition as listed by tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema *openapi.Schema `json:"inputSchema"`

	keyed bool
	call  func(ctx context.Context, sys tools.System, args json.RawMessage) (tools.Envelope, error)
}

// invoke decodes args into T and passes them to fn.
func invoke[T any](fn func(tools.System, context.Context, T) (tools.Envelope, error)) func(context.Context, tools.System, json.RawMessage) (tools.Envelope, error) {
	return func(ctx context.Context, sys tools.System, args json.RawMessage) (tools.Envelope, error) {
		v, err := decode.JSON[T](args)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", tools.ErrValidation, err)
		}
		return fn(sys, ctx, v)
	}
}

func schema(name string) *openapi.Schema {
	return tools.ParamSchemas()[name]
}

func noArguments() *openapi.Schema {
	return &openapi.Schema{Type: "object", Properties: map[string]*openapi.Schema{}}
}

var definitions = []Tool{
	{
		Name: "transform_image",
		Description: "Transform an image synchronously. Supports border crop, crop box, aspect-ratio crop, " +
			"padding, contain, DPI override, rotation, grayscale, transparency handling, sticker border, " +
			"canvas expansion and PDF output. Dimensions accept pixels, millimeters or inches; pixels take " +
			"precedence over millimeters, millimeters over inches. Returns the transformed image URL and metadata, " +
			"or the local path of a binary result.",
		InputSchema: schema(tools.SchemaTransformParams),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, p transform.Params) (tools.Envelope, error) {
			return sys.Transform(ctx, p)
		}),
	},
	{
		Name: "async_image_transformation",
		Description: "Queue an image transformation whose result is written to output_image_url. " +
			"Accepts the same operations as transform_image. Returns the correlation id and the remote job id.",
		InputSchema: schema(tools.SchemaAsyncParams),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, p transform.Params) (tools.Envelope, error) {
			return sys.TransformAsync(ctx, p)
		}),
	},
	{
		Name:        "remove_background",
		Description: "Queue background removal for an image; the result is written to output_image_url.",
		InputSchema: schema(tools.SchemaBackgroundRequest),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, req tools.BackgroundRequest) (tools.Envelope, error) {
			return sys.RemoveBackground(ctx, req)
		}),
	},
	{
		Name:        "validate_sku",
		Description: "Check whether a product SKU is known to the mockup service.",
		InputSchema: schema(tools.SchemaSKURequest),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, req tools.SKURequest) (tools.Envelope, error) {
			return sys.ValidateSKU(ctx, req.SKU)
		}),
	},
	{
		Name:        "generate_mockup",
		Description: "Render a product mockup for a SKU and write it to output_image_url.",
		InputSchema: schema(tools.SchemaMockupRequest),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, req mockup.Request) (tools.Envelope, error) {
			return sys.GenerateMockup(ctx, req)
		}),
	},
	{
		Name:        "generate_temp_blob",
		Description: "Obtain a writable temporary blob URL for a file extension, e.g. png.",
		InputSchema: schema(tools.SchemaTempURLRequest),
		keyed:       true,
		call: invoke(func(sys tools.System, ctx context.Context, req tools.TempURLRequest) (tools.Envelope, error) {
			return sys.TempURL(ctx, req.Extension)
		}),
	},
	{
		Name:        "get_api_schema",
		Description: "Fetch the OpenAPI document of the image transformation service.",
		InputSchema: noArguments(),
		call: func(ctx context.Context, sys tools.System, _ json.RawMessage) (tools.Envelope, error) {
			return sys.Schema(ctx)
		},
	},
	{
		Name:        "get_mockup_catalog",
		Description: "Fetch the catalog of available mockup scenes.",
		InputSchema: noArguments(),
		call: func(ctx context.Context, sys tools.System, _ json.RawMessage) (tools.Envelope, error) {
			return sys.Catalog(ctx)
		},
	},
	{
		Name:        "get_product_specs",
		Description: "Fetch print specifications for a product SKU from the print-on-demand API.",
		InputSchema: schema(tools.SchemaSKURequest),
		call: invoke(func(sys tools.System, ctx context.Context, req tools.SKURequest) (tools.Envelope, error) {
			return sys.ProductSpec(ctx, req.SKU)
		}),
	},
}

// Tools returns every tool definition.
func Tools() []Tool {
	return definitions
}

func lookupTool(name string) (*Tool, bool) {
	for i := range definitions {
		if definitions[i].Name == name {
			return &definitions[i], true
		}
	}
	return nil, false
}

// run checks the API key before decoding arguments for tools that need it.
func (t *Tool) run(ctx context.Context, sys tools.System, args json.RawMessage) (tools.Envelope, error) {
	if t.keyed {
		if err := sys.CheckAPIKey(); err != nil {
			return nil, err
		}
	}
	return t.call(ctx, sys, args)
}
