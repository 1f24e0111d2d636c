package api

import (
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/pkg/openapi"
)

// spec holds OpenAPI operation definitions for the tool endpoints.
type spec struct {
	Transform        *openapi.Operation
	TransformAsync   *openapi.Operation
	RemoveBackground *openapi.Operation
	ValidateSKU      *openapi.Operation
	GenerateMockup   *openapi.Operation
	TempURL          *openapi.Operation
	Schema           *openapi.Operation
	Catalog          *openapi.Operation
	ProductSpec      *openapi.Operation
}

func relayed(description string, extra map[int]*openapi.Response) map[int]*openapi.Response {
	responses := map[int]*openapi.Response{
		200: openapi.ResponseJSON(description, tools.SchemaEnvelope),
		500: openapi.ResponseRef("InternalError"),
		502: openapi.ResponseRef("BadGateway"),
	}
	for status, r := range extra {
		responses[status] = r
	}
	return responses
}

var badRequest = map[int]*openapi.Response{400: openapi.ResponseRef("BadRequest")}

// Spec contains OpenAPI operation definitions for all tool endpoints.
var Spec = spec{
	Transform: &openapi.Operation{
		Summary:     "Transform image",
		Description: "Applies the requested operations synchronously. Binary results are stored locally and the path is reported.",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaTransformParams, true),
		Responses:   relayed("Transformation result", badRequest),
	},
	TransformAsync: &openapi.Operation{
		Summary:     "Queue image transformation",
		Description: "Queues the operations; the result is written to output_image_url",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaAsyncParams, true),
		Responses: relayed("Transformation queued", map[int]*openapi.Response{
			202: openapi.ResponseJSON("Transformation queued", tools.SchemaEnvelope),
			400: openapi.ResponseRef("BadRequest"),
		}),
	},
	RemoveBackground: &openapi.Operation{
		Summary:     "Remove background",
		Description: "Queues background removal; the result is written to output_image_url",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaBackgroundRequest, true),
		Responses:   relayed("Background removal queued", badRequest),
	},
	ValidateSKU: &openapi.Operation{
		Summary:     "Validate SKU",
		Description: "Checks whether the mockup service knows the SKU",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaSKURequest, true),
		Responses: relayed("SKU is valid", map[int]*openapi.Response{
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseJSON("SKU not found", tools.SchemaEnvelope),
		}),
	},
	GenerateMockup: &openapi.Operation{
		Summary:     "Generate mockup",
		Description: "Renders a product mockup for the SKU",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaMockupRequest, true),
		Responses:   relayed("Mockup generated", badRequest),
	},
	TempURL: &openapi.Operation{
		Summary:     "Generate temporary blob URL",
		Description: "Returns a writable temporary storage URL for the extension",
		RequestBody: openapi.RequestBodyJSON(tools.SchemaTempURLRequest, true),
		Responses:   relayed("Temporary URL", badRequest),
	},
	Schema: &openapi.Operation{
		Summary:     "Remote API schema",
		Description: "Returns the remote service's OpenAPI document",
		Responses:   relayed("Remote OpenAPI document", nil),
	},
	Catalog: &openapi.Operation{
		Summary:     "Mockup catalog",
		Description: "Returns the mockup scene catalog",
		Responses:   relayed("Mockup catalog", nil),
	},
	ProductSpec: &openapi.Operation{
		Summary:     "Product specifications",
		Description: "Returns print specifications for the SKU",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("sku", "Product SKU"),
		},
		Responses: relayed("Product specification", map[int]*openapi.Response{
			404: openapi.ResponseRef("NotFound"),
		}),
	},
}

// Schemas returns the tool schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	schemas := tools.ParamSchemas()
	schemas[tools.SchemaEnvelope] = tools.EnvelopeSchema()
	return schemas
}
