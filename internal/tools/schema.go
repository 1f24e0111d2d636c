package tools

import "github.com/JaimeStill/porcus-tools/pkg/openapi"

// Schema names shared by the HTTP document and the tool definitions.
const (
	SchemaTransformParams   = "TransformParams"
	SchemaAsyncParams       = "AsyncTransformParams"
	SchemaBackgroundRequest = "BackgroundRequest"
	SchemaSKURequest        = "SKURequest"
	SchemaMockupRequest     = "MockupRequest"
	SchemaTempURLRequest    = "TempURLRequest"
	SchemaEnvelope          = "Envelope"
)

func pixels(desc string, minItems, maxItems int) *openapi.Schema {
	return &openapi.Schema{
		Type:        "array",
		Description: desc + " in pixels",
		Items:       &openapi.Schema{Type: "integer", Minimum: openapi.Bound(0), Maximum: openapi.Bound(100000)},
		MinItems:    openapi.Count(minItems),
		MaxItems:    openapi.Count(maxItems),
	}
}

func lengths(desc, unit string, minItems, maxItems int) *openapi.Schema {
	return &openapi.Schema{
		Type:        "array",
		Description: desc + " in " + unit,
		Items:       &openapi.Schema{Type: "number", Minimum: openapi.Bound(0), Maximum: openapi.Bound(100000)},
		MinItems:    openapi.Count(minItems),
		MaxItems:    openapi.Count(maxItems),
	}
}

// dimension adds the _pixels, _mm and _inches variants of a list parameter.
func dimension(props map[string]*openapi.Schema, name, desc string, minItems, maxItems int) {
	props[name+"_pixels"] = pixels(desc, minItems, maxItems)
	props[name+"_mm"] = lengths(desc, "millimeters", minItems, maxItems)
	props[name+"_inches"] = lengths(desc, "inches", minItems, maxItems)
}

// scalar adds the _pixels, _mm and _inches variants of a single-value parameter.
func scalar(props map[string]*openapi.Schema, name, desc string) {
	props[name+"_pixels"] = &openapi.Schema{Type: "integer", Description: desc + " in pixels", Minimum: openapi.Bound(0), Maximum: openapi.Bound(100000)}
	props[name+"_mm"] = &openapi.Schema{Type: "number", Description: desc + " in millimeters", Minimum: openapi.Bound(0), Maximum: openapi.Bound(100000)}
	props[name+"_inches"] = &openapi.Schema{Type: "number", Description: desc + " in inches", Minimum: openapi.Bound(0), Maximum: openapi.Bound(100000)}
}

func transformProperties(async bool) map[string]*openapi.Schema {
	props := map[string]*openapi.Schema{
		"source_image_url": {Type: "string", Format: "uri", Description: "URL of the source image"},
		"crop_aspect_ratio": {
			Type:        "number",
			Description: "Crop to this width/height ratio",
			Example:     1.5,
		},
		"override_dpi": {Type: "integer", Description: "DPI written to the output metadata", Minimum: openapi.Bound(1)},
		"rotate":       {Type: "integer", Description: "Rotation angle in degrees"},
		"rotate_to": {
			Type:        "string",
			Description: "Rotate to the given orientation",
			Enum:        []any{"landscape", "portrait"},
		},
		"transparency_to_color": {
			Type:        "array",
			Description: "Replace transparency with this RGB or RGBA color",
			Items:       &openapi.Schema{Type: "integer", Minimum: openapi.Bound(0), Maximum: openapi.Bound(255)},
			MinItems:    openapi.Count(3),
			MaxItems:    openapi.Count(4),
		},
		"overwrite_partial_transparency": {
			Type:        "integer",
			Description: "Alpha threshold above which partial transparency becomes opaque",
			Minimum:     openapi.Bound(0),
			Maximum:     openapi.Bound(255),
		},
		"grayscale":       {Type: "boolean", Description: "Convert to grayscale"},
		"pdf":             {Type: "boolean", Description: "Produce a PDF"},
		"multi_page":      {Type: "boolean", Description: "Keep every page of a multi-page source"},
		"same_pixel_size": {Type: "boolean", Description: "Scale every page to the same pixel size"},
	}

	dimension(props, "crop", "Border crop, one value or [top, right, bottom, left]", 1, 4)
	dimension(props, "crop_box", "Crop region [x1, y1, x2, y2]", 4, 4)
	dimension(props, "pad", "Pad to [width, height]", 2, 2)
	dimension(props, "contain", "Fit within [width, height]", 2, 2)
	scalar(props, "stickerise", "Sticker border width")
	scalar(props, "expand", "Canvas expansion")

	if async {
		props["output_image_url"] = &openapi.Schema{Type: "string", Format: "uri", Description: "Destination URL for the result"}
		props["transform_job_id"] = &openapi.Schema{Type: "string", Description: "Correlation id; generated when omitted"}
	}

	return props
}

// ParamSchemas returns the request schemas for every operation that takes input.
func ParamSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		SchemaTransformParams: {
			Type:        "object",
			Description: "Synchronous transformation. Pixels take precedence over millimeters, millimeters over inches.",
			Required:    []string{"source_image_url"},
			Properties:  transformProperties(false),
		},
		SchemaAsyncParams: {
			Type:        "object",
			Description: "Queued transformation written to output_image_url.",
			Required:    []string{"source_image_url", "output_image_url"},
			Properties:  transformProperties(true),
		},
		SchemaBackgroundRequest: {
			Type:     "object",
			Required: []string{"source_image_url", "output_image_url"},
			Properties: map[string]*openapi.Schema{
				"source_image_url": {Type: "string", Format: "uri"},
				"output_image_url": {Type: "string", Format: "uri"},
				"transform_job_id": {Type: "string", Description: "Correlation id; generated when omitted"},
			},
		},
		SchemaSKURequest: {
			Type:     "object",
			Required: []string{"sku"},
			Properties: map[string]*openapi.Schema{
				"sku": {Type: "string", Example: "GLOBAL-CAN-10x10"},
			},
		},
		SchemaMockupRequest: {
			Type:     "object",
			Required: []string{"sku", "width", "height", "output_image_url"},
			Properties: map[string]*openapi.Schema{
				"sku":              {Type: "string", Example: "GLOBAL-CAN-10x10"},
				"width":            {Type: "integer", Minimum: openapi.Bound(1), Maximum: openapi.Bound(100000)},
				"height":           {Type: "integer", Minimum: openapi.Bound(1), Maximum: openapi.Bound(100000)},
				"camera":           {Type: "string", Description: "Camera preset"},
				"orientation":      {Type: "string"},
				"color":            {Type: "string"},
				"wrap":             {Type: "string"},
				"finish":           {Type: "string"},
				"blank_preview":    {Type: "boolean"},
				"source_image_url": {Type: "string", Format: "uri"},
				"output_image_url": {Type: "string", Format: "uri"},
			},
		},
		SchemaTempURLRequest: {
			Type:     "object",
			Required: []string{"extension"},
			Properties: map[string]*openapi.Schema{
				"extension": {Type: "string", Example: "png"},
			},
		},
	}
}

// EnvelopeSchema describes the result of every operation.
func EnvelopeSchema() *openapi.Schema {
	return &openapi.Schema{
		Type:        "object",
		Description: "Operation result. Fields beyond these depend on the operation.",
		Required:    []string{"success"},
		Properties: map[string]*openapi.Schema{
			"success":   {Type: "boolean"},
			"status":    {Type: "integer", Description: "Remote HTTP status"},
			"error":     {Type: "string"},
			"kind":      {Type: "string", Enum: []any{"config", "validation", "remote", "transport", "internal"}},
			"retryable": {Type: "boolean"},
			"details":   {Description: "Raw remote response body"},
		},
	}
}
