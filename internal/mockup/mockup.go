// Package mockup describes product mockup render requests.
package mockup

import (
	"strings"

	"github.com/JaimeStill/porcus-tools/pkg/validation"
)

// Request asks the remote service to render sku as a product mockup.
// Unset optional fields are omitted from the outbound body.
type Request struct {
	SKU    string `json:"sku" validate:"required"`
	Width  int    `json:"width" validate:"gte=1,lte=100000"`
	Height int    `json:"height" validate:"gte=1,lte=100000"`
	Camera string `json:"camera,omitempty"`

	Orientation  string `json:"orientation,omitempty"`
	Color        string `json:"color,omitempty"`
	Wrap         string `json:"wrap,omitempty"`
	Finish       string `json:"finish,omitempty"`
	BlankPreview *bool  `json:"blank_preview,omitempty"`

	SourceImageURL string `json:"source_image_url,omitempty"`
	OutputImageURL string `json:"output_image_url" validate:"required"`
}

// Normalize trims whitespace from the identifying fields.
func (r *Request) Normalize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.SourceImageURL = strings.TrimSpace(r.SourceImageURL)
	r.OutputImageURL = strings.TrimSpace(r.OutputImageURL)
}

// Validate checks required fields and dimension bounds.
func (r *Request) Validate(v *validation.Validator) error {
	r.Normalize()
	return v.Struct(r)
}
