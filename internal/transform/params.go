// Package transform assembles the outbound transformation request from
// loosely typed caller parameters.
package transform

import "github.com/JaimeStill/porcus-tools/internal/measure"

// Params are the caller-facing transformation parameters accepted by both
// the HTTP and tool-protocol front-ends. Every dimension comes in three
// unit-suffixed variants; see measure.Select for how they are reconciled.
type Params struct {
	SourceImageURL string `json:"source_image_url"`
	OutputImageURL string `json:"output_image_url,omitempty"`
	TransformJobID string `json:"transform_job_id,omitempty"`

	// One value for all borders or [top, right, bottom, left].
	CropPixels []int     `json:"crop_pixels,omitempty"`
	CropMM     []float64 `json:"crop_mm,omitempty"`
	CropInches []float64 `json:"crop_inches,omitempty"`

	// [x1, y1, x2, y2]
	CropBoxPixels []int     `json:"crop_box_pixels,omitempty"`
	CropBoxMM     []float64 `json:"crop_box_mm,omitempty"`
	CropBoxInches []float64 `json:"crop_box_inches,omitempty"`

	CropAspectRatio *float64 `json:"crop_aspect_ratio,omitempty"`

	// [width, height]
	PadPixels []int     `json:"pad_pixels,omitempty"`
	PadMM     []float64 `json:"pad_mm,omitempty"`
	PadInches []float64 `json:"pad_inches,omitempty"`

	// [width, height]
	ContainPixels []int     `json:"contain_pixels,omitempty"`
	ContainMM     []float64 `json:"contain_mm,omitempty"`
	ContainInches []float64 `json:"contain_inches,omitempty"`

	OverrideDPI *int   `json:"override_dpi,omitempty"`
	Rotate      *int   `json:"rotate,omitempty"`
	RotateTo    string `json:"rotate_to,omitempty"`

	TransparencyToColor          []int `json:"transparency_to_color,omitempty"`
	OverwritePartialTransparency *int  `json:"overwrite_partial_transparency,omitempty"`

	Grayscale     *bool `json:"grayscale,omitempty"`
	PDF           *bool `json:"pdf,omitempty"`
	MultiPage     *bool `json:"multi_page,omitempty"`
	SamePixelSize *bool `json:"same_pixel_size,omitempty"`

	StickerisePixels *int     `json:"stickerise_pixels,omitempty"`
	StickeriseMM     *float64 `json:"stickerise_mm,omitempty"`
	StickeriseInches *float64 `json:"stickerise_inches,omitempty"`

	ExpandPixels *int     `json:"expand_pixels,omitempty"`
	ExpandMM     *float64 `json:"expand_mm,omitempty"`
	ExpandInches *float64 `json:"expand_inches,omitempty"`
}

// conflicts lists the dimensions supplied in more than one unit system.
func (p *Params) conflicts() []string {
	var out []string

	lists := []struct {
		name       string
		px, mm, in int
	}{
		{"crop", len(p.CropPixels), len(p.CropMM), len(p.CropInches)},
		{"crop_box", len(p.CropBoxPixels), len(p.CropBoxMM), len(p.CropBoxInches)},
		{"pad", len(p.PadPixels), len(p.PadMM), len(p.PadInches)},
		{"contain", len(p.ContainPixels), len(p.ContainMM), len(p.ContainInches)},
		{"stickerise", set(p.StickerisePixels), set(p.StickeriseMM), set(p.StickeriseInches)},
		{"expand", set(p.ExpandPixels), set(p.ExpandMM), set(p.ExpandInches)},
	}

	for _, l := range lists {
		if measure.Conflicting(l.px, l.mm, l.in) {
			out = append(out, l.name)
		}
	}
	return out
}

func set[T any](v *T) int {
	if v == nil {
		return 0
	}
	return 1
}
