package transform

import (
	"github.com/JaimeStill/porcus-tools/internal/measure"
)

// Operations is the outbound transform object. ImageOps is always true;
// every other unset field is omitted from the JSON.
type Operations struct {
	ImageOps bool `json:"image_ops"`

	Crop            []measure.Measurement   `json:"crop,omitempty" validate:"omitempty,len=1|len=4,dive"`
	CropBox         [][]measure.Measurement `json:"crop_box,omitempty" validate:"omitempty,len=4,dive,len=1,dive"`
	CropAspectRatio *float64                `json:"crop_aspect_ratio,omitempty" validate:"omitempty,gt=0"`
	Pad             []measure.Measurement   `json:"pad,omitempty" validate:"omitempty,len=2,dive"`
	Contain         []measure.Measurement   `json:"contain,omitempty" validate:"omitempty,len=2,dive"`

	OverrideDPI *int   `json:"override_dpi,omitempty" validate:"omitempty,gt=0"`
	Rotate      *int   `json:"rotate,omitempty"`
	RotateTo    string `json:"rotate_to,omitempty" validate:"omitempty,oneof=landscape portrait"`

	TransparencyToColor          []int `json:"transparency_to_color,omitempty" validate:"omitempty,min=3,max=4,dive,gte=0,lte=255"`
	OverwritePartialTransparency *int  `json:"overwrite_partial_transparency,omitempty" validate:"omitempty,gte=0,lte=255"`

	Grayscale     *bool `json:"grayscale,omitempty"`
	PDF           *bool `json:"pdf,omitempty"`
	MultiPage     *bool `json:"multi_page,omitempty"`
	SamePixelSize *bool `json:"same_pixel_size,omitempty"`

	Stickerise *measure.Measurement `json:"stickerise,omitempty"`
	Expand     *measure.Measurement `json:"expand,omitempty"`

	RemoveBackground *bool `json:"remove_background,omitempty"`
}

// crop_box is sent as a list of single-element lists: [[x1],[y1],[x2],[y2]].
func boxed(ms []measure.Measurement) [][]measure.Measurement {
	if ms == nil {
		return nil
	}
	out := make([][]measure.Measurement, len(ms))
	for i, m := range ms {
		out[i] = []measure.Measurement{m}
	}
	return out
}

// units reports the unit kept for each dimension present.
func (o *Operations) units() map[string]string {
	units := make(map[string]string)

	lists := map[string][]measure.Measurement{
		"crop":    o.Crop,
		"pad":     o.Pad,
		"contain": o.Contain,
	}
	if len(o.CropBox) > 0 {
		lists["crop_box"] = o.CropBox[0]
	}
	for name, ms := range lists {
		if len(ms) > 0 {
			units[name] = ms[0].Unit()
		}
	}

	if o.Stickerise != nil {
		units["stickerise"] = o.Stickerise.Unit()
	}
	if o.Expand != nil {
		units["expand"] = o.Expand.Unit()
	}
	return units
}
