package transform

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/porcus-tools/internal/measure"
	"github.com/JaimeStill/porcus-tools/pkg/validation"
)

// Payload is the outbound request body for the transform routes.
type Payload struct {
	SourceImageURL string      `json:"source_image_url"`
	OutputImageURL string      `json:"output_image_url,omitempty"`
	TransformJobID string      `json:"transform_job_id,omitempty"`
	Transform      *Operations `json:"transform"`
}

// Builder turns Params into validated Operations.
type Builder struct {
	validate *validation.Validator
	logger   *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(v *validation.Validator, logger *slog.Logger) *Builder {
	return &Builder{
		validate: v,
		logger:   logger.With("system", "transform"),
	}
}

// Build normalizes every unit-tagged dimension and validates shapes and ranges.
func (b *Builder) Build(p Params) (*Operations, error) {
	ops := &Operations{
		ImageOps:                     true,
		Crop:                         measure.Select(p.CropPixels, p.CropMM, p.CropInches),
		CropBox:                      boxed(measure.Select(p.CropBoxPixels, p.CropBoxMM, p.CropBoxInches)),
		CropAspectRatio:              p.CropAspectRatio,
		Pad:                          measure.Select(p.PadPixels, p.PadMM, p.PadInches),
		Contain:                      measure.Select(p.ContainPixels, p.ContainMM, p.ContainInches),
		OverrideDPI:                  p.OverrideDPI,
		Rotate:                       p.Rotate,
		RotateTo:                     p.RotateTo,
		TransparencyToColor:          p.TransparencyToColor,
		OverwritePartialTransparency: p.OverwritePartialTransparency,
		Grayscale:                    p.Grayscale,
		PDF:                          p.PDF,
		MultiPage:                    p.MultiPage,
		SamePixelSize:                p.SamePixelSize,
		Stickerise:                   measure.SelectOne(p.StickerisePixels, p.StickeriseMM, p.StickeriseInches),
		Expand:                       measure.SelectOne(p.ExpandPixels, p.ExpandMM, p.ExpandInches),
	}

	if c := p.conflicts(); len(c) > 0 {
		b.logger.Debug("multiple unit systems supplied, keeping highest priority",
			"dimensions", c,
			"kept", ops.units(),
		)
	}

	if err := b.validate.Struct(ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// Sync builds the payload for a synchronous transform.
func (b *Builder) Sync(p Params) (*Payload, error) {
	ops, err := b.Build(p)
	if err != nil {
		return nil, err
	}
	return &Payload{SourceImageURL: p.SourceImageURL, Transform: ops}, nil
}

// Async builds the payload for a queued transform, assigning a correlation
// id when the caller did not supply one.
func (b *Builder) Async(p Params) (*Payload, error) {
	ops, err := b.Build(p)
	if err != nil {
		return nil, err
	}
	return &Payload{
		SourceImageURL: p.SourceImageURL,
		OutputImageURL: p.OutputImageURL,
		TransformJobID: JobID(p.TransformJobID),
		Transform:      ops,
	}, nil
}

// RemoveBackground builds an async payload whose only effect is background removal.
func (b *Builder) RemoveBackground(source, output, jobID string) *Payload {
	remove := true
	return &Payload{
		SourceImageURL: source,
		OutputImageURL: output,
		TransformJobID: JobID(jobID),
		Transform: &Operations{
			ImageOps:         true,
			RemoveBackground: &remove,
		},
	}
}

// JobID returns id, or a fresh random UUID when id is empty.
// No uniqueness check is made against earlier ids.
func JobID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Count returns the number of operations set besides image_ops.
func (o *Operations) Count() int {
	n := 0
	for _, set := range []bool{
		o.Crop != nil, o.CropBox != nil, o.CropAspectRatio != nil, o.Pad != nil,
		o.Contain != nil, o.OverrideDPI != nil, o.Rotate != nil, o.RotateTo != "",
		o.TransparencyToColor != nil, o.OverwritePartialTransparency != nil,
		o.Grayscale != nil, o.PDF != nil, o.MultiPage != nil, o.SamePixelSize != nil,
		o.Stickerise != nil, o.Expand != nil, o.RemoveBackground != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
