package mcp

import (
	"fmt"
	"strconv"
	"strings"
)

// Prompt is a prompt template as listed by prompts/list.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`

	render func(args map[string]string) (string, error)
}

// PromptArgument describes one optional prompt argument.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

func intArg(args map[string]string, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func floatArg(args map[string]string, name string, def float64) (float64, error) {
	v, ok := args[name]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return f, nil
}

// formatRatio renders whole numbers with a trailing ".0", e.g. 1.0 and 1.5.
func formatRatio(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func instruct(request, params string) string {
	return request + "\n\nUse the transform_image tool with:\n" + params
}

var prompts = []Prompt{
	{
		Name:        "crop_image_prompt",
		Description: "Prompt for cropping an image to specific coordinates.",
		Arguments: []PromptArgument{
			{Name: "x1", Description: "Left edge, default 0"},
			{Name: "y1", Description: "Top edge, default 0"},
			{Name: "x2", Description: "Right edge, default 100"},
			{Name: "y2", Description: "Bottom edge, default 100"},
		},
		render: func(args map[string]string) (string, error) {
			box := make([]string, 4)
			defaults := []int{0, 0, 100, 100}
			for i, name := range []string{"x1", "y1", "x2", "y2"} {
				n, err := intArg(args, name, defaults[i])
				if err != nil {
					return "", err
				}
				box[i] = strconv.Itoa(n)
			}
			return "Please crop the image to the specified region.\n\n" +
				"Use the transform_image tool with these parameters:\n" +
				"- crop_box_pixels: [" + strings.Join(box, ", ") + "]", nil
		},
	},
	{
		Name:        "crop_aspect_ratio_prompt",
		Description: "Prompt for cropping to a specific aspect ratio.",
		Arguments: []PromptArgument{
			{Name: "aspect_ratio", Description: "Width/height ratio, default 1.0"},
		},
		render: func(args map[string]string) (string, error) {
			ratio, err := floatArg(args, "aspect_ratio", 1.0)
			if err != nil {
				return "", err
			}
			r := formatRatio(ratio)
			return instruct(
				"Please crop the image to an aspect ratio of "+r+".",
				"- crop_aspect_ratio: "+r,
			), nil
		},
	},
	{
		Name:        "contain_image_prompt",
		Description: "Prompt for containing an image within specific dimensions.",
		Arguments: []PromptArgument{
			{Name: "width", Description: "Width in pixels, default 800"},
			{Name: "height", Description: "Height in pixels, default 600"},
		},
		render: func(args map[string]string) (string, error) {
			w, h, err := size(args, 800, 600)
			if err != nil {
				return "", err
			}
			return instruct(
				fmt.Sprintf("Please contain the image within %dx%d pixels.", w, h),
				fmt.Sprintf("- contain_pixels: [%d, %d]", w, h),
			), nil
		},
	},
	{
		Name:        "rotate_image_prompt",
		Description: "Prompt for rotating an image.",
		Arguments: []PromptArgument{
			{Name: "angle", Description: "Rotation in degrees, default 90"},
		},
		render: func(args map[string]string) (string, error) {
			angle, err := intArg(args, "angle", 90)
			if err != nil {
				return "", err
			}
			return instruct(
				fmt.Sprintf("Please rotate the image by %d degrees.", angle),
				fmt.Sprintf("- rotate: %d", angle),
			), nil
		},
	},
	{
		Name:        "convert_to_grayscale_prompt",
		Description: "Prompt for converting an image to grayscale.",
		render: func(map[string]string) (string, error) {
			return instruct("Please convert this image to grayscale.", "- grayscale: true"), nil
		},
	},
	{
		Name:        "set_dpi_prompt",
		Description: "Prompt for setting image DPI.",
		Arguments: []PromptArgument{
			{Name: "dpi", Description: "Dots per inch, default 300"},
		},
		render: func(args map[string]string) (string, error) {
			dpi, err := intArg(args, "dpi", 300)
			if err != nil {
				return "", err
			}
			return instruct(
				fmt.Sprintf("Please set the image DPI to %d.", dpi),
				fmt.Sprintf("- override_dpi: %d", dpi),
			), nil
		},
	},
	{
		Name:        "pad_image_prompt",
		Description: "Prompt for adding padding to an image.",
		Arguments: []PromptArgument{
			{Name: "width", Description: "Canvas width in pixels, default 1000"},
			{Name: "height", Description: "Canvas height in pixels, default 800"},
		},
		render: func(args map[string]string) (string, error) {
			w, h, err := size(args, 1000, 800)
			if err != nil {
				return "", err
			}
			return instruct(
				fmt.Sprintf("Please add padding to expand the canvas to %dx%d pixels.", w, h),
				fmt.Sprintf("- pad_pixels: [%d, %d]", w, h),
			), nil
		},
	},
}

func size(args map[string]string, defWidth, defHeight int) (int, int, error) {
	w, err := intArg(args, "width", defWidth)
	if err != nil {
		return 0, 0, err
	}
	h, err := intArg(args, "height", defHeight)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// Prompts returns every prompt definition.
func Prompts() []Prompt {
	return prompts
}

func lookupPrompt(name string) (*Prompt, bool) {
	for i := range prompts {
		if prompts[i].Name == name {
			return &prompts[i], true
		}
	}
	return nil, false
}
