package mockup_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/porcus-tools/internal/mockup"
	"github.com/JaimeStill/porcus-tools/pkg/validation"
)

func TestRequest_Validate(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		req     mockup.Request
		wantErr string
	}{
		{
			name: "valid",
			req:  mockup.Request{SKU: "GLOBAL-CAN-10x10", Width: 1024, Height: 768, OutputImageURL: "https://blob/out.png"},
		},
		{
			name:    "missing sku",
			req:     mockup.Request{SKU: "   ", Width: 1024, Height: 768, OutputImageURL: "o"},
			wantErr: "sku is required",
		},
		{
			name:    "missing output",
			req:     mockup.Request{SKU: "s", Width: 1024, Height: 768},
			wantErr: "output_image_url is required",
		},
		{
			name:    "zero width",
			req:     mockup.Request{SKU: "s", Height: 768, OutputImageURL: "o"},
			wantErr: "width must be >= 1",
		},
		{
			name:    "height too large",
			req:     mockup.Request{SKU: "s", Width: 1, Height: 100001, OutputImageURL: "o"},
			wantErr: "height must be <= 100000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(v)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequest_OmitsUnsetOptionals(t *testing.T) {
	data, _ := json.Marshal(mockup.Request{SKU: "s", Width: 10, Height: 10, OutputImageURL: "o"})

	var got map[string]any
	json.Unmarshal(data, &got)

	for _, key := range []string{"camera", "orientation", "color", "wrap", "finish", "blank_preview", "source_image_url"} {
		if _, ok := got[key]; ok {
			t.Errorf("unset %s present in %s", key, data)
		}
	}
}
