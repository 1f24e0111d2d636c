package decode_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/porcus-tools/pkg/decode"
)

type args struct {
	SourceImageURL string    `json:"source_image_url"`
	Rotate         *int      `json:"rotate"`
	CropPixels     []int     `json:"crop_pixels"`
	CropMM         []float64 `json:"crop_mm"`
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantURL string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"null", "null", "", false},
		{"whitespace", "  \n", "", false},
		{"object", `{"source_image_url":"https://x/y.png"}`, "https://x/y.png", false},
		{"malformed", `{"source_image_url":`, "", true},
		{"trailing data", `{"source_image_url":"a"} {}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.JSON[args]([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got.SourceImageURL != tt.wantURL {
				t.Errorf("SourceImageURL = %q, want %q", got.SourceImageURL, tt.wantURL)
			}
		})
	}
}

func TestBody_Limit(t *testing.T) {
	body := `{"source_image_url":"https://x/y.png"}`

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if _, err := decode.Body[args](req, int64(len(body))); err != nil {
		t.Errorf("body at limit rejected: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if _, err := decode.Body[args](req, 8); err == nil {
		t.Error("oversized body accepted")
	}
}

func TestJSON_WholeFloats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCrop []int
		wantRot  int
		wantErr  bool
	}{
		{"integers", `{"crop_pixels":[10,20],"rotate":90}`, []int{10, 20}, 90, false},
		{"whole floats", `{"crop_pixels":[10.0,20.0],"rotate":90.0}`, []int{10, 20}, 90, false},
		{"exponent", `{"rotate":1e2}`, nil, 100, false},
		{"negative", `{"rotate":-90.0}`, nil, -90, false},
		{"fractional", `{"crop_pixels":[10.5]}`, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.JSON[args]([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !slices.Equal(got.CropPixels, tt.wantCrop) {
				t.Errorf("CropPixels = %v, want %v", got.CropPixels, tt.wantCrop)
			}
			if got.Rotate == nil || *got.Rotate != tt.wantRot {
				t.Errorf("Rotate = %v, want %d", got.Rotate, tt.wantRot)
			}
		})
	}
}

func TestJSON_FloatFieldsKeepFractions(t *testing.T) {
	got, err := decode.JSON[args]([]byte(`{"crop_mm":[2.5,10.0]}`))
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !slices.Equal(got.CropMM, []float64{2.5, 10}) {
		t.Errorf("CropMM = %v", got.CropMM)
	}
}
