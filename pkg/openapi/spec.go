package openapi

import (
	"encoding/json"
	"net/http"
)

// NewSpec creates an OpenAPI 3.1 document with empty paths and components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the info description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation registers op under path for the given HTTP method.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// NewComponents creates components pre-populated with the shared error responses.
func NewComponents() *Components {
	errorBody := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Envelope")},
	}

	return &Components{
		Schemas: make(map[string]*Schema),
		Responses: map[string]*Response{
			"BadRequest":         {Description: "Invalid request body or parameters", Content: errorBody},
			"NotFound":           {Description: "Resource not found", Content: errorBody},
			"InternalError":      {Description: "Configuration error", Content: errorBody},
			"BadGateway":         {Description: "Remote service unreachable", Content: errorBody},
			"ServiceUnavailable": {Description: "Service not ready", Content: errorBody},
		},
	}
}

// AddSchemas merges schemas into the component registry.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// MarshalJSON renders the spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes a pre-rendered spec.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
