// Package routes declares HTTP routes alongside their OpenAPI operations
// so a single registration feeds both the mux and the generated document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/porcus-tools/pkg/openapi"
)

// Route binds a method and pattern to a handler.
// Pattern is relative to the enclosing Group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents the group's routes and schemas in spec.
// Routes without an OpenAPI operation are registered but undocumented.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addOperations(basePath, spec)

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}
}

func (g *Group) addOperations(parentPrefix string, spec *openapi.Spec) {
	prefix := parentPrefix + g.Prefix

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		child.addOperations(prefix, spec)
	}
}

// Register adds every group's routes to mux and documents them in spec
// under basePath. The mux itself sees paths relative to basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		pattern := route.Method + " " + prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}

	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
