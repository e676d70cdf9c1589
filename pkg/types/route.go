// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the core data structures shared by the route
// analysis and test generation pipeline.
package types

import (
	"regexp"
	"strings"
)

// InlineHandler is the action name Laravel reports for closure routes.
const InlineHandler = "Closure"

// HandlerRef identifies the controller action servicing a route.
type HandlerRef struct {
	// Class is the fully-qualified controller class without a leading backslash
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	// Action is the controller method name
	Action string `json:"action,omitempty" yaml:"action,omitempty"`

	// Inline marks closure handlers, which cannot be imported into test code
	Inline bool `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// ParseHandlerRef parses a Laravel action string.
//
// "Closure" and the empty string yield the inline marker, "Class@method"
// yields a class/action pair and a bare class name is treated as an
// invokable controller.
func ParseHandlerRef(action string) HandlerRef {
	action = strings.TrimSpace(action)
	if action == "" || action == InlineHandler {
		return HandlerRef{Inline: true}
	}

	action = strings.TrimPrefix(action, `\`)
	if class, method, ok := strings.Cut(action, "@"); ok {
		if class == "" || method == "" {
			return HandlerRef{Inline: true}
		}
		return HandlerRef{Class: class, Action: method}
	}

	return HandlerRef{Class: action, Action: "__invoke"}
}

// String returns the Laravel action notation of the reference.
func (h HandlerRef) String() string {
	if h.Inline || h.Class == "" {
		return InlineHandler
	}
	return h.Class + "@" + h.Action
}

// IsResolvable reports whether the reference names a class and an action.
func (h HandlerRef) IsResolvable() bool {
	return !h.Inline && h.Class != "" && h.Action != ""
}

// Endpoint describes one registered route as reported by the router.
type Endpoint struct {
	// Name is the route name, empty for unnamed routes
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// URI is the path template without a leading slash ("/" for the root)
	URI string `json:"uri" yaml:"uri"`

	// Methods are the upper-case HTTP methods; the first one is used for requests
	Methods []string `json:"methods" yaml:"methods"`

	// Handler is the controller action servicing the route
	Handler HandlerRef `json:"handler" yaml:"handler"`

	// Middleware is the gathered middleware list
	Middleware []string `json:"middleware,omitempty" yaml:"middleware,omitempty"`

	// Parameters are the path parameter names in declaration order
	Parameters []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Domain is the route domain constraint, if any
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// SourceFile is the route file the endpoint was read from (static source only)
	SourceFile string `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`

	// SourceLine is the line of the route definition (static source only)
	SourceLine int `json:"sourceLine,omitempty" yaml:"sourceLine,omitempty"`
}

// Method returns the primary HTTP method of the endpoint.
func (e Endpoint) Method() string {
	if len(e.Methods) == 0 {
		return "GET"
	}
	return strings.ToUpper(e.Methods[0])
}

// HasMiddleware reports whether any of the given markers is attached to the endpoint.
func (e Endpoint) HasMiddleware(markers []string) bool {
	for _, m := range e.Middleware {
		for _, marker := range markers {
			if m == marker {
				return true
			}
		}
	}
	return false
}

// uriParamRegex matches path parameters like {post}, {post?} and {post:slug}.
var uriParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// ParameterNames extracts the parameter names from a Laravel URI template.
func ParameterNames(uri string) []string {
	var names []string
	for _, match := range uriParamRegex.FindAllStringSubmatch(uri, -1) {
		name := strings.TrimSuffix(match[1], "?")
		name, _, _ = strings.Cut(name, ":")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NormalizeURI strips the leading slash Laravel omits, keeping "/" for the root.
func NormalizeURI(uri string) string {
	trimmed := strings.Trim(strings.TrimSpace(uri), "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
