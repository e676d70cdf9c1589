// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"strings"

	"github.com/pestgen/pestgen/internal/util"
	"github.com/pestgen/pestgen/pkg/types"
)

// ClassChecker reports whether a class exists.
type ClassChecker interface {
	ClassExists(fqcn string) bool
}

// RouteCall builds the PHP expression addressing an endpoint.
type RouteCall struct {
	classes         ClassChecker
	modelsNamespace string
}

// NewRouteCall creates a route-call builder. Parameters are matched
// against models in modelsNamespace.
func NewRouteCall(classes ClassChecker, modelsNamespace string) *RouteCall {
	return &RouteCall{
		classes:         classes,
		modelsNamespace: util.EnsureTrailingSeparator(strings.TrimPrefix(modelsNamespace, `\`)),
	}
}

// Build returns route('name', [...]) for named endpoints and the quoted
// URI otherwise.
func (r *RouteCall) Build(ep types.Endpoint) string {
	if ep.Name == "" {
		return quote("/" + strings.TrimPrefix(ep.URI, "/"))
	}

	if len(ep.Parameters) == 0 {
		return "route(" + quote(ep.Name) + ")"
	}

	args := make([]string, 0, len(ep.Parameters))
	for _, p := range ep.Parameters {
		args = append(args, quote(p)+" => "+r.Placeholder(p))
	}
	return "route(" + quote(ep.Name) + ", [" + strings.Join(args, ", ") + "])"
}

// Placeholder returns 1 when the parameter names an existing model and
// 'value' otherwise.
func (r *RouteCall) Placeholder(param string) string {
	if r.classes == nil {
		return "'value'"
	}
	for _, model := range modelNames(param) {
		if r.classes.ClassExists(r.modelsNamespace + model) {
			return "1"
		}
	}
	return "'value'"
}

// modelNames returns the model names a parameter may refer to: its studly
// form, and without an id suffix ("userId" and "user_id" name User).
func modelNames(param string) []string {
	studly := util.Studly(param)
	names := []string{studly}
	if base := strings.TrimSuffix(studly, "Id"); base != studly && base != "" {
		names = append(names, base)
	}
	return names
}
