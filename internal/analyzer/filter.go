// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

// Filter returns the endpoints eligible for test generation, in order.
func Filter(endpoints []types.Endpoint, cfg *config.Config) []types.Endpoint {
	eligible := make([]types.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if Eligible(ep, cfg) {
			eligible = append(eligible, ep)
		}
	}
	return eligible
}

// Eligible reports whether an endpoint passes every filter rule: one of its
// methods is allowed, its URI has no excluded prefix, its name matches no
// excluded pattern and its handler is a controller action.
func Eligible(ep types.Endpoint, cfg *config.Config) bool {
	if !methodAllowed(ep.Methods, cfg.HTTPMethods) {
		return false
	}

	uri := strings.TrimPrefix(ep.URI, "/")
	for _, prefix := range cfg.ExcludePrefixes {
		if prefix != "" && strings.HasPrefix(uri, strings.TrimPrefix(prefix, "/")) {
			return false
		}
	}

	if ep.Name != "" && NameExcluded(ep.Name, cfg.ExcludeRoutes) {
		return false
	}

	return ep.Handler.IsResolvable()
}

func methodAllowed(methods, allowed []string) bool {
	for _, m := range methods {
		for _, a := range allowed {
			if strings.EqualFold(m, a) {
				return true
			}
		}
	}
	return false
}

// NameExcluded reports whether a route name matches any exclusion glob.
func NameExcluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
