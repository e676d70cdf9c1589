// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"strings"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

// Classifier derives the expected test shape of an endpoint.
type Classifier struct {
	resolver TypeResolver
	policy   config.PolicyConfig
	scanner  ResponseScanner
}

// NewClassifier creates a classifier from the configured policy and
// assertion toggles.
func NewClassifier(cfg *config.Config, resolver TypeResolver) *Classifier {
	return &Classifier{
		resolver: resolver,
		policy:   cfg.Policy,
		scanner: ResponseScanner{
			SPA:  cfg.Features.InertiaAssertions,
			View: cfg.Features.BladeAssertions,
		},
	}
}

// Classify classifies an endpoint from its descriptor and introspection.
func (c *Classifier) Classify(ep types.Endpoint, intro types.Introspection) types.Classification {
	cls := types.Classification{
		RequiresAuth: ep.HasMiddleware(c.policy.AuthMiddleware),
		IsSensitive:  c.IsSensitive(ep.Handler.Class),
		Response:     types.Response{Kind: types.ResponseNone},
	}

	if intro.HasSource {
		cls.Response = c.scanner.Scan(intro.Source)
	}

	cls.HasValidationRequest = c.hasValidationRequest(intro.Parameters)

	return cls
}

// IsSensitive reports whether a controller name contains a sensitivity
// keyword. Matching is case-sensitive.
func (c *Classifier) IsSensitive(class string) bool {
	for _, kw := range c.policy.SensitiveKeywords {
		if kw != "" && strings.Contains(class, kw) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasValidationRequest(params []types.ParameterInfo) bool {
	if c.resolver == nil || c.policy.FormRequestClass == "" {
		return false
	}
	for _, p := range params {
		if p.Builtin || p.Type == "" {
			continue
		}
		if c.resolver.IsSubtypeOf(p.Type, c.policy.FormRequestClass) {
			return true
		}
	}
	return false
}
