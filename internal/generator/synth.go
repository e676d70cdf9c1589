// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"strings"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/util"
	"github.com/pestgen/pestgen/pkg/types"
)

// unsafeMethods change server state; their success tests are todo.
var unsafeMethods = map[string]bool{
	"POST":   true,
	"PUT":    true,
	"PATCH":  true,
	"DELETE": true,
}

// readMethods never carry a validated payload.
var readMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"OPTIONS": true,
}

// Synthesizer produces the test cases of one endpoint.
type Synthesizer struct {
	features  config.FeatureConfig
	redirect  string
	principal string
	calls     *RouteCall
}

// NewSynthesizer creates a synthesizer for the configured features and policy.
func NewSynthesizer(cfg *config.Config, classes ClassChecker) *Synthesizer {
	redirect := cfg.Policy.GuestRedirect
	if redirect == "" {
		redirect = "route('login')"
	}
	return &Synthesizer{
		features:  cfg.Features,
		redirect:  redirect,
		principal: util.ClassBasename(cfg.Policy.PrincipalModel),
		calls:     NewRouteCall(classes, cfg.ModelTests.Namespace),
	}
}

// Synthesize returns the success test, then the guest test when the
// endpoint requires authentication, then the validation test when the
// handler takes a form request and the method carries a payload.
func (s *Synthesizer) Synthesize(ep types.Endpoint, cls types.Classification) []types.TestCase {
	verb := strings.ToLower(ep.Method())
	call := s.calls.Build(ep)

	tests := []types.TestCase{s.success(ep, cls, verb, call)}

	if cls.RequiresAuth && s.features.AuthorizationTests {
		tests = append(tests, types.TestCase{
			Name: "guest cannot " + ep.Handler.Action,
			Body: []string{
				"$response = $this->" + verb + "(" + call + ");",
				"$response->assertRedirect(" + s.redirect + ");",
			},
		})
	}

	if s.features.ValidationTests && cls.HasValidationRequest && !readMethods[ep.Method()] {
		var body []string
		if cls.RequiresAuth {
			body = append(body, s.createPrincipal())
		}
		body = append(body,
			"$response = "+s.request(cls.RequiresAuth, verb, call+", []")+";",
			"$response->assertSessionHasErrors();",
		)
		tests = append(tests, types.TestCase{
			Name: ep.Handler.Action + " validates required fields",
			Body: body,
		})
	}

	return tests
}

func (s *Synthesizer) success(ep types.Endpoint, cls types.Classification, verb, call string) types.TestCase {
	tc := types.TestCase{Name: "user can " + ep.Handler.Action}
	if cls.RequiresAuth {
		tc.Name = "authenticated user can " + ep.Handler.Action
		tc.Body = append(tc.Body, s.createPrincipal())
	}

	tc.Body = append(tc.Body,
		"$response = "+s.request(cls.RequiresAuth, verb, call)+";",
		"$response->assertStatus(200);",
	)

	tc.Todo = unsafeMethods[ep.Method()] || cls.IsSensitive
	if !tc.Todo {
		if assertion := ResponseAssertion(cls.Response); assertion != "" {
			tc.Body = append(tc.Body, assertion)
		}
	}

	return tc
}

func (s *Synthesizer) createPrincipal() string {
	if s.features.UseFactories {
		return "$user = " + s.principal + "::factory()->create();"
	}
	return "$user = new " + s.principal + "();"
}

func (s *Synthesizer) request(asUser bool, verb, args string) string {
	if asUser {
		return "$this->actingAs($user)->" + verb + "(" + args + ")"
	}
	return "$this->" + verb + "(" + args + ")"
}

// ResponseAssertion returns the assertion statement for a response kind,
// or "" for none.
func ResponseAssertion(r types.Response) string {
	switch r.Kind {
	case types.ResponseSPA:
		if r.Name == "" {
			return "$response->assertInertia();"
		}
		return "$response->assertInertia(fn($page) => $page->component('" + r.Name + "'));"
	case types.ResponseView:
		name := r.Name
		if name == "" {
			name = types.UnknownViewName
		}
		return "$response->assertViewIs('" + name + "');"
	}
	return ""
}
