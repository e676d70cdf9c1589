// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"regexp"

	"github.com/pestgen/pestgen/pkg/types"
)

// Render call patterns, each with a variant capturing a quoted first argument
var (
	spaCallRegex  = regexp.MustCompile(`Inertia::render\s*\(|\binertia\s*\(`)
	spaNameRegex  = regexp.MustCompile(`(?:Inertia::render|\binertia)\s*\(\s*['"]([^'"]+)['"]`)
	viewCallRegex = regexp.MustCompile(`\bview\s*\(|View::make\s*\(`)
	viewNameRegex = regexp.MustCompile(`(?:\bview|View::make)\s*\(\s*['"]([^'"]+)['"]`)
)

// ResponseScanner detects what a handler excerpt renders. The SPA rule is
// checked before the view rule and each can be switched off.
type ResponseScanner struct {
	SPA  bool
	View bool
}

// Scan classifies an excerpt. It never fails; an empty or unrecognized
// excerpt yields ResponseNone.
func (s ResponseScanner) Scan(excerpt string) types.Response {
	if excerpt == "" {
		return types.Response{Kind: types.ResponseNone}
	}

	if s.SPA && spaCallRegex.MatchString(excerpt) {
		if m := spaNameRegex.FindStringSubmatch(excerpt); m != nil {
			return types.Response{Kind: types.ResponseSPA, Name: m[1]}
		}
		return types.Response{Kind: types.ResponseSPA}
	}

	if s.View && viewCallRegex.MatchString(excerpt) {
		if m := viewNameRegex.FindStringSubmatch(excerpt); m != nil {
			return types.Response{Kind: types.ResponseView, Name: m[1]}
		}
		return types.Response{Kind: types.ResponseView, Name: types.UnknownViewName}
	}

	return types.Response{Kind: types.ResponseNone}
}
