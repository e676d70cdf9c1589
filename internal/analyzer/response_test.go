// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pestgen/pestgen/pkg/types"
)

func TestResponseScanner_Scan(t *testing.T) {
	both := ResponseScanner{SPA: true, View: true}

	tests := []struct {
		name     string
		scanner  ResponseScanner
		excerpt  string
		expected types.Response
	}{
		{
			name:     "inertia render",
			scanner:  both,
			excerpt:  `return Inertia::render('Posts/Show', ['post' => $post]);`,
			expected: types.Response{Kind: types.ResponseSPA, Name: "Posts/Show"},
		},
		{
			name:     "inertia helper",
			scanner:  both,
			excerpt:  `return inertia("Dashboard");`,
			expected: types.Response{Kind: types.ResponseSPA, Name: "Dashboard"},
		},
		{
			name:     "inertia without literal",
			scanner:  both,
			excerpt:  `return Inertia::render($component);`,
			expected: types.Response{Kind: types.ResponseSPA},
		},
		{
			name:     "spa wins over view",
			scanner:  both,
			excerpt:  "$html = view('partial')->render();\nreturn Inertia::render('Page');",
			expected: types.Response{Kind: types.ResponseSPA, Name: "Page"},
		},
		{
			name:     "blade view",
			scanner:  both,
			excerpt:  `return view('posts.show', compact('post'));`,
			expected: types.Response{Kind: types.ResponseView, Name: "posts.show"},
		},
		{
			name:     "view facade",
			scanner:  both,
			excerpt:  `return View::make('welcome');`,
			expected: types.Response{Kind: types.ResponseView, Name: "welcome"},
		},
		{
			name:     "view without literal",
			scanner:  both,
			excerpt:  `return view($this->template);`,
			expected: types.Response{Kind: types.ResponseView, Name: types.UnknownViewName},
		},
		{
			name:     "spa disabled falls back to view",
			scanner:  ResponseScanner{View: true},
			excerpt:  "$x = view('mail');\nreturn Inertia::render('Page');",
			expected: types.Response{Kind: types.ResponseView, Name: "mail"},
		},
		{
			name:     "view disabled",
			scanner:  ResponseScanner{SPA: true},
			excerpt:  `return view('posts.show');`,
			expected: types.Response{Kind: types.ResponseNone},
		},
		{
			name:     "preview is not a view call",
			scanner:  both,
			excerpt:  `return $this->preview('x');`,
			expected: types.Response{Kind: types.ResponseNone},
		},
		{
			name:     "redirect",
			scanner:  both,
			excerpt:  `return redirect()->route('posts.index');`,
			expected: types.Response{Kind: types.ResponseNone},
		},
		{
			name:     "empty excerpt",
			scanner:  both,
			excerpt:  "",
			expected: types.Response{Kind: types.ResponseNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scanner.Scan(tt.excerpt))
		})
	}
}
