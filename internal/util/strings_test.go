// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudly(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"post", "Post"},
		{"blog_post", "BlogPost"},
		{"blog-post", "BlogPost"},
		{"user id", "UserId"},
		{"postComment", "PostComment"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Studly(tt.input))
		})
	}
}

func TestClassBasename(t *testing.T) {
	assert.Equal(t, "PostController", ClassBasename(`App\Http\Controllers\PostController`))
	assert.Equal(t, "User", ClassBasename("User"))
	assert.Equal(t, "", ClassBasename(""))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, `App\Http\Controllers`, Namespace(`App\Http\Controllers\PostController`))
	assert.Equal(t, `App\Models`, Namespace(`\App\Models\User`))
	assert.Equal(t, "", Namespace("User"))
}

func TestNamespaceToPath(t *testing.T) {
	assert.Equal(t, "Admin/Billing", NamespaceToPath(`Admin\Billing`))
	assert.Equal(t, "Admin", NamespaceToPath(`\Admin\`))
	assert.Equal(t, "", NamespaceToPath(""))
}

func TestEnsureTrailingSeparator(t *testing.T) {
	assert.Equal(t, `App\Models\`, EnsureTrailingSeparator(`App\Models`))
	assert.Equal(t, `App\Models\`, EnsureTrailingSeparator(`App\Models\`))
	assert.Equal(t, "", EnsureTrailingSeparator(""))
}
