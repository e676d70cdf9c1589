// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"app/Models/User.php", "php"},
		{"Controller.PHP", "php"},
		{"composer.json", "json"},
		{"resources/views/welcome.blade.php", ""},
		{"main.go", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.path))
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("routes/web.php"))
	assert.False(t, IsSupportedFile("README.md"))
}
