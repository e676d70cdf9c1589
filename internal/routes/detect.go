// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Detect checks if root holds a Laravel application: composer.json requires
// laravel/framework, or the artisan script is present.
func Detect(fsys afero.Fs, root string) bool {
	if content, err := afero.ReadFile(fsys, filepath.Join(root, "composer.json")); err == nil {
		if gjson.GetBytes(content, `require.laravel/framework`).Exists() {
			return true
		}
	}

	if exists, _ := afero.Exists(fsys, filepath.Join(root, "artisan")); exists {
		return true
	}

	return false
}

// FrameworkVersion returns the laravel/framework constraint from composer.json.
func FrameworkVersion(fsys afero.Fs, root string) string {
	content, err := afero.ReadFile(fsys, filepath.Join(root, "composer.json"))
	if err != nil {
		return ""
	}
	return gjson.GetBytes(content, `require.laravel/framework`).String()
}
