// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner provides PHP source discovery for the class index.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// SourceFile represents a discovered source file.
type SourceFile struct {
	// Path is the path to the file as seen by the scanned filesystem
	Path string

	// RelPath is the slash-separated path relative to the scan base
	RelPath string

	// Language is the detected language ("php", "json")
	Language string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// languageExtensions maps file extensions to language identifiers.
var languageExtensions = map[string]string{
	".php":  "php",
	".json": "json",
}

// DetectLanguage detects the language from a file path.
// Blade templates are not PHP classes and are never indexed.
func DetectLanguage(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".blade.php") {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageExtensions[ext]; ok {
		return lang
	}
	return ""
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectLanguage(path) != ""
}
