// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory patterns are relative to (defaults to ".")
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "**/*.php")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "vendor/**")
	ExcludePatterns []string
}

// Scanner discovers source files in a project.
type Scanner struct {
	config Config
	fs     afero.Fs
}

// New creates a new Scanner reading from fsys.
func New(fsys afero.Fs, config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.php"}
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return &Scanner{
		config: config,
		fs:     fsys,
	}
}

// ScanPath scans a path, relative to the base path unless absolute.
// A missing path yields no files.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	root := path
	if !filepath.IsAbs(root) {
		root = filepath.Join(s.config.BasePath, path)
	}

	info, err := s.fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !s.shouldIncludeFile(root, info) {
			return nil, nil
		}
		file, err := s.readFile(root, info)
		if err != nil {
			return nil, err
		}
		return []SourceFile{file}, nil
	}

	var files []SourceFile
	err = afero.Walk(s.fs, root, func(filePath string, info fs.FileInfo, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if info.IsDir() {
			if s.shouldExcludeDir(s.relative(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.shouldIncludeFile(filePath, info) {
			return nil
		}

		file, err := s.readFile(filePath, info)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans multiple paths, dropping duplicates.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var allFiles []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

func (s *Scanner) readFile(path string, info fs.FileInfo) (SourceFile, error) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return SourceFile{
		Path:     path,
		RelPath:  s.relative(path),
		Language: DetectLanguage(path),
		Content:  content,
		ModTime:  info.ModTime(),
	}, nil
}

// relative returns the slash-separated path relative to the base path.
func (s *Scanner) relative(path string) string {
	rel, err := filepath.Rel(s.config.BasePath, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// shouldIncludeFile checks if a file should be included based on patterns.
func (s *Scanner) shouldIncludeFile(filePath string, info fs.FileInfo) bool {
	if info.IsDir() || !IsSupportedFile(filePath) {
		return false
	}

	relPath := s.relative(filePath)

	if s.matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}

	return s.matchesPatterns(relPath, s.config.IncludePatterns)
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		// "vendor" matches "vendor/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		if matched, _ := doublestar.Match(pattern, relPath+"/dummy.php"); matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
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
