// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package writer places generated test files on disk without ever
// overwriting existing ones unless told to.
package writer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/util"
)

// Outcome is the result of a write.
type Outcome int

const (
	// Created means the file was written.
	Created Outcome = iota
	// Skipped means an existing file was left untouched.
	Skipped
)

// String returns a human readable name for the outcome.
func (o Outcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "created"
}

// ErrOutputRoot is returned when the output root cannot be created.
var ErrOutputRoot = errors.New("output root is not writable")

// ErrPathConflict is recorded when two units of one run map to the same
// test file.
var ErrPathConflict = errors.New("test file already generated for another unit")

// Observer is notified with the path of every skipped file.
type Observer func(path string)

// Config holds writer configuration.
type Config struct {
	// Root is the output directory
	Root string

	// ControllerNamespace is stripped from class names before they become paths
	ControllerNamespace string

	// SkipExisting leaves existing files untouched
	SkipExisting bool
}

// Writer writes test files below a root directory.
type Writer struct {
	fs       afero.Fs
	config   Config
	observer Observer
}

// New creates a writer on fsys.
func New(fsys afero.Fs, cfg Config) *Writer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Writer{
		fs:     fsys,
		config: cfg,
	}
}

// ForRoutes creates the route test writer described by cfg.
func ForRoutes(fsys afero.Fs, cfg *config.Config) *Writer {
	return New(fsys, Config{
		Root:                cfg.Resolve(cfg.OutputPath),
		ControllerNamespace: cfg.Policy.ControllerNamespace,
		SkipExisting:        cfg.Features.SkipExisting,
	})
}

// ForModels creates the model test writer described by cfg.
func ForModels(fsys afero.Fs, cfg *config.Config) *Writer {
	return New(fsys, Config{
		Root:         cfg.Resolve(cfg.ModelTests.OutputPath),
		SkipExisting: cfg.Features.SkipExisting,
	})
}

// SetObserver installs the skip observer.
func (w *Writer) SetObserver(o Observer) {
	w.observer = o
}

// Root returns the output directory.
func (w *Writer) Root() string {
	return w.config.Root
}

// PathFor computes the test file path of a unit key. Classes inside the
// controller namespace keep their sub-namespace as sub-directory, other
// classes use their full namespace. Flat keys (Class@action) append the
// studly action to the file name.
func (w *Writer) PathFor(key string) string {
	class, action, flat := strings.Cut(strings.TrimPrefix(key, `\`), "@")

	rel := class
	ns := util.EnsureTrailingSeparator(strings.TrimPrefix(w.config.ControllerNamespace, `\`))
	if ns != "" && strings.HasPrefix(class, ns) {
		rel = strings.TrimPrefix(class, ns)
	}

	name := util.ClassBasename(class)
	if flat && action != "" {
		name += util.Studly(action)
	}

	return filepath.Join(w.config.Root, util.NamespaceToPath(util.Namespace(rel)), name+"Test.php")
}

// FilePath returns the path of a test file named after a class directly
// below the root.
func (w *Writer) FilePath(shortName string) string {
	return filepath.Join(w.config.Root, shortName+"Test.php")
}

// Prepare creates the output root. Failure here means the environment is
// unusable and the run should stop.
func (w *Writer) Prepare() error {
	if err := w.fs.MkdirAll(w.config.Root, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputRoot, w.config.Root, err)
	}
	return nil
}

// Exists reports whether a file is already present.
func (w *Writer) Exists(path string) bool {
	exists, err := afero.Exists(w.fs, path)
	return err == nil && exists
}

// Write writes content verbatim to path, creating parent directories. With
// SkipExisting an existing file is left untouched, the observer is
// notified and Skipped is returned.
func (w *Writer) Write(path string, content []byte) (Outcome, error) {
	if w.config.SkipExisting && w.Exists(path) {
		if w.observer != nil {
			w.observer(path)
		}
		return Skipped, nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Created, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := afero.WriteFile(w.fs, path, content, 0o644); err != nil {
		return Created, fmt.Errorf("failed to write file: %w", err)
	}

	return Created, nil
}

// Read returns the content of an existing file.
func (w *Writer) Read(path string) ([]byte, error) {
	return afero.ReadFile(w.fs, path)
}
