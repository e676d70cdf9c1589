// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/pkg/types"
)

// ErrInvalidSpan is returned when a located line span lies outside its file.
var ErrInvalidSpan = errors.New("invalid source span")

// Introspector resolves a handler's parameters and body excerpt.
type Introspector struct {
	resolver TypeResolver
	locator  SourceLocator
	fs       afero.Fs
	logger   *zap.Logger
}

// NewIntrospector creates an introspector. Source files are read from fsys.
func NewIntrospector(resolver TypeResolver, locator SourceLocator, fsys afero.Fs, logger *zap.Logger) *Introspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Introspector{
		resolver: resolver,
		locator:  locator,
		fs:       fsys,
		logger:   logger,
	}
}

// Introspect returns the best-effort view of a handler. Parameter and
// source resolution degrade independently; failures are recorded in the
// result and never returned.
func (in *Introspector) Introspect(ref types.HandlerRef) types.Introspection {
	var intro types.Introspection

	if in.resolver != nil {
		params, err := in.resolver.ResolveParameters(ref)
		if err != nil {
			intro.ParamErr = err
			in.logger.Debug("parameters unresolved", zap.Stringer("handler", ref), zap.Error(err))
		} else {
			intro.Parameters = params
		}
	}

	if in.locator != nil {
		source, err := in.excerpt(ref)
		if err != nil {
			intro.SourceErr = err
			in.logger.Debug("source unresolved", zap.Stringer("handler", ref), zap.Error(err))
		} else {
			intro.Source = source
			intro.HasSource = true
		}
	}

	return intro
}

func (in *Introspector) excerpt(ref types.HandlerRef) (string, error) {
	span, err := in.locator.LocateMethod(ref)
	if err != nil {
		return "", err
	}

	content, err := afero.ReadFile(in.fs, span.File)
	if err != nil {
		return "", fmt.Errorf("failed to read handler source: %w", err)
	}

	return SliceLines(string(content), span.Start, span.End)
}

// SliceLines returns the inclusive 1-based line range of content. An end
// past the last line is clamped.
func SliceLines(content string, start, end int) (string, error) {
	lines := strings.Split(content, "\n")
	if start < 1 || start > len(lines) || end < start {
		return "", fmt.Errorf("%w: lines %d-%d of %d", ErrInvalidSpan, start, end, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n"), nil
}
