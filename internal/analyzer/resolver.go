// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package analyzer turns endpoint descriptors into generation units and
// derives the expected shape of each endpoint's tests.
package analyzer

import (
	"github.com/pestgen/pestgen/internal/phpindex"
	"github.com/pestgen/pestgen/pkg/types"
)

// TypeResolver answers signature and type hierarchy questions about
// handler code.
type TypeResolver interface {
	// ResolveParameters returns the declared parameters of a handler action.
	ResolveParameters(ref types.HandlerRef) ([]types.ParameterInfo, error)

	// IsSubtypeOf reports whether typ is a strict subtype of base.
	IsSubtypeOf(typ, base string) bool
}

// SourceLocator finds the source lines declaring a handler action.
type SourceLocator interface {
	LocateMethod(ref types.HandlerRef) (phpindex.SourceSpan, error)
}

var (
	_ TypeResolver  = (*phpindex.Index)(nil)
	_ SourceLocator = (*phpindex.Index)(nil)
)
