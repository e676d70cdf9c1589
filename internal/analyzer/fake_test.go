// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"fmt"
	"strings"

	"github.com/pestgen/pestgen/internal/phpindex"
	"github.com/pestgen/pestgen/pkg/types"
)

// fakeResolver is an in-memory TypeResolver and SourceLocator.
type fakeResolver struct {
	params  map[string][]types.ParameterInfo
	spans   map[string]phpindex.SourceSpan
	parents map[string]string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		params:  make(map[string][]types.ParameterInfo),
		spans:   make(map[string]phpindex.SourceSpan),
		parents: make(map[string]string),
	}
}

func (f *fakeResolver) ResolveParameters(ref types.HandlerRef) ([]types.ParameterInfo, error) {
	params, ok := f.params[ref.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", phpindex.ErrClassNotFound, ref)
	}
	return params, nil
}

func (f *fakeResolver) LocateMethod(ref types.HandlerRef) (phpindex.SourceSpan, error) {
	span, ok := f.spans[ref.String()]
	if !ok {
		return phpindex.SourceSpan{}, fmt.Errorf("%w: %s", phpindex.ErrMethodNotFound, ref)
	}
	return span, nil
}

func (f *fakeResolver) IsSubtypeOf(typ, base string) bool {
	seen := map[string]bool{}
	for cur := f.parents[typ]; cur != "" && !seen[cur]; cur = f.parents[cur] {
		if strings.EqualFold(cur, base) {
			return true
		}
		seen[cur] = true
	}
	return false
}
