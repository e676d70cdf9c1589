// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"
	"strings"

	"github.com/pestgen/pestgen/internal/phpindex"
	"github.com/pestgen/pestgen/pkg/types"
)

// fakeIndex is an in-memory class index.
type fakeIndex struct {
	classes map[string]types.ClassInfo
	params  map[string][]types.ParameterInfo
	spans   map[string]phpindex.SourceSpan
	parents map[string]string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		classes: make(map[string]types.ClassInfo),
		params:  make(map[string][]types.ParameterInfo),
		spans:   make(map[string]phpindex.SourceSpan),
		parents: make(map[string]string),
	}
}

func (f *fakeIndex) addClass(fqcn string, hasFactory bool) {
	short := fqcn[strings.LastIndex(fqcn, `\`)+1:]
	f.classes[fqcn] = types.ClassInfo{FQCN: fqcn, ShortName: short, HasFactory: hasFactory}
}

func (f *fakeIndex) ResolveParameters(ref types.HandlerRef) ([]types.ParameterInfo, error) {
	params, ok := f.params[ref.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", phpindex.ErrMethodNotFound, ref)
	}
	return params, nil
}

func (f *fakeIndex) LocateMethod(ref types.HandlerRef) (phpindex.SourceSpan, error) {
	span, ok := f.spans[ref.String()]
	if !ok {
		return phpindex.SourceSpan{}, fmt.Errorf("%w: %s", phpindex.ErrMethodNotFound, ref)
	}
	return span, nil
}

func (f *fakeIndex) IsSubtypeOf(typ, base string) bool {
	seen := map[string]bool{}
	for cur := f.parents[typ]; cur != "" && !seen[cur]; cur = f.parents[cur] {
		if cur == base {
			return true
		}
		seen[cur] = true
	}
	return false
}

func (f *fakeIndex) ClassExists(fqcn string) bool {
	_, ok := f.classes[fqcn]
	return ok
}

func (f *fakeIndex) ResolveClass(fqcn string) (types.ClassInfo, error) {
	info, ok := f.classes[fqcn]
	if !ok {
		return types.ClassInfo{}, fmt.Errorf("%w: %s", phpindex.ErrClassNotFound, fqcn)
	}
	return info, nil
}

func spanOf(file string, start, end int) phpindex.SourceSpan {
	return phpindex.SourceSpan{File: file, Start: start, End: end}
}
