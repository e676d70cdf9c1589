// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package phpindex provides a static class index over a PHP project. It
// answers the questions a runtime reflection facility would: declared
// parameters of an action, where an action is defined, class existence and
// type hierarchy.
package phpindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/parser"
	"github.com/pestgen/pestgen/internal/scanner"
	"github.com/pestgen/pestgen/internal/util"
	"github.com/pestgen/pestgen/pkg/types"
)

var (
	// ErrClassNotFound is returned when a class is neither indexed nor autoloadable.
	ErrClassNotFound = errors.New("class not found")

	// ErrMethodNotFound is returned when a class and its ancestors lack a method.
	ErrMethodNotFound = errors.New("method not found")
)

// SourceSpan is the inclusive line range of a declaration in a file.
type SourceSpan struct {
	File  string
	Start int
	End   int
}

type classEntry struct {
	fqcn    string
	file    string
	parent  string
	traits  []string
	methods map[string]methodEntry
}

type methodEntry struct {
	name   string
	params []types.ParameterInfo
	start  int
	end    int
}

// Index is a class index built from parsed PHP files. Classes that were not
// scanned up front are loaded lazily through the project's PSR-4 autoload map.
type Index struct {
	fs       afero.Fs
	root     string
	parser   *parser.PHPParser
	autoload *Autoload
	logger   *zap.Logger

	classes map[string]*classEntry
	misses  map[string]bool
}

// New creates an empty index reading lazily loaded classes from fsys.
func New(fsys afero.Fs, root string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		fs:      fsys,
		root:    root,
		parser:  parser.NewPHPParser(),
		logger:  logger,
		classes: make(map[string]*classEntry),
		misses:  make(map[string]bool),
	}
}

// SetAutoload installs the PSR-4 map used for lazy class lookup.
func (ix *Index) SetAutoload(a *Autoload) {
	ix.autoload = a
}

// AddFile parses a PHP file and indexes every class it declares.
func (ix *Index) AddFile(path string, content []byte) error {
	pf, err := ix.parser.Parse(path, content)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer pf.Close()

	for _, cls := range pf.Classes {
		entry := &classEntry{
			fqcn:    cls.FQCN(),
			file:    path,
			methods: make(map[string]methodEntry, len(cls.Methods)),
		}
		if cls.Extends != "" {
			entry.parent = pf.ResolveName(cls.Extends)
		}
		for _, trait := range cls.Traits {
			entry.traits = append(entry.traits, pf.ResolveName(trait))
		}
		for _, m := range cls.Methods {
			entry.methods[strings.ToLower(m.Name)] = methodEntry{
				name:   m.Name,
				params: parameterInfos(pf, entry.fqcn, m.Parameters),
				start:  m.StartLine,
				end:    m.EndLine,
			}
		}

		key := strings.ToLower(entry.fqcn)
		ix.classes[key] = entry
		delete(ix.misses, key)
	}

	return nil
}

// parameterInfos converts parsed parameters, resolving class types.
func parameterInfos(pf *parser.ParsedPHPFile, self string, params []parser.PHPParameter) []types.ParameterInfo {
	infos := make([]types.ParameterInfo, 0, len(params))
	for _, p := range params {
		info := types.ParameterInfo{Name: p.Name, Type: p.Type, Builtin: true}

		switch {
		case p.Type == "":
		case strings.ContainsAny(p.Type, "|&"):
			// Union and intersection types have no single named type.
		case parser.IsBuiltinType(p.Type):
			info.Type = strings.ToLower(p.Type)
		case strings.EqualFold(p.Type, "self") || strings.EqualFold(p.Type, "static"):
			info.Type = self
			info.Builtin = false
		default:
			info.Type = pf.ResolveName(p.Type)
			info.Builtin = false
		}

		infos = append(infos, info)
	}
	return infos
}

// AddFiles indexes scanned files. Files that fail to parse are logged and skipped.
func (ix *Index) AddFiles(files []scanner.SourceFile) {
	for _, f := range files {
		if f.Language != "php" {
			continue
		}
		if err := ix.AddFile(f.Path, f.Content); err != nil {
			ix.logger.Debug("skipping unparsable file", zap.String("file", f.Path), zap.Error(err))
		}
	}
}

// Len returns the number of indexed classes.
func (ix *Index) Len() int {
	return len(ix.classes)
}

// lookup returns the entry for a class, loading it through autoload if needed.
func (ix *Index) lookup(fqcn string) (*classEntry, bool) {
	fqcn = strings.TrimPrefix(strings.TrimSpace(fqcn), `\`)
	if fqcn == "" {
		return nil, false
	}
	key := strings.ToLower(fqcn)

	if entry, ok := ix.classes[key]; ok {
		return entry, true
	}
	if ix.misses[key] || ix.autoload == nil {
		return nil, false
	}

	for _, path := range ix.autoload.Candidates(fqcn) {
		content, err := afero.ReadFile(ix.fs, path)
		if err != nil {
			continue
		}
		if err := ix.AddFile(path, content); err != nil {
			ix.logger.Debug("autoload parse failed", zap.String("file", path), zap.Error(err))
			continue
		}
		if entry, ok := ix.classes[key]; ok {
			ix.logger.Debug("autoloaded class", zap.String("class", fqcn), zap.String("file", path))
			return entry, true
		}
	}

	ix.misses[key] = true
	return nil, false
}

// findMethod looks a method up on a class and then its ancestors.
func (ix *Index) findMethod(ref types.HandlerRef) (*classEntry, methodEntry, error) {
	entry, ok := ix.lookup(ref.Class)
	if !ok {
		return nil, methodEntry{}, fmt.Errorf("%w: %s", ErrClassNotFound, ref.Class)
	}

	visited := make(map[string]bool)
	for entry != nil && !visited[entry.fqcn] {
		visited[entry.fqcn] = true
		if m, ok := entry.methods[strings.ToLower(ref.Action)]; ok {
			return entry, m, nil
		}
		if entry.parent == "" {
			break
		}
		entry, _ = ix.lookup(entry.parent)
	}

	return nil, methodEntry{}, fmt.Errorf("%w: %s", ErrMethodNotFound, ref)
}

// ResolveParameters returns the declared parameters of a handler action.
func (ix *Index) ResolveParameters(ref types.HandlerRef) ([]types.ParameterInfo, error) {
	if !ref.IsResolvable() {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, ref)
	}
	_, m, err := ix.findMethod(ref)
	if err != nil {
		return nil, err
	}
	return append([]types.ParameterInfo(nil), m.params...), nil
}

// LocateMethod returns the file and line span declaring a handler action.
func (ix *Index) LocateMethod(ref types.HandlerRef) (SourceSpan, error) {
	if !ref.IsResolvable() {
		return SourceSpan{}, fmt.Errorf("%w: %s", ErrClassNotFound, ref)
	}
	entry, m, err := ix.findMethod(ref)
	if err != nil {
		return SourceSpan{}, err
	}
	return SourceSpan{File: entry.file, Start: m.start, End: m.end}, nil
}

// IsSubtypeOf reports whether typ extends base, directly or through
// ancestors. A class is not a subtype of itself. Unknown classes are not
// subtypes of anything.
func (ix *Index) IsSubtypeOf(typ, base string) bool {
	base = strings.TrimPrefix(base, `\`)
	entry, ok := ix.lookup(typ)
	if !ok {
		return false
	}

	visited := map[string]bool{strings.ToLower(entry.fqcn): true}
	for entry.parent != "" {
		if strings.EqualFold(entry.parent, base) {
			return true
		}
		key := strings.ToLower(entry.parent)
		if visited[key] {
			return false
		}
		visited[key] = true

		if entry, ok = ix.lookup(entry.parent); !ok {
			return false
		}
	}
	return false
}

// ClassExists reports whether a class can be resolved.
func (ix *Index) ClassExists(fqcn string) bool {
	_, ok := ix.lookup(fqcn)
	return ok
}

// ResolveClass resolves a model class and detects its factory capability:
// a HasFactory trait or a declared factory() method on it or an ancestor.
func (ix *Index) ResolveClass(fqcn string) (types.ClassInfo, error) {
	entry, ok := ix.lookup(fqcn)
	if !ok {
		return types.ClassInfo{}, fmt.Errorf("%w: %s", ErrClassNotFound, fqcn)
	}

	info := types.ClassInfo{
		FQCN:      entry.fqcn,
		ShortName: util.ClassBasename(entry.fqcn),
	}

	visited := make(map[string]bool)
	for cur := entry; cur != nil && !visited[cur.fqcn]; {
		visited[cur.fqcn] = true
		if hasFactory(cur) {
			info.HasFactory = true
			break
		}
		if cur.parent == "" {
			break
		}
		cur, _ = ix.lookup(cur.parent)
	}

	return info, nil
}

func hasFactory(entry *classEntry) bool {
	if _, ok := entry.methods["factory"]; ok {
		return true
	}
	for _, trait := range entry.traits {
		if util.ClassBasename(trait) == "HasFactory" {
			return true
		}
	}
	return false
}

// Close releases parser resources.
func (ix *Index) Close() {
	ix.parser.Close()
}
