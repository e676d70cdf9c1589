// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package phpindex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// psr4Prefix maps a namespace prefix to base directories.
type psr4Prefix struct {
	prefix string
	dirs   []string
}

// Autoload is a PSR-4 namespace map read from composer metadata.
type Autoload struct {
	prefixes []psr4Prefix
}

// LoadAutoload reads PSR-4 prefixes from the project's composer.json
// (autoload and autoload-dev) and, when present, from the installed vendor
// packages listed in vendor/composer/installed.json. A project without
// composer.json yields an empty map.
func LoadAutoload(fsys afero.Fs, root string) (*Autoload, error) {
	a := &Autoload{}

	content, err := afero.ReadFile(fsys, filepath.Join(root, "composer.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return a, nil
		}
		return nil, fmt.Errorf("failed to read composer.json: %w", err)
	}
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("composer.json is not valid JSON")
	}

	doc := gjson.ParseBytes(content)
	a.addMap(doc.Get("autoload.psr-4"), root)
	a.addMap(doc.Get("autoload-dev.psr-4"), root)

	vendorDir := filepath.Join(root, "vendor")
	if v := doc.Get("config.vendor-dir"); v.Exists() {
		vendorDir = filepath.Join(root, v.String())
	}
	a.addInstalled(fsys, filepath.Join(vendorDir, "composer"))

	sort.SliceStable(a.prefixes, func(i, j int) bool {
		return len(a.prefixes[i].prefix) > len(a.prefixes[j].prefix)
	})

	return a, nil
}

// addInstalled reads vendor/composer/installed.json. Composer 1 writes a
// bare array, Composer 2 wraps it in "packages".
func (a *Autoload) addInstalled(fsys afero.Fs, composerDir string) {
	content, err := afero.ReadFile(fsys, filepath.Join(composerDir, "installed.json"))
	if err != nil || !gjson.ValidBytes(content) {
		return
	}

	doc := gjson.ParseBytes(content)
	packages := doc.Get("packages")
	if !packages.Exists() {
		packages = doc
	}

	for _, pkg := range packages.Array() {
		installPath := pkg.Get("install-path").String()
		if installPath == "" {
			installPath = filepath.Join("..", pkg.Get("name").String())
		}
		a.addMap(pkg.Get("autoload.psr-4"), filepath.Join(composerDir, installPath))
	}
}

// addMap adds a psr-4 object whose values are a directory or a list of them.
func (a *Autoload) addMap(m gjson.Result, base string) {
	m.ForEach(func(key, value gjson.Result) bool {
		p := psr4Prefix{prefix: strings.TrimPrefix(key.String(), `\`)}
		if value.IsArray() {
			for _, dir := range value.Array() {
				p.dirs = append(p.dirs, filepath.Join(base, dir.String()))
			}
		} else {
			p.dirs = append(p.dirs, filepath.Join(base, value.String()))
		}
		a.prefixes = append(a.prefixes, p)
		return true
	})
}

// Len returns the number of registered prefixes.
func (a *Autoload) Len() int {
	return len(a.prefixes)
}

// Candidates returns the files that may declare a class, most specific
// prefix first.
func (a *Autoload) Candidates(fqcn string) []string {
	fqcn = strings.TrimPrefix(fqcn, `\`)

	var paths []string
	for _, p := range a.prefixes {
		if p.prefix != "" && !strings.HasPrefix(fqcn, p.prefix) {
			continue
		}
		rel := strings.ReplaceAll(strings.TrimPrefix(fqcn, p.prefix), `\`, "/") + ".php"
		for _, dir := range p.dirs {
			paths = append(paths, filepath.Join(dir, rel))
		}
	}
	return paths
}
