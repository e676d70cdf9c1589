// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared naming helpers for PHP identifiers.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// Studly converts a snake, kebab or space separated word to StudlyCase,
// the way Laravel's Str::studly does: "blog_post" becomes "BlogPost".
func Studly(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(w))
	}
	return sb.String()
}

// ClassBasename returns the class name without its namespace.
func ClassBasename(fqcn string) string {
	fqcn = strings.TrimSuffix(fqcn, `\`)
	if idx := strings.LastIndex(fqcn, `\`); idx != -1 {
		return fqcn[idx+1:]
	}
	return fqcn
}

// Namespace returns the namespace of a class name, or "" for global classes.
func Namespace(fqcn string) string {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	if idx := strings.LastIndex(fqcn, `\`); idx != -1 {
		return fqcn[:idx]
	}
	return ""
}

// NamespaceToPath converts a namespace to a slash-separated directory path.
func NamespaceToPath(ns string) string {
	return strings.ReplaceAll(strings.Trim(ns, `\`), `\`, "/")
}

// EnsureTrailingSeparator appends a namespace separator when missing.
func EnsureTrailingSeparator(ns string) string {
	if ns == "" || strings.HasSuffix(ns, `\`) {
		return ns
	}
	return ns + `\`
}
