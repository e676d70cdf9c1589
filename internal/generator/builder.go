// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generator synthesizes Pest test files from classified endpoints
// and model classes.
package generator

import (
	"strings"

	"github.com/pestgen/pestgen/pkg/types"
)

const indent = "    "

// Builder renders test cases and files as Pest source.
type Builder struct {
	// Prefix is the Pest function declaring a test (test, it)
	Prefix string
}

// Test renders one test case. Each statement is indented on its own line;
// todo tests close with ->todo().
func (b Builder) Test(tc types.TestCase) string {
	prefix := b.Prefix
	if prefix == "" {
		prefix = "test"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("(")
	sb.WriteString(quote(tc.Name))
	sb.WriteString(", function () {\n")
	for _, stmt := range tc.Body {
		sb.WriteString(indent)
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	if tc.Todo {
		sb.WriteString("})->todo();\n")
	} else {
		sb.WriteString("});\n")
	}
	return sb.String()
}

// File is the structure of a generated test file.
type File struct {
	// Uses are imported class names
	Uses []string

	// Directives are file-level calls such as uses(RefreshDatabase::class)
	Directives []string

	// Tests are the test cases in order
	Tests []types.TestCase

	// TrailingBlank ends every test, including the last, with a blank line
	TrailingBlank bool
}

// Render renders a file: the open tag, use imports, directives and the
// tests separated by blank lines.
func (b Builder) Render(f File) string {
	var sb strings.Builder
	sb.WriteString("<?php\n\n")

	for _, use := range f.Uses {
		sb.WriteString("use ")
		sb.WriteString(use)
		sb.WriteString(";\n")
	}
	sb.WriteString("\n")

	for _, d := range f.Directives {
		sb.WriteString(d)
		sb.WriteString(";\n")
	}
	if len(f.Directives) > 0 {
		sb.WriteString("\n")
	}

	for i, tc := range f.Tests {
		if i > 0 && !f.TrailingBlank {
			sb.WriteString("\n")
		}
		sb.WriteString(b.Test(tc))
		if f.TrailingBlank {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote returns s as a single-quoted PHP string literal.
func quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}
