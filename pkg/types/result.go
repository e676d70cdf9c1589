// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import "fmt"

// ClosureGroup is the sentinel group key for endpoints without a controller.
const ClosureGroup = "Closures"

// Unit is a generation unit: the endpoints that end up in one test file.
type Unit struct {
	// Key is the controller class (grouped) or Class@action (flat)
	Key string

	// Handler is the handler of the first endpoint in the unit
	Handler HandlerRef

	// Endpoints are the unit's endpoints in encounter order
	Endpoints []Endpoint
}

// Writable reports whether the unit resolves to an output file.
func (u Unit) Writable() bool {
	return u.Key != ClosureGroup && u.Handler.IsResolvable()
}

// UnitError records a failure to generate one unit.
type UnitError struct {
	Key  string
	Path string
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("generate %s (%s): %v", e.Key, e.Path, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Result summarizes one generation run.
type Result struct {
	// FilesWritten is the number of created files
	FilesWritten int

	// FilesSkipped is the number of files left untouched (existing or unresolvable)
	FilesSkipped int

	// EndpointsProcessed is the number of endpoints a test was synthesized for
	EndpointsProcessed int

	// TestsGenerated is the number of synthesized test cases
	TestsGenerated int

	// Written lists created paths in order
	Written []string

	// Skipped lists skipped paths or class names in order
	Skipped []string

	// Failures are non-fatal per-unit errors
	Failures []*UnitError
}

// Merge adds the counts of other into r.
func (r *Result) Merge(other Result) {
	r.FilesWritten += other.FilesWritten
	r.FilesSkipped += other.FilesSkipped
	r.EndpointsProcessed += other.EndpointsProcessed
	r.TestsGenerated += other.TestsGenerated
	r.Written = append(r.Written, other.Written...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Failures = append(r.Failures, other.Failures...)
}
