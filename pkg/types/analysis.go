// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// ParameterInfo describes one declared parameter of a controller action.
type ParameterInfo struct {
	// Name is the parameter name without the leading "$"
	Name string `json:"name" yaml:"name"`

	// Type is the declared type, fully qualified for class types
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Builtin reports whether Type is a PHP builtin type (or absent)
	Builtin bool `json:"builtin" yaml:"builtin"`
}

// Introspection is the best-effort view of a handler's signature and body.
type Introspection struct {
	// Parameters are the declared parameters, empty when unresolvable
	Parameters []ParameterInfo

	// Source is the exact source line range of the handler body
	Source string

	// HasSource reports whether Source was resolved
	HasSource bool

	// ParamErr records why parameters could not be resolved
	ParamErr error

	// SourceErr records why the source excerpt could not be resolved
	SourceErr error
}

// ResponseKind classifies what an action renders.
type ResponseKind int

const (
	// ResponseNone means no recognizable render call was found.
	ResponseNone ResponseKind = iota
	// ResponseView means a Blade template is rendered.
	ResponseView
	// ResponseSPA means an Inertia page component is rendered.
	ResponseSPA
)

// String returns a human readable name for the kind.
func (k ResponseKind) String() string {
	switch k {
	case ResponseView:
		return "view"
	case ResponseSPA:
		return "spa"
	default:
		return "none"
	}
}

// UnknownViewName is emitted when a view call has no literal template name.
const UnknownViewName = "TODO: fill view name"

// Response is the detected response kind and the extracted identifier.
type Response struct {
	Kind ResponseKind
	Name string
}

// Classification is the derived expected shape of an endpoint's tests.
type Classification struct {
	RequiresAuth         bool
	IsSensitive          bool
	Response             Response
	HasValidationRequest bool
}

// TestCase is one generated test: a name, ordered body statements and
// whether it is marked as intentionally incomplete.
type TestCase struct {
	Name string
	Body []string
	Todo bool
}

// ClassInfo is the resolved view of a model class.
type ClassInfo struct {
	// FQCN is the fully-qualified class name
	FQCN string

	// ShortName is the class name without namespace
	ShortName string

	// HasFactory reports whether the class exposes a factory() method
	HasFactory bool
}
