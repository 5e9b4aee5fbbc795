// Package docgen extracts react-docgen style component metadata from
// JavaScript and TypeScript sources using tree-sitter.
package docgen

import "errors"

// ErrNoDefinition is returned by a Finder when the source has no component
// definition it recognizes.
var ErrNoDefinition = errors.New("no suitable component definition found")

// Result is the docgen output for one component, shaped like react-docgen's
// JSON so precomputed output can be loaded with LoadJSON.
type Result struct {
	DisplayName string              `json:"displayName"`
	Description string              `json:"description"`
	Props       map[string]*RawProp `json:"props"`

	// Spread reports whether the component forwards unknown props to a JSX
	// element. Nil when it could not be determined from source.
	Spread *bool `json:"spread,omitempty"`

	// MuiName is the theme name read from `name: 'Mui...'` options.
	MuiName string `json:"muiName,omitempty"`
}

// RawProp is one prop as reported by docgen.
type RawProp struct {
	Type     *RawType `json:"type,omitempty"`
	Required bool     `json:"required"`

	// Description is the leading doc comment with delimiters stripped, tags
	// included. Nil means the prop has no doc comment at all.
	Description *string `json:"description,omitempty"`

	DefaultValue *RawDefault `json:"defaultValue,omitempty"`
}

// RawType is a loosely typed PropTypes descriptor.
//
// Value depends on Name:
//   - enum: []any of RawEnumValue (or a string when Computed)
//   - union: []any of *RawType
//   - arrayOf, objectOf: *RawType
//   - shape, exact: map[string]any of *RawType (or a string when Computed)
//   - instanceOf: string
//
// Values decoded from JSON use map[string]any and []any in place of the
// typed structs; consumers accept both.
type RawType struct {
	Name        string `json:"name"`
	Raw         string `json:"raw,omitempty"`
	Value       any    `json:"value,omitempty"`
	Computed    bool   `json:"computed,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// RawEnumValue is one oneOf literal, kept as source text ('red', 42).
type RawEnumValue struct {
	Value    string `json:"value"`
	Computed bool   `json:"computed"`
}

// RawDefault is a detected default value, kept as source text.
type RawDefault struct {
	Value    string `json:"value"`
	Computed bool   `json:"computed"`
}

// Unwrapped describes a chainPropTypes or deprecatedPropType wrapper.
type Unwrapped struct {
	Wrapper string
	Base    *RawType
	// Args holds the remaining arguments; string literals are unquoted.
	Args []string
}

// Options configures a Parse call.
type Options struct {
	// Finder locates the component definition. Nil means DefaultFinder.
	Finder Finder
	// Handlers fill the Result. Nil means the parser's default chain.
	Handlers []Handler
}

// Parser is the docgen entry point consumed by the API builder.
type Parser interface {
	Parse(source []byte, filename string, opts Options) (*Result, error)
}

// Unwrapper re-parses custom validator text to expose chained base types.
type Unwrapper interface {
	Unwrap(raw string) (*Unwrapped, bool)
}
