// Package describe turns raw docgen prop descriptors into canonical props
// and derives their display text.
package describe

import "github.com/gnana997/propdoc/pkg/jsdoc"

// Kind classifies a TypeDescriptor.
type Kind string

const (
	KindSimple     Kind = "simple"
	KindEnum       Kind = "enum"
	KindUnion      Kind = "union"
	KindArrayOf    Kind = "arrayOf"
	KindObjectOf   Kind = "objectOf"
	KindShape      Kind = "shape"
	KindInstanceOf Kind = "instanceOf"
	KindCustom     Kind = "custom"
)

// TypeDescriptor is the canonical form of a prop type.
type TypeDescriptor struct {
	// Name is the docgen type name (bool, enum, shape, custom, ...).
	Name string
	Kind Kind
	// Raw is the source text; always set for custom types.
	Raw string

	// Values holds enum literals as source text.
	Values []string
	// ComputedEnum is set for oneOf(variable); Raw holds the variable.
	ComputedEnum bool

	Members  []*TypeDescriptor
	Elem     *TypeDescriptor
	Fields   []Field
	Instance string

	// Required marks a shape field declared with .isRequired.
	Required bool

	// Wrapped is set for chainPropTypes/deprecatedPropType validators. The
	// descriptor itself then mirrors the unwrapped base.
	Wrapped *Chained
}

// Field is one member of a shape or exact type, sorted by name.
type Field struct {
	Name        string
	Type        *TypeDescriptor
	Description string
}

// Chained is an unwrapped validator wrapper.
type Chained struct {
	Wrapper  string
	Base     *TypeDescriptor
	Required bool
	// Reason is the deprecatedPropType message.
	Reason string
}

// Prop is a normalized prop ready for description and rendering.
type Prop struct {
	Name    string
	Type    *TypeDescriptor
	Comment jsdoc.Comment

	// Default is the documented @default value; only set when HasDefault.
	Default    string
	HasDefault bool

	// Required is the explicit docgen flag; see IsRequired for the derived
	// value.
	Required bool
}
