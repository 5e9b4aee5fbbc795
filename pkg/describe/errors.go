package describe

import "fmt"

// PropError is implemented by every per-prop failure so callers can
// aggregate them by prop name.
type PropError interface {
	error
	PropName() string
}

// UnsupportedPropTypeError reports a type shape the normalizer does not
// recognize, or a recognized name whose value has the wrong shape.
type UnsupportedPropTypeError struct {
	Prop     string
	TypeName string
}

func (e *UnsupportedPropTypeError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("prop %q: missing prop type", e.Prop)
	}
	return fmt.Sprintf("prop %q: unsupported prop type %q", e.Prop, e.TypeName)
}

// PropName implements PropError.
func (e *UnsupportedPropTypeError) PropName() string { return e.Prop }

// MissingDescriptionError reports a prop without any doc comment.
type MissingDescriptionError struct {
	Prop string
}

func (e *MissingDescriptionError) Error() string {
	return fmt.Sprintf("prop %q: missing doc comment; add /** */ above the prop type or mark it @ignore", e.Prop)
}

// PropName implements PropError.
func (e *MissingDescriptionError) PropName() string { return e.Prop }

// DefaultMismatchError reports a runtime default that is not documented
// with a matching @default tag.
type DefaultMismatchError struct {
	Prop    string
	Runtime string
	// JSDoc is empty when the @default tag is missing.
	JSDoc string
}

func (e *DefaultMismatchError) Error() string {
	if e.JSDoc == "" {
		return fmt.Sprintf("prop %q: @default annotation not found; add `@default %s` to its doc comment", e.Prop, e.Runtime)
	}
	return fmt.Sprintf("prop %q: @default %s does not match runtime default %s", e.Prop, e.JSDoc, e.Runtime)
}

// PropName implements PropError.
func (e *DefaultMismatchError) PropName() string { return e.Prop }
