package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnana997/propdoc/pkg/describe"
)

// MissingDemoError reports a component that no demo page lists.
type MissingDemoError struct {
	Component string
}

func (e *MissingDemoError) Error() string {
	return fmt.Sprintf("component %q has no demos; list it in the \"components\" front matter of a demo page", e.Component)
}

// AggregatedPropError collects every prop of a component that failed
// normalization. Nothing is emitted for the component.
type AggregatedPropError struct {
	Component string
	Errors    []describe.PropError
}

// Props returns the failing prop names in report order.
func (e *AggregatedPropError) Props() []string {
	names := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		names = append(names, err.PropName())
	}
	return names
}

func (e *AggregatedPropError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "component %q: %d invalid props (%s)", e.Component, len(e.Errors), strings.Join(e.Props(), ", "))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual prop errors to errors.As.
func (e *AggregatedPropError) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		out = append(out, err)
	}
	return out
}

// IsComponentError reports whether err is a documentation error in the
// component's own sources rather than an I/O or parser failure.
func IsComponentError(err error) bool {
	var missing *MissingDemoError
	var aggregated *AggregatedPropError
	return errors.As(err, &missing) || errors.As(err, &aggregated)
}
