package describe

import (
	"regexp"
	"strings"
)

// SignatureKind classifies function props.
type SignatureKind string

const (
	SignatureNone     SignatureKind = ""
	SignatureFunction SignatureKind = "function"
	SignatureEvent    SignatureKind = "event"
)

var (
	eventHandlerName = regexp.MustCompile(`^on[A-Z]`)
	requiresRefRaw   = regexp.MustCompile(`^(elementAcceptingRef|elementTypeAcceptingRef)`)
)

// Arg is a documented function argument.
type Arg struct {
	Name        string
	Description string
}

// Signature describes a function prop.
type Signature struct {
	Type     string
	Args     []Arg
	Returned string
}

// Description is the derived display data of a prop. Text fields are
// markdown; rendering to HTML happens at serialization.
type Description struct {
	Text            string
	Deprecated      bool
	DeprecationInfo string
	SignatureKind   SignatureKind
	Signature       *Signature
	RequiresRef     bool
}

// GenerateDescription derives signature, deprecation and ref requirements
// from the prop's doc comment and type.
func GenerateDescription(p *Prop) Description {
	d := Description{
		Text:        p.Comment.Description,
		RequiresRef: requiresRef(p.Type),
	}

	if tag, ok := p.Comment.Tag("deprecated"); ok {
		d.Deprecated = true
		d.DeprecationInfo = tag.Description
	} else if w := p.Type.Wrapped; w != nil && w.Wrapper == "deprecatedPropType" {
		d.Deprecated = true
		d.DeprecationInfo = w.Reason
	}

	if !isFunc(p.Type) {
		return d
	}

	params := p.Comment.TagsByTitle("param")
	returns, hasReturns := p.Comment.Tag("returns")
	switch {
	case len(params) > 0 || hasReturns:
		d.SignatureKind = SignatureFunction
	case eventHandlerName.MatchString(p.Name):
		d.SignatureKind = SignatureEvent
		return d
	default:
		return d
	}

	sig := &Signature{}
	parts := make([]string, 0, len(params))
	for _, param := range params {
		typ := param.Type
		if typ == "" {
			typ = "any"
		}
		parts = append(parts, param.Name+": "+typ)
		if param.Name != "" && param.Description != "" {
			sig.Args = append(sig.Args, Arg{Name: param.Name, Description: oneLine(param.Description)})
		}
	}
	returnType := "void"
	if hasReturns {
		if returns.Type != "" {
			returnType = returns.Type
		}
		sig.Returned = oneLine(returns.Description)
	}
	sig.Type = "function(" + strings.Join(parts, ", ") + ") => " + returnType
	if tag, ok := p.Comment.Tag("signature"); ok && tag.Description != "" {
		sig.Type = strings.Trim(tag.Description, "`")
	}
	d.Signature = sig
	return d
}

// IsRequired applies, in order: the explicit docgen flag, a trailing
// .isRequired on the raw type, and the required flag of a chained base.
func IsRequired(p *Prop) bool {
	if p.Required {
		return true
	}
	if strings.HasSuffix(p.Type.Raw, ".isRequired") {
		return true
	}
	return p.Type.Wrapped != nil && p.Type.Wrapped.Required
}

func isFunc(t *TypeDescriptor) bool {
	if t.Name == "func" {
		return true
	}
	return t.Wrapped != nil && isFunc(t.Wrapped.Base)
}

func requiresRef(t *TypeDescriptor) bool {
	if t.Kind != KindCustom {
		return false
	}
	if requiresRefRaw.MatchString(t.Raw) {
		return true
	}
	return t.Wrapped != nil && requiresRef(t.Wrapped.Base)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
