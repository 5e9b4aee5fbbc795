package describe

import (
	"sort"
	"strings"

	"github.com/gnana997/propdoc/pkg/docgen"
	"github.com/gnana997/propdoc/pkg/jsdoc"
)

// simpleTypes are docgen names that carry no value.
var simpleTypes = map[string]bool{
	"any": true, "array": true, "bool": true, "element": true,
	"elementType": true, "func": true, "node": true, "number": true,
	"object": true, "string": true, "symbol": true,
}

// Normalizer converts raw docgen props to canonical Props.
type Normalizer struct {
	unwrapper docgen.Unwrapper
}

// NewNormalizer creates a Normalizer. u re-parses custom validator text; a
// nil u leaves chained validators opaque.
func NewNormalizer(u docgen.Unwrapper) *Normalizer {
	return &Normalizer{unwrapper: u}
}

// Normalize validates raw and returns the canonical prop. Props marked
// @ignore yield (nil, nil). Failures are PropErrors.
func (n *Normalizer) Normalize(name string, raw *docgen.RawProp) (*Prop, error) {
	if raw == nil {
		return nil, &UnsupportedPropTypeError{Prop: name}
	}
	var comment jsdoc.Comment
	if raw.Description != nil {
		comment = jsdoc.Parse(*raw.Description)
		if comment.Has("ignore") {
			return nil, nil
		}
	}

	if raw.Type == nil {
		return nil, &UnsupportedPropTypeError{Prop: name}
	}
	t, badType := n.normalizeType(raw.Type)
	if badType != "" {
		return nil, &UnsupportedPropTypeError{Prop: name, TypeName: badType}
	}

	if raw.Description == nil {
		return nil, &MissingDescriptionError{Prop: name}
	}

	prop := &Prop{
		Name:     name,
		Type:     t,
		Comment:  comment,
		Required: raw.Required,
	}
	if tag, ok := comment.Tag("default"); ok {
		prop.Default = tag.Description
		prop.HasDefault = true
	}
	if err := checkDefault(prop, raw.DefaultValue); err != nil {
		return nil, err
	}
	return prop, nil
}

// checkDefault requires every rendered runtime default to be documented
// with an equal @default tag. `false` for bool and `() => {}` for func are
// implicit and need no tag.
func checkDefault(prop *Prop, runtime *docgen.RawDefault) error {
	if runtime == nil {
		return nil
	}
	value := oneLine(runtime.Value)
	if value == "" ||
		(prop.Type.Name == "bool" && value == "false") ||
		(prop.Type.Name == "func" && value == "() => {}") {
		return nil
	}
	if !prop.HasDefault {
		return &DefaultMismatchError{Prop: prop.Name, Runtime: runtime.Value}
	}
	if normalizeQuotes(prop.Default) != normalizeQuotes(value) {
		return &DefaultMismatchError{Prop: prop.Name, Runtime: runtime.Value, JSDoc: prop.Default}
	}
	return nil
}

// normalizeQuotes compares defaults independent of quote style and of how
// they were wrapped across lines.
func normalizeQuotes(s string) string {
	return oneLine(strings.ReplaceAll(s, `"`, `'`))
}

// normalizeType returns the canonical type, or the offending type name.
func (n *Normalizer) normalizeType(rt *docgen.RawType) (*TypeDescriptor, string) {
	t := &TypeDescriptor{Name: rt.Name, Raw: rt.Raw, Required: rt.Required}

	switch {
	case simpleTypes[rt.Name]:
		t.Kind = KindSimple

	case rt.Name == "enum":
		t.Kind = KindEnum
		if s, ok := rt.Value.(string); ok && rt.Computed {
			t.ComputedEnum = true
			t.Raw = s
			break
		}
		values, ok := enumValues(rt.Value)
		if !ok {
			return nil, rt.Name
		}
		t.Values = values

	case rt.Name == "union":
		t.Kind = KindUnion
		members, ok := rawTypeList(rt.Value)
		if !ok {
			return nil, rt.Name
		}
		for _, m := range members {
			mt, bad := n.normalizeType(m)
			if bad != "" {
				return nil, bad
			}
			t.Members = append(t.Members, mt)
		}

	case rt.Name == "arrayOf" || rt.Name == "objectOf":
		if rt.Name == "arrayOf" {
			t.Kind = KindArrayOf
		} else {
			t.Kind = KindObjectOf
		}
		elem, ok := asRawType(rt.Value)
		if !ok {
			return nil, rt.Name
		}
		et, bad := n.normalizeType(elem)
		if bad != "" {
			return nil, bad
		}
		t.Elem = et

	case rt.Name == "shape" || rt.Name == "exact":
		t.Kind = KindShape
		if _, ok := rt.Value.(string); ok && rt.Computed {
			break
		}
		fields, ok := rawTypeMap(rt.Value)
		if !ok {
			return nil, rt.Name
		}
		names := make([]string, 0, len(fields))
		for k := range fields {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			ft, bad := n.normalizeType(fields[k])
			if bad != "" {
				return nil, bad
			}
			t.Fields = append(t.Fields, Field{Name: k, Type: ft, Description: fields[k].Description})
		}

	case rt.Name == "instanceOf":
		t.Kind = KindInstanceOf
		s, ok := rt.Value.(string)
		if !ok {
			return nil, rt.Name
		}
		t.Instance = s

	case rt.Name == "custom":
		t.Kind = KindCustom
		if n.unwrapper == nil || rt.Raw == "" {
			break
		}
		if u, ok := n.unwrapper.Unwrap(rt.Raw); ok {
			base, bad := n.normalizeType(u.Base)
			if bad != "" {
				return nil, bad
			}
			chain := &Chained{Wrapper: u.Wrapper, Base: base, Required: u.Base.Required}
			if base.Wrapped != nil && base.Wrapped.Required {
				chain.Required = true
			}
			if u.Wrapper == "deprecatedPropType" && len(u.Args) > 0 {
				chain.Reason = u.Args[0]
			}
			// The base is the visible type. Raw keeps the wrapper text so a
			// trailing .isRequired on the wrapper still counts.
			canonical := *base
			canonical.Raw = rt.Raw
			canonical.Required = rt.Required
			canonical.Wrapped = chain
			return &canonical, ""
		}

	default:
		return nil, rt.Name
	}
	return t, ""
}

func enumValues(v any) ([]string, bool) {
	switch vs := v.(type) {
	case []docgen.RawEnumValue:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			out = append(out, e.Value)
		}
		return out, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			switch ev := e.(type) {
			case docgen.RawEnumValue:
				out = append(out, ev.Value)
			case *docgen.RawEnumValue:
				out = append(out, ev.Value)
			case map[string]any:
				s, ok := ev["value"].(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func rawTypeList(v any) ([]*docgen.RawType, bool) {
	switch vs := v.(type) {
	case []*docgen.RawType:
		return vs, true
	case []any:
		out := make([]*docgen.RawType, 0, len(vs))
		for _, e := range vs {
			rt, ok := asRawType(e)
			if !ok {
				return nil, false
			}
			out = append(out, rt)
		}
		return out, true
	}
	return nil, false
}

func rawTypeMap(v any) (map[string]*docgen.RawType, bool) {
	switch vs := v.(type) {
	case map[string]*docgen.RawType:
		return vs, true
	case map[string]any:
		out := make(map[string]*docgen.RawType, len(vs))
		for k, e := range vs {
			rt, ok := asRawType(e)
			if !ok {
				return nil, false
			}
			out[k] = rt
		}
		return out, true
	}
	return nil, false
}

// asRawType accepts typed values and the map form produced by
// encoding/json.
func asRawType(v any) (*docgen.RawType, bool) {
	switch t := v.(type) {
	case *docgen.RawType:
		return t, t != nil
	case docgen.RawType:
		return &t, true
	case map[string]any:
		name, ok := t["name"].(string)
		if !ok {
			return nil, false
		}
		rt := &docgen.RawType{Name: name, Value: t["value"]}
		rt.Raw, _ = t["raw"].(string)
		rt.Computed, _ = t["computed"].(bool)
		rt.Required, _ = t["required"].(bool)
		rt.Description, _ = t["description"].(string)
		return rt, true
	}
	return nil, false
}
