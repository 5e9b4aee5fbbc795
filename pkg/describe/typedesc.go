package describe

import (
	"regexp"
	"strings"
)

// maxShapeDepth bounds shape recursion; deeper shapes render as `object`.
const maxShapeDepth = 4

// customMarkers maps well-known custom validators to display names.
var customMarkers = map[string]string{
	"elementTypeAcceptingRef": "element type",
	"elementAcceptingRef":     "element",
	"HTMLElementType":         "HTML element",
	"refType":                 "ref",
	"() => null":              "any",
}

var typeofInstance = regexp.MustCompile(`typeof (.*) ===`)

// RenderType renders t for display. needed is false when the text adds
// nothing over the type name, in which case callers omit the description.
func RenderType(t *TypeDescriptor) (text string, needed bool) {
	text = renderType(t, 0)
	return text, text != t.Name
}

func renderType(t *TypeDescriptor, depth int) string {
	switch t.Kind {
	case KindEnum:
		if t.ComputedEnum {
			return t.Raw
		}
		values := make([]string, 0, len(t.Values))
		for _, v := range t.Values {
			values = append(values, formatLiteral(v))
		}
		return strings.Join(values, " | ")

	case KindUnion:
		seen := make(map[string]bool, len(t.Members))
		var members []string
		for _, m := range t.Members {
			r := renderType(m, depth)
			if seen[r] {
				continue
			}
			seen[r] = true
			members = append(members, r)
		}
		return strings.Join(members, " | ")

	case KindArrayOf:
		return "Array<" + renderType(t.Elem, depth) + ">"

	case KindObjectOf:
		return "{ [key: string]: " + renderType(t.Elem, depth) + " }"

	case KindShape:
		if depth >= maxShapeDepth || len(t.Fields) == 0 {
			return "object"
		}
		fields := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			opt := "?"
			if f.Type.Required {
				opt = ""
			}
			fields = append(fields, f.Name+opt+": "+renderType(f.Type, depth+1))
		}
		return "{ " + strings.Join(fields, ", ") + " }"

	case KindInstanceOf:
		if m := typeofInstance.FindStringSubmatch(t.Instance); m != nil {
			return m[1]
		}
		return t.Instance

	case KindCustom:
		if t.Wrapped != nil {
			return renderType(t.Wrapped.Base, depth)
		}
		raw := strings.TrimSuffix(t.Raw, ".isRequired")
		if marker, ok := customMarkers[raw]; ok {
			return marker
		}
		return raw
	}
	return t.Name
}

// formatLiteral prints string literals single-quoted and everything else
// bare.
func formatLiteral(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '`') && v[len(v)-1] == v[0] {
		return "'" + v[1:len(v)-1] + "'"
	}
	return v
}
