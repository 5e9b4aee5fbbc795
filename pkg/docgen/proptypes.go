package docgen

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/jsdoc"
	"github.com/gnana997/propdoc/pkg/parser"
)

// simplePropTypes are the PropTypes members that take no argument.
var simplePropTypes = map[string]bool{
	"any": true, "array": true, "bool": true, "func": true, "number": true,
	"object": true, "string": true, "symbol": true, "node": true,
	"element": true, "elementType": true,
}

// readPropType converts a PropTypes expression to a RawType.
//
// Unknown `PropTypes.x` members keep their member name so the normalizer can
// reject them; every other expression becomes a custom validator carrying
// its source text.
func readPropType(n *ts.Node, src []byte) *RawType {
	n = parser.UnwrapExpression(n)
	if n == nil {
		return &RawType{Name: "custom"}
	}

	if n.Kind() == "member_expression" && parser.FieldText(n, "property", src) == "isRequired" {
		inner := readPropType(n.ChildByFieldName("object"), src)
		inner.Required = true
		if inner.Name == "custom" {
			inner.Raw = parser.Text(n, src)
		}
		return inner
	}

	if member, ok := propTypesMember(n, src); ok {
		if simplePropTypes[member] {
			return &RawType{Name: member}
		}
		return &RawType{Name: member, Raw: parser.Text(n, src)}
	}

	if n.Kind() == "call_expression" {
		if member, ok := propTypesMember(n.ChildByFieldName("function"), src); ok {
			if t := readPropTypeCall(member, n, src); t != nil {
				return t
			}
		}
	}

	return &RawType{Name: "custom", Raw: parser.Text(n, src)}
}

// propTypesMember returns x for `PropTypes.x`.
func propTypesMember(n *ts.Node, src []byte) (string, bool) {
	if n == nil || n.Kind() != "member_expression" {
		return "", false
	}
	object := parser.Text(n.ChildByFieldName("object"), src)
	if object != "PropTypes" && !strings.HasSuffix(object, ".PropTypes") {
		return "", false
	}
	return parser.FieldText(n, "property", src), true
}

func readPropTypeCall(member string, call *ts.Node, src []byte) *RawType {
	args := expressionArgs(call)
	if len(args) == 0 {
		return nil
	}
	arg := parser.UnwrapExpression(args[0])
	raw := parser.Text(call, src)

	switch member {
	case "oneOf":
		if arg.Kind() != "array" {
			return &RawType{Name: "enum", Raw: raw, Computed: true, Value: parser.Text(arg, src)}
		}
		var values []any
		for _, el := range parser.NamedChildren(arg) {
			if el.Kind() == "comment" {
				continue
			}
			values = append(values, RawEnumValue{Value: parser.Text(el, src), Computed: !isLiteral(el, src)})
		}
		return &RawType{Name: "enum", Raw: raw, Value: values}

	case "oneOfType":
		if arg.Kind() != "array" {
			return &RawType{Name: "custom", Raw: raw}
		}
		var members []any
		for _, el := range parser.NamedChildren(arg) {
			if el.Kind() == "comment" {
				continue
			}
			members = append(members, readPropType(el, src))
		}
		return &RawType{Name: "union", Raw: raw, Value: members}

	case "arrayOf", "objectOf":
		return &RawType{Name: member, Raw: raw, Value: readPropType(arg, src)}

	case "shape", "exact":
		if arg.Kind() != "object" {
			return &RawType{Name: member, Raw: raw, Computed: true, Value: parser.Text(arg, src)}
		}
		fields := make(map[string]any)
		for _, pair := range parser.NamedChildren(arg) {
			if pair.Kind() != "pair" {
				continue
			}
			field := readPropType(pair.ChildByFieldName("value"), src)
			if doc, ok := parser.LeadingDocBlock(pair, src); ok {
				field.Description = jsdoc.Parse(doc).Description
			}
			fields[propertyKey(pair.ChildByFieldName("key"), src)] = field
		}
		return &RawType{Name: member, Raw: raw, Value: fields}

	case "instanceOf":
		return &RawType{Name: "instanceOf", Raw: raw, Value: parser.Text(arg, src)}
	}
	return nil
}

func expressionArgs(call *ts.Node) []*ts.Node {
	var out []*ts.Node
	for _, a := range parser.NamedChildren(call.ChildByFieldName("arguments")) {
		if a.Kind() != "comment" {
			out = append(out, a)
		}
	}
	return out
}

func isLiteral(n *ts.Node, src []byte) bool {
	switch n.Kind() {
	case "string", "number", "true", "false", "null", "undefined":
		return true
	case "template_string":
		_, ok := parser.StringValue(n, src)
		return ok
	case "unary_expression":
		arg := n.ChildByFieldName("argument")
		return arg != nil && arg.Kind() == "number"
	}
	return false
}

// propertyKey returns the name of an object key: identifier, string or
// number.
func propertyKey(key *ts.Node, src []byte) string {
	if v, ok := parser.StringValue(key, src); ok {
		return v
	}
	return parser.Text(key, src)
}
