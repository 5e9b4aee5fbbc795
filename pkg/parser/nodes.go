package parser

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Text returns the source text of n, or "" for a nil node.
func Text(n *ts.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n *ts.Node, fn func(*ts.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), fn)
	}
}

// NamedChildren returns the named children of n, comments included.
func NamedChildren(n *ts.Node) []*ts.Node {
	if n == nil {
		return nil
	}
	out := make([]*ts.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// FieldText returns the text of the child stored under field.
func FieldText(n *ts.Node, field string, src []byte) string {
	if n == nil {
		return ""
	}
	return Text(n.ChildByFieldName(field), src)
}

// UnwrapExpression strips parentheses and TypeScript-only wrappers
// (`x as T`, `x satisfies T`, `x!`).
func UnwrapExpression(n *ts.Node) *ts.Node {
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			next := firstNonComment(n)
			if next == nil {
				return n
			}
			n = next
		default:
			return n
		}
	}
	return n
}

func firstNonComment(n *ts.Node) *ts.Node {
	for _, c := range NamedChildren(n) {
		if c.Kind() != "comment" {
			return c
		}
	}
	return nil
}

// StringValue returns the unquoted value of a string literal or a template
// string without substitutions.
func StringValue(n *ts.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "string":
		return unquote(Text(n, src)), true
	case "template_string":
		for _, c := range NamedChildren(n) {
			if c.Kind() == "template_substitution" {
				return "", false
			}
		}
		return unquote(Text(n, src)), true
	}
	return "", false
}

var unescaper = strings.NewReplacer(`\'`, `'`, `\"`, `"`, "\\`", "`", `\\`, `\`, `\n`, "\n", `\t`, "\t")

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return unescaper.Replace(s)
}

// PrecedingComments returns the run of comment siblings directly before n,
// in source order.
func PrecedingComments(n *ts.Node) []*ts.Node {
	var out []*ts.Node
	for prev := n.PrevSibling(); prev != nil && prev.Kind() == "comment"; prev = prev.PrevSibling() {
		out = append([]*ts.Node{prev}, out...)
	}
	return out
}

// IsDocBlock reports whether a comment node is a /** ... */ block.
func IsDocBlock(n *ts.Node, src []byte) bool {
	t := Text(n, src)
	return n.Kind() == "comment" && strings.HasPrefix(t, "/**") && !strings.HasPrefix(t, "/**/")
}

// LeadingDocBlock returns the /** */ comment immediately preceding n. When n
// sits inside an export statement the export's comment is used instead.
func LeadingDocBlock(n *ts.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	if parent := n.Parent(); parent != nil && parent.Kind() == "export_statement" {
		n = parent
	}
	prev := n.PrevSibling()
	if prev == nil || !IsDocBlock(prev, src) {
		return "", false
	}
	return Text(prev, src), true
}
