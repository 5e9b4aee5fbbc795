package docgen

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/parser"
)

// Definition is the located component.
type Definition struct {
	// Name is the binding name (Button). Empty for anonymous default exports.
	Name string
	// Node is the defining expression or declaration.
	Node *ts.Node
	// Function is the render function, nil for factories and classes.
	Function *ts.Node
	// Statement is the top-level statement holding the definition; its
	// leading doc comment is the component description.
	Statement *ts.Node
}

// Finder locates the component definition in a parsed file.
type Finder func(f *parser.File) (*Definition, error)

// DefaultFinder resolves the default export, falling back to the first
// component with a `X.propTypes = ...` assignment.
func DefaultFinder(f *parser.File) (*Definition, error) {
	for _, stmt := range parser.NamedChildren(f.Root()) {
		if stmt.Kind() != "export_statement" || !isDefaultExport(stmt) {
			continue
		}
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			return declarationDefinition(f, decl, stmt), nil
		}
		value := parser.UnwrapExpression(stmt.ChildByFieldName("value"))
		if value == nil {
			continue
		}
		if value.Kind() == "identifier" {
			return resolveBinding(f, f.Text(value)), nil
		}
		return &Definition{
			Name:      functionName(f, findFunction(value)),
			Node:      value,
			Function:  findFunction(value),
			Statement: stmt,
		}, nil
	}

	if name := firstPropTypesOwner(f); name != "" {
		return resolveBinding(f, name), nil
	}
	return nil, ErrNoDefinition
}

// FactoryFinder returns a Finder matching `const X = create<Name>(...)`.
func FactoryFinder(componentName string) Finder {
	factory := "create" + componentName
	return func(f *parser.File) (*Definition, error) {
		var found *Definition
		for _, stmt := range parser.NamedChildren(f.Root()) {
			decl := stmt
			if stmt.Kind() == "export_statement" {
				if d := stmt.ChildByFieldName("declaration"); d != nil {
					decl = d
				}
			}
			if !isVariableDeclaration(decl) {
				continue
			}
			for _, declarator := range parser.NamedChildren(decl) {
				if declarator.Kind() != "variable_declarator" {
					continue
				}
				value := parser.UnwrapExpression(declarator.ChildByFieldName("value"))
				if value == nil || value.Kind() != "call_expression" {
					continue
				}
				callee := f.Text(value.ChildByFieldName("function"))
				if callee == factory || strings.HasSuffix(callee, "."+factory) {
					found = &Definition{
						Name:      parser.FieldText(declarator, "name", f.Source),
						Node:      value,
						Statement: decl,
					}
					break
				}
			}
			if found != nil {
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%s: %w", factory, ErrNoDefinition)
		}
		return found, nil
	}
}

func isDefaultExport(stmt *ts.Node) bool {
	for i := uint(0); i < stmt.ChildCount(); i++ {
		if stmt.Child(i).Kind() == "default" {
			return true
		}
	}
	return false
}

func isVariableDeclaration(n *ts.Node) bool {
	return n.Kind() == "lexical_declaration" || n.Kind() == "variable_declaration"
}

func declarationDefinition(f *parser.File, decl, stmt *ts.Node) *Definition {
	def := &Definition{
		Name:      parser.FieldText(decl, "name", f.Source),
		Node:      decl,
		Statement: stmt,
	}
	if isFunction(decl) {
		def.Function = decl
	}
	return def
}

// resolveBinding finds the top-level declaration of name. A name without a
// local declaration still yields a Definition so propTypes can be read.
func resolveBinding(f *parser.File, name string) *Definition {
	for _, stmt := range parser.NamedChildren(f.Root()) {
		decl := stmt
		if stmt.Kind() == "export_statement" {
			if d := stmt.ChildByFieldName("declaration"); d != nil {
				decl = d
			}
		}
		switch {
		case decl.Kind() == "function_declaration" || decl.Kind() == "class_declaration":
			if parser.FieldText(decl, "name", f.Source) == name {
				return declarationDefinition(f, decl, decl)
			}
		case isVariableDeclaration(decl):
			for _, declarator := range parser.NamedChildren(decl) {
				if declarator.Kind() != "variable_declarator" || parser.FieldText(declarator, "name", f.Source) != name {
					continue
				}
				value := parser.UnwrapExpression(declarator.ChildByFieldName("value"))
				return &Definition{
					Name:      name,
					Node:      value,
					Function:  findFunction(value),
					Statement: decl,
				}
			}
		}
	}
	return &Definition{Name: name}
}

func isFunction(n *ts.Node) bool {
	switch n.Kind() {
	case "function_declaration", "function_expression", "function", "arrow_function", "generator_function_declaration":
		return true
	}
	return false
}

// findFunction returns n when it is a function, or the first function found
// among the arguments of (possibly nested) wrapper calls such as
// React.forwardRef(function X(props, ref) {...}).
func findFunction(n *ts.Node) *ts.Node {
	n = parser.UnwrapExpression(n)
	if n == nil {
		return nil
	}
	if isFunction(n) {
		return n
	}
	if n.Kind() != "call_expression" {
		return nil
	}
	for _, arg := range parser.NamedChildren(n.ChildByFieldName("arguments")) {
		if fn := findFunction(arg); fn != nil {
			return fn
		}
	}
	return nil
}

func functionName(f *parser.File, fn *ts.Node) string {
	if fn == nil {
		return ""
	}
	return parser.FieldText(fn, "name", f.Source)
}

// firstPropTypesOwner returns X for the first top-level `X.propTypes = ...`.
func firstPropTypesOwner(f *parser.File) string {
	for _, stmt := range parser.NamedChildren(f.Root()) {
		if owner, _ := staticAssignment(f, stmt, "propTypes"); owner != "" {
			return owner
		}
	}
	return ""
}

// staticAssignment matches `Owner.<property> = value;` and returns the owner
// name and value node.
func staticAssignment(f *parser.File, stmt *ts.Node, property string) (string, *ts.Node) {
	if stmt.Kind() != "expression_statement" {
		return "", nil
	}
	assign := stmt.NamedChild(0)
	if assign == nil || assign.Kind() != "assignment_expression" {
		return "", nil
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "member_expression" {
		return "", nil
	}
	if parser.FieldText(left, "property", f.Source) != property {
		return "", nil
	}
	object := left.ChildByFieldName("object")
	if object == nil || object.Kind() != "identifier" {
		return "", nil
	}
	return f.Text(object), parser.UnwrapExpression(assign.ChildByFieldName("right"))
}
