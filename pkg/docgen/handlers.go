package docgen

import (
	"path/filepath"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/jsdoc"
	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
)

// Handler fills part of a Result from the located definition.
type Handler func(f *parser.File, def *Definition, r *Result) error

// DefaultHandlers returns the standard handler chain.
func (p *TreeSitterParser) DefaultHandlers() []Handler {
	return []Handler{
		DisplayNameHandler,
		DescriptionHandler,
		PropTypesHandler,
		DefaultPropsHandler,
		p.SpreadHandler,
		MuiNameHandler,
	}
}

// DisplayNameHandler uses the binding name, or the file name for anonymous
// components.
func DisplayNameHandler(f *parser.File, def *Definition, r *Result) error {
	r.DisplayName = def.Name
	if r.DisplayName == "" {
		base := filepath.Base(f.Path)
		r.DisplayName, _, _ = strings.Cut(base, ".")
	}
	return nil
}

// DescriptionHandler reads the doc comment above the defining statement.
func DescriptionHandler(f *parser.File, def *Definition, r *Result) error {
	if def.Statement == nil {
		return nil
	}
	if block, ok := parser.LeadingDocBlock(def.Statement, f.Source); ok {
		r.Description = strings.Join(jsdoc.Lines(block), "\n")
	}
	return nil
}

// PropTypesHandler reads every `Name.propTypes = { ... }` assignment.
func PropTypesHandler(f *parser.File, def *Definition, r *Result) error {
	if def.Name == "" {
		return nil
	}
	for _, stmt := range parser.NamedChildren(f.Root()) {
		owner, value := staticAssignment(f, stmt, "propTypes")
		if owner != def.Name || value == nil || value.Kind() != "object" {
			continue
		}
		for _, pair := range parser.NamedChildren(value) {
			if pair.Kind() != "pair" {
				continue
			}
			name := propertyKey(pair.ChildByFieldName("key"), f.Source)
			t := readPropType(pair.ChildByFieldName("value"), f.Source)
			prop := &RawProp{Type: t, Required: t.Required}
			if block, ok := parser.LeadingDocBlock(pair, f.Source); ok {
				desc := strings.Join(jsdoc.Lines(block), "\n")
				prop.Description = &desc
			}
			r.Props[name] = prop
		}
	}
	return nil
}

// DefaultPropsHandler attaches defaults from parameter destructuring,
// `const { a = 1 } = props` in the body, and `Name.defaultProps`. Earlier
// sources win.
func DefaultPropsHandler(f *parser.File, def *Definition, r *Result) error {
	defaults := make(map[string]*RawDefault)

	if def.Function != nil {
		collectFunctionDefaults(f, def.Function, defaults)
	}
	if def.Name != "" {
		for _, stmt := range parser.NamedChildren(f.Root()) {
			owner, value := staticAssignment(f, stmt, "defaultProps")
			if owner != def.Name || value == nil || value.Kind() != "object" {
				continue
			}
			for _, pair := range parser.NamedChildren(value) {
				if pair.Kind() != "pair" {
					continue
				}
				name := propertyKey(pair.ChildByFieldName("key"), f.Source)
				if _, seen := defaults[name]; !seen {
					defaults[name] = newDefault(pair.ChildByFieldName("value"), f.Source)
				}
			}
		}
	}

	for name, d := range defaults {
		if prop, ok := r.Props[name]; ok && prop.DefaultValue == nil {
			prop.DefaultValue = d
		}
	}
	return nil
}

func collectFunctionDefaults(f *parser.File, fn *ts.Node, out map[string]*RawDefault) {
	param := firstParameter(fn)
	if param == nil {
		return
	}
	if param.Kind() == "object_pattern" {
		patternDefaults(param, f.Source, out)
		return
	}
	if param.Kind() != "identifier" {
		return
	}

	propsName := f.Text(param)
	body := fn.ChildByFieldName("body")
	if body == nil || body.Kind() != "statement_block" {
		return
	}
	for _, stmt := range parser.NamedChildren(body) {
		if !isVariableDeclaration(stmt) {
			continue
		}
		for _, declarator := range parser.NamedChildren(stmt) {
			pattern := declarator.ChildByFieldName("name")
			value := declarator.ChildByFieldName("value")
			if pattern == nil || value == nil || pattern.Kind() != "object_pattern" || value.Kind() != "identifier" {
				continue
			}
			if v := f.Text(value); v == propsName || v == "props" {
				patternDefaults(pattern, f.Source, out)
			}
		}
	}
}

func firstParameter(fn *ts.Node) *ts.Node {
	if p := fn.ChildByFieldName("parameter"); p != nil {
		return p
	}
	for _, p := range parser.NamedChildren(fn.ChildByFieldName("parameters")) {
		switch p.Kind() {
		case "comment":
			continue
		case "required_parameter", "optional_parameter":
			return p.ChildByFieldName("pattern")
		default:
			return p
		}
	}
	return nil
}

func patternDefaults(pattern *ts.Node, src []byte, out map[string]*RawDefault) {
	for _, child := range parser.NamedChildren(pattern) {
		switch child.Kind() {
		case "object_assignment_pattern":
			name := parser.Text(child.ChildByFieldName("left"), src)
			if _, seen := out[name]; !seen {
				out[name] = newDefault(child.ChildByFieldName("right"), src)
			}
		case "pair_pattern":
			value := child.ChildByFieldName("value")
			if value == nil || value.Kind() != "assignment_pattern" {
				continue
			}
			name := propertyKey(child.ChildByFieldName("key"), src)
			if _, seen := out[name]; !seen {
				out[name] = newDefault(value.ChildByFieldName("right"), src)
			}
		}
	}
}

func newDefault(n *ts.Node, src []byte) *RawDefault {
	n = parser.UnwrapExpression(n)
	computed := false
	if n != nil {
		switch n.Kind() {
		case "identifier", "member_expression", "call_expression":
			computed = true
		}
	}
	return &RawDefault{Value: parser.Text(n, src), Computed: computed}
}

// SpreadHandler records whether the render function spreads props onto a
// JSX element. Left nil when there is no render function.
func (p *TreeSitterParser) SpreadHandler(f *parser.File, def *Definition, r *Result) error {
	if def.Function == nil || !f.Dialect.HasJSX() {
		return nil
	}
	query, err := p.queries.GetQuery(f.Dialect, queries.QueryTypeJSXSpread)
	if err != nil {
		return err
	}
	matches, err := p.queries.ExecuteQuery(def.Function, query, f.Source)
	if err != nil {
		return err
	}
	spread := len(matches) > 0
	r.Spread = &spread
	return nil
}

// MuiNameHandler reads the first `name: 'Mui...'` option in the file.
func MuiNameHandler(f *parser.File, _ *Definition, r *Result) error {
	parser.Walk(f.Root(), func(n *ts.Node) bool {
		if r.MuiName != "" {
			return false
		}
		if n.Kind() != "pair" || propertyKey(n.ChildByFieldName("key"), f.Source) != "name" {
			return true
		}
		if v, ok := parser.StringValue(n.ChildByFieldName("value"), f.Source); ok && strings.HasPrefix(v, "Mui") {
			r.MuiName = v
		}
		return true
	})
	return nil
}
