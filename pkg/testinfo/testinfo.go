// Package testinfo reads conformance metadata from component test files.
package testinfo

import (
	"log/slog"
	"os"
	"slices"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
	"github.com/gnana997/propdoc/pkg/util"
)

const conformanceFunction = "describeConformance"

// Info is what a test file declares about its component.
type Info struct {
	// Found is false when the file has no describeConformance call.
	Found bool

	InheritComponent string
	// ForwardsRefTo is the element class the ref resolves to, nil when the
	// test does not check refs.
	ForwardsRefTo *string

	Spread            util.Tri
	ThemeDefaultProps util.Tri
	Skip              []string
}

// Parser reads test files with the shared parser pool.
type Parser struct {
	parsers *parser.ParserManager
	queries *queries.QueryManager
	logger  *slog.Logger
}

// NewParser creates a test-file parser.
func NewParser(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{parsers: pm, queries: qm, logger: logger}
}

// ParseFile reads and parses the test file at path.
func (p *Parser) ParseFile(path string) (Info, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}
	return p.ParseSource(path, src)
}

// ParseSource parses test source; path selects the grammar.
func (p *Parser) ParseSource(path string, src []byte) (Info, error) {
	file, err := p.parsers.ParseSource(path, src)
	if err != nil {
		return Info{}, err
	}
	defer file.Close()

	query, err := p.queries.GetQuery(file.Dialect, queries.QueryTypeConformance)
	if err != nil {
		return Info{}, err
	}
	matches, err := p.queries.ExecuteQuery(file.Root(), query, file.Source)
	if err != nil {
		return Info{}, err
	}

	for _, m := range matches {
		fn, ok := m.Capture("conformance.function")
		if !ok || fn.Text != conformanceFunction {
			continue
		}
		argsCapture, ok := m.Capture("conformance.arguments")
		if !ok {
			continue
		}
		info := Info{Found: true}
		if options := optionsObject(argsCapture.Node); options != nil {
			readOptions(options, file.Source, &info)
		}
		info.Spread = util.TriOf(!slices.Contains(info.Skip, "propsSpread"))

		p.logger.Debug("read conformance options",
			"file", path,
			"inheritComponent", info.InheritComponent,
			"spread", info.Spread.String())
		return info, nil
	}
	return Info{}, nil
}

// optionsObject returns the object literal produced by the options factory,
// the second argument: `() => ({ ... })` or a function returning an object.
func optionsObject(args *ts.Node) *ts.Node {
	var rest []*ts.Node
	for _, a := range parser.NamedChildren(args) {
		if a.Kind() != "comment" {
			rest = append(rest, a)
		}
	}
	if len(rest) < 2 {
		return nil
	}
	factory := parser.UnwrapExpression(rest[1])
	switch factory.Kind() {
	case "object":
		return factory
	case "arrow_function", "function_expression", "function":
	default:
		return nil
	}

	body := parser.UnwrapExpression(factory.ChildByFieldName("body"))
	if body == nil {
		return nil
	}
	if body.Kind() == "object" {
		return body
	}
	if body.Kind() != "statement_block" {
		return nil
	}
	for _, stmt := range parser.NamedChildren(body) {
		if stmt.Kind() != "return_statement" {
			continue
		}
		if obj := parser.UnwrapExpression(stmt.NamedChild(0)); obj != nil && obj.Kind() == "object" {
			return obj
		}
	}
	return nil
}

func readOptions(options *ts.Node, src []byte, info *Info) {
	hasMuiName := false
	for _, pair := range parser.NamedChildren(options) {
		if pair.Kind() != "pair" {
			continue
		}
		key := parser.Text(pair.ChildByFieldName("key"), src)
		value := parser.UnwrapExpression(pair.ChildByFieldName("value"))
		switch key {
		case "inheritComponent":
			if v, ok := parser.StringValue(value, src); ok {
				info.InheritComponent = v
			} else {
				info.InheritComponent = parser.Text(value, src)
			}
		case "refInstanceof":
			ref := parser.Text(value, src)
			if value.Kind() == "member_expression" {
				ref = parser.FieldText(value, "property", src)
			}
			info.ForwardsRefTo = &ref
		case "muiName":
			hasMuiName = true
		case "skip":
			for _, el := range parser.NamedChildren(value) {
				if s, ok := parser.StringValue(el, src); ok {
					info.Skip = append(info.Skip, s)
				}
			}
		}
	}

	skipsTheme := slices.Contains(info.Skip, "themeDefaultProps")
	switch {
	case skipsTheme:
		info.ThemeDefaultProps = util.TriFalse
	case hasMuiName:
		info.ThemeDefaultProps = util.TriTrue
	}
}
