package docgen

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
)

// chainWrappers are validator wrappers whose first argument is the real type.
var chainWrappers = map[string]bool{
	"chainPropTypes":     true,
	"deprecatedPropType": true,
}

// TreeSitterParser implements Parser on top of the shared parser pool.
type TreeSitterParser struct {
	parsers *parser.ParserManager
	queries *queries.QueryManager
	logger  *slog.Logger
}

// NewParser creates a docgen parser. The managers are shared, not owned.
func NewParser(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *TreeSitterParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeSitterParser{parsers: pm, queries: qm, logger: logger}
}

// Parse extracts component metadata from source. filename selects the
// grammar.
func (p *TreeSitterParser) Parse(source []byte, filename string, opts Options) (*Result, error) {
	file, err := p.parsers.ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	finder := opts.Finder
	if finder == nil {
		finder = DefaultFinder
	}
	def, err := finder(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	handlers := opts.Handlers
	if handlers == nil {
		handlers = p.DefaultHandlers()
	}
	result := &Result{Props: make(map[string]*RawProp)}
	for _, h := range handlers {
		if err := h(file, def, result); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	p.logger.Debug("docgen parsed component",
		"file", filename,
		"component", result.DisplayName,
		"props", len(result.Props))
	return result, nil
}

// ParseFile reads path and parses it.
func (p *TreeSitterParser) ParseFile(path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(source, path, opts)
}

// Unwrap splits `chainPropTypes(base, validator)` and
// `deprecatedPropType(base, reason)` into the wrapper name, the parsed base
// type and the remaining arguments. A trailing `.isRequired` on the wrapper
// is ignored; callers check the raw text for it.
func (p *TreeSitterParser) Unwrap(raw string) (*Unwrapped, bool) {
	file, err := p.parsers.ParseSource("expression.js", []byte("("+raw+");\n"))
	if err != nil {
		return nil, false
	}
	defer file.Close()

	stmt := file.Root().NamedChild(0)
	if file.Root().HasError() || stmt == nil || stmt.Kind() != "expression_statement" {
		return nil, false
	}
	call := parser.UnwrapExpression(stmt.NamedChild(0))
	if call != nil && call.Kind() == "member_expression" && parser.FieldText(call, "property", file.Source) == "isRequired" {
		call = parser.UnwrapExpression(call.ChildByFieldName("object"))
	}
	if call == nil || call.Kind() != "call_expression" {
		return nil, false
	}
	wrapper := file.Text(call.ChildByFieldName("function"))
	if !chainWrappers[wrapper] {
		return nil, false
	}
	args := expressionArgs(call)
	if len(args) == 0 {
		return nil, false
	}

	out := &Unwrapped{Wrapper: wrapper, Base: readPropType(args[0], file.Source)}
	for _, a := range args[1:] {
		if v, ok := parser.StringValue(a, file.Source); ok {
			out.Args = append(out.Args, v)
			continue
		}
		out.Args = append(out.Args, file.Text(a))
	}
	return out, true
}
