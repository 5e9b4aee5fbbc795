package emit

import (
	"fmt"
	"os"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/parser"
)

// AnnotationTargetNotFoundError reports a declaration file without an
// exported declaration of the component.
type AnnotationTargetNotFoundError struct {
	Path      string
	Component string
}

func (e *AnnotationTargetNotFoundError) Error() string {
	return fmt.Sprintf("%s: no exported declaration of %s to annotate", e.Path, e.Component)
}

// MultipleJsdocBlocksError reports a declaration preceded by more than one
// doc block, which leaves the block to replace ambiguous.
type MultipleJsdocBlocksError struct {
	Path      string
	Component string
	Count     int
}

func (e *MultipleJsdocBlocksError) Error() string {
	return fmt.Sprintf("%s: %s has %d doc blocks; merge them into one", e.Path, e.Component, e.Count)
}

// Annotator injects doc comments in front of component declarations.
type Annotator struct {
	parsers *parser.ParserManager
}

// NewAnnotator creates an Annotator using the shared parser pool.
func NewAnnotator(pm *parser.ParserManager) *Annotator {
	return &Annotator{parsers: pm}
}

// AnnotateFile reads path and returns its annotated contents.
func (a *Annotator) AnnotateFile(path, componentName, comment string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.Annotate(path, src, componentName, comment)
}

// Annotate places comment immediately before the declaration exported as
// the component, replacing the doc block already there. Annotating twice
// with the same comment yields the same source.
func (a *Annotator) Annotate(path string, src []byte, componentName, comment string) ([]byte, error) {
	file, err := a.parsers.ParseSource(path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	target := findTarget(file, componentName)
	if target == nil {
		return nil, &AnnotationTargetNotFoundError{Path: path, Component: componentName}
	}

	var blocks []*ts.Node
	for _, c := range parser.PrecedingComments(target) {
		if parser.IsDocBlock(c, file.Source) {
			blocks = append(blocks, c)
		}
	}
	if len(blocks) > 1 {
		return nil, &MultipleJsdocBlocksError{Path: path, Component: componentName, Count: len(blocks)}
	}

	start, end := target.StartByte(), target.StartByte()
	insert := comment + "\n"
	if len(blocks) == 1 {
		start, end = blocks[0].StartByte(), blocks[0].EndByte()
		insert = comment
	}

	out := make([]byte, 0, len(src)+len(insert))
	out = append(out, src[:start]...)
	out = append(out, insert...)
	out = append(out, src[end:]...)
	return out, nil
}

// findTarget returns the top-level statement declaring the default export,
// falling back to any top-level declaration of name.
func findTarget(f *parser.File, name string) *ts.Node {
	statements := parser.NamedChildren(f.Root())

	exported := name
	for _, stmt := range statements {
		if stmt.Kind() != "export_statement" || !hasDefault(stmt) {
			continue
		}
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			return stmt
		}
		if value := stmt.ChildByFieldName("value"); value != nil && value.Kind() == "identifier" {
			exported = f.Text(value)
		}
	}

	for _, stmt := range statements {
		if declares(f, stmt, exported) {
			return stmt
		}
	}
	return nil
}

func hasDefault(stmt *ts.Node) bool {
	for i := uint(0); i < stmt.ChildCount(); i++ {
		if stmt.Child(i).Kind() == "default" {
			return true
		}
	}
	return false
}

func declares(f *parser.File, n *ts.Node, name string) bool {
	switch n.Kind() {
	case "export_statement":
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return declares(f, decl, name)
		}
	case "ambient_declaration":
		for _, child := range parser.NamedChildren(n) {
			if declares(f, child, name) {
				return true
			}
		}
	case "lexical_declaration", "variable_declaration":
		for _, d := range parser.NamedChildren(n) {
			if d.Kind() == "variable_declarator" && parser.FieldText(d, "name", f.Source) == name {
				return true
			}
		}
	case "function_declaration", "function_signature", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration":
		return parser.FieldText(n, "name", f.Source) == name
	}
	return false
}
