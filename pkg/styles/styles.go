// Package styles reads the CSS classes and slots a component exposes from
// its `<Name>Classes` and `<Name>Slots` TypeScript interfaces.
package styles

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/jsdoc"
	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
)

// globalStateClasses are state keys rendered as `Mui-<key>` rather than
// `<muiName>-<key>`.
var globalStateClasses = map[string]bool{
	"active": true, "checked": true, "completed": true, "disabled": true,
	"error": true, "expanded": true, "focused": true, "focusVisible": true,
	"open": true, "readOnly": true, "required": true, "selected": true,
}

// IsGlobalStateClass reports whether key is a shared state class.
func IsGlobalStateClass(key string) bool {
	return globalStateClasses[key]
}

// ClassName returns the generated class for key.
func ClassName(key, muiName string) string {
	if globalStateClasses[key] {
		return "Mui-" + key
	}
	return muiName + "-" + key
}

// Class is one key of the classes interface.
type Class struct {
	Key             string `json:"key"`
	ClassName       string `json:"className"`
	Description     string `json:"description"`
	IsGlobal        bool   `json:"isGlobal"`
	IsDeprecated    bool   `json:"isDeprecated,omitempty"`
	DeprecationInfo string `json:"deprecationInfo,omitempty"`
}

// Slot is one member of the slots interface.
type Slot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Class       string `json:"class"`
}

// Result holds classes and slots in scan order.
type Result struct {
	Classes []Class
	Slots   []Slot
}

// SourceFile is a TypeScript file to scan. Source is read from Path when
// nil.
type SourceFile struct {
	Path   string
	Source []byte
}

// Parser scans TypeScript sources for class and slot interfaces.
type Parser struct {
	parsers *parser.ParserManager
	queries *queries.QueryManager
	logger  *slog.Logger
}

// NewParser creates a Parser sharing the given managers.
func NewParser(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{parsers: pm, queries: qm, logger: logger}
}

// Parse collects the classes and slots of componentName from files. Keys
// seen in an earlier file win.
func (p *Parser) Parse(files []SourceFile, componentName, muiName string) (Result, error) {
	var res Result
	seenClass := make(map[string]bool)
	seenSlot := make(map[string]bool)

	classesName := componentName + "Classes"
	slotsName := componentName + "Slots"

	for _, sf := range files {
		members, err := p.scanFile(sf, classesName, slotsName)
		if err != nil {
			return Result{}, err
		}
		for _, m := range members[classesName] {
			if seenClass[m.name] {
				continue
			}
			seenClass[m.name] = true
			c := Class{
				Key:         m.name,
				ClassName:   ClassName(m.name, muiName),
				Description: m.doc.Description,
				IsGlobal:    globalStateClasses[m.name],
			}
			if tag, ok := m.doc.Tag("deprecated"); ok {
				c.IsDeprecated = true
				c.DeprecationInfo = tag.Description
			}
			res.Classes = append(res.Classes, c)
		}
		for _, m := range members[slotsName] {
			if seenSlot[m.name] {
				continue
			}
			seenSlot[m.name] = true
			s := Slot{Name: m.name, Description: m.doc.Description}
			if tag, ok := m.doc.Tag("default"); ok {
				s.Default = strings.Trim(tag.Description, `'"`+"`")
			}
			res.Slots = append(res.Slots, s)
		}
	}

	for i := range res.Slots {
		if seenClass[res.Slots[i].Name] {
			res.Slots[i].Class = ClassName(res.Slots[i].Name, muiName)
		}
	}

	p.logger.Debug("parsed classes and slots",
		"component", componentName,
		"classes", len(res.Classes),
		"slots", len(res.Slots))
	return res, nil
}

type member struct {
	name string
	doc  jsdoc.Comment
}

// scanFile returns the members of the wanted interfaces found in sf.
func (p *Parser) scanFile(sf SourceFile, wanted ...string) (map[string][]member, error) {
	src := sf.Source
	if src == nil {
		data, err := os.ReadFile(sf.Path)
		if err != nil {
			return nil, err
		}
		src = data
	}
	if parser.DetectDialect(sf.Path) == parser.DialectJavaScript {
		return nil, nil
	}
	file, err := p.parsers.ParseSource(sf.Path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	query, err := p.queries.GetQuery(file.Dialect, queries.QueryTypeInterfaces)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sf.Path, err)
	}
	matches, err := p.queries.ExecuteQuery(file.Root(), query, file.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sf.Path, err)
	}

	out := make(map[string][]member)
	for _, m := range matches {
		name, ok := m.Capture("interface.name")
		if !ok || !slices.Contains(wanted, name.Text) {
			continue
		}
		body, ok := m.Capture("interface.body")
		if !ok {
			continue
		}
		out[name.Text] = append(out[name.Text], interfaceMembers(body.Node, file.Source)...)
	}
	return out, nil
}

func interfaceMembers(body *ts.Node, src []byte) []member {
	var out []member
	for _, n := range parser.NamedChildren(body) {
		if n.Kind() != "property_signature" {
			continue
		}
		key := n.ChildByFieldName("name")
		name, ok := parser.StringValue(key, src)
		if !ok {
			name = parser.Text(key, src)
		}
		var doc jsdoc.Comment
		if block, ok := parser.LeadingDocBlock(n, src); ok {
			doc = jsdoc.Parse(block)
		}
		out = append(out, member{name: name, doc: doc})
	}
	return out
}
