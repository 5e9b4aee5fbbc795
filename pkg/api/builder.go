package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gnana997/propdoc/pkg/demos"
	"github.com/gnana997/propdoc/pkg/describe"
	"github.com/gnana997/propdoc/pkg/docgen"
	"github.com/gnana997/propdoc/pkg/markdown"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/styles"
	"github.com/gnana997/propdoc/pkg/testinfo"
	"github.com/gnana997/propdoc/pkg/util"
)

// TestParser reads conformance metadata from a test file.
type TestParser interface {
	ParseFile(path string) (testinfo.Info, error)
}

// DemoIndex lists the demo pages of a component.
type DemoIndex interface {
	For(componentName string) []demos.Demo
}

// StylesParser reads classes and slots from TypeScript declarations.
type StylesParser interface {
	Parse(files []styles.SourceFile, componentName, muiName string) (styles.Result, error)
}

// Deps are the collaborators a Builder delegates to.
type Deps struct {
	Docgen    docgen.Parser
	Unwrapper docgen.Unwrapper
	Tests     TestParser
	Demos     DemoIndex
	Styles    StylesParser
	Markdown  markdown.Renderer
}

// Builder generates ComponentAPI records. It is safe for concurrent use as
// long as its collaborators are.
type Builder struct {
	project    *project.Project
	deps       Deps
	normalizer *describe.Normalizer
	logger     *slog.Logger
}

// NewBuilder creates a Builder for p.
func NewBuilder(p *project.Project, deps Deps, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.New()
	}
	return &Builder{
		project:    p,
		deps:       deps,
		normalizer: describe.NewNormalizer(deps.Unwrapper),
		logger:     logger,
	}
}

// propRow is a normalized prop with its derived description.
type propRow struct {
	prop     *describe.Prop
	desc     describe.Description
	required bool
}

// GenerateComponentAPI builds the API record of c. Prop failures are
// reported together as an *AggregatedPropError.
func (b *Builder) GenerateComponentAPI(ctx context.Context, c project.Component) (*ComponentAPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	src, err := os.ReadFile(c.Filename)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read source: %w", c.Name, err)
	}
	result, err := b.parseSource(src, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}

	demoList := b.deps.Demos.For(c.Name)
	if len(demoList) == 0 && !b.project.SkipsDemoCheck(c.Name) {
		return nil, &MissingDemoError{Component: c.Name}
	}

	var test testinfo.Info
	if c.TestFile != "" && b.deps.Tests != nil {
		test, err = b.deps.Tests.ParseFile(c.TestFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse test file: %w", c.Name, err)
		}
	}

	muiName := result.MuiName
	if muiName == "" {
		muiName = "Mui" + c.Name
	}

	rows, err := b.buildProps(c.Name, result.Props)
	if err != nil {
		return nil, err
	}

	files := make([]styles.SourceFile, 0, len(c.StyleFiles))
	for _, f := range c.StyleFiles {
		files = append(files, styles.SourceFile{Path: f})
	}
	styleResult, err := b.deps.Styles.Parse(files, c.Name, muiName)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read classes and slots: %w", c.Name, err)
	}

	sourceSpread := util.TriUnset
	if result.Spread != nil {
		sourceSpread = util.TriOf(*result.Spread)
	}

	api := &ComponentAPI{
		Name:              c.Name,
		Filename:          b.project.RelPath(c.Filename),
		Description:       StripTrailers(result.Description),
		Imports:           b.project.Imports(c),
		Inheritance:       b.project.Inheritance(test.InheritComponent),
		ForwardsRefTo:     test.ForwardsRefTo,
		Spread:            test.Spread.Or(sourceSpread),
		ThemeDefaultProps: test.ThemeDefaultProps,
		Demos:             demoList,
		Classes:           nonNil(styleResult.Classes),
		Slots:             styleResult.Slots,
		Props:             b.propTable(rows, c),
		MuiName:           muiName,
		CSSComponent:      c.IsCSS,
		APIPathname:       b.project.APIPathname(c.Name),
		Component:         c,
	}
	api.Translation = b.translation(api, rows)

	b.logger.Debug("generated component api",
		"component", c.Name,
		"props", len(rows),
		"classes", len(api.Classes),
		"slots", len(api.Slots),
		"ms", time.Since(start).Milliseconds())
	return api, nil
}

// parseSource runs docgen, preferring the create<Name> factory for system
// components and falling back to default detection.
func (b *Builder) parseSource(src []byte, c project.Component) (*docgen.Result, error) {
	if c.IsSystem {
		result, err := b.deps.Docgen.Parse(src, c.Filename, docgen.Options{Finder: docgen.FactoryFinder(c.Name)})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, docgen.ErrNoDefinition) {
			return nil, err
		}
		b.logger.Debug("factory definition not found, using default detection", "component", c.Name)
	}
	return b.deps.Docgen.Parse(src, c.Filename, docgen.Options{})
}

// buildProps normalizes every prop, collecting all failures, and returns
// the rows required-first then by name.
func (b *Builder) buildProps(component string, raw map[string]*docgen.RawProp) ([]propRow, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []propRow
	var failures []describe.PropError
	for _, name := range names {
		prop, err := b.normalizer.Normalize(name, raw[name])
		if err != nil {
			var propErr describe.PropError
			if errors.As(err, &propErr) {
				failures = append(failures, propErr)
				continue
			}
			return nil, fmt.Errorf("%s: prop %q: %w", component, name, err)
		}
		if prop == nil {
			continue
		}
		rows = append(rows, propRow{
			prop:     prop,
			desc:     describe.GenerateDescription(prop),
			required: describe.IsRequired(prop),
		})
	}
	if len(failures) > 0 {
		return nil, &AggregatedPropError{Component: component, Errors: failures}
	}

	sortRows(rows)
	return rows, nil
}

// sortRows orders rows required-first, each group by name.
func sortRows(rows []propRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].required != rows[j].required {
			return rows[i].required
		}
		return rows[i].prop.Name < rows[j].prop.Name
	})
}

func (b *Builder) propTable(rows []propRow, c project.Component) PropTable {
	table := NewPropTable()
	for _, row := range rows {
		p := row.prop
		text, needed := describe.RenderType(p.Type)
		entry := PropEntry{
			Type:            PropType{Name: p.Type.Name},
			Required:        row.required,
			Deprecated:      row.desc.Deprecated,
			DeprecationInfo: b.renderInline(row.desc.DeprecationInfo),
		}
		if needed {
			entry.Type.Description = text
		}
		if p.HasDefault {
			entry.Default = p.Default
		}
		if sig := row.desc.Signature; sig != nil {
			entry.Signature = &PropSignature{Type: sig.Type, Returned: sig.Returned}
			for _, arg := range sig.Args {
				entry.Signature.DescribedArgs = append(entry.Signature.DescribedArgs, arg.Name)
			}
		}
		entry.AdditionalInfo = b.additionalInfo(p.Name, c)
		table.Set(p.Name, entry)
	}
	return table
}

func (b *Builder) additionalInfo(name string, c project.Component) map[string]bool {
	info := map[string]bool{}
	switch name {
	case "classes":
		info[InfoCSSAPI] = true
	case "sx":
		info[InfoSx] = true
	case "slots":
		if !c.IsSystem {
			info[InfoSlotsAPI] = true
		}
	}
	if b.project.Config.ProductID == joyProductID {
		switch name {
		case "size":
			info[InfoJoySize] = true
		case "color":
			info[InfoJoyColor] = true
		case "variant":
			info[InfoJoyVariant] = true
		}
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

// translation renders every description to HTML once for the "en" bundle.
func (b *Builder) translation(api *ComponentAPI, rows []propRow) Translation {
	md := b.deps.Markdown
	t := Translation{
		ComponentDescription: md.Render(api.Description),
		PropDescriptions:     make(map[string]PropTranslation, len(rows)),
		ClassDescriptions:    make(map[string]ClassDescription, len(api.Classes)),
	}

	for _, row := range rows {
		pt := PropTranslation{
			Description: md.Render(row.desc.Text),
			RequiresRef: row.desc.RequiresRef,
		}
		if row.desc.Deprecated {
			pt.Deprecated = b.renderInline(row.desc.DeprecationInfo)
		}
		if sig := row.desc.Signature; sig != nil {
			pt.TypeDescriptions = make(map[string]string, len(sig.Args)+1)
			for _, arg := range sig.Args {
				pt.TypeDescriptions[arg.Name] = b.renderInline(arg.Description)
			}
			if sig.Returned != "" {
				pt.TypeDescriptions["returns"] = b.renderInline(sig.Returned)
			}
		}
		t.PropDescriptions[row.prop.Name] = pt
	}

	for _, class := range api.Classes {
		d := DecomposeClassDescription(class.Description)
		t.ClassDescriptions[class.Key] = ClassDescription{
			Description: b.renderInline(d.Description),
			NodeName:    b.renderInline(d.NodeName),
			Conditions:  b.renderInline(d.Conditions),
		}
	}

	if len(api.Slots) > 0 {
		t.SlotDescriptions = make(map[string]string, len(api.Slots))
		for _, slot := range api.Slots {
			t.SlotDescriptions[slot.Name] = b.renderInline(slot.Description)
		}
	}
	return t
}

func (b *Builder) renderInline(text string) string {
	if text == "" {
		return ""
	}
	return markdown.Inline(b.deps.Markdown, text)
}

// StripTrailers removes a previously generated "Demos:" or "API:" section
// from a component description.
func StripTrailers(description string) string {
	lines := strings.Split(description, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Demos:") || strings.HasPrefix(trimmed, "API:") {
			lines = lines[:i]
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
