package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/util"
)

// builtinInheritance covers inherited components documented outside the
// library.
var builtinInheritance = map[string]string{
	"Transition": "https://reactcommunity.org/react-transition-group/transition/#Transition-props",
}

// Inheritance links a component to the API page of the one it extends.
type Inheritance struct {
	Component string `json:"component"`
	Pathname  string `json:"pathname"`
}

// Component is one documented component and its sibling files.
type Component struct {
	Name string
	// Filename is the absolute source path.
	Filename string
	// TypesFile is the .d.ts next to a .js source, or the source itself.
	TypesFile string
	// TestFile is empty when the component has no test.
	TestFile string
	// StyleFiles are the TypeScript files scanned for classes and slots.
	StyleFiles []string

	IsSystem bool
	IsCSS    bool
}

// Project resolves components against a Config.
type Project struct {
	Config Config
	root   string
	logger *slog.Logger
}

// New creates a Project, making Root absolute.
func New(cfg Config, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	cfg.Root = root
	return &Project{Config: cfg, root: root, logger: logger}, nil
}

// Root returns the absolute workspace root.
func (p *Project) Root() string { return p.root }

// Abs resolves a root-relative path.
func (p *Project) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.root, rel)
}

// RelPath returns path relative to the root with forward slashes.
func (p *Project) RelPath(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Discover returns every component matched by the include globs, sorted by
// source path.
func (p *Project) Discover() ([]Component, error) {
	files, err := DiscoverFiles(p.root, p.Config.Include, p.Config.Exclude)
	if err != nil {
		return nil, err
	}
	var out []Component
	for _, f := range files {
		if !IsComponentFile(f) {
			continue
		}
		out = append(out, p.Component(f))
	}
	p.logger.Info("discovered components", "count", len(out), "root", p.root)
	return out, nil
}

// IsComponentFile reports whether path looks like a component source:
// an uppercase .js/.jsx/.tsx file that is not a test or declaration.
func IsComponentFile(path string) bool {
	base := filepath.Base(path)
	if parser.IsDeclarationFile(base) || strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return false
	}
	switch filepath.Ext(base) {
	case ".js", ".jsx", ".tsx":
	default:
		return false
	}
	return util.IsUppercase(base)
}

// ComponentName returns the component name for a source path.
func ComponentName(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), ".")
	return name
}

// Component resolves the sibling files of the source at path.
func (p *Project) Component(path string) Component {
	name := ComponentName(path)
	dir := filepath.Dir(path)

	c := Component{
		Name:      name,
		Filename:  path,
		TypesFile: path,
		IsSystem:  slices.Contains(p.Config.SystemComponents, name),
		IsCSS:     slices.Contains(p.Config.CSSComponents, name),
	}
	if ext := filepath.Ext(path); ext == ".js" || ext == ".jsx" {
		dts := strings.TrimSuffix(path, ext) + ".d.ts"
		if fileExists(dts) {
			c.TypesFile = dts
		}
	}
	for _, ext := range []string{".test.js", ".test.tsx", ".test.ts"} {
		if candidate := filepath.Join(dir, name+ext); fileExists(candidate) {
			c.TestFile = candidate
			break
		}
	}

	if parser.DetectDialect(c.TypesFile) != parser.DialectJavaScript {
		c.StyleFiles = append(c.StyleFiles, c.TypesFile)
	}
	for _, sibling := range []string{
		util.LowerFirst(name) + "Classes.ts",
		name + "Props.ts",
		name + ".types.ts",
	} {
		if candidate := filepath.Join(dir, sibling); fileExists(candidate) {
			c.StyleFiles = append(c.StyleFiles, candidate)
		}
	}
	return c
}

// Inheritance returns the API page of the inherited component, or nil for
// an empty name or a host element such as "div".
func (p *Project) Inheritance(name string) *Inheritance {
	if name == "" || !util.IsUppercase(name) {
		return nil
	}
	if pathname, ok := p.Config.Inheritance[name]; ok {
		return &Inheritance{Component: name, Pathname: pathname}
	}
	if pathname, ok := builtinInheritance[name]; ok {
		return &Inheritance{Component: name, Pathname: pathname}
	}
	return &Inheritance{Component: name, Pathname: p.APIPathname(name)}
}

// APIPathname returns the documentation path of a component's API page.
func (p *Project) APIPathname(name string) string {
	return "/" + p.Config.ProductID + "/api/" + util.KebabCase(name) + "/"
}

// Imports returns the supported import statements for c: the default
// subpath import and the named root import.
func (p *Project) Imports(c Component) []string {
	subpath := filepath.Base(filepath.Dir(c.Filename))
	return []string{
		fmt.Sprintf("import %s from '%s/%s';", c.Name, p.Config.PackageName, subpath),
		fmt.Sprintf("import { %s } from '%s';", c.Name, p.Config.PackageName),
	}
}

// SkipsDemoCheck reports whether name may be documented without demos.
func (p *Project) SkipsDemoCheck(name string) bool {
	return slices.Contains(p.Config.SkipDemoCheck, name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
