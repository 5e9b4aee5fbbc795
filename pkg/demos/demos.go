// Package demos indexes markdown demo pages by the components they list in
// their front matter.
package demos

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/propdoc/pkg/project"
)

// translatedPage matches localized copies such as buttons-zh.md.
var translatedPage = regexp.MustCompile(`-[a-z]{2}\.md$`)

// Demo is a link to a demo page.
type Demo struct {
	Title    string `json:"demoPageTitle"`
	Pathname string `json:"demoPathname"`
}

// Page is a parsed markdown demo page.
type Page struct {
	Path       string
	Pathname   string
	Title      string
	ProductID  string
	Components []string
}

// componentList accepts `components: A, B` and a yaml sequence.
type componentList []string

func (c *componentList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = nil
		for _, part := range strings.Split(node.Value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*c = append(*c, part)
			}
		}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	return fmt.Errorf("line %d: components must be a string or a list", node.Line)
}

type frontMatter struct {
	ProductID  string        `yaml:"productId"`
	Components componentList `yaml:"components"`
}

// ParsePage reads front matter and title from a markdown page. defaultProduct
// is used when the page has no productId.
func ParsePage(path string, content []byte, defaultProduct string) (Page, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	page := Page{Path: path, ProductID: defaultProduct}

	if rest, ok := strings.CutPrefix(text, "---\n"); ok {
		if end := strings.Index(rest, "\n---"); end >= 0 {
			var fm frontMatter
			if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
				return page, fmt.Errorf("%s: front matter: %w", path, err)
			}
			if fm.ProductID != "" {
				page.ProductID = fm.ProductID
			}
			page.Components = fm.Components
			text = rest[end+4:]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			page.Title = strings.TrimSpace(title)
			break
		}
	}

	page.Pathname = "/" + page.ProductID + "/react-" + filepath.Base(filepath.Dir(path)) + "/"
	return page, nil
}

// Index maps component names to their demos.
type Index struct {
	pages       []Page
	byComponent map[string][]Demo
}

// NewIndex builds an index from pages in the given order. A component lists
// each pathname once.
func NewIndex(pages []Page) *Index {
	ix := &Index{pages: pages, byComponent: make(map[string][]Demo)}
	for _, p := range pages {
		for _, name := range p.Components {
			if containsPathname(ix.byComponent[name], p.Pathname) {
				continue
			}
			ix.byComponent[name] = append(ix.byComponent[name], Demo{Title: p.Title, Pathname: p.Pathname})
		}
	}
	return ix
}

// Load discovers pages under root with the given globs.
func Load(root string, patterns []string, defaultProduct string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := project.DiscoverFiles(root, patterns, nil)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var pages []Page
	for _, f := range files {
		if filepath.Ext(f) != ".md" || translatedPage.MatchString(f) {
			continue
		}
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		page, err := ParsePage(f, content, defaultProduct)
		if err != nil {
			return nil, err
		}
		if len(page.Components) > 0 {
			pages = append(pages, page)
		}
	}
	logger.Debug("indexed demo pages", "pages", len(pages), "root", root)
	return NewIndex(pages), nil
}

// For returns the demos listing name, in page order.
func (ix *Index) For(name string) []Demo {
	return ix.byComponent[name]
}

// Pages returns every indexed page.
func (ix *Index) Pages() []Page {
	return ix.pages
}

// Fingerprint hashes the indexed pages, changing whenever a title,
// pathname or component list changes.
func (ix *Index) Fingerprint() string {
	h := sha256.New()
	for _, p := range ix.pages {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\n", p.Pathname, p.Title, p.ProductID, strings.Join(p.Components, ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RenderList renders demos as the HTML list embedded in API pages.
func RenderList(demos []Demo) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, d := range demos {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, html.EscapeString(d.Pathname), html.EscapeString(d.Title))
	}
	b.WriteString("</ul>")
	return b.String()
}

func containsPathname(demos []Demo, pathname string) bool {
	for _, d := range demos {
		if d.Pathname == pathname {
			return true
		}
	}
	return false
}
