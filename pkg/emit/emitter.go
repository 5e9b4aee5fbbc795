package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/gnana997/propdoc/pkg/api"
	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/util"
)

// Mode selects how an artifact is written.
type Mode int

const (
	// ModeOverwrite replaces the file atomically.
	ModeOverwrite Mode = iota
	// ModeCreateOnly writes the file only if it does not exist.
	ModeCreateOnly
)

// Artifact is one generated file, fully rendered in memory.
type Artifact struct {
	Path string
	Data []byte
	Mode Mode
}

// Emitter plans and writes the artifacts of a component.
type Emitter struct {
	project   *project.Project
	annotator *Annotator
	page      PageTemplate
	logger    *slog.Logger
}

// NewEmitter creates an Emitter. annotator may be nil to skip declaration
// annotation.
func NewEmitter(p *project.Project, annotator *Annotator, page PageTemplate, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{project: p, annotator: annotator, page: page, logger: logger}
}

// Plan renders every artifact of c without touching the filesystem, so a
// failure leaves no partial output.
func (e *Emitter) Plan(c *api.ComponentAPI) ([]Artifact, error) {
	cfg := e.project.Config
	kebab := util.KebabCase(c.Name)
	pagesDir := filepath.Join(e.project.Abs(cfg.OutputDir), "pages")
	translationsDir := filepath.Join(e.project.Abs(cfg.OutputDir), "translations", kebab)

	pageJSON, err := api.PageJSON(c)
	if err != nil {
		return nil, fmt.Errorf("%s: encode page: %w", c.Name, err)
	}
	module, err := e.page.Render(PageData{
		Name:            c.Name,
		Kebab:           kebab,
		TranslationsDir: "../translations/" + kebab,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: render page module: %w", c.Name, err)
	}
	translation, err := api.TranslationJSON(c.Translation)
	if err != nil {
		return nil, fmt.Errorf("%s: encode translation: %w", c.Name, err)
	}

	artifacts := []Artifact{
		{Path: filepath.Join(pagesDir, kebab+".json"), Data: pageJSON},
		{Path: filepath.Join(pagesDir, kebab+".js"), Data: module},
		{Path: filepath.Join(translationsDir, kebab+".json"), Data: translation},
	}
	for _, lang := range cfg.Languages {
		if lang == "" || lang == "en" {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Path: filepath.Join(translationsDir, kebab+"-"+lang+".json"),
			Data: translation,
			Mode: ModeCreateOnly,
		})
	}

	if cfg.Annotate && e.annotator != nil {
		if a, ok, err := e.annotation(c); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		} else if ok {
			artifacts = append(artifacts, a)
		}
	}
	return artifacts, nil
}

// annotation rewrites the TypeScript declaration of c. JavaScript-only
// components have nothing to annotate.
func (e *Emitter) annotation(c *api.ComponentAPI) (Artifact, bool, error) {
	path := c.Component.TypesFile
	if path == "" || parser.DetectDialect(path) == parser.DialectJavaScript {
		return Artifact{}, false, nil
	}
	comment := api.CommentBlock(c.AnnotationMarkdown(e.project.Config.Host))
	data, err := e.annotator.AnnotateFile(path, c.Name, comment)
	if err != nil {
		return Artifact{}, false, err
	}
	return Artifact{Path: path, Data: data}, true, nil
}

// WriteResult counts what Write did.
type WriteResult struct {
	Written   int
	Unchanged int
	Kept      int
}

// Write writes artifacts. Overwrite artifacts with identical contents are
// left alone; create-only artifacts never replace an existing file.
func (e *Emitter) Write(artifacts []Artifact) (WriteResult, error) {
	var res WriteResult
	for _, a := range artifacts {
		switch a.Mode {
		case ModeCreateOnly:
			created, err := WriteFileExclusive(a.Path, a.Data)
			if err != nil {
				return res, err
			}
			if created {
				res.Written++
			} else {
				res.Kept++
			}
		default:
			existing, err := os.ReadFile(a.Path)
			if err == nil && bytes.Equal(existing, a.Data) {
				res.Unchanged++
				continue
			}
			if err := WriteFileAtomic(a.Path, a.Data); err != nil {
				return res, err
			}
			res.Written++
		}
		e.logger.Debug("wrote artifact", "path", e.project.RelPath(a.Path))
	}
	return res, nil
}

// Stale is an artifact whose file on disk differs from the build output.
type Stale struct {
	Path string
	// Diff is a unified diff from the file on disk to the generated one.
	Diff string
}

// Check compares artifacts with the files on disk without writing.
// Create-only artifacts are stale only when missing.
func (e *Emitter) Check(artifacts []Artifact) ([]Stale, error) {
	var stale []Stale
	for _, a := range artifacts {
		existing, err := os.ReadFile(a.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			existing = nil
		case err != nil:
			return nil, err
		case a.Mode == ModeCreateOnly, bytes.Equal(existing, a.Data):
			continue
		}

		rel := e.project.RelPath(a.Path)
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(existing)),
			B:        difflib.SplitLines(string(a.Data)),
			FromFile: "a/" + rel,
			ToFile:   "b/" + rel,
			Context:  3,
		})
		if err != nil {
			return nil, err
		}
		stale = append(stale, Stale{Path: rel, Diff: diff})
	}
	return stale, nil
}
