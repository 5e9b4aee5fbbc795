package main

import (
	"log/slog"
	"sync/atomic"

	"github.com/gnana997/propdoc/pkg/api"
	"github.com/gnana997/propdoc/pkg/build"
	"github.com/gnana997/propdoc/pkg/demos"
	"github.com/gnana997/propdoc/pkg/docgen"
	"github.com/gnana997/propdoc/pkg/emit"
	"github.com/gnana997/propdoc/pkg/markdown"
	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/styles"
	"github.com/gnana997/propdoc/pkg/testinfo"
)

// demoSource serves the current demo index; watch mode swaps it when
// markdown pages change.
type demoSource struct {
	index atomic.Pointer[demos.Index]
}

func (d *demoSource) For(name string) []demos.Demo {
	if ix := d.index.Load(); ix != nil {
		return ix.For(name)
	}
	return nil
}

// app wires the generation pipeline for one project.
type app struct {
	project *project.Project
	parsers *parser.ParserManager
	queries *queries.QueryManager
	demos   *demoSource
	builder *api.Builder
	emitter *emit.Emitter
	logger  *slog.Logger
}

func newApp(cfg project.Config, logger *slog.Logger) (*app, error) {
	p, err := project.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	pm := parser.NewParserManager(logger)
	qm := queries.NewQueryManager(pm, logger)

	source := docgen.NewParser(pm, qm, logger)
	var dg docgen.Parser = source
	if cfg.DocgenDir != "" {
		dg = docgen.JSONParser{Dir: p.Abs(cfg.DocgenDir)}
	}

	var md *markdown.CommonMark
	if cfg.AbsoluteLinks {
		md = markdown.New(markdown.WithHost(cfg.Host))
	} else {
		md = markdown.New()
	}

	a := &app{
		project: p,
		parsers: pm,
		queries: qm,
		demos:   &demoSource{},
		logger:  logger,
	}
	a.builder = api.NewBuilder(p, api.Deps{
		Docgen:    dg,
		Unwrapper: source,
		Tests:     testinfo.NewParser(pm, qm, logger),
		Demos:     a.demos,
		Styles:    styles.NewParser(pm, qm, logger),
		Markdown:  md,
	}, logger)

	page, err := emit.NewPageTemplate("")
	if err != nil {
		a.Close()
		return nil, err
	}
	a.emitter = emit.NewEmitter(p, emit.NewAnnotator(pm), page, logger)
	return a, nil
}

// loadDemos re-reads the demo pages and returns the index fingerprint,
// used to salt component fingerprints.
func (a *app) loadDemos() (string, error) {
	cfg := a.project.Config
	ix, err := demos.Load(a.project.Root(), cfg.Pages, cfg.ProductID, a.logger)
	if err != nil {
		return "", err
	}
	a.demos.index.Store(ix)
	return ix.Fingerprint(), nil
}

func (a *app) runner(cache *build.FingerprintCache) *build.Runner {
	return build.NewRunner(a.builder, a.emitter, cache, a.logger)
}

func (a *app) Close() {
	_ = a.queries.Close()
	_ = a.parsers.Close()
}
