// Package build runs component generation across a project and keeps the
// output current in watch mode.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gnana997/propdoc/pkg/api"
	"github.com/gnana997/propdoc/pkg/emit"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/util"
)

// ComponentBuilder generates the API record of one component.
type ComponentBuilder interface {
	GenerateComponentAPI(ctx context.Context, c project.Component) (*api.ComponentAPI, error)
}

// Output plans and writes or checks a component's artifacts.
type Output interface {
	Plan(c *api.ComponentAPI) ([]emit.Artifact, error)
	Write(artifacts []emit.Artifact) (emit.WriteResult, error)
	Check(artifacts []emit.Artifact) ([]emit.Stale, error)
}

// Options configures a Run.
type Options struct {
	// Check compares output with the files on disk instead of writing.
	Check bool
	// Workers bounds concurrency; zero uses util.GetOptimalPoolSize.
	Workers int
	// Salt is mixed into fingerprints; change it to invalidate all
	// components, for example when demo pages change.
	Salt string
}

// ComponentResult is the outcome of one component.
type ComponentResult struct {
	Component string
	Err       error
	// Skipped is set when the fingerprint was unchanged.
	Skipped  bool
	Written  int
	Stale    []emit.Stale
	Duration time.Duration
}

// Summary is the outcome of a Run, with results in input order.
type Summary struct {
	Results  []ComponentResult
	Built    int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// ErrStale is returned by Summary.Err in check mode when output differs.
var ErrStale = errors.New("generated files are out of date")

// Stale returns every stale artifact across components.
func (s Summary) Stale() []emit.Stale {
	var out []emit.Stale
	for _, r := range s.Results {
		out = append(out, r.Stale...)
	}
	return out
}

// Err joins every component failure, or returns ErrStale when the only
// problem is stale output.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if stale := s.Stale(); len(stale) > 0 {
		return fmt.Errorf("%w: %d files", ErrStale, len(stale))
	}
	return nil
}

// Runner builds components concurrently. A failing component never
// cancels its siblings.
type Runner struct {
	builder ComponentBuilder
	output  Output
	cache   *FingerprintCache
	logger  *slog.Logger
}

// NewRunner creates a Runner. cache may be nil to always rebuild.
func NewRunner(builder ComponentBuilder, output Output, cache *FingerprintCache, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{builder: builder, output: output, cache: cache, logger: logger}
}

// Run builds components and returns a summary. The error is non-nil only
// when ctx is cancelled; component failures are in the summary.
func (r *Runner) Run(ctx context.Context, components []project.Component, opts Options) (Summary, error) {
	start := time.Now()
	results := make([]ComponentResult, len(components))

	g := new(errgroup.Group)
	g.SetLimit(util.GetOptimalPoolSizeWithOverride(opts.Workers))
	for i, c := range components {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = r.runOne(ctx, c, opts)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Results: results, Duration: time.Since(start)}
	for i := range results {
		res := &results[i]
		if res.Component == "" {
			res.Component = components[i].Name
			res.Err = ctx.Err()
		}
		switch {
		case res.Err != nil:
			summary.Failed++
		case res.Skipped:
			summary.Skipped++
		default:
			summary.Built++
		}
	}

	r.logger.Info("build finished",
		"components", len(components),
		"built", summary.Built,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"ms", summary.Duration.Milliseconds())
	return summary, ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, c project.Component, opts Options) (res ComponentResult) {
	start := time.Now()
	res.Component = c.Name
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	var fp string
	if r.cache != nil && !opts.Check {
		var err error
		if fp, err = Fingerprint(c, opts.Salt); err == nil && r.cache.Unchanged(c.Name, fp) {
			res.Skipped = true
			return res
		}
	}

	componentAPI, err := r.builder.GenerateComponentAPI(ctx, c)
	if err != nil {
		r.fail(&res, c, err)
		return res
	}
	artifacts, err := r.output.Plan(componentAPI)
	if err != nil {
		r.fail(&res, c, err)
		return res
	}

	if opts.Check {
		res.Stale, err = r.output.Check(artifacts)
		if err != nil {
			r.fail(&res, c, err)
		}
		return res
	}

	written, err := r.output.Write(artifacts)
	if err != nil {
		r.fail(&res, c, err)
		return res
	}
	res.Written = written.Written

	if r.cache != nil {
		// Annotation may have rewritten an input; hash what is on disk now.
		if fp, err = Fingerprint(c, opts.Salt); err == nil {
			r.cache.Store(c.Name, fp)
		}
	}
	r.logger.Debug("built component", "component", c.Name, "written", res.Written)
	return res
}

func (r *Runner) fail(res *ComponentResult, c project.Component, err error) {
	res.Err = err
	if r.cache != nil {
		r.cache.Forget(c.Name)
	}
	if api.IsComponentError(err) {
		r.logger.Warn("component has documentation errors", "component", c.Name, "error", err)
		return
	}
	r.logger.Error("component failed", "component", c.Name, "error", err)
}
