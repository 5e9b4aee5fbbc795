package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/propdoc/pkg/build"
	"github.com/gnana997/propdoc/pkg/project"
)

type buildOptions struct {
	workers int
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build [component...]",
		Short: "Generate API pages, translations and annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, opts, args, false)
		},
	}
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent components (default: CPU count)")
	return cmd
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "check [component...]",
		Short: "Fail when generated files are out of date, printing a diff",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, opts, args, true)
		},
	}
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent components (default: CPU count)")
	return cmd
}

func runBuild(cmd *cobra.Command, g *globalOptions, opts *buildOptions, names []string, check bool) error {
	logger := g.logger(cmd)
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	salt, err := a.loadDemos()
	if err != nil {
		return fmt.Errorf("load demo pages: %w", err)
	}
	components, err := a.project.Discover()
	if err != nil {
		return err
	}
	components, err = selectComponents(components, names)
	if err != nil {
		return err
	}

	summary, err := a.runner(nil).Run(cmd.Context(), components, build.Options{
		Check:   check,
		Workers: opts.workers,
		Salt:    salt,
	})
	if err != nil {
		return err
	}
	report(cmd.OutOrStdout(), summary, check)
	return summary.Err()
}

// selectComponents keeps the named components; no names keeps all.
func selectComponents(all []project.Component, names []string) ([]project.Component, error) {
	if len(names) == 0 {
		return all, nil
	}
	var out []project.Component
	var missing []string
	for _, name := range names {
		i := slices.IndexFunc(all, func(c project.Component) bool { return c.Name == name })
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		out = append(out, all[i])
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown component: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// report prints per-component failures and, in check mode, stale diffs.
func report(w io.Writer, summary build.Summary, check bool) {
	for _, r := range summary.Results {
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			fmt.Fprintf(w, "✗ %s\n", indent(r.Err.Error(), "  "))
		}
	}
	if check {
		for _, s := range summary.Stale() {
			fmt.Fprintf(w, "stale: %s\n", s.Path)
			if s.Diff != "" {
				fmt.Fprint(w, s.Diff)
			}
		}
	}
	fmt.Fprintf(w, "%d built, %d skipped, %d failed in %dms\n",
		summary.Built, summary.Skipped, summary.Failed, summary.Duration.Milliseconds())
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}
	var debounceMs int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild components when their sources or demo pages change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, g, opts, debounceMs)
		},
	}
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent components (default: CPU count)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 200, "milliseconds to wait for a burst of changes to settle")
	return cmd
}

func runWatch(cmd *cobra.Command, g *globalOptions, opts *buildOptions, debounceMs int) error {
	ctx := cmd.Context()
	logger := g.logger(cmd)
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	cache, err := build.NewFingerprintCache(0)
	if err != nil {
		return err
	}
	runner := a.runner(cache)
	out := cmd.OutOrStdout()

	salt, err := a.loadDemos()
	if err != nil {
		return fmt.Errorf("load demo pages: %w", err)
	}
	rebuild := func(ctx context.Context) {
		components, err := a.project.Discover()
		if err != nil {
			logger.Error("discover components", "error", err)
			return
		}
		summary, err := runner.Run(ctx, components, build.Options{Workers: opts.workers, Salt: salt})
		if err != nil {
			return
		}
		report(out, summary, false)
	}
	rebuild(ctx)

	ignore := []string{filepath.ToSlash(a.project.RelPath(a.project.Abs(cfg.OutputDir))) + "/**"}
	w, err := build.NewWatcher(a.project.Root(), build.WatchOptions{
		DebounceMs:     debounceMs,
		IgnorePatterns: ignore,
	}, func(paths []string) {
		logger.Info("change detected", "files", len(paths))
		if slices.ContainsFunc(paths, func(p string) bool { return filepath.Ext(p) == ".md" }) {
			s, err := a.loadDemos()
			if err != nil {
				logger.Error("reload demo pages", "error", err)
				return
			}
			salt = s
		}
		rebuild(ctx)
	}, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "root", a.project.Root())
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
