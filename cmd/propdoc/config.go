package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gnana997/propdoc/pkg/project"
)

// configCandidates are tried in order when --config is not given.
var configCandidates = []string{
	"propdoc.yaml",
	filepath.Join(".propdoc", "config.yaml"),
}

// loadConfig resolves the configuration, applying the fallback chain:
//  1. Explicit --config flag value
//  2. propdoc.yaml, then .propdoc/config.yaml, under --root (or the
//     working directory)
//  3. Defaults
//
// --root and --out override file values.
func loadConfig(opts *globalOptions) (project.Config, error) {
	cfg, err := readConfig(opts)
	if err != nil {
		return cfg, err
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	return cfg, cfg.Validate()
}

func readConfig(opts *globalOptions) (project.Config, error) {
	if opts.configPath != "" {
		cfg, err := project.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		return relativeTo(cfg, filepath.Dir(opts.configPath)), nil
	}

	base := opts.root
	if base == "" {
		base = "."
	}
	for _, candidate := range configCandidates {
		path := filepath.Join(base, candidate)
		cfg, err := project.LoadConfig(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		// .propdoc/config.yaml describes its parent directory.
		dir := filepath.Dir(path)
		if filepath.Base(dir) == ".propdoc" {
			dir = filepath.Dir(dir)
		}
		return relativeTo(cfg, dir), nil
	}

	cfg := project.DefaultConfig()
	cfg.Root = base
	return cfg, nil
}

// relativeTo resolves a relative root against the config file location.
func relativeTo(cfg project.Config, dir string) project.Config {
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(dir, cfg.Root)
	}
	return cfg
}
