// Package project holds the propdoc configuration and resolves the
// components of a library: their files, imports and inheritance links.
package project

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config is the contents of propdoc.yaml. Relative paths are resolved
// against Root.
type Config struct {
	// Root is the workspace root; output filenames are relative to it.
	Root string `yaml:"root"`

	ProductID   string `yaml:"product_id"`
	PackageName string `yaml:"package_name"`
	// Host prefixes links written into declaration file annotations.
	Host string `yaml:"host"`

	// Include and Exclude select component sources (doublestar globs).
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// Pages selects markdown demo pages.
	Pages []string `yaml:"pages"`

	OutputDir string   `yaml:"output_dir"`
	Languages []string `yaml:"languages"`

	// SystemComponents are built with create<Name> factories.
	SystemComponents []string `yaml:"system_components"`
	// CSSComponents are documented as CSS-only components.
	CSSComponents []string `yaml:"css_components"`
	// SkipDemoCheck lists components allowed to have no demo page.
	SkipDemoCheck []string `yaml:"skip_demo_check"`
	// Inheritance maps an inherited component to its API page, overriding
	// the /<product>/api/<kebab-name>/ convention.
	Inheritance map[string]string `yaml:"inheritance"`

	// AbsoluteLinks rewrites root-relative links in rendered descriptions
	// to absolute URLs on Host.
	AbsoluteLinks bool `yaml:"absolute_links"`

	// Annotate rewrites declaration files with Demos/API doc comments.
	Annotate bool `yaml:"annotate"`
	// DocgenDir, when set, loads precomputed react-docgen JSON from this
	// directory instead of parsing sources.
	DocgenDir string `yaml:"docgen_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Root:        ".",
		ProductID:   "material-ui",
		PackageName: "@mui/material",
		Host:        "https://mui.com",
		Include:     []string{"src/**/*.js", "src/**/*.tsx"},
		Exclude:     []string{"**/node_modules/**", "**/*.test.*", "**/*.spec.*", "**/*.d.ts"},
		Pages:       []string{"docs/**/*.md"},
		OutputDir:   "docs/api",
		Languages:   []string{"zh", "pt"},
		Annotate:    true,
	}
}

// LoadConfig reads a yaml config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks required fields and glob syntax.
func (c Config) Validate() error {
	if c.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if c.PackageName == "" {
		return fmt.Errorf("package_name is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	for _, group := range [][]string{c.Include, c.Exclude, c.Pages} {
		for _, pattern := range group {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid glob pattern: %s", pattern)
			}
		}
	}
	return nil
}
