// Package catalog loads generated API pages back into memory for querying.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/propdoc/pkg/api"
)

// CatalogIndex provides O(1) lookups into the catalog.
type CatalogIndex struct {
	// ComponentByName maps component name -> *Component.
	ComponentByName map[string]*Component

	// ComponentByKey maps lower-cased name and kebab name -> *Component.
	ComponentByKey map[string]*Component
}

// Validate checks the catalog for internal consistency.
func (c *Catalog) Validate() []error {
	var errs []error
	names := make(map[string]bool, len(c.Components))

	for i, comp := range c.Components {
		if comp.Name == "" {
			errs = append(errs, fmt.Errorf("components[%d]: name is required", i))
			continue
		}
		if names[comp.Name] {
			errs = append(errs, fmt.Errorf("component %q: duplicate component name", comp.Name))
			continue
		}
		names[comp.Name] = true

		for j, prop := range comp.Props {
			if prop.Name == "" {
				errs = append(errs, fmt.Errorf("component %q props[%d]: name is required", comp.Name, j))
			}
			if prop.Type == "" {
				errs = append(errs, fmt.Errorf("component %q props[%d]: type is required", comp.Name, j))
			}
		}
	}
	return errs
}

// BuildIndex creates lookup maps. Call after Validate passes.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		ComponentByName: make(map[string]*Component, len(c.Components)),
		ComponentByKey:  make(map[string]*Component, 2*len(c.Components)),
	}
	for i := range c.Components {
		comp := &c.Components[i]
		idx.ComponentByName[comp.Name] = comp
		idx.ComponentByKey[strings.ToLower(comp.Name)] = comp
		if comp.Kebab != "" {
			idx.ComponentByKey[comp.Kebab] = comp
		}
	}
	return idx
}

// LoadFromDir reads `<dir>/pages/*.json` and the matching English
// translation bundles, validates the result and builds the index.
func LoadFromDir(dir string) (*Catalog, *CatalogIndex, error) {
	paths, err := doublestar.FilepathGlob(filepath.Join(dir, "pages", "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pages: %w", err)
	}
	sort.Strings(paths)

	catalog := &Catalog{Dir: dir}
	for _, path := range paths {
		kebab := strings.TrimSuffix(filepath.Base(path), ".json")
		comp, err := loadComponent(dir, kebab)
		if err != nil {
			return nil, nil, err
		}
		catalog.Components = append(catalog.Components, comp)
	}

	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}
	return catalog, catalog.BuildIndex(), nil
}

func loadComponent(dir, kebab string) (Component, error) {
	pagePath := filepath.Join(dir, "pages", kebab+".json")
	data, err := os.ReadFile(pagePath)
	if err != nil {
		return Component{}, fmt.Errorf("failed to read page: %w", err)
	}
	var page api.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return Component{}, fmt.Errorf("failed to parse %s: %w", pagePath, err)
	}

	var tr api.Translation
	trPath := filepath.Join(dir, "translations", kebab, kebab+".json")
	if data, err := os.ReadFile(trPath); err == nil {
		if err := json.Unmarshal(data, &tr); err != nil {
			return Component{}, fmt.Errorf("failed to parse %s: %w", trPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Component{}, fmt.Errorf("failed to read translation: %w", err)
	}

	return FromPage(kebab, page, tr), nil
}

// FromPage joins a page document with its translation bundle.
func FromPage(kebab string, page api.Page, tr api.Translation) Component {
	comp := Component{
		Name:        page.Name,
		Kebab:       kebab,
		Description: tr.ComponentDescription,
		MuiName:     page.MuiName,
		Filename:    page.Filename,
		Imports:     page.Imports,
		Inheritance: page.Inheritance,
		Demos:       page.Demos,
		Props:       make([]Prop, 0),
	}

	if page.Props.OrderedMap != nil {
		for pair := page.Props.Oldest(); pair != nil; pair = pair.Next() {
			entry := pair.Value
			comp.Props = append(comp.Props, Prop{
				Name:            pair.Key,
				Type:            entry.Type.Name,
				TypeDescription: entry.Type.Description,
				Default:         entry.Default,
				Required:        entry.Required,
				Deprecated:      entry.Deprecated,
				Description:     tr.PropDescriptions[pair.Key].Description,
			})
		}
	}

	for _, c := range page.Classes {
		desc := c.Description
		if cd, ok := tr.ClassDescriptions[c.Key]; ok {
			desc = cd.Description
		}
		comp.Classes = append(comp.Classes, Class{Key: c.Key, ClassName: c.ClassName, Description: desc})
	}
	for _, s := range page.Slots {
		desc := s.Description
		if d, ok := tr.SlotDescriptions[s.Name]; ok {
			desc = d
		}
		comp.Slots = append(comp.Slots, Slot{Name: s.Name, Default: s.Default, Description: desc})
	}
	return comp
}
