package catalog

import "strings"

// PropSearchResult is one prop matching a search, with its component.
type PropSearchResult struct {
	Component   string `json:"component"`
	Prop        Prop   `json:"prop"`
	MatchReason string `json:"matchReason"`
}

// QueryService provides read-only query methods over a loaded catalog.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a validated catalog and its index.
func NewQueryService(cat *Catalog, idx *CatalogIndex) *QueryService {
	return &QueryService{Catalog: cat, Index: idx}
}

// LoadAndQuery loads the pages under dir and returns a ready-to-use QueryService.
func LoadAndQuery(dir string) (*QueryService, error) {
	cat, idx, err := LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

// ListComponents returns components whose name or description contains
// keyword, case-insensitively. An empty keyword returns everything.
func (q *QueryService) ListComponents(keyword string) []Component {
	keyword = strings.ToLower(keyword)
	result := make([]Component, 0)

	for _, comp := range q.Catalog.Components {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(comp.Name), keyword) &&
			!strings.Contains(strings.ToLower(comp.Description), keyword) {
			continue
		}
		result = append(result, comp)
	}
	return result
}

// GetComponent looks up a component by exact name, then by lower-cased or
// kebab-case name.
func (q *QueryService) GetComponent(name string) (*Component, bool) {
	if comp, ok := q.Index.ComponentByName[name]; ok {
		return comp, true
	}
	if comp, ok := q.Index.ComponentByKey[strings.ToLower(name)]; ok {
		return comp, true
	}
	return nil, false
}

// SearchProps finds props whose name, type or description contains query.
// A non-empty component restricts the search to that component.
func (q *QueryService) SearchProps(query, component string) []PropSearchResult {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	var results []PropSearchResult
	for _, comp := range q.Catalog.Components {
		if component != "" && !strings.EqualFold(comp.Name, component) {
			continue
		}
		for _, prop := range comp.Props {
			reason := ""
			switch {
			case strings.Contains(strings.ToLower(prop.Name), query):
				reason = "name"
			case strings.Contains(strings.ToLower(prop.Type), query),
				strings.Contains(strings.ToLower(prop.TypeDescription), query):
				reason = "type"
			case strings.Contains(strings.ToLower(prop.Description), query):
				reason = "description"
			default:
				continue
			}
			results = append(results, PropSearchResult{Component: comp.Name, Prop: prop, MatchReason: reason})
		}
	}
	return results
}
