package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/propdoc/pkg/catalog"
)

// componentSummary is the list_components row.
type componentSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PropCount   int    `json:"prop_count"`
	ClassCount  int    `json:"class_count"`
}

// componentAPIResponse is the get_component_api payload.
type componentAPIResponse struct {
	Components []*catalog.Component `json:"components"`
	NotFound   []string             `json:"not_found,omitempty"`
}

func (s *Server) handleListComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := req.GetString("keyword", "")

	comps := s.query.ListComponents(keyword)
	out := make([]componentSummary, 0, len(comps))
	for _, c := range comps {
		out = append(out, componentSummary{
			Name:        c.Name,
			Description: c.Description,
			PropCount:   len(c.Props),
			ClassCount:  len(c.Classes),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleGetComponentAPI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := req.GetStringSlice("names", nil)
	if len(names) == 0 {
		return mcp.NewToolResultError("names is required and must list at least one component"), nil
	}

	resp := componentAPIResponse{Components: make([]*catalog.Component, 0, len(names))}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		comp, ok := s.query.GetComponent(strings.TrimSpace(name))
		if !ok {
			resp.NotFound = append(resp.NotFound, name)
			continue
		}
		if seen[comp.Name] {
			continue
		}
		seen[comp.Name] = true
		resp.Components = append(resp.Components, comp)
	}

	if len(resp.Components) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no documented component named %s", strings.Join(resp.NotFound, ", "))), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleSearchProps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	component := req.GetString("component", "")
	if component != "" {
		comp, ok := s.query.GetComponent(component)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no documented component named %s", component)), nil
		}
		component = comp.Name
	}

	results := s.query.SearchProps(query, component)
	if results == nil {
		results = []catalog.PropSearchResult{}
	}
	return jsonResult(results)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
