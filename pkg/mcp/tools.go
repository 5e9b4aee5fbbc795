package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List documented components with their description and prop count. Optionally filter by a keyword matched against name and description."),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive filter on component name or description"),
		),
	)
}

func getComponentAPITool() mcp.Tool {
	return mcp.NewTool("get_component_api",
		mcp.WithDescription("Return the full generated API of one or more components: props with types, defaults and descriptions, CSS classes, slots, imports and demos."),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Component names, e.g. [\"Badge\", \"button-base\"]"),
			mcp.WithStringItems(),
		),
	)
}

func searchPropsTool() mcp.Tool {
	return mcp.NewTool("search_props",
		mcp.WithDescription("Search props across all components by name, type or description."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive text to look for"),
		),
		mcp.WithString("component",
			mcp.Description("Restrict the search to this component"),
		),
	)
}
