package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listConceptsTool defines the list_concepts MCP tool.
var listConceptsTool = mcp.NewTool("list_concepts",
	mcp.WithDescription("List every OOP concept in navbar order with its summary, default unit and unit count."),
)

// listUnitsTool defines the list_units MCP tool.
var listUnitsTool = mcp.NewTool("list_units",
	mcp.WithDescription("List the content units of a concept in sidebar order, including their groups."),
	mcp.WithString("concept",
		mcp.Required(),
		mcp.Description("Concept id, for example inheritance"),
	),
)

// getUnitTool defines the get_unit MCP tool.
var getUnitTool = mcp.NewTool("get_unit",
	mcp.WithDescription("Get a content unit as markdown: prose, code samples and the text of its interactive demo. Without a unit, returns the concept's default unit or its overview."),
	mcp.WithString("concept",
		mcp.Required(),
		mcp.Description("Concept id"),
	),
	mcp.WithString("unit",
		mcp.Description("Unit id (optional)"),
	),
)

// searchContentTool defines the search_content MCP tool.
var searchContentTool = mcp.NewTool("search_content",
	mcp.WithDescription("Search titles, prose and code samples. Every query term must appear; title matches rank first."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search terms"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// resolvePathTool defines the resolve_path MCP tool.
var resolvePathTool = mcp.NewTool("resolve_path",
	mcp.WithDescription("Resolve a site path such as /inheritance/single to the view it shows."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Site path"),
	),
)
