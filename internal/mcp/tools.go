package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askTool defines the ask MCP tool.
var askTool = mcp.NewTool("ask",
	mcp.WithDescription("Ask a web-grounded question. Returns the model's answer, typically with citations."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("The question to ask"),
	),
	mcp.WithString("system",
		mcp.Description("Optional system instruction sent before the question"),
	),
)

// analyzeImageTool defines the analyze_image MCP tool.
var analyzeImageTool = mcp.NewTool("analyze_image",
	mcp.WithDescription("Ask a question about an image reachable by URL."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("What to ask about the image"),
	),
	mcp.WithString("image_url",
		mcp.Required(),
		mcp.Description("http(s) or data: URL of the image"),
	),
	mcp.WithString("detail",
		mcp.Description("Image detail level"),
		mcp.Enum("auto", "low", "high"),
	),
)

// embedTool defines the embed MCP tool.
var embedTool = mcp.NewTool("embed",
	mcp.WithDescription("Compute an embedding vector for a text. Returns a JSON array of floats."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Text to embed"),
	),
)

// linkMetadataTool defines the link_metadata MCP tool.
var linkMetadataTool = mcp.NewTool("link_metadata",
	mcp.WithDescription("Fetch the title, description, image and site name of a web page."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Page URL; https:// is assumed when no scheme is given"),
	),
)
