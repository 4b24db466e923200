// tools.go contributes the query tools to the MCP server.
//
// Arguments are converted into search.Params so MCP, HTTP and the CLI share
// one parser. Input errors come back as tool error results.

package search

import (
	"context"
	"strconv"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func searchTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("catalog_search",
			mcp.WithDescription("Search products with optional filters, sorting and pagination. "+
				"Text matching tries full-text, then prefix, then similarity (typo tolerant), then substring."),
			mcp.WithString("query", mcp.Description("Search text; empty matches every product")),
			mcp.WithBoolean("in_stock", mcp.Description("Only products with stock above 0")),
			mcp.WithString("min_price", mcp.Description("Minimum price as a decimal string")),
			mcp.WithString("max_price", mcp.Description("Maximum price as a decimal string")),
			mcp.WithString("sort_by", mcp.Description("name, price_asc, price_desc or newest")),
			mcp.WithNumber("limit", mcp.Description("Page size (default from config)")),
			mcp.WithNumber("offset", mcp.Description("Products to skip")),
		),
		Handler: handleSearch,
	}
}

func findTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("catalog_find",
			mcp.WithDescription("Quick search by name and description, best matches first. No filters."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from config)")),
		),
		Handler: handleFind,
	}
}

func lowStockTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("catalog_low_stock",
			mcp.WithDescription("List products with stock at or below a threshold, lowest first"),
			mcp.WithNumber("threshold", mcp.Description("Stock threshold (default from config, usually 10)")),
		),
		Handler: handleLowStock,
	}
}

func handleSearch(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)
	p := search.Params{
		Query:    str(args, "query"),
		MinPrice: str(args, "min_price"),
		MaxPrice: str(args, "max_price"),
		SortBy:   str(args, "sort_by"),
		Limit:    str(args, "limit"),
		Offset:   str(args, "offset"),
	}
	if v, ok := args["in_stock"].(bool); ok && v {
		p.InStock = "true"
	}

	r, err := p.Parse()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	res, err := extCtx.Service().Search(ctx, r)

	l := log.Event("mcp:catalog_search", "search").Author("mcp").Detail("query", r.Query)
	if res != nil {
		l.Detail("filtered", res.FilteredCount).Detail("strategy", res.Strategy.String())
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.ToJSON())
}

func handleFind(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	limit, err := search.ParseCount("limit", str(arguments(req), "limit"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	res, err := extCtx.Service().Quick(ctx, query, limit)

	l := log.Event("mcp:catalog_find", "search").Author("mcp").Detail("query", query)
	if res != nil {
		l.Detail("count", len(res.Products))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.ToJSON())
}

func handleLowStock(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threshold, err := search.ParseCount("threshold", str(arguments(req), "threshold"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	res, err := extCtx.Service().LowStock(ctx, threshold)

	l := log.Event("mcp:catalog_low_stock", "search").Author("mcp")
	if res != nil {
		l.Detail("threshold", res.Threshold).Detail("count", len(res.Products))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.ToJSON())
}

func arguments(req mcp.CallToolRequest) map[string]any {
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		return args
	}
	return map[string]any{}
}

// str renders an argument in the textual form search.Params parses.
// JSON numbers arrive as float64; absent or unsupported values are empty.
func str(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
