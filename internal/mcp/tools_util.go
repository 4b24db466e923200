// tools_util.go provides helpers for extracting typed tool arguments.
//
// Extraction is permissive: a missing or mistyped optional argument yields
// its default (or nil) instead of an error, because LLMs often omit optional
// parameters. Required arguments are checked by the tools themselves.

package mcp

import (
	"errors"
	"fmt"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
)

// getString returns a string argument, or def when it is missing or not a
// string. Optional parameters never fail a tool call.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean argument, or def. A string "true" is not a
// boolean and yields def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON numbers are decoded as float64 in Go's encoding/json, so we type
// assert to float64 and convert. Returns nil if the parameter is missing or
// not a number, letting callers tell "absent" from zero; update tools rely
// on that to leave unset fields alone.
func getInt(req mcp.CallToolRequest, name string) *int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

// getOptString is getString for optional fields whose empty value is
// meaningful: nil when absent, otherwise the given string.
func getOptString(req mcp.CallToolRequest, name string) *string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

// getPrice extracts an optional decimal price. Prices travel as strings so
// no float rounding happens on the way in; JSON numbers are accepted too.
func getPrice(req mcp.CallToolRequest, name string) (*decimal.Decimal, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, nil
	}
	switch v := args[name].(type) {
	case nil:
		return nil, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be a decimal number, got %q", name, v)
		}
		return &d, nil
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	default:
		return nil, fmt.Errorf("%s must be a decimal number", name)
	}
}

// getID extracts a required product id.
func getID(req mcp.CallToolRequest) (int64, error) {
	n := getInt(req, "id")
	if n == nil || *n < 1 {
		return 0, errors.New("id is required and must be a positive integer")
	}
	return int64(*n), nil
}

// jsonResult wraps v as indented JSON text. Marshalling failures become
// tool error results like every other failure.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
