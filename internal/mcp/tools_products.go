// tools_products.go implements MCP tools for single-product CRUD.
//
// Writes require an author so every change in the audit log can be traced
// to the agent that made it. Failures come back as tool error results, not
// Go errors, so the LLM gets a message it can act on.

package mcp

import (
	"context"

	"github.com/jpl-au/catalogd/internal/diff"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getProduct handles product_get tool calls.
func (h *handlers) getProduct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	p, err := svc.Get(ctx, id)

	log.Event("mcp:product_get", "read").Author("mcp").Product(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p.ToJSON())
}

// createProduct handles product_create tool calls.
func (h *handlers) createProduct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	price, err := getPrice(req, "price")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	if price == nil {
		return mcp.NewToolResultError("price is required"), nil
	}

	np := store.NewProduct{
		Name:        name,
		Description: getString(req, "description", ""),
		Price:       *price,
	}
	if s := getInt(req, "stock"); s != nil {
		np.Stock = *s
	}

	l := log.Event("mcp:product_create", "create").Author(author).Detail("name", name)
	p, err := svc.Create(ctx, np, author)
	if err == nil {
		l.Result(p.ID)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p.ToJSON())
}

// updateProduct handles product_update tool calls. The response carries the
// updated product and a line diff of what changed.
func (h *handlers) updateProduct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}
	price, err := getPrice(req, "price")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	u := store.ProductUpdate{
		Name:        getOptString(req, "name"),
		Description: getOptString(req, "description"),
		Price:       price,
		Stock:       getInt(req, "stock"),
	}
	if u.Empty() {
		return mcp.NewToolResultError("nothing to update: give at least one of name, description, price, stock"), nil
	}

	before, after, err := svc.Update(ctx, id, u, author)

	log.Event("mcp:product_update", "update").Author(author).Product(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"product": after.ToJSON(),
		"diff":    diff.Products(before, after).Diff,
	})
}

// deleteProduct handles product_delete tool calls.
func (h *handlers) deleteProduct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	p, err := svc.Delete(ctx, id, author)

	log.Event("mcp:product_delete", "delete").Author(author).Product(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"deleted": p.ToJSON()})
}
