// resources.go implements MCP resource handlers for product access.
//
// Resources give read-only access by URI, so a client can pull a product
// into context without a tool call. URIs have the form
// catalogd://products/{id}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

const productURIPrefix = "catalogd://products/"

// readProduct handles catalogd://products/{id} resource requests.
func (h *handlers) readProduct(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, res := h.service()
	if res != nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseProductURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	p, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(p.ToJSON())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseProductURI extracts the product id from a resource URI.
func parseProductURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, productURIPrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid product id %q", ErrInvalidURI, rest)
	}
	return id, nil
}
