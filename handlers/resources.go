// ABOUTME: MCP resource handlers exposing the log read-only
// ABOUTME: Serves opslog://stats, opslog://contacts and opslog://days/{date}
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/opslog/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "opslog://"

type ResourceHandlers struct {
	app *app.App
}

func NewResourceHandlers(a *app.App) *ResourceHandlers {
	return &ResourceHandlers{app: a}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	switch parts[0] {
	case "stats":
		return jsonResource(uri, h.app.Stats())
	case "contacts":
		return jsonResource(uri, h.app.Store.Contacts())
	case "days":
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("day resource needs a date: %s", uri)
		}
		rec, ok := h.app.Store.Day(parts[1])
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, rec)
	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
