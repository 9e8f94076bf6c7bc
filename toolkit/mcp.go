package toolkit

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
)

// RegisterMCP flattens the toolkit into s: every child of every parent becomes a
// top-level MCP tool named after the child, with the child's generated schema as
// its input schema. A child's text result is returned as a single text content.
func (t *Toolkit) RegisterMCP(s *server.MCPServer) {
	for _, p := range t.sortedParents() {
		for _, c := range sortedChildren(p) {
			schema, err := json.Marshal(c.GetInputSchema())
			if err != nil {
				slog.Error("marshal child schema, tool not registered",
					slog.String("parent", p.GetName()), slog.String("child", c.GetName()), slog.Any("error", err))
				continue
			}
			tool := mcp.NewToolWithRawSchema(c.GetName(), c.GetDescription(), schema)
			s.AddTool(tool, mcpHandler(c))
		}
	}
}

// mcpHandler adapts a Child to the MCP tool handler signature. Toolkit errors
// are reported as tool results flagged with isError, never as protocol errors.
func mcpHandler(c Child) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(NewError("invalid_arguments", err.Error()).Error()), nil
		}

		text, err := c.Handle(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
