package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// AnchorTool handles the deck_anchor MCP tool. It pre-selects the task
// a bare deck_start will pick up.
type AnchorTool struct {
	engine *engine.Engine
}

// NewAnchorTool creates an AnchorTool over the given engine.
func NewAnchorTool(e *engine.Engine) *AnchorTool {
	return &AnchorTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *AnchorTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_anchor",
		mcp.WithDescription(
			"Pre-select the task that a `deck_start` without arguments will "+
				"begin. Useful for lining up the next task while another is still "+
				"active. An empty task argument clears the anchor.",
		),
		mcp.WithString("task",
			mcp.Description("Task reference to anchor. Omit or pass empty to clear."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_anchor tool call.
func (t *AnchorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	ref, err := t.engine.SetAnchor(root, req.GetString("task", ""))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	if ref == nil {
		return mcp.NewToolResultText("Anchor cleared."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Anchored %s — a bare deck_start will begin it.", ref.DisplayID(),
	)), nil
}
