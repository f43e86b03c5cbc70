package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// WorkingTool handles the deck_working MCP tool. It marks the item
// being actively worked inside the current task.
type WorkingTool struct {
	engine *engine.Engine
}

// NewWorkingTool creates a WorkingTool over the given engine.
func NewWorkingTool(e *engine.Engine) *WorkingTool {
	return &WorkingTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkingTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_working",
		mcp.WithDescription(
			"Mark a sub-item of the current task as being actively worked. "+
				"The item's checkbox moves to in-progress `[~]` and its start time "+
				"anchors the minimum-work-window guard. Requires an active session "+
				"with a current task.",
		),
		mcp.WithString("item",
			mcp.Required(),
			mcp.Description("Item reference, resolved within the current task first."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_working tool call.
func (t *WorkingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	item := req.GetString("item", "")
	if item == "" {
		return mcp.NewToolResultError("Missing required parameter: item"), nil
	}

	res, err := t.engine.Working(root, item)
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Working on %s — %s (started %s)",
		res.Item.DisplayID(), res.Title, res.StartedAt.Format("15:04:05"),
	)), nil
}
