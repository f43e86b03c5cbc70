package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// AlsoDidTool handles the deck_also_did MCP tool. It records off-plan
// work done alongside the current task, without touching the document.
type AlsoDidTool struct {
	engine *engine.Engine
}

// NewAlsoDidTool creates an AlsoDidTool over the given engine.
func NewAlsoDidTool(e *engine.Engine) *AlsoDidTool {
	return &AlsoDidTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *AlsoDidTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_also_did",
		mcp.WithDescription(
			"Record work done during the active session that has no checklist "+
				"item — a drive-by fix, a cleanup. Goes into the audit trail only; "+
				"the document is untouched. Requires an active session.",
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What was done."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_also_did tool call.
func (t *AlsoDidTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	description := req.GetString("description", "")
	if description == "" {
		return mcp.NewToolResultError("Missing required parameter: description"), nil
	}

	if err := t.engine.AlsoDid(root, description); err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	return mcp.NewToolResultText("Recorded in the audit trail."), nil
}
