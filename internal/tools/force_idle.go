package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
	"github.com/specdeck/specdeck/internal/session"
)

// ForceIdleTool handles the deck_force_idle MCP tool, the operator
// recovery hatch for a wedged session.
type ForceIdleTool struct {
	engine *engine.Engine
}

// NewForceIdleTool creates a ForceIdleTool over the given engine.
func NewForceIdleTool(e *engine.Engine) *ForceIdleTool {
	return &ForceIdleTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *ForceIdleTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_force_idle",
		mcp.WithDescription(
			"Reset the session to idle unconditionally, bypassing all "+
				"transition checks. A recovery hatch for a session wedged by "+
				"external interference — prefer `deck_pause` or `deck_done` in "+
				"normal operation. Current task and item are discarded; the "+
				"document is untouched.",
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_force_idle tool call.
func (t *ForceIdleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	prior := t.engine.ForceIdle(root)
	if prior == session.StatusIdle {
		return mcp.NewToolResultText("Session was already idle."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Session force-reset to idle (was: %s).", prior,
	)), nil
}
