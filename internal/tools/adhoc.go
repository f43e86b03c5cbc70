package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// AdhocTool handles the deck_adhoc MCP tool. It opens an off-plan flow
// with no backing checklist item.
type AdhocTool struct {
	engine *engine.Engine
}

// NewAdhocTool creates an AdhocTool over the given engine.
func NewAdhocTool(e *engine.Engine) *AdhocTool {
	return &AdhocTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *AdhocTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_adhoc",
		mcp.WithDescription(
			"Open an off-plan flow: work that has no checklist item, like an "+
				"urgent bug or an unplanned quick win. The session leaves idle but "+
				"no current task is set; use `deck_done` to close the flow. The "+
				"deviation is recorded in the audit trail.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Enum("impromptu", "debugging", "quickwin"),
			mcp.Description("The kind of off-plan work."),
		),
		mcp.WithString("description",
			mcp.Description("What this off-plan work is about, recorded in the audit trail."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_adhoc tool call.
func (t *AdhocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	kind := req.GetString("kind", "")
	if kind == "" {
		return mcp.NewToolResultError("Missing required parameter: kind"), nil
	}

	res, err := t.engine.Adhoc(root, kind, req.GetString("description", ""))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Off-plan flow opened (%s, status: %s). Close it with deck_done when finished.",
		res.Kind, res.Status,
	)), nil
}
