package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// StartTool handles the deck_start MCP tool. It begins a session on a
// top-level task.
type StartTool struct {
	engine *engine.Engine
}

// NewStartTool creates a StartTool over the given engine.
func NewStartTool(e *engine.Engine) *StartTool {
	return &StartTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_start",
		mcp.WithDescription(
			"Start working on a task from the checklist. Accepts an explicit id "+
				"like `SD.1`, a positional reference like `1.2`, or a fragment of an "+
				"incomplete item's title. With no task argument, starts the anchored "+
				"task if one is set. Starting resolves to the item's top-level task "+
				"and surfaces any handover note left by a previous pause.",
		),
		mcp.WithString("task",
			mcp.Description("Task reference: explicit id, positional id, or title fragment. Omit to use the anchor."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := t.engine.Start(root, req.GetString("task", ""))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Started %s — %s\n\nIteration: %d\n", res.Task.DisplayID(), res.Title, res.Iteration)
	if res.Reopened {
		b.WriteString("\n⚠️ This task was already marked done — you are reopening completed work.\n")
	}
	if res.Handover != nil {
		fmt.Fprintf(&b, "\n## Handover note (from %s)\n\n%s\n", res.Handover.CreatedAt.Format("2006-01-02 15:04"), res.Handover.Note)
		if res.Handover.PausedBy != "" {
			fmt.Fprintf(&b, "\nPaused by: %s\n", res.Handover.PausedBy)
		}
		b.WriteString("\nThe note has been consumed and will not be shown again.\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
