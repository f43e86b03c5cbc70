package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// PauseTool handles the deck_pause MCP tool. It abandons the active
// flow back to idle, optionally leaving a durable handover note.
type PauseTool struct {
	engine *engine.Engine
}

// NewPauseTool creates a PauseTool over the given engine.
func NewPauseTool(e *engine.Engine) *PauseTool {
	return &PauseTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *PauseTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_pause",
		mcp.WithDescription(
			"Pause the active session back to idle. The task keeps its current "+
				"completion state and can be started again later. An optional note "+
				"is stored durably and surfaced exactly once, on the next start of "+
				"the same task.",
		),
		mcp.WithString("note",
			mcp.Description("Handover note for whoever resumes this task. Overwrites any previous note for it."),
		),
		mcp.WithString("paused_by",
			mcp.Description("Free-form identity of who is pausing, recorded with the note."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_pause tool call.
func (t *PauseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := t.engine.Pause(root, req.GetString("note", ""), req.GetString("paused_by", ""))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	msg := "Session paused — back to idle."
	if res.Task != nil {
		msg = fmt.Sprintf("Paused %s — %s. The task stays startable.", res.Task.DisplayID(), res.Title)
	}
	if res.NoteSaved {
		msg += "\n\nHandover note saved; it will be surfaced on the next start of this task."
	}

	return mcp.NewToolResultText(msg), nil
}
