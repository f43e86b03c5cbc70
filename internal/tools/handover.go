package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
	"github.com/specdeck/specdeck/internal/handover"
)

// HandoverTool handles the deck_handover MCP tool: direct inspection
// and management of stored handover notes, outside the start/pause
// flow.
type HandoverTool struct {
	engine *engine.Engine
	store  handover.Store
}

// NewHandoverTool creates a HandoverTool over the given engine and
// note store.
func NewHandoverTool(e *engine.Engine, store handover.Store) *HandoverTool {
	return &HandoverTool{engine: e, store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HandoverTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_handover",
		mcp.WithDescription(
			"Inspect or manage stored handover notes without going through "+
				"start/pause. Actions: `list` all notes, `get` the note for a task, "+
				"`clear` a note. Notes are normally written by `deck_pause` and "+
				"consumed by `deck_start`.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum("list", "get", "clear"),
			mcp.Description("What to do."),
		),
		mcp.WithString("task",
			mcp.Description("Task id, e.g. SD.1. Required for get and clear."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_handover tool call.
func (t *HandoverTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	action := req.GetString("action", "")
	task := req.GetString("task", "")

	switch action {
	case "list":
		notes, err := t.store.List(root)
		if err != nil {
			return nil, fmt.Errorf("listing handover notes: %w", err)
		}
		if len(notes) == 0 {
			return mcp.NewToolResultText("No handover notes stored."), nil
		}
		var b strings.Builder
		b.WriteString("# Handover notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- **%s** %s (%s): %s\n", n.TaskID, n.TaskTitle, n.CreatedAt.Format("2006-01-02"), n.Note)
		}
		return mcp.NewToolResultText(b.String()), nil

	case "get":
		if task == "" {
			return mcp.NewToolResultError("get requires the task parameter"), nil
		}
		note, err := t.engine.HandoverGet(root, task)
		if err != nil {
			return nil, fmt.Errorf("reading handover note: %w", err)
		}
		if note == nil {
			return mcp.NewToolResultText(fmt.Sprintf("No note stored for %s.", task)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"# Note for %s — %s\n\n%s\n\nSaved %s", note.TaskID, note.TaskTitle, note.Note,
			note.CreatedAt.Format("2006-01-02 15:04"),
		)), nil

	case "clear":
		if task == "" {
			return mcp.NewToolResultError("clear requires the task parameter"), nil
		}
		if err := t.engine.HandoverClear(root, task); err != nil {
			return nil, fmt.Errorf("clearing handover note: %w", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Note for %s cleared.", task)), nil

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown action %q — use list, get, or clear.", action)), nil
	}
}
