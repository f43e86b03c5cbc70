package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// TickTool handles the deck_tick MCP tool. It completes an item,
// writing the `[x]` marker back to the document.
type TickTool struct {
	engine *engine.Engine
}

// NewTickTool creates a TickTool over the given engine.
func NewTickTool(e *engine.Engine) *TickTool {
	return &TickTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *TickTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_tick",
		mcp.WithDescription(
			"Complete an item: its checkbox becomes `[x]` in the document. "+
				"Fails while the item has open sub-items, and rejects completions "+
				"inside the minimum work window of a `deck_working` call. With no "+
				"item argument, targets the current task. Completing the current "+
				"top-level task returns the session to idle. Any queued deferred "+
				"requests are drained and returned.",
		),
		mcp.WithString("item",
			mcp.Description("Item reference. Omit to complete the current task."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_tick tool call.
func (t *TickTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := t.engine.Tick(root, req.GetString("item", ""))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Completed %s — %s\n", res.Item.DisplayID(), res.Title)
	if res.DurationSeconds > 0 {
		fmt.Fprintf(&b, "\nWorked for %ds.\n", res.DurationSeconds)
	}
	if res.RapidTick {
		fmt.Fprintf(&b, "\n⚠️ %s\n", res.Warning)
	}
	if res.SessionCleared {
		b.WriteString("\nTask complete — session is idle again.\n")
	}
	if len(res.Queue) > 0 {
		b.WriteString("\n## Deferred requests (drained)\n\n")
		for _, item := range res.Queue {
			fmt.Fprintf(&b, "- %s\n", item.Title)
		}
		b.WriteString("\nThese were queued during the flow and are now yours to handle or re-queue.\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
