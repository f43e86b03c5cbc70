package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// StatusTool handles the deck_status MCP tool. It reports the session
// and a completion rollup of the checklist without mutating anything.
type StatusTool struct {
	engine *engine.Engine
}

// NewStatusTool creates a StatusTool over the given engine.
func NewStatusTool(e *engine.Engine) *StatusTool {
	return &StatusTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_status",
		mcp.WithDescription(
			"Show the session state and per-area completion rollup: current "+
				"task and item, anchor, pending queue length, and done/total counts "+
				"per area. Read-only.",
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := t.engine.Status(root)
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Session\n\nStatus: **%s**", res.Status)
	if res.Mode != "" {
		fmt.Fprintf(&b, " (mode: %s)", res.Mode)
	}
	b.WriteString("\n")
	if res.CurrentTask != nil {
		fmt.Fprintf(&b, "Current task: %s (iteration %d)\n", res.CurrentTask.DisplayID(), res.Iteration)
	}
	if res.CurrentItem != nil {
		fmt.Fprintf(&b, "Working on: %s\n", res.CurrentItem.DisplayID())
	}
	if res.Anchor != nil {
		fmt.Fprintf(&b, "Anchored next: %s\n", res.Anchor.DisplayID())
	}
	if res.QueueLen > 0 {
		fmt.Fprintf(&b, "Queued requests: %d\n", res.QueueLen)
	}

	b.WriteString("\n## Areas\n\n| Area | Name | Done |\n|------|------|------|\n")
	for _, area := range res.Areas {
		fmt.Fprintf(&b, "| %s | %s | %d/%d |\n", area.Code, area.Name, area.Done, area.Total)
	}

	return mcp.NewToolResultText(b.String()), nil
}
