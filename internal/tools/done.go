package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// DoneTool handles the deck_done MCP tool. It closes the active flow:
// the current task is completed, or an ad-hoc flow is ended.
type DoneTool struct {
	engine *engine.Engine
}

// NewDoneTool creates a DoneTool over the given engine.
func NewDoneTool(e *engine.Engine) *DoneTool {
	return &DoneTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *DoneTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_done",
		mcp.WithDescription(
			"Close the active flow. For a task session the current task is "+
				"marked done; this fails while sub-items remain open unless `force` "+
				"is set, in which case the open items are accepted and the forcing "+
				"is recorded in the audit trail. For an ad-hoc flow it simply "+
				"returns the session to idle.",
		),
		mcp.WithBoolean("force",
			mcp.Description("Complete the task even with open sub-items. Recorded as a forced completion."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_done tool call.
func (t *DoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := t.engine.Done(root, boolArg(req, "force", false))
	if err != nil {
		var f *engine.Fault
		if errors.As(err, &f) {
			return faultResult(f), nil
		}
		return nil, err
	}

	if res.Task == nil {
		return mcp.NewToolResultText("Ad-hoc flow closed — session is idle again."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Done: %s — %s\n", res.Task.DisplayID(), res.Title)
	if res.Forced {
		fmt.Fprintf(&b, "\n⚠️ Forced with open sub-items: %s\n", strings.Join(res.ForcedOpen, ", "))
	}
	if res.NextTask != "" {
		fmt.Fprintf(&b, "\nNext up: %s — %s\n", res.NextTask, res.NextTaskTitle)
	}

	return mcp.NewToolResultText(b.String()), nil
}
