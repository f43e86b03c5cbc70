package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/engine"
)

// QueueAddTool handles the deck_queue_add MCP tool. It defers a
// request without interrupting the active flow.
type QueueAddTool struct {
	engine *engine.Engine
}

// NewQueueAddTool creates a QueueAddTool over the given engine.
func NewQueueAddTool(e *engine.Engine) *QueueAddTool {
	return &QueueAddTool{engine: e}
}

// Definition returns the MCP tool definition for registration.
func (t *QueueAddTool) Definition() mcp.Tool {
	return mcp.NewTool("deck_queue_add",
		mcp.WithDescription(
			"Queue a request that arrived mid-flow instead of acting on it "+
				"now. The whole queue is drained and returned by the next "+
				"successful `deck_tick`. Queued requests are informational — they "+
				"are never inserted into the checklist document.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short description of the deferred request."),
		),
		mcp.WithString("project",
			mcp.Description("Project root directory. Defaults to the nearest ancestor containing deck/."),
		),
	)
}

// Handle processes the deck_queue_add tool call.
func (t *QueueAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := projectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("Missing required parameter: title"), nil
	}

	t.engine.Enqueue(root, title)
	pending := len(t.engine.QueuePeek(root))

	return mcp.NewToolResultText(fmt.Sprintf(
		"Queued (%d pending). The queue is handed back on the next completed item.", pending,
	)), nil
}
