// Package tools implements the MCP tool handlers over the session
// engine.
//
// Each file holds one tool: a struct carrying its dependencies, a
// Definition for registration, and a Handle method. Domain failures
// from the engine come back as *engine.Fault values and are reported
// as tool errors with a remediation hint; only process-level failures
// (unreadable stores, broken documents) propagate as Go errors.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/config"
	"github.com/specdeck/specdeck/internal/engine"
)

// projectRoot resolves the project the call targets: the explicit
// `project` argument when given, otherwise the nearest ancestor
// directory carrying a deck/ directory.
func projectRoot(req mcp.CallToolRequest) (string, error) {
	if p := req.GetString("project", ""); p != "" {
		return p, nil
	}
	return config.FindRoot()
}

// boolArg reads an optional boolean argument. mcp-go has no typed
// getter with a default for booleans, so read the raw argument map.
func boolArg(req mcp.CallToolRequest, key string, def bool) bool {
	if v, ok := req.GetArguments()[key].(bool); ok {
		return v
	}
	return def
}

// faultResult renders an engine fault as a tool error the caller can
// act on: the message, the machine-readable reason, and the hint.
func faultResult(f *engine.Fault) *mcp.CallToolResult {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nReason: `%s`", f.Message, f.Reason)
	if len(f.Titles) > 0 {
		b.WriteString("\nOpen items:\n")
		for _, title := range f.Titles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}
	if f.WaitSeconds > 0 {
		fmt.Fprintf(&b, "\nWait: %ds", f.WaitSeconds)
	}
	if f.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s", f.Hint)
	}
	return mcp.NewToolResultError(b.String())
}
