package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdeck/specdeck/internal/config"
	"github.com/specdeck/specdeck/internal/engine"
	"github.com/specdeck/specdeck/internal/handover"
	"github.com/specdeck/specdeck/internal/queue"
	"github.com/specdeck/specdeck/internal/session"
)

// --- Test helpers ---

const testDoc = `## SD: Site Design
- [ ] **SD.1** Landing page
  - [ ] Hero banner
- [ ] **SD.2** Contact page
`

// setupProject creates a temp project with a checklist document and an
// engine wired over fresh stores. Tools receive the project explicitly,
// so no chdir is needed.
func setupProject(t *testing.T) (string, *engine.Engine) {
	t.Helper()
	root := t.TempDir()

	path := filepath.Join(root, config.DeckDir, config.DocumentFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	return root, engine.New(session.NewStore(), queue.New(), handover.NewFileStore())
}

func callReq(root string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	if args == nil {
		args = map[string]interface{}{}
	}
	args["project"] = root
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- StartTool ---

func TestStartTool_Definition(t *testing.T) {
	_, eng := setupProject(t)
	def := NewStartTool(eng).Definition()
	if def.Name != "deck_start" {
		t.Errorf("name = %q, want deck_start", def.Name)
	}
}

func TestStartTool_Handle_Success(t *testing.T) {
	root, eng := setupProject(t)
	tool := NewStartTool(eng)

	result, err := tool.Handle(context.Background(), callReq(root, map[string]interface{}{"task": "SD.1"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "SD.1") || !strings.Contains(text, "Landing page") {
		t.Errorf("result = %q", text)
	}
}

func TestStartTool_Handle_UnknownTask(t *testing.T) {
	root, eng := setupProject(t)
	tool := NewStartTool(eng)

	result, err := tool.Handle(context.Background(), callReq(root, map[string]interface{}{"task": "nope"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected a tool error for an unresolvable task")
	}
	if !strings.Contains(getResultText(result), "not_found") {
		t.Errorf("error text should carry the reason, got %q", getResultText(result))
	}
}

func TestStartTool_Handle_SurfacesHandoverNote(t *testing.T) {
	root, eng := setupProject(t)
	if err := eng.HandoverSet(root, handover.Note{TaskID: "SD.1", Note: "pick up at the footer"}); err != nil {
		t.Fatal(err)
	}

	result, err := NewStartTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"task": "SD.1"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "pick up at the footer") {
		t.Errorf("note missing from result: %q", getResultText(result))
	}
}

// --- WorkingTool ---

func TestWorkingTool_Handle_RequiresItem(t *testing.T) {
	root, eng := setupProject(t)
	result, err := NewWorkingTool(eng).Handle(context.Background(), callReq(root, nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("missing item parameter should be a tool error")
	}
}

// --- TickTool ---

func TestTickTool_Handle_IncompleteChildren(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.1")

	result, err := NewTickTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"item": "SD.1"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected a tool error while sub-items remain open")
	}
	text := getResultText(result)
	if !strings.Contains(text, "incomplete_children") || !strings.Contains(text, "Hero banner") {
		t.Errorf("result = %q", text)
	}
}

func TestTickTool_Handle_DrainsQueue(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.1")
	eng.Enqueue(root, "review the copy")

	result, err := NewTickTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"item": "Hero banner"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "review the copy") {
		t.Errorf("drained queue missing from result: %q", getResultText(result))
	}
}

// --- DoneTool ---

func TestDoneTool_Handle_ForceFlag(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.1")

	result, err := NewDoneTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"force": true}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected forced success, got error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "Forced") {
		t.Errorf("result should flag the forcing: %q", getResultText(result))
	}
}

// --- PauseTool ---

func TestPauseTool_Handle_SavesNote(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.1")

	result, err := NewPauseTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"note": "blocked on assets"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "note saved") {
		t.Errorf("result = %q", getResultText(result))
	}

	note, _ := eng.HandoverGet(root, "SD.1")
	if note == nil || note.Note != "blocked on assets" {
		t.Fatalf("note = %+v", note)
	}
}

// --- AdhocTool ---

func TestAdhocTool_Handle_RequiresKind(t *testing.T) {
	root, eng := setupProject(t)
	result, err := NewAdhocTool(eng).Handle(context.Background(), callReq(root, nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("missing kind should be a tool error")
	}
}

// --- StatusTool ---

func TestStatusTool_Handle_Rollup(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.2")

	result, err := NewStatusTool(eng).Handle(context.Background(), callReq(root, nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "building") || !strings.Contains(text, "SD.2") {
		t.Errorf("result = %q", text)
	}
	if !strings.Contains(text, "| SD | Site Design | 0/3 |") {
		t.Errorf("rollup table wrong: %q", text)
	}
}

// --- QueueAddTool ---

func TestQueueAddTool_Handle(t *testing.T) {
	root, eng := setupProject(t)
	result, err := NewQueueAddTool(eng).Handle(context.Background(),
		callReq(root, map[string]interface{}{"title": "bump deps"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "1 pending") {
		t.Errorf("result = %q", getResultText(result))
	}
	if len(eng.QueuePeek(root)) != 1 {
		t.Error("queue should hold the request")
	}
}

// --- HandoverTool ---

func TestHandoverTool_Handle_ListGetClear(t *testing.T) {
	root, eng := setupProject(t)
	store := handover.NewFileStore()
	tool := NewHandoverTool(eng, store)

	if err := eng.HandoverSet(root, handover.Note{TaskID: "SD.1", TaskTitle: "Landing page", Note: "halfway"}); err != nil {
		t.Fatal(err)
	}

	result, _ := tool.Handle(context.Background(), callReq(root, map[string]interface{}{"action": "list"}))
	if !strings.Contains(getResultText(result), "SD.1") {
		t.Errorf("list = %q", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callReq(root, map[string]interface{}{"action": "get", "task": "SD.1"}))
	if !strings.Contains(getResultText(result), "halfway") {
		t.Errorf("get = %q", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callReq(root, map[string]interface{}{"action": "clear", "task": "SD.1"}))
	if isErrorResult(result) {
		t.Fatalf("clear failed: %s", getResultText(result))
	}

	note, _ := eng.HandoverGet(root, "SD.1")
	if note != nil {
		t.Error("note should be gone after clear")
	}
}

func TestForceIdleTool_Handle(t *testing.T) {
	root, eng := setupProject(t)
	_, _ = eng.Start(root, "SD.1")

	result, err := NewForceIdleTool(eng).Handle(context.Background(), callReq(root, nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "building") {
		t.Errorf("result should name the prior status: %q", getResultText(result))
	}
}
