// Package server wires the engine, stores, and MCP tools into a server
// instance.
//
// This is the composition root: it creates the concrete stores and
// injects them into the engine and tools. No business logic lives
// here — only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/specdeck/specdeck/internal/engine"
	"github.com/specdeck/specdeck/internal/handover"
	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/queue"
	"github.com/specdeck/specdeck/internal/session"
	"github.com/specdeck/specdeck/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the audit ledger's database
// connection and must be called on shutdown (typically via defer). It
// is always non-nil and safe to call even if ledger init failed.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	sessions := session.NewStore()
	q := queue.New()
	notes := handover.NewFileStore()

	eng := engine.New(sessions, q, notes)

	// The audit ledger is an independent subsystem: if its database
	// fails to open, the state machine keeps working and audit records
	// are simply skipped. Log a warning and continue.
	cleanup := noop
	led, ledErr := ledger.New(ledger.DefaultConfig())
	if ledErr != nil {
		log.Printf("WARNING: audit ledger disabled: %v", ledErr)
	} else {
		eng.SetLedger(led)
		cleanup = func() {
			if err := led.Close(); err != nil {
				log.Printf("WARNING: ledger close: %v", err)
			}
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"specdeck",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register session tools ---

	startTool := tools.NewStartTool(eng)
	s.AddTool(startTool.Definition(), startTool.Handle)

	workingTool := tools.NewWorkingTool(eng)
	s.AddTool(workingTool.Definition(), workingTool.Handle)

	tickTool := tools.NewTickTool(eng)
	s.AddTool(tickTool.Definition(), tickTool.Handle)

	pauseTool := tools.NewPauseTool(eng)
	s.AddTool(pauseTool.Definition(), pauseTool.Handle)

	doneTool := tools.NewDoneTool(eng)
	s.AddTool(doneTool.Definition(), doneTool.Handle)

	adhocTool := tools.NewAdhocTool(eng)
	s.AddTool(adhocTool.Definition(), adhocTool.Handle)

	alsoDidTool := tools.NewAlsoDidTool(eng)
	s.AddTool(alsoDidTool.Definition(), alsoDidTool.Handle)

	anchorTool := tools.NewAnchorTool(eng)
	s.AddTool(anchorTool.Definition(), anchorTool.Handle)

	forceIdleTool := tools.NewForceIdleTool(eng)
	s.AddTool(forceIdleTool.Definition(), forceIdleTool.Handle)

	// --- Register inspection & deferral tools ---

	statusTool := tools.NewStatusTool(eng)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	queueAddTool := tools.NewQueueAddTool(eng)
	s.AddTool(queueAddTool.Definition(), queueAddTool.Handle)

	handoverTool := tools.NewHandoverTool(eng, notes)
	s.AddTool(handoverTool.Definition(), handoverTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when the ledger is disabled.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to drive the session tools.
func serverInstructions() string {
	return `You have access to specdeck, a session tracker for checklist-driven work.

## The checklist

The project keeps its plan in deck/tasks.md: areas ("## SD: Site Design")
containing checkbox items ("- [ ] **SD.1** Landing page") with indented
sub-items. specdeck owns the checkboxes — never edit the glyphs by hand
while a session is live.

## The flow

1. deck_start <task> — begin a top-level task. Surfaces any handover
   note left by a previous pause. With no argument, starts the anchored
   task.
2. deck_working <item> — mark the sub-item you are actively on. Its
   checkbox becomes [~].
3. Do the work.
4. deck_tick <item> — complete it ([x]). A tick straight after a
   working call is rejected: real work takes time. Parent items refuse
   to complete while children are open.
5. deck_done — close the task. Use force:true only when you and the
   user agree to accept open sub-items.

## Task references

Items can be referenced three ways, tried in order:
- Explicit id: SD.1, OPS.3 (works even for completed items)
- Positional: 1.2 means area 1, item 2
- Title fragment: "hero banner" (matches incomplete items only,
  current task first)

## Interruptions

- deck_queue_add — a request arrived mid-flow? Queue it instead of
  derailing. The queue is handed back at the next tick.
- deck_pause — stepping away? Leave a note; whoever starts the task
  next sees it once.
- deck_adhoc — urgent unplanned work gets its own flow (impromptu,
  debugging, or quickwin), closed with deck_done.
- deck_also_did — record drive-by work in the audit trail without
  touching the checklist.

## Recovery

deck_status shows the session and per-area progress at any time.
deck_force_idle resets a wedged session; prefer pause or done.

Exactly one flow is active per project at a time. Finish or pause the
current one before starting another.`
}
