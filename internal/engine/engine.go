// Package engine is the session state machine: it reads the checklist
// document, resolves targets, mutates the per-project session, applies
// the debounce and rapid-tick guards, and writes completion markers
// back to the document.
//
// Every operation validates fully before mutating anything. Domain
// failures come back as *Fault values; only genuinely unexpected
// conditions (unreadable document, broken stores) surface as plain
// errors.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/specdeck/specdeck/internal/config"
	"github.com/specdeck/specdeck/internal/handover"
	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/logging"
	"github.com/specdeck/specdeck/internal/queue"
	"github.com/specdeck/specdeck/internal/session"
	"github.com/specdeck/specdeck/internal/spec"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Engine composes the stores and drives all transitions. One instance
// serves every project; per-project state lives in the session store.
type Engine struct {
	sessions *session.Store
	queue    *queue.Queue
	handover handover.Store
	ledger   *ledger.Ledger // optional; nil disables the audit trail
	log      *slog.Logger
}

// New creates an engine over the given stores.
func New(sessions *session.Store, q *queue.Queue, notes handover.Store) *Engine {
	return &Engine{
		sessions: sessions,
		queue:    q,
		handover: notes,
		log:      logging.WithComponent("engine"),
	}
}

// SetLedger injects the optional audit ledger. The engine works without
// one — audit appends are skipped, never failed.
func (e *Engine) SetLedger(l *ledger.Ledger) { e.ledger = l }

// audit appends to the ledger when one is wired. Audit failures are
// logged and swallowed: the trail is advisory, not load-bearing.
func (e *Engine) audit(project string, kind ledger.Kind, taskID, title, detail string) {
	if e.ledger == nil {
		return
	}
	if settings, err := config.Load(project); err == nil && !settings.LedgerEnabled() {
		return
	}
	if _, err := e.ledger.Append(project, kind, taskID, title, detail); err != nil {
		e.log.Warn("ledger append failed", "kind", string(kind), "error", err)
	}
}

// loadDocument re-parses the project's checklist. The document is the
// source of truth and is never cached across calls.
func (e *Engine) loadDocument(projectRoot string) (*spec.Document, config.Settings, error) {
	settings, err := config.Load(projectRoot)
	if err != nil {
		return nil, settings, err
	}

	path := config.DocumentPath(projectRoot, settings)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, settings, fmt.Errorf("no checklist document at %s — create it to initialize the project", path)
		}
		return nil, settings, fmt.Errorf("reading document: %w", err)
	}
	return spec.Parse(string(data)), settings, nil
}

// writeDocument serializes the document back to its backing file.
func (e *Engine) writeDocument(projectRoot string, settings config.Settings, doc *spec.Document) error {
	path := config.DocumentPath(projectRoot, settings)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating deck directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc.Serialize()), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// currentTaskItem resolves the session's current task in a freshly
// parsed document, or nil when unset or no longer present.
func currentTaskItem(doc *spec.Document, sess *session.Session) *spec.Item {
	if sess.CurrentTask == nil {
		return nil
	}
	return doc.Lookup(*sess.CurrentTask)
}

// --- Queue & handover pass-through surface ---

// Enqueue records a deferred request. Available at any time; the queue
// is drained only as a side effect of a successful tick.
func (e *Engine) Enqueue(projectRoot, title string) queue.Item {
	return e.queue.Enqueue(projectRoot, title)
}

// QueuePeek returns the pending requests without draining them.
func (e *Engine) QueuePeek(projectRoot string) []queue.Item {
	return e.queue.Peek(projectRoot)
}

// HandoverGet returns the live note for a task id, nil when none.
func (e *Engine) HandoverGet(projectRoot, taskID string) (*handover.Note, error) {
	return e.handover.Get(projectRoot, taskID)
}

// HandoverSet writes or overwrites a note for a task id.
func (e *Engine) HandoverSet(projectRoot string, note handover.Note) error {
	return e.handover.Set(projectRoot, note)
}

// HandoverClear deletes the note for a task id.
func (e *Engine) HandoverClear(projectRoot, taskID string) error {
	return e.handover.Clear(projectRoot, taskID)
}
