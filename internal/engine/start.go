package engine

import (
	"github.com/specdeck/specdeck/internal/handover"
	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/session"
	"github.com/specdeck/specdeck/internal/spec"
)

// StartResult is the payload of a successful start transition.
type StartResult struct {
	Task      spec.ItemRef
	Title     string
	Iteration int
	// Reopened flags a start on a task that was already done. Surfaced
	// to the caller, never auto-corrected.
	Reopened bool
	// Handover is the consumed pause note for this task, if one existed.
	// It is deleted from the store as part of the start.
	Handover *handover.Note
}

// Start begins a session on a task: idle → building. An empty query
// falls back to the session's anchor when one is set. The resolved
// item's top-level task becomes the current task.
func (e *Engine) Start(projectRoot, query string) (*StartResult, error) {
	sess := e.sessions.Get(projectRoot)
	if sess.Status != session.StatusIdle {
		return nil, invalidTransition(
			"a session is already active (status: "+string(sess.Status)+")",
			"pause or done the current flow before starting another task",
		)
	}

	doc, _, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	var task *spec.Item
	if query == "" {
		if sess.Anchor == nil {
			return nil, notFound("(empty query)")
		}
		task = doc.Lookup(*sess.Anchor)
		if task == nil {
			return nil, notFound(sess.Anchor.DisplayID())
		}
	} else {
		it, ok := doc.Resolve(query, nil)
		if !ok {
			return nil, notFound(query)
		}
		task = it
	}
	task = task.Root()
	ref := doc.Ref(task)

	reopened := task.Status == spec.StatusDone
	if reopened {
		e.audit(projectRoot, ledger.KindReopened, ref.Key(), task.Title, "")
	}

	// Consume the handover note before touching the session, so a store
	// failure leaves the prior state intact. Consuming deletes the note —
	// it is surfaced exactly once.
	note, err := e.handover.Get(projectRoot, ref.Key())
	if err != nil {
		return nil, err
	}
	if note != nil {
		if err := e.handover.Clear(projectRoot, ref.Key()); err != nil {
			return nil, err
		}
	}

	sess.Status = session.StatusBuilding
	sess.Mode = session.ModeNormal
	sess.CurrentTask = &ref
	sess.CurrentItem = nil
	sess.Iteration = 1
	sess.AdhocKind = ""
	if sess.Anchor != nil && sess.Anchor.Key() == ref.Key() {
		sess.Anchor = nil
	}

	e.log.Info("session started", "project", projectRoot, "task", ref.DisplayID(), "reopened", reopened)

	return &StartResult{
		Task:      ref,
		Title:     task.Title,
		Iteration: sess.Iteration,
		Reopened:  reopened,
		Handover:  note,
	}, nil
}
