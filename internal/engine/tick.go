package engine

import (
	"fmt"
	"math"

	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/queue"
	"github.com/specdeck/specdeck/internal/spec"
)

// TickResult is the payload of a successful completion.
type TickResult struct {
	Item            spec.ItemRef
	Title           string
	DurationSeconds int // elapsed work time, when the item had a working start
	// SessionCleared is set when the ticked item was the top-level task,
	// returning the session to idle.
	SessionCleared bool
	// Queue holds the deferred requests drained atomically by this tick.
	// They are informational payload, never inserted into the document.
	Queue []queue.Item
	// RapidTick is the soft advisory: the previous successful tick on
	// this project happened moments ago. Never blocks the completion.
	RapidTick bool
	Warning   string
}

// Tick completes an item. The target is the query when given, otherwise
// the session's current task. Validation order is fixed, each check a
// hard failure: already complete, incomplete descendants, debounce.
// Only after all checks pass is anything mutated.
func (e *Engine) Tick(projectRoot, query string) (*TickResult, error) {
	sess := e.sessions.Get(projectRoot)

	doc, settings, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	var target *spec.Item
	if query != "" {
		it, ok := doc.Resolve(query, currentTaskItem(doc, sess))
		if !ok {
			return nil, notFound(query)
		}
		target = it
	} else {
		if sess.CurrentTask == nil {
			return nil, noActiveTask("tick without a query")
		}
		target = doc.Lookup(*sess.CurrentTask)
		if target == nil {
			return nil, notFound(sess.CurrentTask.DisplayID())
		}
	}
	ref := doc.Ref(target)
	now := timeNow()

	// (a) Target not already done.
	if target.Status == spec.StatusDone {
		return nil, alreadyComplete(ref.DisplayID(), target.Title)
	}

	// (b) No open or in-progress descendant remains. The offending
	// titles are reported so the caller can address them or choose to
	// force-complete at the task level.
	if open := target.Incomplete(); len(open) > 0 {
		return nil, incompleteChildren(target.Title, open)
	}

	// (c) Debounce: completing the item being worked inside the minimum
	// work window is rejected outright. This blocks a working call
	// chained straight into a tick with no work between them.
	workedThis := sess.CurrentItem != nil && sess.CurrentItem.Ref.Key() == ref.Key()
	if workedThis {
		elapsed := now.Sub(sess.CurrentItem.StartedAt)
		if elapsed < settings.MinWorkWindow() {
			remaining := settings.MinWorkWindow() - elapsed
			return nil, debounced(int(math.Ceil(remaining.Seconds())))
		}
	}

	// Validation complete — write the completion marker first.
	doc.SetStatus(target, spec.StatusDone)
	if err := e.writeDocument(projectRoot, settings, doc); err != nil {
		return nil, err
	}

	result := &TickResult{Item: ref, Title: target.Title}

	if workedThis {
		elapsed := now.Sub(sess.CurrentItem.StartedAt)
		result.DurationSeconds = int(elapsed.Seconds())
		e.audit(projectRoot, ledger.KindDuration, ref.Key(), target.Title,
			fmt.Sprintf("%ds", result.DurationSeconds))
	}
	sess.CurrentItem = nil

	// Rapid-tick advisory: session-wide baseline, distinct from the
	// per-item debounce above. A warning, never a block.
	if !sess.LastTickAt.IsZero() && now.Sub(sess.LastTickAt) < settings.RapidTickWindow() {
		result.RapidTick = true
		result.Warning = "rapid tick: the previous completion was moments ago — avoid batch-completing items without doing the work"
	}
	sess.LastTickAt = now

	// Drain the queue atomically; items come back as a batch for the
	// caller to track externally.
	result.Queue = e.queue.DrainAll(projectRoot)

	// A parentless target is the top-level task: completing it ends the
	// session flow on it.
	if target.Parent == nil && sess.CurrentTask != nil && sess.CurrentTask.Key() == ref.Key() {
		sess.Reset()
		result.SessionCleared = true
	}

	e.log.Info("item completed", "project", projectRoot, "item", ref.DisplayID(),
		"cleared", result.SessionCleared, "rapid", result.RapidTick)

	return result, nil
}
