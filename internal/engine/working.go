package engine

import (
	"time"

	"github.com/specdeck/specdeck/internal/session"
	"github.com/specdeck/specdeck/internal/spec"
)

// WorkingResult is the payload of a successful working transition.
type WorkingResult struct {
	Item      spec.ItemRef
	Title     string
	StartedAt time.Time
}

// Working marks an item as the one being actively worked: it becomes
// the session's current item, its start timestamp anchors the debounce
// guard, and the document glyph moves to in-progress. The session mode
// is untouched.
func (e *Engine) Working(projectRoot, query string) (*WorkingResult, error) {
	sess := e.sessions.Get(projectRoot)
	if !sess.Status.Active() {
		return nil, noActiveTask("working")
	}
	// A current item without a current task is the one unrecoverable
	// store shape; never produce it from an ad-hoc flow.
	if sess.CurrentTask == nil {
		return nil, invalidTransition(
			"ad-hoc flows have no backing items to work on",
			"close the ad-hoc flow with done, then start a task",
		)
	}

	doc, settings, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	it, ok := doc.Resolve(query, currentTaskItem(doc, sess))
	if !ok {
		return nil, notFound(query)
	}
	ref := doc.Ref(it)

	doc.SetStatus(it, spec.StatusInProgress)
	if err := e.writeDocument(projectRoot, settings, doc); err != nil {
		return nil, err
	}

	now := timeNow()
	sess.CurrentItem = &session.ActiveItem{Ref: ref, StartedAt: now}

	e.log.Info("working on item", "project", projectRoot, "item", ref.DisplayID())

	return &WorkingResult{Item: ref, Title: it.Title, StartedAt: now}, nil
}
