package engine

import (
	"github.com/specdeck/specdeck/internal/session"
	"github.com/specdeck/specdeck/internal/spec"
)

// AreaSummary is the per-area completion rollup in a status report.
type AreaSummary struct {
	Code  string
	Name  string
	Total int
	Done  int
}

// StatusResult is the read-only view of a project's session + document.
type StatusResult struct {
	Status      session.Status
	Mode        session.Mode
	CurrentTask *spec.ItemRef
	CurrentItem *spec.ItemRef
	Iteration   int
	Anchor      *spec.ItemRef
	Areas       []AreaSummary
	QueueLen    int
}

// Status reports the session and a completion rollup of the document.
// It mutates nothing.
func (e *Engine) Status(projectRoot string) (*StatusResult, error) {
	sess := e.sessions.Get(projectRoot)

	doc, _, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Status:      sess.Status,
		Mode:        sess.Mode,
		CurrentTask: sess.CurrentTask,
		Iteration:   sess.Iteration,
		Anchor:      sess.Anchor,
		QueueLen:    len(e.queue.Peek(projectRoot)),
	}
	if sess.CurrentItem != nil {
		ref := sess.CurrentItem.Ref
		result.CurrentItem = &ref
	}

	for _, area := range doc.Areas {
		s := AreaSummary{Code: area.Code, Name: area.Name}
		var count func(items []*spec.Item)
		count = func(items []*spec.Item) {
			for _, it := range items {
				s.Total++
				if it.Status.Complete() {
					s.Done++
				}
				count(it.Children)
			}
		}
		count(area.Items)
		result.Areas = append(result.Areas, s)
	}

	return result, nil
}

// SetAnchor pre-selects the task to start next. Works while idle or
// active; an empty query clears the anchor.
func (e *Engine) SetAnchor(projectRoot, query string) (*spec.ItemRef, error) {
	sess := e.sessions.Get(projectRoot)

	if query == "" {
		sess.Anchor = nil
		return nil, nil
	}

	doc, _, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	it, ok := doc.Resolve(query, nil)
	if !ok {
		return nil, notFound(query)
	}
	ref := doc.Ref(it.Root())
	sess.Anchor = &ref
	return &ref, nil
}

// ForceIdle is the operator recovery hatch: it resets the session
// unconditionally, bypassing all validation. Intended only for a store
// corrupted by external force (an item without a task).
func (e *Engine) ForceIdle(projectRoot string) session.Status {
	sess := e.sessions.Get(projectRoot)
	prior := sess.Status
	sess.Reset()
	e.log.Warn("session force-reset to idle", "project", projectRoot, "prior", string(prior))
	return prior
}
