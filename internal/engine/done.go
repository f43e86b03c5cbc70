package engine

import (
	"strings"

	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/spec"
)

// DoneResult is the payload of a completed flow.
type DoneResult struct {
	Task  *spec.ItemRef // nil for ad-hoc flows
	Title string
	// Forced is set when incomplete descendants were accepted; their
	// titles are in ForcedOpen and the forcing is recorded in the
	// audit trail.
	Forced     bool
	ForcedOpen []string
	// NextTask recommends the task owning the next open item in
	// document order, when a deterministic one exists.
	NextTask      string
	NextTaskTitle string
}

// Done closes the active flow back to idle. Without force it fails
// while any descendant of the current task is incomplete; with force
// the open descendants are accepted and the completion is recorded as
// forced.
func (e *Engine) Done(projectRoot string, force bool) (*DoneResult, error) {
	sess := e.sessions.Get(projectRoot)
	if !sess.Status.Active() {
		return nil, noActiveTask("done")
	}

	// Ad-hoc flows have no backing task; done simply closes them.
	if sess.CurrentTask == nil {
		kind := sess.AdhocKind
		sess.Reset()
		e.log.Info("ad-hoc flow closed", "project", projectRoot, "kind", kind)
		return &DoneResult{}, nil
	}

	doc, settings, err := e.loadDocument(projectRoot)
	if err != nil {
		return nil, err
	}

	task := doc.Lookup(*sess.CurrentTask)
	if task == nil {
		return nil, notFound(sess.CurrentTask.DisplayID())
	}
	ref := doc.Ref(task)

	open := task.Incomplete()
	if len(open) > 0 && !force {
		return nil, incompleteChildren(task.Title, open)
	}

	doc.SetStatus(task, spec.StatusDone)
	if err := e.writeDocument(projectRoot, settings, doc); err != nil {
		return nil, err
	}

	result := &DoneResult{Task: &ref, Title: task.Title}
	if len(open) > 0 {
		result.Forced = true
		result.ForcedOpen = open
		e.audit(projectRoot, ledger.KindForcedDone, ref.Key(), task.Title,
			"open: "+strings.Join(open, ", "))
	}

	if next := doc.NextOpen(task); next != nil {
		nextTask := next.Root()
		result.NextTask = doc.Ref(nextTask).DisplayID()
		result.NextTaskTitle = nextTask.Title
	}

	sess.Reset()

	e.log.Info("task done", "project", projectRoot, "task", ref.DisplayID(), "forced", result.Forced)
	return result, nil
}
