package engine

import (
	"fmt"

	"github.com/specdeck/specdeck/internal/ledger"
	"github.com/specdeck/specdeck/internal/session"
)

// AdhocKinds are the accepted kinds for off-plan flows.
var AdhocKinds = map[string]bool{
	"impromptu": true,
	"debugging": true,
	"quickwin":  true,
}

// AdhocResult is the payload of an opened ad-hoc flow.
type AdhocResult struct {
	Kind        string
	Status      session.Status
	Description string
}

// Adhoc opens an off-plan flow with no backing spec item: idle →
// impromptu or debugging. The current task stays unset; only done
// closes the flow. The deviation is recorded in the audit trail.
func (e *Engine) Adhoc(projectRoot, kind, description string) (*AdhocResult, error) {
	if !AdhocKinds[kind] {
		return nil, invalidTransition(
			fmt.Sprintf("unknown ad-hoc kind %q", kind),
			"use one of: impromptu, debugging, quickwin",
		)
	}

	sess := e.sessions.Get(projectRoot)
	if sess.Status != session.StatusIdle {
		return nil, invalidTransition(
			"a session is already active (status: "+string(sess.Status)+")",
			"pause or done the current flow before going off-plan",
		)
	}

	switch kind {
	case "debugging":
		sess.Status = session.StatusDebugging
		sess.Mode = session.ModeDebugging
	case "quickwin":
		sess.Status = session.StatusImpromptu
		sess.Mode = session.ModeQuickwin
	default:
		sess.Status = session.StatusImpromptu
		sess.Mode = session.ModeImpromptu
	}
	sess.CurrentTask = nil
	sess.CurrentItem = nil
	sess.Iteration = 1
	sess.AdhocKind = kind

	e.audit(projectRoot, ledger.KindDeviation, "", description, "kind: "+kind)
	e.log.Info("ad-hoc flow opened", "project", projectRoot, "kind", kind)

	return &AdhocResult{Kind: kind, Status: sess.Status, Description: description}, nil
}

// AlsoDid records off-plan work performed during an active task. The
// record is append-only audit payload; the document is untouched.
func (e *Engine) AlsoDid(projectRoot, description string) error {
	sess := e.sessions.Get(projectRoot)
	if !sess.Status.Active() {
		return noActiveTask("also-did")
	}

	taskID := ""
	if sess.CurrentTask != nil {
		taskID = sess.CurrentTask.Key()
	}
	e.audit(projectRoot, ledger.KindAlsoDid, taskID, description, "")
	return nil
}
