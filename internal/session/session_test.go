package session

import (
	"testing"

	"github.com/specdeck/specdeck/internal/spec"
)

func TestStore_CreatesIdleSession(t *testing.T) {
	store := NewStore()
	sess := store.Get("/tmp/project")
	if sess.Status != StatusIdle {
		t.Errorf("status = %s, want idle", sess.Status)
	}
	if sess.CurrentTask != nil || sess.CurrentItem != nil {
		t.Error("new session should have no task or item")
	}
}

func TestStore_SameRootSharesSession(t *testing.T) {
	store := NewStore()
	a := store.Get("/tmp/project")
	b := store.Get("/tmp/project/")
	if a != b {
		t.Error("equivalent roots should share one session")
	}
}

func TestStore_DistinctRootsIsolated(t *testing.T) {
	store := NewStore()
	a := store.Get("/tmp/one")
	b := store.Get("/tmp/two")
	a.Status = StatusBuilding
	if b.Status != StatusIdle {
		t.Error("session state leaked between projects")
	}
}

func TestReset_KeepsAnchorAndTickBaseline(t *testing.T) {
	sess := &Session{
		Status:      StatusBuilding,
		Mode:        ModeDebugging,
		CurrentTask: &spec.ItemRef{Area: "SD", Path: []int{1}},
		Iteration:   3,
		Anchor:      &spec.ItemRef{Area: "SD", Path: []int{2}},
	}
	sess.Reset()

	if sess.Status != StatusIdle || sess.Mode != ModeNormal {
		t.Errorf("reset left status=%s mode=%s", sess.Status, sess.Mode)
	}
	if sess.CurrentTask != nil || sess.CurrentItem != nil {
		t.Error("reset should clear task and item")
	}
	if sess.Anchor == nil {
		t.Error("reset must not clear the anchor")
	}
}

func TestStatus_Active(t *testing.T) {
	actives := []Status{StatusBuilding, StatusDebugging, StatusImpromptu, StatusRework, StatusReadyForTesting}
	for _, s := range actives {
		if !s.Active() {
			t.Errorf("%s should be active", s)
		}
	}
	if StatusIdle.Active() || StatusComplete.Active() {
		t.Error("idle and complete are not active states")
	}
}
