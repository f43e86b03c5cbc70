// Package session holds the per-project session record: what the
// project is currently doing, which task and item are active, and the
// guard clocks used for debounce and rapid-tick checks.
//
// Sessions are volatile — they live for the owning process only. The
// store is keyed by canonical project root so state never leaks between
// projects.
package session

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/specdeck/specdeck/internal/spec"
)

// --- Session status enum ---

// Status is the lifecycle state of a project's session.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusBuilding        Status = "building"
	StatusDebugging       Status = "debugging"
	StatusImpromptu       Status = "impromptu"
	StatusReadyForTesting Status = "ready_for_testing"
	StatusRework          Status = "rework"
	StatusComplete        Status = "complete"
)

// Active reports whether the status allows working/tick/pause/done.
func (s Status) Active() bool {
	switch s {
	case StatusBuilding, StatusDebugging, StatusImpromptu, StatusRework, StatusReadyForTesting:
		return true
	}
	return false
}

// --- Session mode enum ---

// Mode qualifies how the session is being driven.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeDebugging Mode = "debugging"
	ModeImpromptu Mode = "impromptu"
	ModeQuickwin  Mode = "quickwin"
)

// --- Core data structures ---

// ActiveItem is the item currently being worked, with the timestamp the
// work began. StartedAt is the baseline for the debounce guard.
type ActiveItem struct {
	Ref       spec.ItemRef
	StartedAt time.Time
}

// Session is the singleton mutable record for one project.
//
// Invariants: CurrentItem is only meaningful while CurrentTask is set;
// idle implies both are unset. Anchor may be set at any time — it is a
// pre-selected next task, not a running session.
type Session struct {
	Status      Status
	Mode        Mode
	CurrentTask *spec.ItemRef
	CurrentItem *ActiveItem
	Iteration   int
	Anchor      *spec.ItemRef
	AdhocKind   string // set while in an ad-hoc flow with no backing item

	// LastTickAt is the rapid-tick baseline: time of the last successful
	// tick anywhere in this project's session.
	LastTickAt time.Time
}

// Reset returns the session to idle, clearing everything except the
// anchor and the rapid-tick baseline.
func (s *Session) Reset() {
	s.Status = StatusIdle
	s.Mode = ModeNormal
	s.CurrentTask = nil
	s.CurrentItem = nil
	s.Iteration = 0
	s.AdhocKind = ""
}

// --- Store ---

// Store owns the session records, one per project root. A single mutex
// serializes transitions within this process; each logical transition
// runs to completion before the next is handled.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for a project root, creating an idle one on
// first sight. The key is the cleaned absolute-ish path so that
// equivalent spellings of the same root share a session.
func (s *Store) Get(projectRoot string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := filepath.Clean(projectRoot)
	sess, ok := s.sessions[key]
	if !ok {
		sess = &Session{Status: StatusIdle, Mode: ModeNormal}
		s.sessions[key] = sess
	}
	return sess
}
