package ledger

import (
	"testing"
	"time"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestAppend_SetsIDAndTimestamp(t *testing.T) {
	l := newTestLedger(t)
	e, err := l.Append("/tmp/p", KindAlsoDid, "SD.1", "fixed typo in footer", "")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Errorf("entry = %+v, want id and timestamp", e)
	}
}

func TestList_NewestFirst(t *testing.T) {
	l := newTestLedger(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	timeNow = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	t.Cleanup(func() { timeNow = time.Now })

	_, _ = l.Append("/tmp/p", KindDeviation, "", "first", "")
	_, _ = l.Append("/tmp/p", KindDeviation, "", "second", "")

	got, err := l.List("/tmp/p", "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "second" {
		t.Fatalf("list = %+v, want newest first", got)
	}
}

func TestList_FilterByKind(t *testing.T) {
	l := newTestLedger(t)
	_, _ = l.Append("/tmp/p", KindAlsoDid, "SD.1", "extra work", "")
	_, _ = l.Append("/tmp/p", KindForcedDone, "SD.1", "forced", "open: Hero banner")

	got, err := l.List("/tmp/p", KindForcedDone, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Kind != KindForcedDone {
		t.Fatalf("list = %+v", got)
	}
	if got[0].Detail != "open: Hero banner" {
		t.Errorf("detail = %q", got[0].Detail)
	}
}

func TestList_ProjectScoped(t *testing.T) {
	l := newTestLedger(t)
	_, _ = l.Append("/tmp/a", KindReopened, "SD.1", "reopen a", "")
	_, _ = l.Append("/tmp/b", KindReopened, "SD.1", "reopen b", "")

	got, _ := l.List("/tmp/a", "", 0)
	if len(got) != 1 || got[0].Title != "reopen a" {
		t.Fatalf("project scoping broken: %+v", got)
	}
}

func TestList_Limit(t *testing.T) {
	l := newTestLedger(t)
	for i := 0; i < 5; i++ {
		_, _ = l.Append("/tmp/p", KindDuration, "SD.1", "tick", "")
	}
	got, _ := l.List("/tmp/p", "", 2)
	if len(got) != 2 {
		t.Errorf("limit ignored: %d entries", len(got))
	}
}
