package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileAbsent(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Document != "tasks.md" {
		t.Errorf("document = %q", s.Document)
	}
	if s.MinWorkWindow() != 10*time.Second {
		t.Errorf("min work window = %v, want 10s", s.MinWorkWindow())
	}
	if s.RapidTickWindow() != 5*time.Second {
		t.Errorf("rapid tick window = %v, want 5s", s.RapidTickWindow())
	}
	if !s.LedgerEnabled() {
		t.Error("ledger should default on")
	}
}

func TestLoad_PartialOverrides(t *testing.T) {
	root := t.TempDir()
	_ = os.MkdirAll(filepath.Join(root, DeckDir), 0o755)
	yaml := "document: plan.md\nmin_work_window_seconds: 30\nledger: false\n"
	_ = os.WriteFile(filepath.Join(root, DeckDir, SettingsFile), []byte(yaml), 0o644)

	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Document != "plan.md" {
		t.Errorf("document = %q", s.Document)
	}
	if s.MinWorkWindow() != 30*time.Second {
		t.Errorf("min work window = %v", s.MinWorkWindow())
	}
	if s.RapidTickWindow() != 5*time.Second {
		t.Errorf("rapid tick window should keep default, got %v", s.RapidTickWindow())
	}
	if s.LedgerEnabled() {
		t.Error("ledger should be disabled")
	}
}

func TestLoad_MalformedYAMLIsError(t *testing.T) {
	root := t.TempDir()
	_ = os.MkdirAll(filepath.Join(root, DeckDir), 0o755)
	_ = os.WriteFile(filepath.Join(root, DeckDir, SettingsFile), []byte("{{nope"), 0o644)

	if _, err := Load(root); err == nil {
		t.Fatal("malformed settings should surface an error")
	}
}

func TestDocumentPath(t *testing.T) {
	got := DocumentPath("/tmp/p", Defaults())
	want := filepath.Join("/tmp/p", "deck", "tasks.md")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDocumentPath_Override(t *testing.T) {
	s := Defaults()
	s.Document = "plan.md"
	if got := DocumentPath("/tmp/p", s); filepath.Base(got) != "plan.md" {
		t.Errorf("path = %q", got)
	}
}

func TestFindRoot_WalksUpToDeckDir(t *testing.T) {
	root := t.TempDir()
	_ = os.MkdirAll(filepath.Join(root, DeckDir), 0o755)
	nested := filepath.Join(root, "src", "web")
	_ = os.MkdirAll(nested, 0o755)

	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot()
	if err != nil {
		t.Fatalf("FindRoot failed: %v", err)
	}
	// Temp dirs may sit behind symlinks on some platforms.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("root = %q, want %q", got, root)
	}
}

func TestFindRoot_FallsBackToCwd(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot()
	if err != nil {
		t.Fatalf("FindRoot failed: %v", err)
	}
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("root = %q, want cwd %q", got, dir)
	}
}
