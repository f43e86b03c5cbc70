// Package config resolves the project root and loads optional per-project
// settings from deck/deck.yaml. Settings are tuning knobs only — every
// field has a default and the file is not required to exist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DeckDir is the subdirectory holding all specdeck state.
	DeckDir = "deck"
	// DocumentFile is the default checklist document filename.
	DocumentFile = "tasks.md"
	// SettingsFile is the optional per-project settings filename.
	SettingsFile = "deck.yaml"
)

// Settings are the per-project knobs read from deck/deck.yaml.
type Settings struct {
	// Document overrides the checklist filename inside deck/.
	Document string `yaml:"document"`
	// MinWorkWindowSeconds is the hard debounce threshold.
	MinWorkWindowSeconds int `yaml:"min_work_window_seconds"`
	// RapidTickWindowSeconds is the soft rapid-tick advisory threshold.
	RapidTickWindowSeconds int `yaml:"rapid_tick_window_seconds"`
	// Ledger toggles the sqlite audit trail.
	Ledger *bool `yaml:"ledger"`
}

// Defaults returns the settings used when deck.yaml is absent.
func Defaults() Settings {
	on := true
	return Settings{
		Document:               DocumentFile,
		MinWorkWindowSeconds:   10,
		RapidTickWindowSeconds: 5,
		Ledger:                 &on,
	}
}

// MinWorkWindow returns the debounce threshold as a duration.
func (s Settings) MinWorkWindow() time.Duration {
	return time.Duration(s.MinWorkWindowSeconds) * time.Second
}

// RapidTickWindow returns the advisory threshold as a duration.
func (s Settings) RapidTickWindow() time.Duration {
	return time.Duration(s.RapidTickWindowSeconds) * time.Second
}

// LedgerEnabled reports whether the audit trail should be wired.
func (s Settings) LedgerEnabled() bool {
	return s.Ledger == nil || *s.Ledger
}

// DocumentPath returns the absolute path to a project's checklist.
func DocumentPath(projectRoot string, s Settings) string {
	doc := s.Document
	if doc == "" {
		doc = DocumentFile
	}
	return filepath.Join(projectRoot, DeckDir, doc)
}

// Load reads deck/deck.yaml for a project, applying defaults for absent
// file and absent fields.
func Load(projectRoot string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(filepath.Join(projectRoot, DeckDir, SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	var in Settings
	if err := yaml.Unmarshal(data, &in); err != nil {
		return s, fmt.Errorf("parsing %s: %w", SettingsFile, err)
	}

	if in.Document != "" {
		s.Document = in.Document
	}
	if in.MinWorkWindowSeconds > 0 {
		s.MinWorkWindowSeconds = in.MinWorkWindowSeconds
	}
	if in.RapidTickWindowSeconds > 0 {
		s.RapidTickWindowSeconds = in.RapidTickWindowSeconds
	}
	if in.Ledger != nil {
		s.Ledger = in.Ledger
	}
	return s, nil
}

// FindRoot walks up from the current working directory looking for an
// existing deck/ directory. If none is found, returns cwd — the caller
// decides what to do with an uninitialized project.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, DeckDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
