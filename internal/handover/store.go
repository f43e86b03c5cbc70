// Package handover persists pause notes across process restarts. One
// live note per task id; a later pause on the same task overwrites the
// earlier note, and the note is deleted once consumed by a start.
package handover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// NotesFile is the filename for the per-project note map, under deck/.
const NotesFile = "handover.json"

// Note is a durable handover note keyed by task id.
type Note struct {
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Note      string    `json:"note"`
	PausedBy  string    `json:"paused_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for handover notes.
// Abstracted for testability.
type Store interface {
	Get(projectRoot, taskID string) (*Note, error)
	Set(projectRoot string, note Note) error
	Clear(projectRoot, taskID string) error
	List(projectRoot string) ([]Note, error)
}

// FileStore implements Store with a single JSON file per project. Every
// mutation serializes the full map — no partial or append writes — so a
// mutation for one task can never corrupt notes for unrelated tasks.
type FileStore struct{}

// NewFileStore creates a filesystem-backed note store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// NotesPath returns the absolute path to a project's handover file.
func NotesPath(projectRoot string) string {
	return filepath.Join(projectRoot, "deck", NotesFile)
}

// Get returns the live note for a task, or nil when none exists.
func (fs *FileStore) Get(projectRoot, taskID string) (*Note, error) {
	notes, err := fs.load(projectRoot)
	if err != nil {
		return nil, err
	}
	if n, ok := notes[taskID]; ok {
		return &n, nil
	}
	return nil, nil
}

// Set writes or overwrites the note for a task.
func (fs *FileStore) Set(projectRoot string, note Note) error {
	notes, err := fs.load(projectRoot)
	if err != nil {
		return err
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = timeNow().UTC()
	}
	notes[note.TaskID] = note
	return fs.save(projectRoot, notes)
}

// Clear deletes the note for a task. Clearing a task without a note is
// not an error.
func (fs *FileStore) Clear(projectRoot, taskID string) error {
	notes, err := fs.load(projectRoot)
	if err != nil {
		return err
	}
	if _, ok := notes[taskID]; !ok {
		return nil
	}
	delete(notes, taskID)
	return fs.save(projectRoot, notes)
}

// List returns every live note, in no particular order.
func (fs *FileStore) List(projectRoot string) ([]Note, error) {
	notes, err := fs.load(projectRoot)
	if err != nil {
		return nil, err
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, n)
	}
	return out, nil
}

func (fs *FileStore) load(projectRoot string) (map[string]Note, error) {
	data, err := os.ReadFile(NotesPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Note{}, nil
		}
		return nil, fmt.Errorf("reading handover notes: %w", err)
	}

	var notes map[string]Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", NotesFile, err)
	}
	if notes == nil {
		notes = map[string]Note{}
	}
	return notes, nil
}

func (fs *FileStore) save(projectRoot string, notes map[string]Note) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling handover notes: %w", err)
	}

	path := NotesPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating deck directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
