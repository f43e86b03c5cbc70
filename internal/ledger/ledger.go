// Package ledger is the append-only audit trail: deviations, also-did
// notes, forced completions, reopened tasks, and item durations. Entries
// are write-once, read-many — nothing here is ever mutated after insert.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// --- Entry kinds ---

// Kind categorizes what an audit entry records.
type Kind string

const (
	KindDeviation   Kind = "deviation"    // ad-hoc flow started off-plan
	KindAlsoDid     Kind = "also_did"     // off-plan work done during an active task
	KindForcedDone  Kind = "forced_done"  // done(force) with incomplete descendants
	KindReopened    Kind = "reopened"     // start on a task that was already done
	KindDuration    Kind = "duration"     // elapsed work time recorded at tick
	KindScopeChange Kind = "scope_change" // caller-declared scope change
)

// Entry is one audit record.
type Entry struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Kind      Kind      `json:"kind"`
	TaskID    string    `json:"task_id,omitempty"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Config ---

// Config holds ledger configuration.
type Config struct {
	DataDir string
}

// DefaultConfig stores the ledger database under the user's home so the
// trail spans projects; entries are still scoped by project path.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".specdeck")}
}

// --- Store ---

// Ledger is the sqlite-backed audit store.
type Ledger struct {
	db *sql.DB
}

// New opens (and migrates) the ledger database.
func New(cfg Config) (*Ledger, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("ledger: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "ledger.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("ledger: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("ledger: pragma %q: %w", p, err)
		}
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		return nil, fmt.Errorf("ledger: migration: %w", err)
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			project    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			task_id    TEXT NOT NULL DEFAULT '',
			title      TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_project ON entries(project, created_at);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Append inserts a new entry and returns it with id and timestamp set.
func (l *Ledger) Append(project string, kind Kind, taskID, title, detail string) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Project:   filepath.Clean(project),
		Kind:      kind,
		TaskID:    taskID,
		Title:     title,
		Detail:    detail,
		CreatedAt: timeNow().UTC(),
	}

	_, err := l.db.Exec(
		`INSERT INTO entries (id, project, kind, task_id, title, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Project, string(e.Kind), e.TaskID, e.Title, e.Detail,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("ledger: append: %w", err)
	}
	return e, nil
}

// List returns a project's entries, newest first, optionally filtered by
// kind. limit <= 0 means no limit.
func (l *Ledger) List(project string, kind Kind, limit int) ([]Entry, error) {
	q := `SELECT id, kind, task_id, title, detail, created_at
	      FROM entries WHERE project = ?`
	args := []any{filepath.Clean(project)}
	if kind != "" {
		q += " AND kind = ?"
		args = append(args, string(kind))
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var kindStr, created string
		if err := rows.Scan(&e.ID, &kindStr, &e.TaskID, &e.Title, &e.Detail, &created); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		e.Project = filepath.Clean(project)
		e.Kind = Kind(kindStr)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
