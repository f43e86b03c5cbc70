// Package queue accumulates off-plan requests submitted while a task is
// active. Items are volatile and per-project; the whole queue is drained
// atomically as a side effect of a successful tick, never partially.
package queue

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Item is one deferred request.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue holds per-project item lists behind one mutex.
type Queue struct {
	mu    sync.Mutex
	items map[string][]Item
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{items: make(map[string][]Item)}
}

// Enqueue appends a request for the project. Available at any time,
// active task or not.
func (q *Queue) Enqueue(projectRoot, title string) Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	it := Item{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: timeNow(),
	}
	key := filepath.Clean(projectRoot)
	q.items[key] = append(q.items[key], it)
	return it
}

// Len reports the number of queued items for the project.
func (q *Queue) Len(projectRoot string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items[filepath.Clean(projectRoot)])
}

// Peek returns a copy of the queued items without clearing them.
func (q *Queue) Peek(projectRoot string) []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	src := q.items[filepath.Clean(projectRoot)]
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// DrainAll returns every queued item for the project and clears the
// queue in the same critical section. Read-and-clear is atomic: a drain
// either sees all items or none of them.
func (q *Queue) DrainAll(projectRoot string) []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := filepath.Clean(projectRoot)
	items := q.items[key]
	delete(q.items, key)
	return items
}
