package engine

import (
	"github.com/specdeck/specdeck/internal/handover"
	"github.com/specdeck/specdeck/internal/spec"
)

// PauseResult is the payload of a successful pause.
type PauseResult struct {
	Task      *spec.ItemRef
	Title     string
	NoteSaved bool
}

// Pause abandons the active flow back to idle. The task keeps whatever
// completion status it has — it simply re-enters the pool of startable
// tasks. A supplied note is persisted durably and surfaced on the next
// start of the same task.
func (e *Engine) Pause(projectRoot, note, pausedBy string) (*PauseResult, error) {
	sess := e.sessions.Get(projectRoot)
	if !sess.Status.Active() {
		return nil, noActiveTask("pause")
	}

	result := &PauseResult{Task: sess.CurrentTask}

	if sess.CurrentTask != nil {
		doc, _, err := e.loadDocument(projectRoot)
		if err != nil {
			return nil, err
		}
		title := sess.CurrentTask.Title
		if it := doc.Lookup(*sess.CurrentTask); it != nil {
			title = it.Title
		}
		result.Title = title

		if note != "" {
			err := e.handover.Set(projectRoot, handover.Note{
				TaskID:    sess.CurrentTask.Key(),
				TaskTitle: title,
				Note:      note,
				PausedBy:  pausedBy,
			})
			if err != nil {
				return nil, err
			}
			result.NoteSaved = true
		}
	}

	sess.Reset()

	e.log.Info("session paused", "project", projectRoot, "note_saved", result.NoteSaved)
	return result, nil
}
