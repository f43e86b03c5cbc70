package engine

import (
	"fmt"
	"strings"
)

// Reason is the machine-readable failure class. Callers branch on this,
// never on the message or hint text.
type Reason string

const (
	ReasonNotFound           Reason = "not_found"
	ReasonAlreadyComplete    Reason = "already_complete"
	ReasonIncompleteChildren Reason = "incomplete_children"
	ReasonDebounced          Reason = "debounced"
	ReasonNoActiveTask       Reason = "no_active_task"
	ReasonInvalidTransition  Reason = "invalid_transition"
)

// Fault is a recoverable transition failure. It is returned as a value,
// reported to the caller, and never crashes the process. The hint is
// advisory text; programmatic handling must branch on Reason.
type Fault struct {
	Reason      Reason
	Message     string
	Hint        string
	Titles      []string // offending items for incomplete_children
	WaitSeconds int      // remaining wait for debounced
}

// Error implements the error interface so faults flow through normal
// error returns and can be recovered with errors.As.
func (f *Fault) Error() string {
	return f.Message
}

func notFound(query string) *Fault {
	return &Fault{
		Reason:  ReasonNotFound,
		Message: fmt.Sprintf("no item matches %q", query),
		Hint:    "use an explicit id like SD.1, or a fragment of an incomplete item's title",
	}
}

func alreadyComplete(displayID, title string) *Fault {
	return &Fault{
		Reason:  ReasonAlreadyComplete,
		Message: fmt.Sprintf("%s %q is already done", displayID, title),
		Hint:    "reference it by explicit id with start to reopen it",
	}
}

func incompleteChildren(title string, titles []string) *Fault {
	return &Fault{
		Reason:  ReasonIncompleteChildren,
		Message: fmt.Sprintf("%q still has open sub-items: %s", title, strings.Join(titles, ", ")),
		Hint:    "complete the sub-items first, or use done with force at the task level",
		Titles:  titles,
	}
}

func debounced(waitSeconds int) *Fault {
	return &Fault{
		Reason:      ReasonDebounced,
		Message:     fmt.Sprintf("work on this item started moments ago — wait %ds before completing it", waitSeconds),
		Hint:        "if no work is actually needed, pause instead",
		WaitSeconds: waitSeconds,
	}
}

func noActiveTask(op string) *Fault {
	return &Fault{
		Reason:  ReasonNoActiveTask,
		Message: fmt.Sprintf("%s requires an active task and the session is idle", op),
		Hint:    "start a task first",
	}
}

func invalidTransition(msg, hint string) *Fault {
	return &Fault{Reason: ReasonInvalidTransition, Message: msg, Hint: hint}
}
