package simulation

import (
	"github.com/google/uuid"
)

// EventKind discriminates the closed set of messages a run can emit.
type EventKind string

const (
	EventProgress EventKind = "progress"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
)

// Event is one message on a run's event stream. Kind selects which of the
// optional fields is populated: PercentComplete for progress, Results for
// complete, Message for error. Every event carries the RunID of the run
// that produced it so consumers can discard messages from superseded runs.
type Event struct {
	RunID           uuid.UUID `json:"run_id"`
	Kind            EventKind `json:"kind"`
	PercentComplete int       `json:"percent_complete,omitempty"`
	Results         *Results  `json:"results,omitempty"`
	Message         string    `json:"message,omitempty"`
}

// Terminal reports whether no further events follow this one for its run.
func (e Event) Terminal() bool {
	return e.Kind == EventComplete || e.Kind == EventError
}
