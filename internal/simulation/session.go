package simulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// eventBuffer is sized to hold a full run's event stream (at most ~100
// progress messages plus one terminal message) so the engine never blocks
// on a slow consumer.
const eventBuffer = 128

// Session manages at most one in-flight simulation run for a logical
// caller. Starting a new run supersedes the previous one: its context is
// cancelled, its channel drains and closes, and its RunID stops matching
// the active ID, so stale events can never corrupt a consumer that has
// moved on. Runs never overlap: a superseding Start waits for the old
// goroutine to exit before launching, since the engine's sampler is
// stateful and must only ever be driven by one goroutine.
type Session struct {
	engine *Engine

	mu     sync.Mutex
	active uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession wraps an engine in a session.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Active returns the RunID of the current run, or uuid.Nil when idle.
func (s *Session) Active() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start launches a simulation run off the caller's goroutine and returns
// its RunID with a channel of events. The channel delivers zero or more
// progress events in strictly increasing percentage order, then exactly
// one terminal event (complete or error), then closes. A cancelled run
// closes the channel without a terminal event. When a run is already in
// flight Start cancels it and blocks, briefly, until its goroutine exits;
// cancellation is cooperative, so the wait is bounded by one progress
// chunk.
func (s *Session) Start(ctx context.Context, params Parameters) (uuid.UUID, <-chan Event) {
	runID := uuid.New()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	prev := s.done
	s.mu.Unlock()

	// Join the superseded goroutine before reusing the engine; the
	// sampler's random stream is not safe for concurrent draws.
	if prev != nil {
		<-prev
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.active = runID
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	events := make(chan Event, eventBuffer)
	go s.run(runCtx, runID, params, events, done)
	return runID, events
}

// Cancel stops the in-flight run, if any, and returns the session to
// idle. Cooperative: the engine notices at the next progress-chunk
// boundary.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = uuid.Nil
}

// finish clears the active run if it is still this one.
func (s *Session) finish(runID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == runID {
		s.active = uuid.Nil
		s.cancel = nil
	}
}

func (s *Session) run(ctx context.Context, runID uuid.UUID, params Parameters, events chan<- Event, done chan<- struct{}) {
	defer close(done)
	defer close(events)
	defer s.finish(runID)
	defer func() {
		if r := recover(); r != nil && ctx.Err() == nil {
			// Partial results are discarded; the run is abandoned with a
			// single terminal error so the consumer's progress indicator
			// is never left stuck. A run that was already cancelled stays
			// silent: cancelled runs emit nothing further.
			events <- Event{RunID: runID, Kind: EventError, Message: fmt.Sprintf("simulation aborted: %v", r)}
		}
	}()

	onProgress := func(pct int) {
		events <- Event{RunID: runID, Kind: EventProgress, PercentComplete: pct}
	}

	results, err := s.engine.Run(ctx, params, onProgress)
	if ctx.Err() != nil {
		// Cancelled or superseded: emit nothing further.
		return
	}
	if err != nil {
		events <- Event{RunID: runID, Kind: EventError, Message: err.Error()}
		return
	}
	events <- Event{RunID: runID, Kind: EventComplete, PercentComplete: 100, Results: results}
}
