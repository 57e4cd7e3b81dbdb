// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes one conversion at a time on a background
// goroutine and hands its events to the caller over a single ordered
// channel, so a single-threaded consumer never observes racy state.
package runner

import (
	"errors"
	"sync/atomic"

	"github.com/pdiddy/locforge/pkg/types"
)

// ErrBusy is returned by Start when the runner is not idle: either a run
// is in flight, or a finished runner was not Reset.
var ErrBusy = errors.New("runner: not idle")

// ErrRunning is returned by Reset while a run is still in flight.
var ErrRunning = errors.New("runner: still running")

// State is the runner's lifecycle position. Terminal states are absorbing
// until Reset.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind discriminates runner events.
type EventKind int

const (
	// EventProgress carries a batch-boundary progress update.
	EventProgress EventKind = iota

	// EventWarning carries a non-fatal notice, e.g. source truncation.
	EventWarning

	// EventCompleted is the terminal event of a successful run.
	EventCompleted

	// EventCancelled is the terminal event of a cancelled run; Records
	// holds the partial result.
	EventCancelled

	// EventFailed is the terminal event of a failed run.
	EventFailed
)

// Event is one unit of the runner's ordered event stream. Exactly one
// terminal event (Completed, Cancelled, or Failed) is delivered per run,
// after which the stream is closed.
type Event struct {
	Kind     EventKind
	Progress types.ProgressEvent // EventProgress
	Warning  string              // EventWarning
	Records  []types.Record      // EventCompleted, EventCancelled
	Err      error               // EventFailed
}

// Task is the work one run executes on the background goroutine. It polls
// token at its own checkpoints and may emit progress and warning events;
// it reports whether it stopped due to cancellation.
type Task func(token *types.CancelToken, emit func(Event)) (records []types.Record, cancelled bool, err error)

// eventBuffer smooths bursts so the worker rarely waits on the consumer;
// an attentive consumer keeps the channel near-empty.
const eventBuffer = 128

// Runner drives at most one Task at a time. Concurrent runs require
// independent Runner instances. Cancel is safe from any goroutine; the
// remaining methods belong to the single consumer goroutine.
type Runner struct {
	state  atomic.Int32
	token  *types.CancelToken
	events chan Event
}

// New returns an idle runner.
func New() *Runner {
	return &Runner{
		token:  &types.CancelToken{},
		events: make(chan Event, eventBuffer),
	}
}

// Events is the run's ordered event stream. Drain it after Start; the
// channel is closed once the terminal event has been delivered.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Start launches task on a background goroutine and returns immediately.
// It fails with ErrBusy unless the runner is idle.
func (r *Runner) Start(task Task) error {
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrBusy
	}

	go r.run(task)
	return nil
}

// Cancel requests cooperative cancellation. It does not wait for the
// worker to observe the token and calling it twice has no further effect.
func (r *Runner) Cancel() {
	r.token.Cancel()
}

// Reset returns a finished runner to idle with a fresh token and event
// stream. It fails with ErrRunning while a run is in flight.
func (r *Runner) Reset() error {
	s := r.State()
	switch s {
	case StateIdle:
		return nil
	case StateRunning:
		return ErrRunning
	}
	r.token = &types.CancelToken{}
	r.events = make(chan Event, eventBuffer)
	r.state.Store(int32(StateIdle))
	return nil
}

func (r *Runner) run(task Task) {
	defer close(r.events)

	records, cancelled, err := task(r.token, func(e Event) {
		r.events <- e
	})

	switch {
	case err != nil:
		r.state.Store(int32(StateFailed))
		r.events <- Event{Kind: EventFailed, Err: err}
	case cancelled:
		r.state.Store(int32(StateCancelled))
		r.events <- Event{Kind: EventCancelled, Records: records}
	default:
		r.state.Store(int32(StateCompleted))
		r.events <- Event{Kind: EventCompleted, Records: records}
	}
}
