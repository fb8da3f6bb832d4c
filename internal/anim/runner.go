// Package anim plays search and sort operations as timed animations over the
// live array.
//
// A Runner owns at most one scheduled task. Every tick performs one unit of
// algorithmic work on the working array, writes it to the store and hands a
// Frame to the frame handler:
//
//	runner := anim.NewRunner(store, anim.WithFrameHandler(render))
//	runner.Start(steps.OpBubbleSort, 0)
//	runner.Toggle() // pause
//	runner.Toggle() // resume where it stopped
//	runner.Rewind() // stop and restore the pre-animation array
//
// The run state {I, J, Left, Right, Swapped, Work} survives pause/resume.
package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/steps"
)

const DefaultInterval = 500 * time.Millisecond

var (
	ErrNotAnimated     = errors.New("anim: operation has no animation")
	ErrInvalidInterval = errors.New("anim: interval must be positive")
)

type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Frame is the view-facing update produced by one tick.
type Frame struct {
	Op         steps.Operation `json:"op"`
	Array      array.Array     `json:"array"`
	Highlights []int           `json:"highlights,omitempty"`
	Compare    []int           `json:"compare,omitempty"`
	Swap       []int           `json:"swap,omitempty"`
	Found      []int           `json:"found,omitempty"`
	Range      *steps.Range    `json:"range,omitempty"`
	Message    string          `json:"message,omitempty"`
	Done       bool            `json:"done"`
	Tick       int             `json:"tick"`
}

// RunState is the resumable progress of an animation.
type RunState struct {
	I, J        int
	Left, Right int
	Swapped     bool
	Work        array.Array
}

type Runner struct {
	mu       sync.Mutex
	store    *array.Store
	sched    Scheduler
	log      *slog.Logger
	onFrame  func(Frame)
	interval time.Duration

	state    State
	op       steps.Operation
	value    int
	run      RunState
	original array.Array
	handle   *Handle
	ticks    int
	last     Frame
}

type Option func(*Runner)

func WithScheduler(s Scheduler) Option { return func(r *Runner) { r.sched = s } }

func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.log = logging.OrDiscard(l) } }

// WithFrameHandler registers fn to receive every frame. fn runs outside the
// runner's lock and may call back into the runner.
func WithFrameHandler(fn func(Frame)) Option { return func(r *Runner) { r.onFrame = fn } }

func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

func NewRunner(store *array.Store, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		sched:    &TimerScheduler{},
		log:      logging.Discard(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetFrameHandler replaces the frame handler. Used when the receiver only
// exists after the runner, as with a bubbletea program.
func (r *Runner) SetFrameHandler(fn func(Frame)) {
	r.mu.Lock()
	r.onFrame = fn
	r.mu.Unlock()
}

// Start begins animating op over the store's array, cancelling any run in
// progress. Binary search sorts the live array first.
func (r *Runner) Start(op steps.Operation, value int) (*Handle, error) {
	if !op.IsAnimated() {
		return nil, fmt.Errorf("%w: %s", ErrNotAnimated, op)
	}

	r.mu.Lock()
	cur := r.store.Get()
	if len(cur) == 0 {
		r.mu.Unlock()
		return nil, &array.OperationError{Op: op.String(), Wrapped: array.ErrEmptyArray}
	}
	r.cancelLocked()

	r.original = cur.Clone()
	work := cur
	if op == steps.OpBinarySearch {
		work = cur.Sorted()
		r.store.Set(work)
	}

	r.op, r.value, r.ticks = op, value, 0
	r.run = RunState{Left: 0, Right: len(work) - 1, Work: work}
	r.state = Running
	r.last = Frame{Op: op, Array: work.Clone(), Message: startMessage(op, value)}
	f := r.last
	h := r.scheduleLocked()
	r.log.Debug("animation started", "op", op.String(), "value", value, "interval", r.interval, "handle", h.ID())
	r.mu.Unlock()

	r.emit(f)
	return h, nil
}

// Tick performs one unit of work immediately. It reports false when the
// runner is not running.
func (r *Runner) Tick() (Frame, bool) {
	r.mu.Lock()
	if r.state != Running {
		f := r.last
		r.mu.Unlock()
		return f, false
	}
	f := r.stepLocked()
	r.mu.Unlock()

	r.emit(f)
	return f, true
}

func (r *Runner) tickFrom(h *Handle) {
	r.mu.Lock()
	if r.handle != h || h.Canceled() || r.state != Running {
		r.mu.Unlock()
		return
	}
	f := r.stepLocked()
	r.mu.Unlock()

	r.emit(f)
}

// Pause keeps the run state and cancels the scheduled task.
func (r *Runner) Pause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Running {
		return false
	}
	r.cancelLocked()
	r.state = Paused
	r.log.Debug("animation paused", "op", r.op.String(), "tick", r.ticks)
	return true
}

// Resume continues a paused run from its saved progress.
func (r *Runner) Resume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Paused {
		return false
	}
	r.state = Running
	h := r.scheduleLocked()
	r.log.Debug("animation resumed", "op", r.op.String(), "tick", r.ticks, "handle", h.ID())
	return true
}

// Toggle is the single play/pause control.
func (r *Runner) Toggle() bool {
	switch r.State() {
	case Running:
		return r.Pause()
	case Paused:
		return r.Resume()
	}
	return false
}

// Stop ends the run. The store keeps whatever the last tick wrote.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Stopped && r.handle == nil {
		return
	}
	r.cancelLocked()
	r.state = Stopped
	r.log.Debug("animation stopped", "op", r.op.String(), "tick", r.ticks)
}

// Rewind stops the run and restores the array the animation started from.
func (r *Runner) Rewind() (Frame, bool) {
	r.mu.Lock()
	r.cancelLocked()
	r.state = Stopped
	if r.original == nil {
		r.mu.Unlock()
		return Frame{}, false
	}
	r.store.Set(r.original)
	r.run = RunState{}
	r.ticks = 0
	r.last = Frame{Op: r.op, Array: r.original.Clone(), Message: "Rewound to initial array"}
	f := r.last
	r.log.Debug("animation rewound", "op", r.op.String())
	r.mu.Unlock()

	r.emit(f)
	return f, true
}

// SetInterval changes the tick interval, rescheduling a running animation.
func (r *Runner) SetInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = d
	if r.state == Running {
		r.cancelLocked()
		r.scheduleLocked()
	}
	return nil
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) Operation() steps.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.op
}

func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Progress returns a copy of the run state.
func (r *Runner) Progress() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	rs := r.run
	rs.Work = r.run.Work.Clone()
	return rs
}

func (r *Runner) LastFrame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Handle returns the active task, or nil when nothing is scheduled.
func (r *Runner) Handle() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle
}

func (r *Runner) scheduleLocked() *Handle {
	h := r.sched.Schedule(r.interval, r.tickFrom)
	r.handle = h
	return h
}

func (r *Runner) cancelLocked() {
	if r.handle != nil {
		r.handle.Cancel()
		r.handle = nil
	}
}

func (r *Runner) stepLocked() Frame {
	r.ticks++

	var f Frame
	switch r.op {
	case steps.OpLinearSearch:
		f = r.linearTick()
	case steps.OpBinarySearch:
		f = r.binaryTick()
	default:
		f = r.bubbleTick()
	}
	f.Op, f.Tick = r.op, r.ticks

	r.store.Set(r.run.Work)
	if f.Done {
		r.cancelLocked()
		r.state = Stopped
		r.log.Info("animation completed", "op", r.op.String(), "ticks", r.ticks, "message", f.Message)
	}
	r.last = f
	return f
}

func (r *Runner) emit(f Frame) {
	r.mu.Lock()
	fn := r.onFrame
	r.mu.Unlock()
	if fn != nil {
		fn(f)
	}
}

func startMessage(op steps.Operation, value int) string {
	switch op {
	case steps.OpLinearSearch:
		return fmt.Sprintf("Starting linear search for value %d", value)
	case steps.OpBinarySearch:
		return fmt.Sprintf("Starting binary search for value %d in sorted array", value)
	default:
		return "Starting bubble sort"
	}
}
