// Package playback navigates a prepared step sequence one step at a time and
// keeps the array store in sync with the step on display.
package playback

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/steps"
)

var ErrEmptySequence = errors.New("playback: empty step sequence")

// Cursor is the position within a prepared sequence. Current is always in
// [0, Total) when Total > 0; the zero Cursor means nothing is prepared.
type Cursor struct {
	Current int `json:"currentStep"`
	Total   int `json:"totalSteps"`
}

// Controller owns the cursor over one sequence at a time.
type Controller struct {
	store  *array.Store
	log    *slog.Logger
	seq    steps.Sequence
	cursor Cursor
}

func New(store *array.Store, log *slog.Logger) *Controller {
	return &Controller{store: store, log: logging.OrDiscard(log)}
}

// Prepare loads a copy of seq, moves to step 0 and writes its array to the
// store. Steps handed out by the controller are copies too.
func (c *Controller) Prepare(seq steps.Sequence) (steps.Step, error) {
	if len(seq) == 0 {
		return steps.Step{}, ErrEmptySequence
	}
	c.seq = seq.Clone()
	c.cursor = Cursor{Current: 0, Total: len(seq)}
	c.log.Debug("playback prepared", "steps", len(seq))
	return c.show(), nil
}

// Advance moves by dir steps. It is a no-op returning false when the target
// falls outside the sequence.
func (c *Controller) Advance(dir int) (steps.Step, bool) {
	next := c.cursor.Current + dir
	if c.cursor.Total == 0 || next < 0 || next > c.cursor.Total-1 {
		return steps.Step{}, false
	}
	c.cursor.Current = next
	return c.show(), true
}

func (c *Controller) JumpToEnd() (steps.Step, bool) {
	if c.cursor.Total == 0 {
		return steps.Step{}, false
	}
	c.cursor.Current = c.cursor.Total - 1
	return c.show(), true
}

func (c *Controller) JumpToStart() (steps.Step, bool) {
	if c.cursor.Total == 0 {
		return steps.Step{}, false
	}
	c.cursor.Current = 0
	return c.show(), true
}

// Reset drops the sequence and returns the cursor to (0, 0). The store is left
// as it is.
func (c *Controller) Reset() {
	c.seq = nil
	c.cursor = Cursor{}
}

func (c *Controller) Current() (steps.Step, bool) {
	if c.cursor.Total == 0 {
		return steps.Step{}, false
	}
	return c.seq[c.cursor.Current].Clone(), true
}

func (c *Controller) Sequence() steps.Sequence { return c.seq.Clone() }

func (c *Controller) Cursor() Cursor { return c.cursor }

func (c *Controller) Ready() bool { return c.cursor.Total > 0 }

func (c *Controller) AtStart() bool { return c.cursor.Current == 0 }

func (c *Controller) AtEnd() bool {
	return c.cursor.Total == 0 || c.cursor.Current == c.cursor.Total-1
}

// Position renders the cursor the way the step indicator shows it.
func (c *Controller) Position() string {
	if c.cursor.Total == 0 {
		return "Step 0 of 0"
	}
	return fmt.Sprintf("Step %d of %d", c.cursor.Current+1, c.cursor.Total)
}

func (c *Controller) show() steps.Step {
	st := c.seq[c.cursor.Current]
	c.store.Set(st.Array)
	return st.Clone()
}
