// Package session routes user actions to the right engine for the current
// mode: direct edits and the animation runner, or step generation and
// playback.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/playback"
	"github.com/san-kum/arrayviz/internal/steps"
)

var (
	ErrNotModify     = errors.New("session: not an insert, update or delete operation")
	ErrNotExecutable = errors.New("session: not a search or sort operation")
	ErrUnknownMode   = errors.New("session: unknown mode")
)

type Mode int

const (
	Direct Mode = iota
	Step
)

func (m Mode) String() string {
	if m == Step {
		return "step"
	}
	return "direct"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct":
		return Direct, nil
	case "step":
		return Step, nil
	}
	return Direct, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Snapshot is the view-facing state of a session.
type Snapshot struct {
	Mode      Mode            `json:"mode"`
	Operation steps.Operation `json:"operation"`
	Array     array.Array     `json:"array"`
	Cursor    playback.Cursor `json:"cursor"`
	Position  string          `json:"position"`
	Step      *steps.Step     `json:"step,omitempty"`
	Animation string          `json:"animation"`
}

// Session is not safe for concurrent use; adapters serialise calls. The
// store and runner it owns are.
type Session struct {
	store    *array.Store
	playback *playback.Controller
	runner   *anim.Runner
	log      *slog.Logger
	mode     Mode
	op       steps.Operation
}

type Option func(*config)

type config struct {
	log        *slog.Logger
	rng        *rand.Rand
	runnerOpts []anim.Option
}

func WithLogger(l *slog.Logger) Option { return func(c *config) { c.log = l } }

func WithRand(rng *rand.Rand) Option { return func(c *config) { c.rng = rng } }

func WithRunnerOptions(opts ...anim.Option) Option {
	return func(c *config) { c.runnerOpts = append(c.runnerOpts, opts...) }
}

func New(opts ...Option) *Session {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	log := logging.OrDiscard(c.log)
	store := array.NewStore(c.rng)
	runnerOpts := append([]anim.Option{anim.WithLogger(log)}, c.runnerOpts...)

	return &Session{
		store:    store,
		playback: playback.New(store, log),
		runner:   anim.NewRunner(store, runnerOpts...),
		log:      log,
	}
}

func (s *Session) Store() *array.Store            { return s.store }
func (s *Session) Runner() *anim.Runner           { return s.runner }
func (s *Session) Playback() *playback.Controller { return s.playback }
func (s *Session) Mode() Mode                     { return s.mode }
func (s *Session) Operation() steps.Operation     { return s.op }

// CreateArray replaces the array with size random values.
func (s *Session) CreateArray(size int) (array.Array, error) {
	if err := array.CheckSize(size); err != nil {
		return nil, s.reject("create", err)
	}
	s.clear()
	a, err := s.store.Create(size)
	if err != nil {
		return nil, s.reject("create", err)
	}
	s.log.Debug("array created", "size", size, "array", a.String())
	return a, nil
}

// LoadArray replaces the array with a copy of a.
func (s *Session) LoadArray(a array.Array) error {
	if err := array.Validate(a); err != nil {
		return s.reject("load", err)
	}
	s.clear()
	s.store.Set(a)
	s.log.Debug("array loaded", "array", a.String())
	return nil
}

func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.runner.Stop()
	s.playback.Reset()
	s.op = steps.OpNone
	s.mode = m
	s.log.Debug("mode changed", "mode", m.String())
}

// Modify applies insert, update or delete. In direct mode the store is edited
// in place; in step mode the trace is generated and prepared.
func (s *Session) Modify(op steps.Operation, value, index int) error {
	if !op.IsModify() {
		if op == steps.OpNone {
			return s.reject("modify", array.ErrNoOperationSelected)
		}
		return s.reject("modify", fmt.Errorf("%w: %s", ErrNotModify, op))
	}
	p := steps.Params{Value: value, Index: index}
	if err := steps.Validate(op, s.store.Get(), p); err != nil {
		return s.reject(op.String(), err)
	}

	if s.mode == Step {
		return s.prepare(op, s.store.Get(), p)
	}

	s.runner.Stop()
	s.playback.Reset()
	var err error
	switch op {
	case steps.OpInsert:
		err = s.store.Insert(index, value)
	case steps.OpUpdate:
		err = s.store.Update(index, value)
	case steps.OpDelete:
		err = s.store.Delete(index)
	}
	if err != nil {
		return s.reject(op.String(), err)
	}
	s.op = op
	s.log.Debug("array modified", "op", op.String(), "value", value, "index", index)
	return nil
}

// Execute runs a search or sort. Direct mode starts the animation runner;
// step mode generates the trace. Binary search sorts the array first in both.
func (s *Session) Execute(op steps.Operation, value int) error {
	if !op.IsAnimated() {
		if op == steps.OpNone {
			return s.reject("execute", array.ErrNoOperationSelected)
		}
		return s.reject("execute", fmt.Errorf("%w: %s", ErrNotExecutable, op))
	}
	a := s.store.Get()
	if err := steps.Validate(op, a, steps.Params{Value: value}); err != nil {
		return s.reject(op.String(), err)
	}

	if s.mode == Step {
		if op == steps.OpBinarySearch {
			a = a.Sorted()
		}
		return s.prepare(op, a, steps.Params{Value: value})
	}

	s.playback.Reset()
	if _, err := s.runner.Start(op, value); err != nil {
		return s.reject(op.String(), err)
	}
	s.op = op
	return nil
}

// Step moves the playback cursor by dir. It reports false outside step mode
// or at either end of the trace.
func (s *Session) Step(dir int) (steps.Step, bool) {
	if s.mode != Step {
		return steps.Step{}, false
	}
	return s.playback.Advance(dir)
}

func (s *Session) JumpToStart() (steps.Step, bool) {
	if s.mode != Step {
		return steps.Step{}, false
	}
	return s.playback.JumpToStart()
}

func (s *Session) JumpToEnd() (steps.Step, bool) {
	if s.mode != Step {
		return steps.Step{}, false
	}
	return s.playback.JumpToEnd()
}

// Sequence is the prepared trace in step mode, or nil.
func (s *Session) Sequence() steps.Sequence { return s.playback.Sequence() }

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      s.mode,
		Operation: s.op,
		Array:     s.store.Get(),
		Cursor:    s.playback.Cursor(),
		Position:  s.playback.Position(),
		Animation: s.runner.State().String(),
	}
	if st, ok := s.playback.Current(); ok {
		snap.Step = &st
	}
	return snap
}

func (s *Session) prepare(op steps.Operation, a array.Array, p steps.Params) error {
	seq, err := steps.Generate(op, a, p)
	if err != nil {
		return s.reject(op.String(), err)
	}
	s.runner.Stop()
	if _, err := s.playback.Prepare(seq); err != nil {
		return s.reject(op.String(), err)
	}
	s.op = op
	s.log.Debug("steps prepared", "op", op.String(), "steps", len(seq))
	return nil
}

func (s *Session) clear() {
	s.runner.Stop()
	s.playback.Reset()
	s.op = steps.OpNone
}

func (s *Session) reject(action string, err error) error {
	s.log.Warn("operation rejected", "action", action, "error", err)
	return err
}
