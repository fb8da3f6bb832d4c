package session

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

// idleScheduler never fires, leaving ticks to the test.
type idleScheduler struct{ n uint64 }

func (s *idleScheduler) Schedule(time.Duration, func(*anim.Handle)) *anim.Handle {
	s.n++
	return anim.NewHandle(s.n)
}

func newSession(t *testing.T, a array.Array) *Session {
	t.Helper()
	s := New(
		WithRand(rand.New(rand.NewSource(1))),
		WithRunnerOptions(anim.WithScheduler(&idleScheduler{})),
	)
	if a != nil {
		if err := s.LoadArray(a); err != nil {
			t.Fatalf("load failed: %v", err)
		}
	}
	return s
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"direct", Direct, false},
		{"STEP", Step, false},
		{"", Direct, false},
		{"fast", Direct, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestCreateArray(t *testing.T) {
	s := newSession(t, nil)
	a, err := s.CreateArray(12)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 12 || !s.Store().Get().Equal(a) {
		t.Errorf("store = %v, created %v", s.Store().Get(), a)
	}

	if _, err := s.CreateArray(21); !errors.Is(err, array.ErrInvalidArraySize) {
		t.Errorf("err = %v, want ErrInvalidArraySize", err)
	}
	if !s.Store().Get().Equal(a) {
		t.Error("rejected create must not touch the store")
	}
}

func TestLoadArray_Rejects(t *testing.T) {
	s := newSession(t, array.Array{1, 2})
	if err := s.LoadArray(array.Array{1, 200}); !errors.Is(err, array.ErrValueOutOfRange) {
		t.Errorf("err = %v, want ErrValueOutOfRange", err)
	}
	if err := s.LoadArray(make(array.Array, array.MaxSize+1)); !errors.Is(err, array.ErrInvalidArraySize) {
		t.Errorf("err = %v, want ErrInvalidArraySize", err)
	}
	if err := s.LoadArray(nil); !errors.Is(err, array.ErrInvalidArraySize) {
		t.Errorf("err = %v", err)
	}
	if !s.Store().Get().Equal(array.Array{1, 2}) {
		t.Errorf("store = %v", s.Store().Get())
	}
}

func TestModify_Direct(t *testing.T) {
	tests := []struct {
		name         string
		op           steps.Operation
		value, index int
		want         array.Array
	}{
		{"insert", steps.OpInsert, 9, 2, array.Array{5, 3, 9, 8, 1}},
		{"update", steps.OpUpdate, 7, 0, array.Array{7, 3, 8, 1}},
		{"delete", steps.OpDelete, 0, 1, array.Array{5, 8, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, array.Array{5, 3, 8, 1})
			if err := s.Modify(tt.op, tt.value, tt.index); err != nil {
				t.Fatal(err)
			}
			if got := s.Store().Get(); !got.Equal(tt.want) {
				t.Errorf("store = %v, want %v", got, tt.want)
			}
			if s.Playback().Ready() {
				t.Error("direct mode should not prepare playback")
			}
		})
	}
}

func TestModify_Step(t *testing.T) {
	s := newSession(t, array.Array{5, 3, 8, 1})
	s.SetMode(Step)

	if err := s.Modify(steps.OpInsert, 9, 2); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Cursor.Total != 4 || snap.Cursor.Current != 0 {
		t.Errorf("cursor = %+v", snap.Cursor)
	}
	if snap.Position != "Step 1 of 4" {
		t.Errorf("position = %q", snap.Position)
	}

	if _, ok := s.JumpToEnd(); !ok {
		t.Fatal("jump failed")
	}
	if got := s.Store().Get(); !got.Equal(array.Array{5, 3, 9, 8, 1}) {
		t.Errorf("store = %v", got)
	}
}

func TestModify_Rejections(t *testing.T) {
	s := newSession(t, array.Array{1, 2, 3})

	if err := s.Modify(steps.OpNone, 0, 0); !errors.Is(err, array.ErrNoOperationSelected) {
		t.Errorf("err = %v", err)
	}
	if err := s.Modify(steps.OpBubbleSort, 0, 0); !errors.Is(err, ErrNotModify) {
		t.Errorf("err = %v", err)
	}
	if err := s.Modify(steps.OpDelete, 0, 3); !errors.Is(err, array.ErrIndexOutOfBounds) {
		t.Errorf("err = %v", err)
	}
	if err := s.Modify(steps.OpInsert, 300, 0); !errors.Is(err, array.ErrValueOutOfRange) {
		t.Errorf("err = %v", err)
	}
	if err := s.Modify(steps.OpUpdate, -1, 0); !errors.Is(err, array.ErrValueOutOfRange) {
		t.Errorf("err = %v", err)
	}
	if !s.Store().Get().Equal(array.Array{1, 2, 3}) {
		t.Errorf("store = %v", s.Store().Get())
	}

	s.SetMode(Step)
	if err := s.Modify(steps.OpUpdate, 100, 1); !errors.Is(err, array.ErrValueOutOfRange) {
		t.Errorf("step mode: err = %v", err)
	}
	if s.Playback().Ready() {
		t.Error("rejected modify must not prepare a trace")
	}

	full := newSession(t, make(array.Array, array.MaxSize))
	if err := full.Modify(steps.OpInsert, 1, 0); !errors.Is(err, array.ErrInvalidArraySize) {
		t.Errorf("insert into full array: err = %v", err)
	}

	empty := newSession(t, nil)
	if err := empty.Modify(steps.OpInsert, 1, 0); !errors.Is(err, array.ErrEmptyArray) {
		t.Errorf("err = %v", err)
	}
}

func TestExecute_Direct(t *testing.T) {
	s := newSession(t, array.Array{3, 1, 2})
	if err := s.Execute(steps.OpBubbleSort, 0); err != nil {
		t.Fatal(err)
	}
	if s.Runner().State() != anim.Running {
		t.Fatalf("runner state = %s", s.Runner().State())
	}
	for s.Runner().State() == anim.Running {
		s.Runner().Tick()
	}
	if !s.Store().Get().Equal(array.Array{1, 2, 3}) {
		t.Errorf("store = %v", s.Store().Get())
	}
	if s.Snapshot().Animation != "stopped" {
		t.Errorf("animation = %q", s.Snapshot().Animation)
	}
}

func TestExecute_StepBinarySortsFirst(t *testing.T) {
	s := newSession(t, array.Array{5, 3, 1, 4, 2})
	s.SetMode(Step)

	if err := s.Execute(steps.OpBinarySearch, 4); err != nil {
		t.Fatal(err)
	}
	if !s.Store().Get().Equal(array.Array{1, 2, 3, 4, 5}) {
		t.Errorf("store = %v, want sorted step 0", s.Store().Get())
	}
	if n := len(s.Sequence()); n != 5 {
		t.Errorf("steps = %d, want 5", n)
	}
	last, _ := s.JumpToEnd()
	if len(last.Found) != 1 || last.Found[0] != 3 {
		t.Errorf("last step = %+v", last)
	}
}

func TestExecute_Rejections(t *testing.T) {
	s := newSession(t, array.Array{1, 2})
	if err := s.Execute(steps.OpInsert, 1); !errors.Is(err, ErrNotExecutable) {
		t.Errorf("err = %v", err)
	}
	if err := newSession(t, nil).Execute(steps.OpLinearSearch, 1); !errors.Is(err, array.ErrEmptyArray) {
		t.Errorf("err = %v", err)
	}
}

func TestSetMode_StopsAnimation(t *testing.T) {
	s := newSession(t, array.Array{3, 2, 1})
	s.Execute(steps.OpBubbleSort, 0)
	s.SetMode(Step)

	if s.Runner().State() != anim.Stopped {
		t.Errorf("runner state = %s", s.Runner().State())
	}
	if s.Operation() != steps.OpNone {
		t.Errorf("operation = %s", s.Operation())
	}
}

func TestStep_DirectModeNoop(t *testing.T) {
	s := newSession(t, array.Array{1, 2})
	if _, ok := s.Step(1); ok {
		t.Error("step in direct mode should be a no-op")
	}
}

func TestCreateArray_ResetsPlayback(t *testing.T) {
	s := newSession(t, array.Array{3, 2, 1})
	s.SetMode(Step)
	s.Execute(steps.OpBubbleSort, 0)
	s.Step(1)

	if _, err := s.CreateArray(5); err != nil {
		t.Fatal(err)
	}
	if s.Playback().Ready() || s.Snapshot().Step != nil {
		t.Error("new array should reset playback")
	}
}
