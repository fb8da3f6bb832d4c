package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/session"
	"github.com/san-kum/arrayviz/internal/steps"
)

type idleScheduler struct{ n uint64 }

func (s *idleScheduler) Schedule(time.Duration, func(*anim.Handle)) *anim.Handle {
	s.n++
	return anim.NewHandle(s.n)
}

func newTestModel(t *testing.T, mode session.Mode, a array.Array) Model {
	t.Helper()
	m := NewModel(Options{Mode: mode, Initial: a, Scheduler: &idleScheduler{}})
	if m.err != nil {
		t.Fatalf("model init: %v", m.err)
	}
	t.Cleanup(m.close)
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "end":
			msg = tea.KeyMsg{Type: tea.KeyEnd}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestStepMode_InsertAndNavigate(t *testing.T) {
	m := newTestModel(t, session.Step, array.Array{5, 3, 8, 1})

	m = press(m, "i")
	if !m.input.Focused() || m.pending != steps.OpInsert {
		t.Fatal("insert should prompt for arguments")
	}
	m = typeText(m, "9 2")
	m = press(m, "enter")
	if m.err != nil {
		t.Fatalf("insert failed: %v", m.err)
	}

	snap := m.Session().Snapshot()
	if snap.Cursor.Total != 4 {
		t.Fatalf("cursor = %+v", snap.Cursor)
	}
	m = press(m, "right", "right")
	if got := m.Session().Snapshot().Cursor.Current; got != 2 {
		t.Errorf("cursor after two steps = %d", got)
	}
	m = press(m, "left")
	if got := m.Session().Snapshot().Cursor.Current; got != 1 {
		t.Errorf("cursor after back = %d", got)
	}
	m = press(m, "end")
	if !m.Session().Store().Get().Equal(array.Array{5, 3, 9, 8, 1}) {
		t.Errorf("store = %v", m.Session().Store().Get())
	}
	if !strings.Contains(m.View(), "Step 4 of 4") {
		t.Error("view should show the step position")
	}
}

func TestDirectMode_AnimationControls(t *testing.T) {
	m := newTestModel(t, session.Direct, array.Array{3, 2, 1})
	r := m.Session().Runner()

	m = press(m, "o")
	if r.State() != anim.Running {
		t.Fatalf("runner state = %s", r.State())
	}

	next, _ := m.Update(frameMsg(r.LastFrame()))
	m = next.(Model)
	if m.frame == nil || m.status != "Starting bubble sort" {
		t.Errorf("frame not applied: %q", m.status)
	}

	m = press(m, "space")
	if r.State() != anim.Paused {
		t.Errorf("state after space = %s", r.State())
	}
	m = press(m, "space")
	if r.State() != anim.Running {
		t.Errorf("state after second space = %s", r.State())
	}

	r.Tick()
	m = press(m, "r")
	if !m.Session().Store().Get().Equal(array.Array{3, 2, 1}) || r.State() != anim.Stopped {
		t.Errorf("rewind failed: %v %s", m.Session().Store().Get(), r.State())
	}
}

func TestDirectMode_Speed(t *testing.T) {
	m := newTestModel(t, session.Direct, array.Array{1})
	m = press(m, "+", "+")
	if m.speed != 8 {
		t.Errorf("speed = %d", m.speed)
	}
	if got := m.Session().Runner().Interval(); got != 300*time.Millisecond {
		t.Errorf("interval = %v", got)
	}
	for i := 0; i < 20; i++ {
		m = press(m, "-")
	}
	if m.speed != 1 {
		t.Errorf("speed should clamp at 1, got %d", m.speed)
	}
}

func TestInput_Errors(t *testing.T) {
	m := newTestModel(t, session.Direct, array.Array{1, 2, 3})

	m = press(m, "d")
	m = typeText(m, "x")
	m = press(m, "enter")
	if !errors.Is(m.err, errBadInput) {
		t.Errorf("err = %v", m.err)
	}

	m = press(m, "d")
	m = typeText(m, "7")
	m = press(m, "enter")
	if !errors.Is(m.err, array.ErrIndexOutOfBounds) {
		t.Errorf("err = %v", m.err)
	}
	if !m.Session().Store().Get().Equal(array.Array{1, 2, 3}) {
		t.Errorf("store = %v", m.Session().Store().Get())
	}

	m = press(m, "u", "esc")
	if m.input.Focused() || m.pending != steps.OpNone {
		t.Error("esc should cancel the prompt")
	}
}

func TestModeSwitchAndTheme(t *testing.T) {
	m := newTestModel(t, session.Direct, array.Array{2, 1})
	m = press(m, "m")
	if m.Session().Mode() != session.Step {
		t.Errorf("mode = %s", m.Session().Mode())
	}
	before := m.theme.Name
	m = press(m, "t")
	if m.theme.Name == before {
		t.Error("theme should change")
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		op           steps.Operation
		in           string
		value, index int
		wantErr      bool
	}{
		{steps.OpInsert, "42 3", 42, 3, false},
		{steps.OpDelete, "2", 0, 2, false},
		{steps.OpLinearSearch, "17", 17, 0, false},
		{steps.OpUpdate, "5", 0, 0, true},
		{steps.OpBinarySearch, "a", 0, 0, true},
	}
	for _, tt := range tests {
		v, i, err := parseArgs(tt.op, tt.in)
		if (err != nil) != tt.wantErr || v != tt.value || i != tt.index {
			t.Errorf("parseArgs(%s, %q) = %d, %d, %v", tt.op, tt.in, v, i, err)
		}
	}
}

func TestRenderBars(t *testing.T) {
	out := renderBars(array.Array{0, 99, 50}, marks{compare: []int{1}}, ThemeDefault)
	lines := strings.Split(out, "\n")
	if len(lines) != barRows+2 {
		t.Fatalf("expected %d lines, got %d", barRows+2, len(lines))
	}
	if !strings.Contains(lines[0], "██") {
		t.Error("tallest bar should reach the top row")
	}
	if !strings.Contains(renderBars(nil, marks{}, ThemeDefault), "no array") {
		t.Error("empty array should render a hint")
	}
}

func TestMarksPriority(t *testing.T) {
	mk := marks{
		highlights: []int{0, 1, 2},
		compare:    []int{1},
		found:      []int{2},
		rng:        &steps.Range{Low: 0, High: 3},
	}
	want := []role{roleHighlight, roleCompare, roleFound, roleRange, rolePlain}
	for i, w := range want {
		if got := mk.roleOf(i); got != w {
			t.Errorf("roleOf(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestNewModel_AppliesInitialOp(t *testing.T) {
	m := NewModel(Options{
		Mode:      session.Step,
		Initial:   array.Array{3, 1, 2},
		Op:        steps.OpBubbleSort,
		Scheduler: &idleScheduler{},
	})
	t.Cleanup(m.close)

	if m.err != nil {
		t.Fatal(m.err)
	}
	if !m.Session().Playback().Ready() {
		t.Error("initial op should prepare the trace")
	}
}
