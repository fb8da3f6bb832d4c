package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/arrayviz/internal/analysis"
	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/config"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/session"
	"github.com/san-kum/arrayviz/internal/steps"
)

const frameBuffer = 256

var errBadInput = errors.New("expected integers")

type Options struct {
	Size    int
	Speed   int
	Theme   string
	Mode    session.Mode
	Initial array.Array
	Rand    *rand.Rand
	Logger  *slog.Logger
	// Scheduler overrides the runner's ticker; nil uses real time.
	Scheduler anim.Scheduler

	// Op, when set, is applied to the initial array before the first frame.
	Op           steps.Operation
	Value, Index int
}

type frameMsg anim.Frame

// frameSource carries runner frames into the event loop. The runner writes
// from its own goroutine; listen delivers them one per command.
type frameSource struct {
	ch   chan anim.Frame
	done chan struct{}
}

func newFrameSource() *frameSource {
	return &frameSource{ch: make(chan anim.Frame, frameBuffer), done: make(chan struct{})}
}

func (s *frameSource) send(f anim.Frame) {
	select {
	case s.ch <- f:
	case <-s.done:
	}
}

func (s *frameSource) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.ch:
			return frameMsg(f)
		case <-s.done:
			return nil
		}
	}
}

// Model is the bubbletea model for both modes.
type Model struct {
	sess    *session.Session
	frames  *frameSource
	log     *slog.Logger
	keys    keyMap
	help    help.Model
	input   textinput.Model
	pending steps.Operation

	theme  Theme
	styles styles
	size   int
	speed  int

	frame  *anim.Frame
	status string
	err    error
	width  int
}

func NewModel(opts Options) Model {
	if opts.Size == 0 {
		opts.Size = config.DefaultArraySize
	}
	speed := opts.Speed
	if speed == 0 {
		speed = config.DefaultSpeed
	}
	speed = config.ClampSpeed(speed)
	interval, _ := config.IntervalForSpeed(speed)

	src := newFrameSource()
	runnerOpts := []anim.Option{anim.WithFrameHandler(src.send), anim.WithInterval(interval)}
	if opts.Scheduler != nil {
		runnerOpts = append(runnerOpts, anim.WithScheduler(opts.Scheduler))
	}
	sess := session.New(
		session.WithLogger(opts.Logger),
		session.WithRand(opts.Rand),
		session.WithRunnerOptions(runnerOpts...),
	)
	sess.SetMode(opts.Mode)

	theme := GetTheme(opts.Theme)
	in := textinput.New()
	in.CharLimit = 16

	m := Model{
		sess:   sess,
		frames: src,
		log:    logging.OrDiscard(opts.Logger),
		keys:   newKeyMap(),
		help:   help.New(),
		input:  in,
		theme:  theme,
		styles: newStyles(theme),
		size:   opts.Size,
		speed:  speed,
		width:  80,
	}
	if opts.Initial != nil {
		m.err = sess.LoadArray(opts.Initial)
	} else {
		_, m.err = sess.CreateArray(opts.Size)
	}
	if m.err == nil && opts.Op != steps.OpNone {
		m = m.run(opts.Op, opts.Value, opts.Index)
	}
	return m
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd { return m.frames.listen() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		f := anim.Frame(msg)
		m.frame = &f
		m.status = f.Message
		return m, m.frames.listen()
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.inputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.close()
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.log.Debug("theme changed", "theme", m.theme.Name)
	case key.Matches(msg, k.New):
		m.frame = nil
		_, m.err = m.sess.CreateArray(m.size)
		m.status = ""
	case key.Matches(msg, k.Mode):
		next := session.Step
		if m.sess.Mode() == session.Step {
			next = session.Direct
		}
		m.sess.SetMode(next)
		m.frame, m.err = nil, nil
		m.status = fmt.Sprintf("Switched to %s mode", next)
	case key.Matches(msg, k.Insert):
		return m.begin(steps.OpInsert)
	case key.Matches(msg, k.Update):
		return m.begin(steps.OpUpdate)
	case key.Matches(msg, k.Delete):
		return m.begin(steps.OpDelete)
	case key.Matches(msg, k.Linear):
		return m.begin(steps.OpLinearSearch)
	case key.Matches(msg, k.Binary):
		return m.begin(steps.OpBinarySearch)
	case key.Matches(msg, k.Bubble):
		return m.begin(steps.OpBubbleSort)
	}

	if m.sess.Mode() == session.Step {
		return m.stepKey(msg), nil
	}
	return m.directKey(msg), nil
}

func (m Model) stepKey(msg tea.KeyMsg) Model {
	k := m.keys
	switch {
	case key.Matches(msg, k.Prev):
		m.sess.Step(-1)
	case key.Matches(msg, k.Next):
		m.sess.Step(1)
	case key.Matches(msg, k.First):
		m.sess.JumpToStart()
	case key.Matches(msg, k.Last):
		m.sess.JumpToEnd()
	}
	return m
}

func (m Model) directKey(msg tea.KeyMsg) Model {
	r := m.sess.Runner()
	k := m.keys
	switch {
	case key.Matches(msg, k.Toggle):
		r.Toggle()
	case key.Matches(msg, k.Stop):
		r.Stop()
	case key.Matches(msg, k.Rewind):
		r.Rewind()
	case key.Matches(msg, k.Faster):
		m.setSpeed(m.speed + 1)
	case key.Matches(msg, k.Slower):
		m.setSpeed(m.speed - 1)
	}
	return m
}

func (m *Model) setSpeed(speed int) {
	m.speed = config.ClampSpeed(speed)
	d, _ := config.IntervalForSpeed(m.speed)
	if err := m.sess.Runner().SetInterval(d); err != nil {
		m.err = err
	}
}

// begin runs op at once when it takes no arguments, otherwise prompts for them.
func (m Model) begin(op steps.Operation) (Model, tea.Cmd) {
	m.err = nil
	if !op.NeedsValue() && !op.NeedsIndex() {
		return m.run(op, 0, 0), nil
	}
	m.pending = op
	m.input.SetValue("")
	m.input.Placeholder = argPrompt(op)
	m.input.Prompt = op.String() + "> "
	return m, m.input.Focus()
}

func (m Model) inputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.pending = steps.OpNone
		return m, nil
	case tea.KeyEnter:
		op := m.pending
		m.input.Blur()
		m.pending = steps.OpNone
		value, index, err := parseArgs(op, m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m.run(op, value, index), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) run(op steps.Operation, value, index int) Model {
	m.frame = nil
	m.status = ""
	if op.IsModify() {
		m.err = m.sess.Modify(op, value, index)
	} else {
		m.err = m.sess.Execute(op, value)
	}
	if m.err == nil && op.IsModify() && m.sess.Mode() == session.Direct {
		m.status = fmt.Sprintf("%s applied", op)
	}
	return m
}

func (m Model) close() {
	m.sess.Runner().Stop()
	select {
	case <-m.frames.done:
	default:
		close(m.frames.done)
	}
}

func argPrompt(op steps.Operation) string {
	switch {
	case op.NeedsValue() && op.NeedsIndex():
		return "value index"
	case op.NeedsIndex():
		return "index"
	}
	return "value"
}

// parseArgs reads the space separated arguments op needs, in the order value
// then index.
func parseArgs(op steps.Operation, s string) (value, index int, err error) {
	fields := strings.Fields(s)
	want := 0
	if op.NeedsValue() {
		want++
	}
	if op.NeedsIndex() {
		want++
	}
	if len(fields) != want {
		return 0, 0, fmt.Errorf("%s: %w, got %q (%s)", op, errBadInput, s, argPrompt(op))
	}

	nums := make([]int, len(fields))
	for i, f := range fields {
		if nums[i], err = strconv.Atoi(f); err != nil {
			return 0, 0, fmt.Errorf("%s: %w, got %q", op, errBadInput, f)
		}
	}
	switch {
	case op.NeedsValue() && op.NeedsIndex():
		return nums[0], nums[1], nil
	case op.NeedsIndex():
		return 0, nums[0], nil
	}
	return nums[0], 0, nil
}

func (m Model) View() string {
	snap := m.sess.Snapshot()
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render(fmt.Sprintf("ARRAYVIZ · %s MODE", strings.ToUpper(snap.Mode.String()))) + "\n")

	arr, mk := snap.Array, marks{}
	switch {
	case snap.Step != nil:
		arr, mk = snap.Step.Array, stepMarks(*snap.Step)
	case m.frame != nil && snap.Mode == session.Direct:
		arr, mk = m.frame.Array, frameMarks(*m.frame)
	}
	s.WriteString(st.panel.Render(renderBars(arr, mk, m.theme)) + "\n\n")

	s.WriteString(st.label.Render("Array") + st.value.Render(snap.Array.String()) + "\n")
	if snap.Operation != steps.OpNone {
		s.WriteString(st.label.Render("Operation") + st.value.Render(snap.Operation.String()) + "\n")
	}
	s.WriteString(st.label.Render("Inversions") + st.value.Render(strconv.Itoa(analysis.Inversions(arr))) + "\n")

	if snap.Mode == session.Step {
		s.WriteString(m.stepStatus(snap))
	} else {
		s.WriteString(m.directStatus(snap))
	}

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	if m.input.Focused() {
		s.WriteString("\n" + m.input.View() + "\n")
	}
	s.WriteString("\n" + m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

func (m Model) stepStatus(snap session.Snapshot) string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.label.Render("Position") + st.value.Render(snap.Position) + "\n")
	if snap.Cursor.Total > 0 {
		s.WriteString(st.label.Render("") + ProgressBar(snap.Cursor.Current+1, snap.Cursor.Total, 30, m.theme) + "\n")
		s.WriteString(st.label.Render("Profile") + Sparkline(analysis.Profile(m.sess.Sequence()), m.theme) + "\n")
	}
	if snap.Step != nil {
		s.WriteString("\n" + st.value.Render(snap.Step.Description) + "\n")
	}
	return s.String()
}

func (m Model) directStatus(snap session.Snapshot) string {
	st := m.styles
	state := st.muted.Render(strings.ToUpper(snap.Animation))
	switch snap.Animation {
	case anim.Running.String():
		state = st.running.Render("RUNNING")
	case anim.Paused.String():
		state = st.paused.Render("PAUSED")
	}
	interval, _ := config.IntervalForSpeed(m.speed)
	return st.label.Render("Animation") + state + "\n" +
		st.label.Render("Speed") + st.value.Render(fmt.Sprintf("%d (%v)", m.speed, interval)) + "\n"
}
