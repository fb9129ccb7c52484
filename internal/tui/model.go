// Package tui is the interactive terminal front end. It renders store
// snapshots and turns key presses into store mutations.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/state"
	"github.com/julianstephens/tally/internal/theme"
	"github.com/julianstephens/tally/internal/tui/components/dashboard"
	"github.com/julianstephens/tally/internal/tui/components/habits"
	"github.com/julianstephens/tally/internal/tui/components/profile"
	"github.com/julianstephens/tally/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateTasks
	StateHabits
	StateProfile
	StateTaskForm
	StateHabitForm
	StateConfirmDelete
)

var tabTitles = []string{"Dashboard", "Tasks", "Habits", "Profile"}

// chromeHeight is the number of rows taken by tabs, status line and help.
const chromeHeight = 6

// SnapshotMsg carries a store snapshot into the program.
type SnapshotMsg state.Snapshot

// storeResultMsg reports the outcome of a mutation run as a command.
type storeResultMsg struct {
	status string
	err    error
}

type deleteTarget struct {
	habit bool
	id    int64
	title string
}

type Option func(*Model)

// WithClock sets the clock used for new records and the displayed date.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

type Model struct {
	store         *state.Store
	writes        *writeQueue
	snap          state.Snapshot
	now           func() time.Time
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	styles        theme.Styles
	dashboard     dashboard.Model
	taskList      tasklist.Model
	habitsModel   habits.Model
	profileModel  profile.Model
	form          *huh.Form
	taskForm      *TaskFormModel
	habitForm     *HabitFormModel
	editingID     int64 // zero when the open form creates a record
	toDelete      deleteTarget
	status        string
	statusErr     bool
	quitting      bool
	width         int
	height        int
}

func NewModel(store *state.Store, opts ...Option) Model {
	m := Model{
		store:  store,
		writes: &writeQueue{},
		now:    time.Now,
		state:  StateDashboard,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	snap := store.Snapshot()
	m.styles = theme.NewStyles(theme.For(snap.DarkMode))
	m.dashboard = dashboard.New(m.styles)
	m.taskList = tasklist.New(snap.Tasks, 0, 0)
	m.habitsModel = habits.New(snap.Habits, 0, 0)
	m.profileModel = profile.New(m.styles)
	m.applySnapshot(snap)

	return m
}

// Bridge forwards every store change to p. The returned func stops forwarding.
func Bridge(store *state.Store, p *tea.Program) func() {
	return store.Subscribe(func(snap state.Snapshot) {
		p.Send(SnapshotMsg(snap))
	})
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.DarkMode != m.snap.DarkMode {
		m.styles = theme.NewStyles(theme.For(snap.DarkMode))
		m.dashboard.SetStyles(m.styles)
		m.profileModel.SetStyles(m.styles)
	}
	m.snap = snap
	m.dashboard.SetData(snap.Tasks, snap.Habits, snap.Stats, m.today())
	m.taskList.SetTasks(snap.Tasks)
	m.habitsModel.SetHabits(snap.Habits)
	m.profileModel.SetData(snap.Stats, snap.Habits, snap.DarkMode)
}

func (m Model) today() string {
	return m.now().Format(constants.DateFormat)
}

func (m *Model) resize() {
	h := max(m.height-chromeHeight, 0)
	m.dashboard.SetSize(m.width, h)
	m.taskList.SetSize(m.width, h)
	m.habitsModel.SetSize(m.width, h)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Next, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTasks:
		k := m.taskList.Keys()
		keys = append(keys, k.Add, k.Toggle, k.Filter)
	case StateHabits:
		k := m.habitsModel.Keys()
		keys = append(keys, k.Add, k.Toggle)
	case StateProfile:
		keys = append(keys, m.profileModel.Keys().ToggleTheme)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Jump, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateTasks:
		k := m.taskList.Keys()
		actions = []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Filter}
	case StateHabits:
		k := m.habitsModel.Keys()
		actions = []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Reset}
	case StateProfile:
		actions = []key.Binding{m.profileModel.Keys().ToggleTheme}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
