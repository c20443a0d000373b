// Package tui is the interactive tally dashboard: today's summary, the
// habit checklist and the mobility routine timer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/recurrence"
	"github.com/julianstephens/tally/internal/routine"
	"github.com/julianstephens/tally/internal/tracker"
	habitlist "github.com/julianstephens/tally/internal/tui/components/habits"
	"github.com/julianstephens/tally/internal/tui/components/timer"
	"github.com/julianstephens/tally/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateRoutine
	StateReflect
	StateAddHabit
)

var tabTitles = []string{"Today", "Habits", "Routine"}

type Options struct {
	// Now is the clock; nil means time.Now.
	Now     func() time.Time
	Routine routine.Routine
	Start   SessionState
}

type Model struct {
	tracker     *tracker.Tracker
	now         func() time.Time
	state       SessionState
	keys        KeyMap
	help        help.Model
	todayModel  today.Model
	habitsModel habitlist.Model
	timerModel  timer.Model
	form        *huh.Form
	reflectForm *ReflectionFormModel
	habitForm   *HabitFormModel
	status      string
	err         string
	quitting    bool
	width       int
	height      int
}

func NewModel(tr *tracker.Tracker, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Routine.Exercises) == 0 {
		opts.Routine = routine.Builtin()[0]
	}
	if opts.Start > StateRoutine {
		opts.Start = StateToday
	}

	m := Model{
		tracker:     tr,
		now:         opts.Now,
		state:       opts.Start,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		todayModel:  today.New(),
		habitsModel: habitlist.New(nil, 0, 0),
		timerModel:  timer.New(opts.Routine),
	}
	m.refresh()
	return m
}

// refresh reloads today's data from the tracker into the views.
func (m *Model) refresh() {
	now := m.now()
	summary, err := m.tracker.RecomputeDay(now, now)
	if err != nil {
		m.err = err.Error()
		return
	}
	snap := m.tracker.Snapshot()
	m.todayModel.Set(summary, recurrence.TasksForDay(snap.Tasks, snap.TaskLogs, now, now), m.tracker.History().CurrentStreak(now))

	var items []habitlist.Item
	for _, h := range habits.ForToday(snap.Habits, now) {
		item := habitlist.Item{Habit: h, Streak: habits.Streak(snap.HabitLogs, h.ID, now)}
		if log, ok := habits.LogFor(snap.HabitLogs, h.ID, now); ok {
			item.Log = &log
		}
		items = append(items, item)
	}
	m.habitsModel.SetItems(items)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Reflect, m.keys.Refresh)
	case StateHabits:
		keys = append(keys, m.habitsModel.Keys()...)
	case StateRoutine:
		keys = append(keys, m.timerModel.Keys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Reflect, m.keys.Refresh}
	case StateHabits:
		actions = m.habitsModel.Keys()
	case StateRoutine:
		actions = m.timerModel.Keys()
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.timerModel.Init()
}

// Run starts the program on the alternate screen.
func Run(tr *tracker.Tracker, opts Options) error {
	_, err := tea.NewProgram(NewModel(tr, opts), tea.WithAltScreen()).Run()
	return err
}
