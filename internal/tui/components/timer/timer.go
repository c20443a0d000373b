// Package timer is the bubbletea view over a mobility routine run.
package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/routine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	exerciseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TickMsg advances the timer by one second.
type TickMsg time.Time

// CompletedMsg is sent once when the routine finishes.
type CompletedMsg struct {
	Log models.MobilityLog
}

type KeyMap struct {
	Toggle   key.Binding
	Forward  key.Binding
	Backward key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "start/pause"),
		),
		Forward: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "skip"),
		),
		Backward: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "back"),
		),
	}
}

type Model struct {
	timer    *routine.Timer
	keys     KeyMap
	progress progress.Model
	done     bool
	width    int
	height   int
}

func New(r routine.Routine) Model {
	return Model{
		timer:    routine.NewTimer(r),
		keys:     DefaultKeyMap(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Forward, m.keys.Backward}
}

func (m Model) State() routine.State {
	return m.timer.State()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.timer.Tick(time.Second)
		if cmd := m.finish(time.Time(msg)); cmd != nil {
			return m, cmd
		}
		if m.done {
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		var err error
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if m.timer.State() == routine.Idle {
				err = m.timer.Start()
			} else {
				err = m.timer.TogglePause()
			}
		case key.Matches(msg, m.keys.Forward):
			err = m.timer.SkipForward()
		case key.Matches(msg, m.keys.Backward):
			err = m.timer.SkipBackward()
		default:
			return m, nil
		}
		if err != nil {
			return m, nil
		}
		return m, m.finish(time.Now())
	}
	return m, nil
}

// finish emits CompletedMsg the first time the timer reaches Complete.
func (m *Model) finish(now time.Time) tea.Cmd {
	if m.done || m.timer.State() != routine.Complete {
		return nil
	}
	m.done = true
	log := m.timer.Log(now)
	return func() tea.Msg { return CompletedMsg{Log: log} }
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (m Model) View() string {
	r := m.timer.Routine()
	title := titleStyle.Render(fmt.Sprintf("Routine: %s (%s)", r.Name, formatDuration(r.TotalDuration())))

	var body string
	switch m.timer.State() {
	case routine.Complete:
		log := m.timer.Log(time.Now())
		body = exerciseStyle.Render(fmt.Sprintf("Done! %d completed, %d skipped", log.ExercisesCompleted, log.ExercisesSkipped))
	default:
		ex, _ := m.timer.Current()
		status := m.timer.State().String()
		if m.timer.State() == routine.Idle {
			status = "press space to start"
		}
		body = lipgloss.JoinVertical(lipgloss.Center,
			exerciseStyle.Render(ex.Name),
			mutedStyle.Render(fmt.Sprintf("%s left  •  %d of %d  •  %s",
				formatDuration(m.timer.Remaining()), m.timer.Index()+1, len(r.Exercises), status)),
		)
	}

	var upcoming []string
	for i, ex := range r.Exercises {
		marker := "  "
		if i == m.timer.Index() && m.timer.State() != routine.Complete {
			marker = "> "
		}
		upcoming = append(upcoming, mutedStyle.Render(fmt.Sprintf("%s%s (%s)", marker, ex.Name, formatDuration(ex.Duration))))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		body,
		"",
		m.progress.ViewAs(m.timer.Progress()),
		"",
		strings.Join(upcoming, "\n"),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
