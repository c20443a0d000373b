package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	habitlist "github.com/julianstephens/tally/internal/tui/components/habits"
	"github.com/julianstephens/tally/internal/tui/components/timer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateReflect || m.state == StateAddHabit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		bodyHeight := msg.Height - v - 4
		m.todayModel.SetSize(msg.Width-h, bodyHeight)
		m.habitsModel.SetSize(msg.Width-h, bodyHeight)
		m.timerModel.SetSize(msg.Width-h, bodyHeight)
		m.help.Width = msg.Width
		return m, nil

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timerModel, cmd = m.timerModel.Update(msg)
		return m, cmd

	case timer.CompletedMsg:
		if _, err := m.tracker.LogMobility(msg.Log, m.now()); err != nil {
			m.err = err.Error()
		} else {
			m.status = "Routine logged"
		}
		return m, nil

	case habitlist.ToggleHabitMsg:
		now := m.now()
		if _, err := m.tracker.ToggleHabit(msg.ID, now, now); err != nil {
			m.err = err.Error()
		}
		m.refresh()
		return m, nil

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{InputType: models.InputBoolean}
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case tea.KeyMsg:
		m.err = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case StateToday:
			switch {
			case key.Matches(msg, m.keys.Reflect):
				m.reflectForm = &ReflectionFormModel{Note: m.todayModel.Summary.ReflectionNote}
				m.form = NewReflectionForm(m.reflectForm)
				m.state = StateReflect
				return m, m.form.Init()
			case key.Matches(msg, m.keys.Refresh):
				m.refresh()
			}
			return m, nil
		case StateHabits:
			var cmd tea.Cmd
			m.habitsModel, cmd = m.habitsModel.Update(msg)
			return m, cmd
		case StateRoutine:
			var cmd tea.Cmd
			m.timerModel, cmd = m.timerModel.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateForm drives the active huh form and applies it on completion.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	back := StateToday
	if m.state == StateAddHabit {
		back = StateHabits
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = back
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		now := m.now()
		switch m.state {
		case StateReflect:
			if _, err := m.tracker.SaveReflection(now, m.reflectForm.Note, now); err != nil {
				m.err = err.Error()
			} else {
				m.status = "Reflection saved"
			}
		case StateAddHabit:
			h, err := m.tracker.AddHabit(m.habitForm.Template(), now)
			if err != nil {
				m.err = err.Error()
			} else {
				logger.Debug("Added habit from dashboard", "id", h.ID)
				m.status = "Added " + h.Title
			}
		}
		m.refresh()
		m.state = back
	case huh.StateAborted:
		m.state = back
	}
	return m, cmd
}
