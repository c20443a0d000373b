package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.todayModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateRoutine:
		content = docStyle.Render(m.timerModel.View())
	case StateReflect, StateAddHabit:
		content = docStyle.Render(m.form.View())
	}

	var footer string
	switch {
	case m.err != "":
		footer = errorStyle.Render("Error: " + m.err)
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		footer,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
