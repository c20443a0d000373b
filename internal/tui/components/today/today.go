// Package today renders the daily dashboard: score, habits, water, reading
// and the next cleaning task.
package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/score"
)

var (
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40)
)

type Model struct {
	Summary models.DaySummary
	Tasks   []models.RecurringTask
	Streak  int
	bar     progress.Model
	width   int
	height  int
}

func New() Model {
	return Model{bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Set replaces the dashboard data.
func (m *Model) Set(summary models.DaySummary, tasks []models.RecurringTask, streak int) {
	m.Summary = summary
	m.Tasks = tasks
	m.Streak = streak
}

func (m Model) row(label string, ratio float64, detail string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), m.bar.ViewAs(ratio), "  "+detail)
}

func (m Model) View() string {
	s := m.Summary

	headline := fmt.Sprintf("Score %.0f", s.Score)
	if score.IsGoodDay(s.Score) {
		headline += goodStyle.Render("  ✓ good day")
	}
	if m.Streak > 0 {
		headline += fmt.Sprintf("  •  streak %d", m.Streak)
	}

	reading := "not yet"
	if s.DidRead() {
		reading = fmt.Sprintf("%d pages, %d min", s.PagesRead, s.MinutesRead)
	}

	rows := []string{
		scoreStyle.Render(headline),
		m.row("Habits", score.HabitRatio(s.HabitsCompleted, s.HabitsTotal), fmt.Sprintf("%d/%d", s.HabitsCompleted, s.HabitsTotal)),
		m.row("Cleaning", score.CleaningRatio(s.CleaningTasksCompleted, s.CleaningTasksTotal), fmt.Sprintf("%d/%d", s.CleaningTasksCompleted, s.CleaningTasksTotal)),
		m.row("Water", score.WaterRatio(s.WaterOunces, s.WaterTarget), fmt.Sprintf("%.0f/%.0f oz", s.WaterOunces, s.WaterTarget)),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Reading"), reading),
		"",
	}

	if len(m.Tasks) == 0 {
		rows = append(rows, taskStyle.Render("No cleaning due today"))
	} else {
		var lines []string
		for _, t := range m.Tasks {
			lines = append(lines, "• "+t.Title)
		}
		rows = append(rows, taskStyle.Render(strings.Join(lines, "\n")))
	}
	if note := strings.TrimSpace(s.ReflectionNote); note != "" {
		rows = append(rows, "", labelStyle.Render("Reflection"), note)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
