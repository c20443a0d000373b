package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/score"
)

var (
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

func scoreLabel(s float64) string {
	text := fmt.Sprintf("%.0f", s)
	if score.IsGoodDay(s) {
		return goodStyle.Render(text)
	}
	return okStyle.Render(text)
}

// formatDay renders one day summary as a short block.
func formatDay(d models.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  score %s\n", d.Date.Format("Mon Jan 2, 2006"), scoreLabel(d.Score))
	fmt.Fprintf(&b, "  %s %d/%d\n", labelStyle.Render("Habits:  "), d.HabitsCompleted, d.HabitsTotal)
	fmt.Fprintf(&b, "  %s %d/%d\n", labelStyle.Render("Cleaning:"), d.CleaningTasksCompleted, d.CleaningTasksTotal)
	fmt.Fprintf(&b, "  %s %.0f/%.0f oz\n", labelStyle.Render("Water:   "), d.WaterOunces, d.WaterTarget)
	fmt.Fprintf(&b, "  %s %d pages, %d min\n", labelStyle.Render("Reading: "), d.PagesRead, d.MinutesRead)
	if d.ReflectionNote != "" {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Note:    "), d.ReflectionNote)
	}
	return b.String()
}

// formatRow is the one-line form used by history listings.
func formatRow(d models.DaySummary) string {
	mark := " "
	if score.IsGoodDay(d.Score) {
		mark = "*"
	}
	return fmt.Sprintf("%s %s%3.0f  habits %d/%d  cleaning %d/%d  water %.0f oz",
		d.Date.Format("2006-01-02"), mark, d.Score,
		d.HabitsCompleted, d.HabitsTotal, d.CleaningTasksCompleted, d.CleaningTasksTotal, d.WaterOunces)
}
