// Package report renders the weekly plain-text review.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/score"
	"github.com/julianstephens/tally/internal/utils"
)

type Weekly struct {
	Summary  models.WeeklySummary
	Workouts models.WeeklyWorkoutSummary
	Goals    []models.Goal
	Books    []models.Book
	// Streak is the good-day streak as of the report date.
	Streak int
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// Render writes the report. Days without a summary are listed as blank so
// gaps in the week stay visible.
func (w Weekly) Render() string {
	var b strings.Builder
	s := w.Summary

	fmt.Fprintf(&b, "Week of %s - %s\n", s.WeekStart.Format("Jan 2"), s.WeekEnd.Format("Jan 2, 2006"))
	b.WriteString(strings.Repeat("=", 32) + "\n\n")

	fmt.Fprintf(&b, "Average score:      %.0f\n", s.AverageScore)
	fmt.Fprintf(&b, "Habit compliance:   %s\n", percent(s.HabitCompliance))
	fmt.Fprintf(&b, "Cleaning done:      %s\n", percent(s.CleaningCompliance))
	fmt.Fprintf(&b, "Water per day:      %.0f oz\n", s.AverageWaterOunces)
	fmt.Fprintf(&b, "Days read:          %d (%d pages)\n", s.DaysRead, s.TotalPagesRead)
	fmt.Fprintf(&b, "Workouts:           %d (%d min, %d active days)\n", w.Workouts.Count, w.Workouts.TotalMinutes, w.Workouts.ActiveDays)
	fmt.Fprintf(&b, "Current streak:     %d\n", w.Streak)

	b.WriteString("\nDays\n")
	byDay := make(map[string]models.DaySummary, len(s.Days))
	for _, d := range s.Days {
		byDay[utils.DayKey(d.Date.In(s.WeekStart.Location()))] = d
	}
	for i := 0; i < 7; i++ {
		day := utils.AddDays(s.WeekStart, i)
		d, ok := byDay[utils.DayKey(day)]
		if !ok {
			fmt.Fprintf(&b, "  %s  -\n", day.Format("Mon 01/02"))
			continue
		}
		mark := " "
		if score.IsGoodDay(d.Score) {
			mark = "*"
		}
		fmt.Fprintf(&b, "  %s %s%3.0f  habits %d/%d  cleaning %d/%d  water %.0f oz\n",
			day.Format("Mon 01/02"), mark, d.Score,
			d.HabitsCompleted, d.HabitsTotal,
			d.CleaningTasksCompleted, d.CleaningTasksTotal,
			d.WaterOunces)
	}

	if reading := inProgress(w.Books); len(reading) > 0 {
		b.WriteString("\nReading\n")
		for _, book := range reading {
			fmt.Fprintf(&b, "  %s: page %d of %d (%s)\n", book.Title, book.CurrentPage, book.TotalPages, percent(book.Progress()))
		}
	}

	if len(w.Goals) > 0 {
		b.WriteString("\nGoals\n")
		for _, g := range w.Goals {
			line := fmt.Sprintf("  %s: %g/%g", g.Title, g.Progress, g.Target)
			if g.Unit != "" {
				line += " " + g.Unit
			}
			line += " (" + percent(g.Completion()) + ")"
			if g.Deadline != nil {
				line += ", due " + g.Deadline.Format(time.DateOnly)
			}
			b.WriteString(line + "\n")
		}
	}

	if notes := reflections(s.Days); len(notes) > 0 {
		b.WriteString("\nReflections\n")
		for _, n := range notes {
			b.WriteString("  " + n + "\n")
		}
	}
	return b.String()
}

func inProgress(books []models.Book) []models.Book {
	var out []models.Book
	for _, book := range books {
		if !book.IsFinished() {
			out = append(out, book)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

func reflections(days []models.DaySummary) []string {
	var out []string
	for _, d := range days {
		if note := strings.TrimSpace(d.ReflectionNote); note != "" {
			out = append(out, d.Date.Format("Mon")+": "+note)
		}
	}
	return out
}
