package tracker

import (
	"time"

	"github.com/julianstephens/tally/internal/report"
)

// WeeklyReport gathers everything the weekly review shows for the week
// containing date.
func (t *Tracker) WeeklyReport(date time.Time) report.Weekly {
	return report.Weekly{
		Summary:  t.rollup.WeeklySummary(date),
		Workouts: t.rollup.WeeklyWorkoutSummary(date),
		Goals:    t.goals.All(),
		Books:    t.books.All(),
		Streak:   t.rollup.CurrentStreak(date),
	}
}
