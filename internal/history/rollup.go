package history

import (
	"time"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

// Rollup answers history queries against the stored day summaries.
type Rollup struct {
	summaries    *storage.Collection[models.DaySummary]
	workouts     *storage.Collection[models.Workout]
	firstWeekday time.Weekday
}

func NewRollup(p storage.Provider, locks *storage.Locks, firstWeekday time.Weekday) *Rollup {
	return &Rollup{
		summaries:    storage.NewCollection[models.DaySummary](p, locks, constants.KeyDaySummaries),
		workouts:     storage.NewCollection[models.Workout](p, locks, constants.KeyWorkouts),
		firstWeekday: firstWeekday,
	}
}

func (r *Rollup) FirstWeekday() time.Weekday {
	return r.firstWeekday
}

func (r *Rollup) All() []models.DaySummary {
	return sorted(r.summaries.All())
}

func (r *Rollup) SummaryForDate(date time.Time) (models.DaySummary, bool) {
	return SummaryForDate(r.summaries.All(), date)
}

func (r *Rollup) SummariesForWeek(date time.Time) []models.DaySummary {
	return SummariesForWeek(r.summaries.All(), date, r.firstWeekday)
}

func (r *Rollup) WeeklySummary(date time.Time) models.WeeklySummary {
	return WeeklySummary(r.summaries.All(), date, r.firstWeekday)
}

func (r *Rollup) MonthlySummary(date time.Time) models.MonthlySummary {
	return MonthlySummary(r.summaries.All(), date)
}

func (r *Rollup) RecentSummaries(count int) []models.DaySummary {
	return RecentSummaries(r.summaries.All(), count)
}

func (r *Rollup) AverageScore(lastDays int, today time.Time) float64 {
	return AverageScore(r.summaries.All(), lastDays, today)
}

func (r *Rollup) CurrentStreak(today time.Time) int {
	return CurrentStreak(r.summaries.All(), today)
}

func (r *Rollup) BestStreak() int {
	return BestStreak(r.summaries.All())
}

func (r *Rollup) WeeklyWorkoutSummary(date time.Time) models.WeeklyWorkoutSummary {
	return WeeklyWorkoutSummary(r.workouts.All(), date, r.firstWeekday)
}
