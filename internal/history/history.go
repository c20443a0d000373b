// Package history rolls day summaries up into weekly and monthly views and
// computes good-day streaks.
package history

import (
	"slices"
	"time"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/score"
	"github.com/julianstephens/tally/internal/utils"
)

// sorted returns a copy of all in ascending date order.
func sorted(all []models.DaySummary) []models.DaySummary {
	out := slices.Clone(all)
	slices.SortStableFunc(out, func(a, b models.DaySummary) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

func SummaryForDate(all []models.DaySummary, date time.Time) (models.DaySummary, bool) {
	for _, s := range all {
		if utils.SameDay(date, s.Date) {
			return s, true
		}
	}
	return models.DaySummary{}, false
}

// between returns the summaries in [start, end), ascending.
func between(all []models.DaySummary, start, end time.Time) []models.DaySummary {
	var out []models.DaySummary
	for _, s := range sorted(all) {
		d := s.Date.In(start.Location())
		if !d.Before(start) && d.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

// SummariesForWeek returns the summaries in the 7-day window containing
// date that starts on firstWeekday.
func SummariesForWeek(all []models.DaySummary, date time.Time, firstWeekday time.Weekday) []models.DaySummary {
	start := utils.StartOfWeek(date, firstWeekday)
	return between(all, start, utils.AddDays(start, 7))
}

type totals struct {
	averageScore       float64
	habitCompliance    float64
	cleaningCompliance float64
	averageWater       float64
	daysRead           int
	pagesRead          int
}

// rollup derives the shared weekly/monthly fields. Cleaning compliance
// defaults to 1 when nothing was due, habit compliance to 0.
func rollup(days []models.DaySummary) totals {
	var (
		t                           totals
		scoreSum, waterSum          float64
		habitsDone, habitsTotal     int
		cleaningDone, cleaningTotal int
	)
	for _, d := range days {
		scoreSum += d.Score
		waterSum += d.WaterOunces
		habitsDone += d.HabitsCompleted
		habitsTotal += d.HabitsTotal
		cleaningDone += d.CleaningTasksCompleted
		cleaningTotal += d.CleaningTasksTotal
		if d.PagesRead > 0 {
			t.daysRead++
		}
		t.pagesRead += d.PagesRead
	}
	if n := len(days); n > 0 {
		t.averageScore = scoreSum / float64(n)
		t.averageWater = waterSum / float64(n)
	}
	t.habitCompliance = score.HabitRatio(habitsDone, habitsTotal)
	t.cleaningCompliance = score.CleaningRatio(cleaningDone, cleaningTotal)
	return t
}

func WeeklySummary(all []models.DaySummary, date time.Time, firstWeekday time.Weekday) models.WeeklySummary {
	start := utils.StartOfWeek(date, firstWeekday)
	days := between(all, start, utils.AddDays(start, 7))
	t := rollup(days)
	return models.WeeklySummary{
		WeekStart:          start,
		WeekEnd:            utils.AddDays(start, 6),
		Days:               days,
		AverageScore:       t.averageScore,
		HabitCompliance:    t.habitCompliance,
		CleaningCompliance: t.cleaningCompliance,
		AverageWaterOunces: t.averageWater,
		DaysRead:           t.daysRead,
		TotalPagesRead:     t.pagesRead,
	}
}

func MonthlySummary(all []models.DaySummary, date time.Time) models.MonthlySummary {
	start := utils.StartOfMonth(date)
	days := between(all, start, start.AddDate(0, 1, 0))
	t := rollup(days)

	good := 0
	for _, d := range days {
		if score.IsGoodDay(d.Score) {
			good++
		}
	}
	return models.MonthlySummary{
		Month:              start,
		Days:               days,
		AverageScore:       t.averageScore,
		HabitCompliance:    t.habitCompliance,
		CleaningCompliance: t.cleaningCompliance,
		AverageWaterOunces: t.averageWater,
		DaysRead:           t.daysRead,
		TotalPagesRead:     t.pagesRead,
		GoodDays:           good,
		BestStreak:         BestStreak(days),
	}
}

// RecentSummaries returns up to count summaries, newest first.
func RecentSummaries(all []models.DaySummary, count int) []models.DaySummary {
	if count <= 0 {
		return nil
	}
	out := sorted(all)
	slices.Reverse(out)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

// AverageScore averages the summaries from the last lastDays calendar days
// ending today. Days without a summary are not counted; no summaries gives 0.
func AverageScore(all []models.DaySummary, lastDays int, today time.Time) float64 {
	if lastDays <= 0 {
		return 0
	}
	end := utils.AddDays(utils.StartOfDay(today), 1)
	days := between(all, utils.AddDays(end, -lastDays), end)
	return rollup(days).averageScore
}

// CurrentStreak counts consecutive good days walking back from today. A
// missing summary for today ends the streak at 0.
func CurrentStreak(all []models.DaySummary, today time.Time) int {
	good := make(map[string]bool, len(all))
	for _, s := range all {
		if score.IsGoodDay(s.Score) {
			good[utils.DayKey(s.Date.In(today.Location()))] = true
		}
	}

	streak := 0
	for day := utils.StartOfDay(today); good[utils.DayKey(day)]; day = utils.AddDays(day, -1) {
		streak++
	}
	return streak
}

// BestStreak scans all summaries in date order for the longest run of good
// days on consecutive calendar dates.
func BestStreak(all []models.DaySummary) int {
	var (
		best, running int
		prev          time.Time
	)
	for _, s := range sorted(all) {
		if !score.IsGoodDay(s.Score) {
			running = 0
			continue
		}
		if running > 0 && utils.DaysBetween(prev, s.Date) == 1 {
			running++
		} else {
			running = 1
		}
		prev = s.Date
		best = max(best, running)
	}
	return best
}

// WeeklyWorkoutSummary totals the workouts in the week containing date.
func WeeklyWorkoutSummary(workouts []models.Workout, date time.Time, firstWeekday time.Weekday) models.WeeklyWorkoutSummary {
	start := utils.StartOfWeek(date, firstWeekday)
	end := utils.AddDays(start, 7)
	summary := models.WeeklyWorkoutSummary{WeekStart: start, WeekEnd: utils.AddDays(start, 6)}

	active := make(map[string]bool)
	for _, w := range workouts {
		d := w.Date.In(start.Location())
		if d.Before(start) || !d.Before(end) {
			continue
		}
		summary.Count++
		summary.TotalMinutes += w.DurationMinutes
		active[utils.DayKey(d)] = true
	}
	summary.ActiveDays = len(active)
	return summary
}
