// Package aggregator folds one day's logs into the persisted DaySummary for
// that date.
package aggregator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/recurrence"
	"github.com/julianstephens/tally/internal/score"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/utils"
)

// Snapshot is everything the aggregator reads for one day. WaterTarget is
// used when the day has no water log yet.
type Snapshot struct {
	Habits      []models.HabitTemplate
	HabitLogs   []models.HabitLog
	Tasks       []models.RecurringTask
	TaskLogs    []models.CompletionLog
	Water       []models.WaterLog
	Sessions    []models.ReadingSession
	WaterTarget float64
}

// WaterFor returns the water log recorded on date.
func WaterFor(logs []models.WaterLog, date time.Time) (models.WaterLog, bool) {
	for _, w := range logs {
		if utils.SameDay(date, w.Date) {
			return w, true
		}
	}
	return models.WaterLog{}, false
}

// ReadingFor sums pages and minutes of the sessions on date.
func ReadingFor(sessions []models.ReadingSession, date time.Time) (pages, minutes int) {
	for _, s := range sessions {
		if utils.SameDay(date, s.Date) {
			pages += s.Pages
			minutes += s.Minutes
		}
	}
	return pages, minutes
}

// Build computes the counts and score for date. The result carries no ID or
// timestamps.
func Build(date, now time.Time, snap Snapshot) models.DaySummary {
	day := utils.StartOfDay(date)
	summary := models.DaySummary{Date: day}

	summary.HabitsTotal = len(habits.ForToday(snap.Habits, day))
	summary.HabitsCompleted = habits.CompletedCount(snap.Habits, snap.HabitLogs, day)

	selected := recurrence.TasksForDay(snap.Tasks, snap.TaskLogs, day, now)
	summary.CleaningTasksTotal = len(selected)
	for _, t := range selected {
		if recurrence.IsCompletedOn(snap.TaskLogs, t.ID, day) {
			summary.CleaningTasksCompleted++
		}
	}

	summary.WaterTarget = snap.WaterTarget
	if w, ok := WaterFor(snap.Water, day); ok {
		summary.WaterOunces = w.TotalOunces
		if w.TargetOunces > 0 {
			summary.WaterTarget = w.TargetOunces
		}
	}

	summary.PagesRead, summary.MinutesRead = ReadingFor(snap.Sessions, day)

	summary.Score = score.Calculate(
		score.HabitRatio(summary.HabitsCompleted, summary.HabitsTotal),
		score.CleaningRatio(summary.CleaningTasksCompleted, summary.CleaningTasksTotal),
		score.WaterRatio(summary.WaterOunces, summary.WaterTarget),
		summary.DidRead(),
	)
	return summary
}

// Aggregator upserts day summaries. All writes go through the
// day_summaries collection lock, so one calendar day never gets two records.
type Aggregator struct {
	summaries *storage.Collection[models.DaySummary]
}

func New(p storage.Provider, locks *storage.Locks) *Aggregator {
	return &Aggregator{
		summaries: storage.NewCollection[models.DaySummary](p, locks, constants.KeyDaySummaries),
	}
}

// UpdateSummary recomputes date from snap and upserts it. The existing ID,
// CreatedAt and ReflectionNote are kept.
func (a *Aggregator) UpdateSummary(date, now time.Time, snap Snapshot) (models.DaySummary, error) {
	built := Build(date, now, snap)
	return a.upsert(built.Date, now, func(s *models.DaySummary) {
		built.ID = s.ID
		built.CreatedAt = s.CreatedAt
		built.ReflectionNote = s.ReflectionNote
		*s = built
	})
}

// SaveReflection sets the note for date without touching the counts. A day
// with no summary yet gets a zero record.
func (a *Aggregator) SaveReflection(date time.Time, note string, now time.Time) (models.DaySummary, error) {
	return a.upsert(utils.StartOfDay(date), now, func(s *models.DaySummary) {
		s.ReflectionNote = note
	})
}

func (a *Aggregator) upsert(day, now time.Time, apply func(*models.DaySummary)) (models.DaySummary, error) {
	var result models.DaySummary
	_, err := a.summaries.Update(func(all []models.DaySummary) ([]models.DaySummary, error) {
		i := indexForDay(all, day)
		if i < 0 {
			all = append(all, models.DaySummary{
				ID:        uuid.NewString(),
				Date:      day,
				CreatedAt: now,
			})
			i = len(all) - 1
			logger.Debug("Creating day summary", "date", utils.DayKey(day))
		}
		apply(&all[i])
		all[i].UpdatedAt = now
		result = all[i]
		return all, nil
	})
	if err != nil {
		return models.DaySummary{}, fmt.Errorf("failed to upsert summary for %s: %w", utils.DayKey(day), err)
	}
	return result, nil
}

func indexForDay(all []models.DaySummary, day time.Time) int {
	for i, s := range all {
		if utils.SameDay(day, s.Date) {
			return i
		}
	}
	return -1
}
