package tracker

import (
	"fmt"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

func (t *Tracker) validationData() validation.Data {
	return validation.Data{
		Tasks:     t.tasks.All(),
		TaskLogs:  t.taskLogs.All(),
		Habits:    t.habits.All(),
		HabitLogs: t.habitLogs.All(),
		Water:     t.water.All(),
		Books:     t.books.All(),
		Sessions:  t.sessions.All(),
		Summaries: t.summaries.All(),
	}
}

// Check runs the integrity checks over every collection.
func (t *Tracker) Check() validation.ValidationResult {
	return validation.New().Validate(t.validationData())
}

// Repair merges duplicate day summaries and drops orphaned logs. Other
// conflicts need a human and are left alone.
func (t *Tracker) Repair() ([]validation.FixAction, error) {
	v := validation.New()
	var actions []validation.FixAction

	_, err := t.summaries.Update(func(all []models.DaySummary) ([]models.DaySummary, error) {
		fixed, done := validation.AutoFixDuplicateSummaries(v.ValidateSummaries(all).Conflicts, all)
		actions = append(actions, done...)
		return fixed, nil
	})
	if err != nil {
		return actions, fmt.Errorf("repair day summaries: %w", err)
	}

	known := t.habits.All()
	_, err = t.habitLogs.Update(func(all []models.HabitLog) ([]models.HabitLog, error) {
		fixed, done := validation.AutoFixOrphanHabitLogs(v.ValidateHabits(known, all).Of(validation.ConflictOrphanHabitLog), all)
		actions = append(actions, done...)
		return fixed, nil
	})
	if err != nil {
		return actions, fmt.Errorf("repair habit logs: %w", err)
	}

	tasks := t.tasks.All()
	_, err = t.taskLogs.Update(func(all []models.CompletionLog) ([]models.CompletionLog, error) {
		fixed, done := validation.AutoFixOrphanTaskLogs(v.ValidateTasks(tasks, all).Of(validation.ConflictOrphanTaskLog), all)
		actions = append(actions, done...)
		return fixed, nil
	})
	if err != nil {
		return actions, fmt.Errorf("repair completion logs: %w", err)
	}
	return actions, nil
}
