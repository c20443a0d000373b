package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

func (t *Tracker) Habits() []models.HabitTemplate {
	return t.habits.All()
}

func (t *Tracker) HabitLogs() []models.HabitLog {
	return t.habitLogs.All()
}

func (t *Tracker) FindHabit(ref string) (models.HabitTemplate, error) {
	if h, ok := habits.FindByTitle(t.habits.All(), ref); ok {
		return h, nil
	}
	return models.HabitTemplate{}, notFound(ErrHabitNotFound, ref)
}

// HabitsForToday returns the habits applicable on date.
func (t *Tracker) HabitsForToday(date time.Time) []models.HabitTemplate {
	return habits.ForToday(t.habits.All(), date)
}

// EnsureCoreHabits seeds the core templates on first launch and saves
// immediately when anything was added.
func (t *Tracker) EnsureCoreHabits(now time.Time) ([]models.HabitTemplate, error) {
	var seeded bool
	all, err := t.habits.Update(func(existing []models.HabitTemplate) ([]models.HabitTemplate, error) {
		out, changed := habits.EnsureCoreHabits(existing, now)
		seeded = changed
		return out, nil
	})
	if err := swallow("seed habits", err); err != nil {
		return nil, err
	}
	if seeded {
		logger.Info("Seeded core habits", "count", len(habits.CoreHabits()))
	}
	return all, nil
}

func (t *Tracker) AddHabit(h models.HabitTemplate, now time.Time) (models.HabitTemplate, error) {
	h.ID = uuid.NewString()
	h.Title = strings.TrimSpace(h.Title)
	h.IsActive = true
	h.IsCore = false
	h.CreatedAt = now
	if h.InputType == "" {
		h.InputType = models.InputBoolean
	}
	if h.Frequency.Kind == "" {
		h.Frequency.Kind = models.FrequencyDaily
	}
	if err := h.Validate(); err != nil {
		return models.HabitTemplate{}, err
	}

	_, err := t.habits.Update(func(all []models.HabitTemplate) ([]models.HabitTemplate, error) {
		return append(all, h), nil
	})
	if err := swallow("add habit", err); err != nil {
		return models.HabitTemplate{}, err
	}
	t.recompute(now, now)
	return h, nil
}

// logHabit resolves ref and applies one of the habits log mutations.
func (t *Tracker) logHabit(op, ref string, date, now time.Time,
	fn func([]models.HabitLog, models.HabitTemplate) ([]models.HabitLog, models.HabitLog),
) (models.HabitLog, error) {
	habit, err := t.FindHabit(ref)
	if err != nil {
		return models.HabitLog{}, err
	}

	var log models.HabitLog
	_, err = t.habitLogs.Update(func(logs []models.HabitLog) ([]models.HabitLog, error) {
		out, l := fn(logs, habit)
		log = l
		return out, nil
	})
	if err := swallow(op, err); err != nil {
		return models.HabitLog{}, err
	}
	t.recompute(date, now)
	return log, nil
}

func (t *Tracker) ToggleHabit(ref string, date, now time.Time) (models.HabitLog, error) {
	return t.logHabit("toggle habit", ref, date, now, func(logs []models.HabitLog, h models.HabitTemplate) ([]models.HabitLog, models.HabitLog) {
		return habits.Toggle(logs, h, date, now)
	})
}

func (t *Tracker) LogHabitValue(ref string, date time.Time, value float64, now time.Time) (models.HabitLog, error) {
	return t.logHabit("log habit value", ref, date, now, func(logs []models.HabitLog, h models.HabitTemplate) ([]models.HabitLog, models.HabitLog) {
		return habits.LogValue(logs, h, date, value, now)
	})
}

func (t *Tracker) LogHabitDuration(ref string, date time.Time, minutes int, now time.Time) (models.HabitLog, error) {
	return t.logHabit("log habit duration", ref, date, now, func(logs []models.HabitLog, h models.HabitTemplate) ([]models.HabitLog, models.HabitLog) {
		return habits.LogDuration(logs, h, date, minutes, now)
	})
}

func (t *Tracker) HabitStreak(ref string, asOf time.Time) (int, error) {
	h, err := t.FindHabit(ref)
	if err != nil {
		return 0, err
	}
	return habits.Streak(t.habitLogs.All(), h.ID, asOf), nil
}

func (t *Tracker) HabitWeeklyCount(ref string, date time.Time) (int, error) {
	h, err := t.FindHabit(ref)
	if err != nil {
		return 0, err
	}
	return habits.WeeklyCompletionCount(t.habitLogs.All(), h.ID, date, t.opts.FirstWeekday), nil
}

func (t *Tracker) DeactivateHabit(ref string, now time.Time) error {
	h, err := t.FindHabit(ref)
	if err != nil {
		return err
	}
	_, err = t.habits.Update(func(all []models.HabitTemplate) ([]models.HabitTemplate, error) {
		return habits.Deactivate(all, h.ID)
	})
	if err := swallow("deactivate habit", err); err != nil {
		return err
	}
	t.recompute(now, now)
	return nil
}

// DeleteHabit removes a non-core habit together with its logs.
func (t *Tracker) DeleteHabit(ref string, now time.Time) error {
	h, err := t.FindHabit(ref)
	if err != nil {
		return err
	}
	_, err = t.habits.Update(func(all []models.HabitTemplate) ([]models.HabitTemplate, error) {
		return habits.Remove(all, h.ID)
	})
	if err := swallow("delete habit", err); err != nil {
		return err
	}

	_, err = t.habitLogs.Update(func(logs []models.HabitLog) ([]models.HabitLog, error) {
		return habits.PruneLogs(logs, h.ID), nil
	})
	if err := swallow("prune habit logs", err); err != nil {
		return err
	}
	t.recompute(now, now)
	return nil
}
