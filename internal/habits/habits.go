// Package habits decides which habits apply on a given day and derives
// completion counts and streaks from the habit log.
package habits

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

var (
	ErrCoreHabit = errors.New("core habits cannot be deleted, deactivate them instead")
	ErrNotFound  = errors.New("habit not found")
)

// Weekday converts t's weekday to the 1=Sunday..7=Saturday numbering used
// by frequency rules.
func Weekday(t time.Time) int {
	return int(t.Weekday()) + 1
}

// IsActiveOn reports whether the habit's frequency rule applies on date.
// Weekly-count and custom habits show every day.
func IsActiveOn(habit models.HabitTemplate, date time.Time) bool {
	switch habit.Frequency.Kind {
	case models.FrequencySpecificWeekdays:
		return slices.Contains(habit.Frequency.Weekdays, Weekday(date))
	default:
		return true
	}
}

// ForToday returns the active habits that apply on date. Its length is the
// denominator of the day's habit ratio.
func ForToday(habits []models.HabitTemplate, date time.Time) []models.HabitTemplate {
	var out []models.HabitTemplate
	for _, h := range habits {
		if h.IsActive && IsActiveOn(h, date) {
			out = append(out, h)
		}
	}
	return out
}

func LogFor(logs []models.HabitLog, habitID string, date time.Time) (models.HabitLog, bool) {
	if i := indexOf(logs, habitID, date); i >= 0 {
		return logs[i], true
	}
	return models.HabitLog{}, false
}

func indexOf(logs []models.HabitLog, habitID string, date time.Time) int {
	for i, l := range logs {
		if l.HabitID == habitID && utils.SameDay(date, l.Date) {
			return i
		}
	}
	return -1
}

// CompletedCount counts habits applicable on date with a completed log.
func CompletedCount(habits []models.HabitTemplate, logs []models.HabitLog, date time.Time) int {
	count := 0
	for _, h := range ForToday(habits, date) {
		if l, ok := LogFor(logs, h.ID, date); ok && l.Completed {
			count++
		}
	}
	return count
}

// upsert applies fn to the log for (habit, date), creating it first if
// needed. The input slice is not modified.
func upsert(logs []models.HabitLog, habitID string, date, now time.Time, fn func(*models.HabitLog)) ([]models.HabitLog, models.HabitLog) {
	out := slices.Clone(logs)
	i := indexOf(out, habitID, date)
	if i < 0 {
		out = append(out, models.HabitLog{
			ID:      uuid.NewString(),
			HabitID: habitID,
			Date:    utils.StartOfDay(date),
		})
		i = len(out) - 1
	}
	fn(&out[i])
	out[i].UpdatedAt = now
	return out, out[i]
}

// Toggle creates a completed log for date or flips the existing one.
func Toggle(logs []models.HabitLog, habit models.HabitTemplate, date, now time.Time) ([]models.HabitLog, models.HabitLog) {
	_, existed := LogFor(logs, habit.ID, date)
	return upsert(logs, habit.ID, date, now, func(l *models.HabitLog) {
		if existed {
			l.Completed = !l.Completed
		} else {
			l.Completed = true
		}
	})
}

// LogValue records a numeric value. When the habit has a target the log is
// completed iff value reaches it.
func LogValue(logs []models.HabitLog, habit models.HabitTemplate, date time.Time, value float64, now time.Time) ([]models.HabitLog, models.HabitLog) {
	return upsert(logs, habit.ID, date, now, func(l *models.HabitLog) {
		v := value
		l.NumericValue = &v
		if habit.TargetValue != nil {
			l.Completed = value >= *habit.TargetValue
		}
	})
}

// LogDuration records minutes spent. It never completes the habit.
func LogDuration(logs []models.HabitLog, habit models.HabitTemplate, date time.Time, minutes int, now time.Time) ([]models.HabitLog, models.HabitLog) {
	return upsert(logs, habit.ID, date, now, func(l *models.HabitLog) {
		m := minutes
		l.DurationMinutes = &m
	})
}

// Streak counts consecutive completed days walking back from asOf. An
// unlogged asOf yields 0.
func Streak(logs []models.HabitLog, habitID string, asOf time.Time) int {
	done := make(map[string]bool)
	for _, l := range logs {
		if l.HabitID == habitID && l.Completed {
			done[utils.DayKey(l.Date.In(asOf.Location()))] = true
		}
	}

	streak := 0
	for day := utils.StartOfDay(asOf); done[utils.DayKey(day)]; day = utils.AddDays(day, -1) {
		streak++
	}
	return streak
}

// WeeklyCompletionCount counts completed days in the week containing date.
func WeeklyCompletionCount(logs []models.HabitLog, habitID string, date time.Time, firstWeekday time.Weekday) int {
	start := utils.StartOfWeek(date, firstWeekday)
	end := utils.AddDays(start, 7)

	count := 0
	for _, l := range logs {
		if l.HabitID != habitID || !l.Completed {
			continue
		}
		d := l.Date.In(date.Location())
		if !d.Before(start) && d.Before(end) {
			count++
		}
	}
	return count
}

// WeeklyTargetMet reports whether a weekly-count habit reached its count in
// the week containing date. Other kinds always return false.
func WeeklyTargetMet(habit models.HabitTemplate, logs []models.HabitLog, date time.Time, firstWeekday time.Weekday) bool {
	if habit.Frequency.Kind != models.FrequencyWeeklyCount {
		return false
	}
	return WeeklyCompletionCount(logs, habit.ID, date, firstWeekday) >= habit.Frequency.Count
}

func find(habits []models.HabitTemplate, id string) int {
	return slices.IndexFunc(habits, func(h models.HabitTemplate) bool { return h.ID == id })
}

// Deactivate hides a habit from daily lists while keeping its history.
func Deactivate(habits []models.HabitTemplate, id string) ([]models.HabitTemplate, error) {
	i := find(habits, id)
	if i < 0 {
		return habits, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := slices.Clone(habits)
	out[i].IsActive = false
	return out, nil
}

// Remove deletes a non-core habit.
func Remove(habits []models.HabitTemplate, id string) ([]models.HabitTemplate, error) {
	i := find(habits, id)
	if i < 0 {
		return habits, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if habits[i].IsCore {
		return habits, fmt.Errorf("%w: %s", ErrCoreHabit, habits[i].Title)
	}
	return slices.Delete(slices.Clone(habits), i, i+1), nil
}

// PruneLogs drops every log belonging to habitID.
func PruneLogs(logs []models.HabitLog, habitID string) []models.HabitLog {
	return slices.DeleteFunc(slices.Clone(logs), func(l models.HabitLog) bool {
		return l.HabitID == habitID
	})
}

// FindByTitle looks a habit up by ID or case-insensitive title.
func FindByTitle(habits []models.HabitTemplate, ref string) (models.HabitTemplate, bool) {
	ref = strings.TrimSpace(ref)
	for _, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Title, ref) {
			return h, true
		}
	}
	return models.HabitTemplate{}, false
}
