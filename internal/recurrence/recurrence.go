// Package recurrence derives due dates for cleaning tasks on a fixed rotation
// and picks the handful of tasks to show for a day.
package recurrence

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

// NextDueDate returns CreatedAt for a task that was never completed, and
// otherwise the local midnight IntervalDays calendar days after the last
// completion.
func NextDueDate(task models.RecurringTask, now time.Time) time.Time {
	if task.LastCompletedDate == nil {
		return task.CreatedAt
	}
	last := utils.StartOfDay(task.LastCompletedDate.In(now.Location()))
	return utils.AddDays(last, task.Rule.IntervalDays())
}

// IsOverdue compares the date-only due date against the full instant now.
func IsOverdue(task models.RecurringTask, now time.Time) bool {
	return NextDueDate(task, now).Before(now)
}

func IsSnoozed(task models.RecurringTask, now time.Time) bool {
	return task.SnoozedUntil != nil && task.SnoozedUntil.After(now)
}

// IsDueToday is true when the task is not snoozed and is either due on now's
// calendar date or already overdue.
func IsDueToday(task models.RecurringTask, now time.Time) bool {
	if IsSnoozed(task, now) {
		return false
	}
	return utils.SameDay(now, NextDueDate(task, now)) || IsOverdue(task, now)
}

// DaysUntilDue returns the calendar-day distance from now to the due date.
// Negative values mean overdue. ok is false for tasks never completed.
func DaysUntilDue(task models.RecurringTask, now time.Time) (days int, ok bool) {
	if task.LastCompletedDate == nil {
		return 0, false
	}
	return utils.DaysBetween(now, NextDueDate(task, now)), true
}

// Complete marks the task done at now and clears any snooze.
func Complete(task models.RecurringTask, now time.Time) models.RecurringTask {
	completed := now
	task.LastCompletedDate = &completed
	task.SnoozedUntil = nil
	task.UpdatedAt = now
	return task
}

func Snooze(task models.RecurringTask, until, now time.Time) models.RecurringTask {
	task.SnoozedUntil = &until
	task.UpdatedAt = now
	return task
}

// SnoozeOneDay hides the task until the same time tomorrow.
func SnoozeOneDay(task models.RecurringTask, now time.Time) models.RecurringTask {
	return Snooze(task, utils.AddDays(now, 1), now)
}

// IsCompletedOn reports whether any completion of taskID was logged on date.
func IsCompletedOn(logs []models.CompletionLog, taskID string, date time.Time) bool {
	for _, l := range logs {
		if l.ParentID == taskID && utils.SameDay(date, l.CompletedDate) {
			return true
		}
	}
	return false
}

type candidate struct {
	task      models.RecurringTask
	completed bool
	overdue   bool
	days      int
}

// TasksForToday returns at most constants.MaxTasksForToday active tasks due
// today, overdue tasks first, then by ascending days until due.
func TasksForToday(tasks []models.RecurringTask, now time.Time) []models.RecurringTask {
	var picked []candidate
	for _, t := range tasks {
		if !t.IsActive || !IsDueToday(t, now) {
			continue
		}
		picked = append(picked, rank(t, now))
	}
	return selectTop(picked)
}

// TasksForDay is the selection the daily summary is graded against. It
// matches TasksForToday except that tasks completed on date stay selected
// and lead the list, so completing a task never shrinks the denominator.
// For past dates due-ness is evaluated at the end of that day.
func TasksForDay(tasks []models.RecurringTask, logs []models.CompletionLog, date, now time.Time) []models.RecurringTask {
	at := now
	if !utils.SameDay(date, now) {
		at = utils.AddDays(utils.StartOfDay(date), 1).Add(-time.Nanosecond)
	}

	var picked []candidate
	for _, t := range tasks {
		if !t.IsActive {
			continue
		}
		if IsCompletedOn(logs, t.ID, date) {
			picked = append(picked, candidate{task: t, completed: true})
			continue
		}
		if IsDueToday(t, at) {
			picked = append(picked, rank(t, at))
		}
	}
	return selectTop(picked)
}

func rank(t models.RecurringTask, now time.Time) candidate {
	days, _ := DaysUntilDue(t, now)
	return candidate{task: t, overdue: IsOverdue(t, now), days: days}
}

func selectTop(picked []candidate) []models.RecurringTask {
	sort.SliceStable(picked, func(i, j int) bool {
		a, b := picked[i], picked[j]
		if a.completed != b.completed {
			return a.completed
		}
		if a.overdue != b.overdue {
			return a.overdue
		}
		if a.days != b.days {
			return a.days < b.days
		}
		return strings.ToLower(a.task.Title) < strings.ToLower(b.task.Title)
	})

	if len(picked) > constants.MaxTasksForToday {
		picked = picked[:constants.MaxTasksForToday]
	}
	out := make([]models.RecurringTask, 0, len(picked))
	for _, c := range picked {
		out = append(out, c.task)
	}
	return out
}

// NextUp returns the most urgent task for now, if any.
func NextUp(tasks []models.RecurringTask, now time.Time) (models.RecurringTask, bool) {
	today := TasksForToday(tasks, now)
	if len(today) == 0 {
		return models.RecurringTask{}, false
	}
	return today[0], true
}
