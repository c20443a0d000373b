package tracker

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/recurrence"
)

func (t *Tracker) Tasks() []models.RecurringTask {
	return t.tasks.All()
}

func (t *Tracker) TaskLogs() []models.CompletionLog {
	return t.taskLogs.All()
}

func (t *Tracker) FindTask(ref string) (models.RecurringTask, error) {
	for _, task := range t.tasks.All() {
		if matches(task.ID, task.Title, ref) {
			return task, nil
		}
	}
	return models.RecurringTask{}, notFound(ErrTaskNotFound, ref)
}

// TasksForToday is the capped, ordered list shown to the user.
func (t *Tracker) TasksForToday(now time.Time) []models.RecurringTask {
	return recurrence.TasksForToday(t.tasks.All(), now)
}

func (t *Tracker) AddTask(title string, rule models.RecurrenceRule, estimatedMinutes *int, now time.Time) (models.RecurringTask, error) {
	task := models.RecurringTask{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(title),
		Rule:             rule,
		EstimatedMinutes: estimatedMinutes,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := task.Validate(); err != nil {
		return models.RecurringTask{}, err
	}

	_, err := t.tasks.Update(func(tasks []models.RecurringTask) ([]models.RecurringTask, error) {
		return append(tasks, task), nil
	})
	if err := swallow("add task", err); err != nil {
		return models.RecurringTask{}, err
	}
	t.recompute(now, now)
	return task, nil
}

// updateTask applies fn to the task named by ref and saves the result.
func (t *Tracker) updateTask(op, ref string, fn func(models.RecurringTask) models.RecurringTask) (models.RecurringTask, error) {
	var updated models.RecurringTask
	_, err := t.tasks.Update(func(tasks []models.RecurringTask) ([]models.RecurringTask, error) {
		i := slices.IndexFunc(tasks, func(task models.RecurringTask) bool {
			return matches(task.ID, task.Title, ref)
		})
		if i < 0 {
			return nil, notFound(ErrTaskNotFound, ref)
		}
		tasks[i] = fn(tasks[i])
		updated = tasks[i]
		return tasks, nil
	})
	if err := swallow(op, err); err != nil {
		return models.RecurringTask{}, err
	}
	return updated, nil
}

// CompleteTask marks the task done, appends a completion log and
// recomputes today.
func (t *Tracker) CompleteTask(ref string, durationMinutes *int, note string, now time.Time) (models.RecurringTask, error) {
	task, err := t.updateTask("complete task", ref, func(task models.RecurringTask) models.RecurringTask {
		return recurrence.Complete(task, now)
	})
	if err != nil {
		return models.RecurringTask{}, err
	}

	log := models.CompletionLog{
		ID:              uuid.NewString(),
		ParentID:        task.ID,
		CompletedDate:   now,
		DurationMinutes: durationMinutes,
		Note:            strings.TrimSpace(note),
	}
	_, err = t.taskLogs.Update(func(logs []models.CompletionLog) ([]models.CompletionLog, error) {
		return append(logs, log), nil
	})
	if err := swallow("log completion", err); err != nil {
		return models.RecurringTask{}, err
	}

	t.recompute(now, now)
	return task, nil
}

// SnoozeTask hides the task until the given instant.
func (t *Tracker) SnoozeTask(ref string, until, now time.Time) (models.RecurringTask, error) {
	if !until.After(now) {
		return models.RecurringTask{}, fmt.Errorf("%w: snooze must end in the future", models.ErrInvalid)
	}
	task, err := t.updateTask("snooze task", ref, func(task models.RecurringTask) models.RecurringTask {
		return recurrence.Snooze(task, until, now)
	})
	if err != nil {
		return models.RecurringTask{}, err
	}
	t.recompute(now, now)
	return task, nil
}

func (t *Tracker) SnoozeTaskOneDay(ref string, now time.Time) (models.RecurringTask, error) {
	return t.SnoozeTask(ref, now.AddDate(0, 0, 1), now)
}

// DeactivateTask soft-deletes the task.
func (t *Tracker) DeactivateTask(ref string, now time.Time) (models.RecurringTask, error) {
	task, err := t.updateTask("deactivate task", ref, func(task models.RecurringTask) models.RecurringTask {
		task.IsActive = false
		task.UpdatedAt = now
		return task
	})
	if err != nil {
		return models.RecurringTask{}, err
	}
	t.recompute(now, now)
	return task, nil
}

// DeleteTask removes the task. Its completion history is kept.
func (t *Tracker) DeleteTask(ref string, now time.Time) error {
	_, err := t.tasks.Update(func(tasks []models.RecurringTask) ([]models.RecurringTask, error) {
		i := slices.IndexFunc(tasks, func(task models.RecurringTask) bool {
			return matches(task.ID, task.Title, ref)
		})
		if i < 0 {
			return nil, notFound(ErrTaskNotFound, ref)
		}
		return slices.Delete(tasks, i, i+1), nil
	})
	if err := swallow("delete task", err); err != nil {
		return err
	}
	t.recompute(now, now)
	return nil
}
