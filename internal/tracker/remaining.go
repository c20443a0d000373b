package tracker

import (
	"time"

	"github.com/julianstephens/tally/internal/aggregator"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/notifier"
	"github.com/julianstephens/tally/internal/recurrence"
)

// Remaining lists what is still open today, for reminders.
func (t *Tracker) Remaining(now time.Time) notifier.Remaining {
	snap := t.Snapshot()
	var r notifier.Remaining

	for _, h := range habits.ForToday(snap.Habits, now) {
		if log, ok := habits.LogFor(snap.HabitLogs, h.ID, now); !ok || !log.Completed {
			r.Habits = append(r.Habits, h)
		}
	}
	for _, task := range recurrence.TasksForDay(snap.Tasks, snap.TaskLogs, now, now) {
		if !recurrence.IsCompletedOn(snap.TaskLogs, task.ID, now) {
			r.Tasks = append(r.Tasks, task)
		}
	}

	target := snap.WaterTarget
	var drunk float64
	if w, ok := aggregator.WaterFor(snap.Water, now); ok {
		drunk = w.TotalOunces
		if w.TargetOunces > 0 {
			target = w.TargetOunces
		}
	}
	r.WaterOunces = max(target-drunk, 0)

	pages, minutes := aggregator.ReadingFor(snap.Sessions, now)
	r.NeedsRead = pages == 0 && minutes == 0
	return r
}

