// Package tracker is the single writer of tally's collections. Every
// mutation takes an explicit now, updates the affected collection under its
// lock and then recomputes that day's summary.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/aggregator"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/history"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/utils"
	"github.com/julianstephens/tally/internal/widget"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrHabitNotFound = habits.ErrNotFound
	ErrBookNotFound  = errors.New("book not found")
	ErrGoalNotFound  = errors.New("goal not found")
)

type Options struct {
	// WaterTargetOz is captured on the first water entry of each day.
	WaterTargetOz float64
	FirstWeekday  time.Weekday
	// WidgetPath optionally mirrors the widget snapshot to a JSON file.
	WidgetPath string
}

type Tracker struct {
	opts Options

	tasks     *storage.Collection[models.RecurringTask]
	taskLogs  *storage.Collection[models.CompletionLog]
	habits    *storage.Collection[models.HabitTemplate]
	habitLogs *storage.Collection[models.HabitLog]
	water     *storage.Collection[models.WaterLog]
	books     *storage.Collection[models.Book]
	sessions  *storage.Collection[models.ReadingSession]
	workouts  *storage.Collection[models.Workout]
	mobility  *storage.Collection[models.MobilityLog]
	goals     *storage.Collection[models.Goal]
	summaries *storage.Collection[models.DaySummary]

	aggregator *aggregator.Aggregator
	rollup     *history.Rollup
	widget     *widget.Exporter
}

func New(p storage.Provider, opts Options) *Tracker {
	if opts.WaterTargetOz <= 0 {
		opts.WaterTargetOz = constants.DefaultWaterTargetOz
	}
	locks := storage.NewLocks()
	return &Tracker{
		opts:       opts,
		tasks:      storage.NewCollection[models.RecurringTask](p, locks, constants.KeyCleaningTasks),
		taskLogs:   storage.NewCollection[models.CompletionLog](p, locks, constants.KeyCleaningLogs),
		habits:     storage.NewCollection[models.HabitTemplate](p, locks, constants.KeyHabitTemplates),
		habitLogs:  storage.NewCollection[models.HabitLog](p, locks, constants.KeyHabitLogs),
		water:      storage.NewCollection[models.WaterLog](p, locks, constants.KeyWaterLogs),
		books:      storage.NewCollection[models.Book](p, locks, constants.KeyBooks),
		sessions:   storage.NewCollection[models.ReadingSession](p, locks, constants.KeyReadingSessions),
		workouts:   storage.NewCollection[models.Workout](p, locks, constants.KeyWorkouts),
		mobility:   storage.NewCollection[models.MobilityLog](p, locks, constants.KeyMobilityLogs),
		goals:      storage.NewCollection[models.Goal](p, locks, constants.KeyGoals),
		summaries:  storage.NewCollection[models.DaySummary](p, locks, constants.KeyDaySummaries),
		aggregator: aggregator.New(p, locks),
		rollup:     history.NewRollup(p, locks, opts.FirstWeekday),
		widget:     widget.NewExporter(p, locks, opts.WidgetPath),
	}
}

// History exposes the read side over the same store.
func (t *Tracker) History() *history.Rollup {
	return t.rollup
}

func (t *Tracker) Widget() *widget.Exporter {
	return t.widget
}

// swallow drops persistence failures after logging them. Any other error
// is returned to the caller.
func swallow(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrWrite) {
		logger.Error("Persistence failed", "op", op, "error", err)
		return nil
	}
	return err
}

// Snapshot gathers the aggregator inputs.
func (t *Tracker) Snapshot() aggregator.Snapshot {
	return aggregator.Snapshot{
		Habits:      t.habits.All(),
		HabitLogs:   t.habitLogs.All(),
		Tasks:       t.tasks.All(),
		TaskLogs:    t.taskLogs.All(),
		Water:       t.water.All(),
		Sessions:    t.sessions.All(),
		WaterTarget: t.opts.WaterTargetOz,
	}
}

// RecomputeDay rebuilds the summary for date. When date is today the
// widget snapshot is refreshed as well.
func (t *Tracker) RecomputeDay(date, now time.Time) (models.DaySummary, error) {
	snap := t.Snapshot()
	summary, err := t.aggregator.UpdateSummary(date, now, snap)
	if err != nil {
		if err = swallow("recompute", err); err != nil {
			return models.DaySummary{}, err
		}
		summary = aggregator.Build(date, now, snap)
	}
	if utils.SameDay(now, date) {
		t.widget.Export(widget.Build(summary, snap.Tasks, now))
	}
	return summary, nil
}

// recompute is the fire-and-forget variant used after mutations.
func (t *Tracker) recompute(date, now time.Time) {
	if _, err := t.RecomputeDay(date, now); err != nil {
		logger.Warn("Failed to recompute day summary", "date", utils.DayKey(date), "error", err)
	}
}

func (t *Tracker) SaveReflection(date time.Time, note string, now time.Time) (models.DaySummary, error) {
	summary, err := t.aggregator.SaveReflection(date, strings.TrimSpace(note), now)
	return summary, swallow("save reflection", err)
}

// RefreshWidget recomputes today and exports the snapshot.
func (t *Tracker) RefreshWidget(now time.Time) (models.WidgetSnapshot, error) {
	summary, err := t.RecomputeDay(now, now)
	if err != nil {
		return models.WidgetSnapshot{}, err
	}
	return widget.Build(summary, t.tasks.All(), now), nil
}

func notFound(sentinel error, ref string) error {
	return fmt.Errorf("%w: %s", sentinel, ref)
}

// matches reports whether ref names an item by ID or case-insensitive title.
func matches(id, title, ref string) bool {
	ref = strings.TrimSpace(ref)
	return id == ref || strings.EqualFold(title, ref)
}
