package aggregator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/recurrence"
	"github.com/julianstephens/tally/internal/storage"
)

var today = time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)

func dailyHabit(id string) models.HabitTemplate {
	return models.HabitTemplate{
		ID:        id,
		Title:     id,
		Frequency: models.FrequencyRule{Kind: models.FrequencyDaily},
		InputType: models.InputBoolean,
		IsActive:  true,
	}
}

func overdueTask(id string) models.RecurringTask {
	last := today.AddDate(0, 0, -10)
	return models.RecurringTask{ID: id, Title: id, Rule: models.Weekly(), IsActive: true, LastCompletedDate: &last}
}

func baseSnapshot() Snapshot {
	return Snapshot{
		Habits:      []models.HabitTemplate{dailyHabit("a"), dailyHabit("b")},
		Tasks:       []models.RecurringTask{overdueTask("floors"), overdueTask("sheets")},
		WaterTarget: 64,
	}
}

func TestBuildCounts(t *testing.T) {
	snap := baseSnapshot()
	snap.HabitLogs, _ = habits.Toggle(nil, snap.Habits[0], today, today)

	floors := recurrence.Complete(snap.Tasks[0], today)
	snap.Tasks[0] = floors
	snap.TaskLogs = []models.CompletionLog{{ID: "c1", ParentID: "floors", CompletedDate: today}}

	snap.Water = []models.WaterLog{{ID: "w", Date: today, TotalOunces: 32, TargetOunces: 80}}
	snap.Sessions = []models.ReadingSession{
		{ID: "r1", Date: today, Pages: 10, Minutes: 15},
		{ID: "r2", Date: today, Pages: 5},
		{ID: "r3", Date: today.AddDate(0, 0, -1), Pages: 100},
	}

	s := Build(today, today, snap)
	assert.Equal(t, 1, s.HabitsCompleted)
	assert.Equal(t, 2, s.HabitsTotal)
	assert.Equal(t, 1, s.CleaningTasksCompleted)
	assert.Equal(t, 2, s.CleaningTasksTotal)
	assert.Equal(t, 32.0, s.WaterOunces)
	assert.Equal(t, 80.0, s.WaterTarget, "the day's captured target wins over the default")
	assert.Equal(t, 15, s.PagesRead)
	assert.Equal(t, 15, s.MinutesRead)
	// 0.5*50 + 0.5*20 + 0.4*15 + 15
	assert.InDelta(t, 56.0, s.Score, 1e-9)
	assert.True(t, s.Date.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
}

func TestBuildZeroHabitsAndTasks(t *testing.T) {
	s := Build(today, today, Snapshot{WaterTarget: 64})
	assert.Equal(t, 0, s.HabitsTotal)
	assert.Equal(t, 0, s.CleaningTasksTotal)
	// No habits earn nothing, no cleaning tasks earn the full 20.
	assert.InDelta(t, 20.0, s.Score, 1e-9)
}

func TestBuildCleaningCappedAtThree(t *testing.T) {
	snap := baseSnapshot()
	snap.Tasks = append(snap.Tasks, overdueTask("oven"), overdueTask("windows"), overdueTask("fridge"))
	s := Build(today, today, snap)
	assert.Equal(t, constants.MaxTasksForToday, s.CleaningTasksTotal)
}

func TestBuildMissedHabitLowersScore(t *testing.T) {
	snap := Snapshot{Habits: []models.HabitTemplate{dailyHabit("a")}, WaterTarget: 64}
	missed := Build(today, today, snap)

	snap.HabitLogs, _ = habits.Toggle(nil, snap.Habits[0], today, today)
	done := Build(today, today, snap)

	assert.Equal(t, 0, missed.HabitsCompleted)
	assert.Equal(t, 1, done.HabitsCompleted)
	assert.InDelta(t, 50.0, done.Score-missed.Score, 1e-9)
}

func TestUpdateSummaryUpserts(t *testing.T) {
	store := storage.NewMemoryStore()
	locks := storage.NewLocks()
	agg := New(store, locks)

	first, err := agg.UpdateSummary(today, today, baseSnapshot())
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	later := today.Add(2 * time.Hour)
	snap := baseSnapshot()
	snap.HabitLogs, _ = habits.Toggle(nil, snap.Habits[0], later, later)
	second, err := agg.UpdateSummary(later, later, snap)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.True(t, second.UpdatedAt.Equal(later))
	assert.Equal(t, 1, second.HabitsCompleted)

	all := storage.NewCollection[models.DaySummary](store, locks, constants.KeyDaySummaries).All()
	assert.Len(t, all, 1)
}

func TestReflectionIsIndependentOfRecompute(t *testing.T) {
	agg := New(storage.NewMemoryStore(), storage.NewLocks())

	noted, err := agg.SaveReflection(today, "tired but ok", today)
	require.NoError(t, err)
	assert.Equal(t, 0.0, noted.Score)
	assert.Equal(t, 0, noted.HabitsTotal)

	recomputed, err := agg.UpdateSummary(today, today.Add(time.Minute), baseSnapshot())
	require.NoError(t, err)
	assert.Equal(t, noted.ID, recomputed.ID)
	assert.Equal(t, "tired but ok", recomputed.ReflectionNote)
	assert.Equal(t, 2, recomputed.HabitsTotal)

	edited, err := agg.SaveReflection(today, "better", today.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, recomputed.Score, edited.Score)
	assert.Equal(t, "better", edited.ReflectionNote)
}

func TestConcurrentUpsertsKeepOneRecord(t *testing.T) {
	store := storage.NewMemoryStore()
	locks := storage.NewLocks()
	agg := New(store, locks)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = agg.UpdateSummary(today, today, baseSnapshot())
			} else {
				_, _ = agg.SaveReflection(today, "note", today)
			}
		}()
	}
	wg.Wait()

	all := storage.NewCollection[models.DaySummary](store, locks, constants.KeyDaySummaries).All()
	require.Len(t, all, 1)
	assert.Equal(t, "note", all[0].ReflectionNote)
}
