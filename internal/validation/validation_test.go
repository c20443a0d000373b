package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

func date(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateTasks(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.RecurringTask
		logs  []models.CompletionLog
		want  map[ConflictType]int
	}{
		{
			name: "clean",
			tasks: []models.RecurringTask{
				{ID: "1", Title: "Floors", Rule: models.Weekly(), IsActive: true},
				{ID: "2", Title: "Dishes", Rule: models.Daily(), IsActive: true},
			},
			logs: []models.CompletionLog{{ID: "l1", ParentID: "1", CompletedDate: date(1)}},
			want: map[ConflictType]int{},
		},
		{
			name: "duplicate active titles ignore case",
			tasks: []models.RecurringTask{
				{ID: "1", Title: "Floors", Rule: models.Weekly(), IsActive: true},
				{ID: "2", Title: "floors ", Rule: models.Weekly(), IsActive: true},
			},
			want: map[ConflictType]int{ConflictDuplicateTaskTitle: 1},
		},
		{
			name: "inactive duplicates are allowed",
			tasks: []models.RecurringTask{
				{ID: "1", Title: "Floors", Rule: models.Weekly(), IsActive: true},
				{ID: "2", Title: "Floors", Rule: models.Weekly(), IsActive: false},
			},
			want: map[ConflictType]int{},
		},
		{
			name: "custom rule below one day",
			tasks: []models.RecurringTask{
				{ID: "1", Title: "Windows", Rule: models.EveryNDays(0), IsActive: true},
			},
			want: map[ConflictType]int{ConflictInvalidTask: 1},
		},
		{
			name:  "orphan completion log",
			tasks: []models.RecurringTask{{ID: "1", Title: "Floors", Rule: models.Weekly(), IsActive: true}},
			logs:  []models.CompletionLog{{ID: "l1", ParentID: "gone", CompletedDate: date(1)}},
			want:  map[ConflictType]int{ConflictOrphanTaskLog: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateTasks(tt.tasks, tt.logs)
			assertConflicts(t, result, tt.want)
		})
	}
}

func TestValidateHabits(t *testing.T) {
	habits := []models.HabitTemplate{
		{ID: "h1", Title: "Make bed", InputType: models.InputBoolean, Frequency: models.FrequencyRule{Kind: models.FrequencyDaily}},
		{ID: "h2", Title: "Stretch", InputType: models.InputBoolean, Frequency: models.FrequencyRule{Kind: models.FrequencySpecificWeekdays}},
	}
	logs := []models.HabitLog{
		{ID: "a", HabitID: "h1", Date: date(2)},
		{ID: "b", HabitID: "h1", Date: date(2).Add(3 * time.Hour)},
		{ID: "c", HabitID: "h1", Date: date(3)},
		{ID: "d", HabitID: "missing", Date: date(3)},
	}

	result := New().ValidateHabits(habits, logs)
	assertConflicts(t, result, map[ConflictType]int{
		ConflictInvalidHabit:      1,
		ConflictDuplicateHabitLog: 1,
		ConflictOrphanHabitLog:    1,
	})

	dup := result.Of(ConflictDuplicateHabitLog)[0]
	if dup.Date != "2026-01-02" || len(dup.IDs) != 2 {
		t.Errorf("duplicate log conflict = %+v", dup)
	}
}

func TestValidateReading(t *testing.T) {
	books := []models.Book{
		{ID: "b1", Title: "Dune", TotalPages: 400, CurrentPage: 20},
		{ID: "b2", Title: "Empty", TotalPages: 0},
	}
	sessions := []models.ReadingSession{
		{ID: "s1", BookID: "b1", Date: date(1), Pages: 20},
		{ID: "s2", Date: date(1), Minutes: 10},
		{ID: "s3", BookID: "b9", Date: date(2), Pages: 5},
		{ID: "s4", BookID: "b1", Date: date(2), Pages: -1},
	}

	result := New().ValidateReading(books, sessions)
	assertConflicts(t, result, map[ConflictType]int{
		ConflictInvalidBook:    1,
		ConflictOrphanSession:  1,
		ConflictInvalidSession: 1,
	})
}

func TestValidateSummariesAndWater(t *testing.T) {
	data := Data{
		Summaries: []models.DaySummary{
			{ID: "s1", Date: date(1)},
			{ID: "s2", Date: date(2)},
			{ID: "s3", Date: date(1)},
		},
		Water: []models.WaterLog{
			{ID: "w1", Date: date(1)},
			{ID: "w2", Date: date(1)},
		},
	}

	result := New().Validate(data)
	assertConflicts(t, result, map[ConflictType]int{
		ConflictDuplicateSummary:  1,
		ConflictDuplicateWaterLog: 1,
	})

	if !strings.Contains(result.FormatReport(), "2026-01-01") {
		t.Errorf("report should name the day:\n%s", result.FormatReport())
	}
}

func TestFormatReportClean(t *testing.T) {
	result := New().Validate(Data{})
	if result.HasConflicts() {
		t.Fatalf("empty data reported conflicts: %v", result.Conflicts)
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestResultMethodsOnReturnedValue(t *testing.T) {
	logs := []models.HabitLog{{ID: "l1", HabitID: "gone", Date: date(1)}}

	orphans := New().ValidateHabits(nil, logs).Of(ConflictOrphanHabitLog)
	if len(orphans) != 1 || orphans[0].IDs[0] != "l1" {
		t.Fatalf("Of(orphan) = %+v", orphans)
	}
	if !New().ValidateHabits(nil, logs).HasConflicts() {
		t.Error("HasConflicts() = false for an orphan log")
	}
	if !strings.Contains(New().ValidateHabits(nil, logs).FormatReport(), "Conflicts detected") {
		t.Error("FormatReport() missing header")
	}
}

func TestAutoFixDuplicateSummaries(t *testing.T) {
	older := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)
	summaries := []models.DaySummary{
		{ID: "old", Date: date(1), Score: 40, ReflectionNote: "good day", UpdatedAt: older},
		{ID: "other", Date: date(2), Score: 70, UpdatedAt: older},
		{ID: "new", Date: date(1), Score: 65, UpdatedAt: newer},
	}

	result := New().ValidateSummaries(summaries)
	fixed, actions := AutoFixDuplicateSummaries(result.Conflicts, summaries)

	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}
	if len(fixed) != 2 {
		t.Fatalf("expected 2 summaries after fix, got %d", len(fixed))
	}
	for _, s := range fixed {
		if s.ID == "old" {
			t.Error("older duplicate should have been dropped")
		}
		if s.ID == "new" {
			if s.Score != 65 {
				t.Errorf("kept summary score = %v, want 65", s.Score)
			}
			if s.ReflectionNote != "good day" {
				t.Errorf("reflection note not carried over: %q", s.ReflectionNote)
			}
		}
	}
	if New().ValidateSummaries(fixed).HasConflicts() {
		t.Error("fixed summaries still have duplicates")
	}
	if summaries[0].ID != "old" || len(summaries) != 3 {
		t.Error("input slice was modified")
	}
}

func TestAutoFixOrphanLogs(t *testing.T) {
	habits := []models.HabitTemplate{
		{ID: "h1", Title: "Read", InputType: models.InputBoolean, Frequency: models.FrequencyRule{Kind: models.FrequencyDaily}},
	}
	habitLogs := []models.HabitLog{
		{ID: "keep", HabitID: "h1", Date: date(1)},
		{ID: "drop", HabitID: "h9", Date: date(1)},
	}
	result := New().ValidateHabits(habits, habitLogs)
	fixedHabitLogs, actions := AutoFixOrphanHabitLogs(result.Conflicts, habitLogs)
	if len(actions) != 1 || len(fixedHabitLogs) != 1 || fixedHabitLogs[0].ID != "keep" {
		t.Errorf("habit logs after fix = %+v, actions %d", fixedHabitLogs, len(actions))
	}

	taskLogs := []models.CompletionLog{{ID: "x", ParentID: "gone", CompletedDate: date(1)}}
	taskResult := New().ValidateTasks(nil, taskLogs)
	fixedTaskLogs, _ := AutoFixOrphanTaskLogs(taskResult.Conflicts, taskLogs)
	if len(fixedTaskLogs) != 0 {
		t.Errorf("orphan completion log survived: %+v", fixedTaskLogs)
	}
}

func assertConflicts(t *testing.T, result ValidationResult, want map[ConflictType]int) {
	t.Helper()
	got := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		got[c.Type]++
	}
	if len(got) != len(want) {
		t.Fatalf("conflicts = %v, want %v", got, want)
	}
	for kind, n := range want {
		if got[kind] != n {
			t.Errorf("%s conflicts = %d, want %d", kind, got[kind], n)
		}
	}
}
