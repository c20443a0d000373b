package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

func day(d int) time.Time {
	// 2026-01-04 is a Sunday.
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func boolHabit(id string, freq models.FrequencyRule) models.HabitTemplate {
	return models.HabitTemplate{ID: id, Title: id, Frequency: freq, InputType: models.InputBoolean, IsActive: true}
}

func TestIsActiveOn(t *testing.T) {
	tests := []struct {
		name string
		freq models.FrequencyRule
		date time.Time
		want bool
	}{
		{"daily", models.FrequencyRule{Kind: models.FrequencyDaily}, day(5), true},
		{"weekly count shows every day", models.FrequencyRule{Kind: models.FrequencyWeeklyCount, Count: 3}, day(6), true},
		{"custom", models.FrequencyRule{Kind: models.FrequencyCustom, Description: "when it rains"}, day(7), true},
		{"sunday is 1", models.FrequencyRule{Kind: models.FrequencySpecificWeekdays, Weekdays: []int{1}}, day(4), true},
		{"saturday is 7", models.FrequencyRule{Kind: models.FrequencySpecificWeekdays, Weekdays: []int{7}}, day(10), true},
		{"weekday not in set", models.FrequencyRule{Kind: models.FrequencySpecificWeekdays, Weekdays: []int{2, 4, 6}}, day(4), false},
		{"monday in set", models.FrequencyRule{Kind: models.FrequencySpecificWeekdays, Weekdays: []int{2, 4, 6}}, day(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActiveOn(boolHabit("h", tt.freq), tt.date); got != tt.want {
				t.Errorf("IsActiveOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForTodayIsDenominator(t *testing.T) {
	daily := boolHabit("daily", models.FrequencyRule{Kind: models.FrequencyDaily})
	mwf := boolHabit("mwf", models.FrequencyRule{Kind: models.FrequencySpecificWeekdays, Weekdays: []int{2, 4, 6}})
	inactive := boolHabit("off", models.FrequencyRule{Kind: models.FrequencyDaily})
	inactive.IsActive = false
	all := []models.HabitTemplate{daily, mwf, inactive}

	if got := len(ForToday(all, day(4))); got != 1 {
		t.Errorf("Sunday: ForToday() has %d habits, want 1", got)
	}
	if got := len(ForToday(all, day(5))); got != 2 {
		t.Errorf("Monday: ForToday() has %d habits, want 2", got)
	}
}

func TestToggle(t *testing.T) {
	h := boolHabit("h", models.FrequencyRule{Kind: models.FrequencyDaily})
	now := day(5).Add(9 * time.Hour)

	logs, log := Toggle(nil, h, now, now)
	if len(logs) != 1 || !log.Completed {
		t.Fatalf("first toggle should create a completed log, got %+v", logs)
	}
	if !log.Date.Equal(day(5)) {
		t.Errorf("log date = %v, want local midnight", log.Date)
	}

	logs, log = Toggle(logs, h, now.Add(time.Hour), now.Add(time.Hour))
	if len(logs) != 1 {
		t.Fatalf("second toggle should update in place, got %d logs", len(logs))
	}
	if log.Completed {
		t.Error("second toggle should flip Completed to false")
	}
	if CompletedCount([]models.HabitTemplate{h}, logs, now) != 0 {
		t.Error("uncompleted log should not count")
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	h := boolHabit("h", models.FrequencyRule{Kind: models.FrequencyDaily})
	original := []models.HabitLog{{ID: "1", HabitID: "h", Date: day(5), Completed: true}}

	Toggle(original, h, day(5), day(5))
	if !original[0].Completed {
		t.Error("Toggle modified the caller's slice")
	}
}

func TestLogValue(t *testing.T) {
	target := 8.0
	water := models.HabitTemplate{ID: "w", Title: "Glasses", InputType: models.InputNumeric, TargetValue: &target, IsActive: true}

	logs, log := LogValue(nil, water, day(5), 5, day(5))
	if log.Completed {
		t.Error("value below target should not complete")
	}
	logs, log = LogValue(logs, water, day(5), 8, day(5))
	if !log.Completed || *log.NumericValue != 8 {
		t.Errorf("value at target should complete, got %+v", log)
	}
	if len(logs) != 1 {
		t.Errorf("expected one log per day, got %d", len(logs))
	}

	untargeted := models.HabitTemplate{ID: "u", InputType: models.InputNumeric}
	_, log = LogValue(nil, untargeted, day(5), 100, day(5))
	if log.Completed {
		t.Error("numeric habit without a target should not auto-complete")
	}
}

func TestLogDurationNeverCompletes(t *testing.T) {
	h := models.HabitTemplate{ID: "m", InputType: models.InputDuration}
	_, log := LogDuration(nil, h, day(5), 45, day(5))
	if log.Completed {
		t.Error("duration logs should not auto-complete")
	}
	if log.DurationMinutes == nil || *log.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %v, want 45", log.DurationMinutes)
	}
}

func TestStreak(t *testing.T) {
	h := boolHabit("h", models.FrequencyRule{Kind: models.FrequencyDaily})

	var logs []models.HabitLog
	for d := 5; d <= 9; d++ {
		logs, _ = Toggle(logs, h, day(d), day(d))
	}

	if got := Streak(logs, "h", day(9)); got != 5 {
		t.Errorf("Streak(day5..day9) = %d, want 5", got)
	}
	if got := Streak(logs, "h", day(9).Add(20*time.Hour)); got != 5 {
		t.Errorf("Streak late in the day = %d, want 5", got)
	}
	if got := Streak(logs, "h", day(10)); got != 0 {
		t.Errorf("Streak with today unlogged = %d, want 0", got)
	}

	// Missing day 11, then completing day 12 starts over.
	logs, _ = Toggle(logs, h, day(12), day(12))
	if got := Streak(logs, "h", day(12)); got != 1 {
		t.Errorf("Streak after a gap = %d, want 1", got)
	}

	// An uncompleted log breaks the streak too.
	logs, _ = Toggle(logs, h, day(7), day(12))
	if got := Streak(logs, "h", day(9)); got != 2 {
		t.Errorf("Streak after un-completing day 7 = %d, want 2", got)
	}
}

func TestWeeklyCompletionCount(t *testing.T) {
	h := boolHabit("w", models.FrequencyRule{Kind: models.FrequencyWeeklyCount, Count: 3})

	var logs []models.HabitLog
	for _, d := range []int{3, 4, 6, 8, 10, 11} {
		logs, _ = Toggle(logs, h, day(d), day(d))
	}

	// Sunday-start week of Jan 7 is Jan 4..Jan 10.
	if got := WeeklyCompletionCount(logs, "w", day(7), time.Sunday); got != 4 {
		t.Errorf("Sunday week count = %d, want 4", got)
	}
	// Monday-start week of Jan 7 is Jan 5..Jan 11.
	if got := WeeklyCompletionCount(logs, "w", day(7), time.Monday); got != 4 {
		t.Errorf("Monday week count = %d, want 4", got)
	}
	if !WeeklyTargetMet(h, logs, day(7), time.Sunday) {
		t.Error("expected weekly target to be met")
	}
}

func TestEnsureCoreHabits(t *testing.T) {
	now := day(1)
	seeded, changed := EnsureCoreHabits(nil, now)
	if !changed {
		t.Fatal("seeding an empty list should report a change")
	}
	if len(seeded) != len(CoreHabits()) {
		t.Fatalf("seeded %d habits, want %d", len(seeded), len(CoreHabits()))
	}
	for _, h := range seeded {
		if !h.IsCore || !h.IsActive || h.ID == "" {
			t.Errorf("seeded habit %q not marked core/active", h.Title)
		}
		if err := h.Validate(); err != nil {
			t.Errorf("seeded habit %q invalid: %v", h.Title, err)
		}
	}

	again, changed := EnsureCoreHabits(seeded, now)
	if changed || len(again) != len(seeded) {
		t.Error("second call should be a no-op")
	}
}

func TestRemoveAndDeactivate(t *testing.T) {
	seeded, _ := EnsureCoreHabits(nil, day(1))
	custom := boolHabit("custom", models.FrequencyRule{Kind: models.FrequencyDaily})
	all := append(seeded, custom)

	if _, err := Remove(all, seeded[0].ID); !errors.Is(err, ErrCoreHabit) {
		t.Errorf("Remove(core) error = %v, want ErrCoreHabit", err)
	}

	out, err := Deactivate(all, seeded[0].ID)
	if err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if out[0].IsActive || !all[0].IsActive {
		t.Error("Deactivate should return a copy with IsActive=false")
	}

	out, err = Remove(all, "custom")
	if err != nil || len(out) != len(seeded) {
		t.Errorf("Remove(custom) = %d habits, %v", len(out), err)
	}

	if _, err := Remove(all, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrNotFound", err)
	}
}
