package routine

import (
	"errors"
	"testing"
	"time"
)

func testRoutine() Routine {
	return Routine{
		Name: "test",
		Exercises: []Exercise{
			{"a", 10 * time.Second},
			{"b", 20 * time.Second},
			{"c", 10 * time.Second},
		},
	}
}

func TestTimerRunsToCompletion(t *testing.T) {
	timer := NewTimer(testRoutine())
	if timer.State() != Idle {
		t.Fatalf("new timer state = %s, want idle", timer.State())
	}

	timer.Tick(time.Second)
	if timer.Elapsed() != 0 {
		t.Error("ticks before Start should be ignored")
	}

	if err := timer.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 40; i++ {
		timer.Tick(time.Second)
	}

	if timer.State() != Complete {
		t.Fatalf("state = %s, want complete", timer.State())
	}
	if timer.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", timer.Progress())
	}
	if _, ok := timer.Current(); ok {
		t.Error("Current() should report nothing once complete")
	}

	log := timer.Log(time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC))
	if log.ExercisesCompleted != 3 || log.ExercisesSkipped != 0 || log.DurationSeconds != 40 {
		t.Errorf("Log() = %+v", log)
	}
}

func TestTimerPauseResume(t *testing.T) {
	timer := NewTimer(testRoutine())
	if err := timer.Pause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Pause from idle error = %v, want ErrInvalidTransition", err)
	}

	_ = timer.Start()
	timer.Tick(4 * time.Second)
	if err := timer.TogglePause(); err != nil || timer.State() != Paused {
		t.Fatalf("TogglePause() = %v, state %s", err, timer.State())
	}

	timer.Tick(time.Minute)
	if timer.Remaining() != 6*time.Second {
		t.Errorf("paused timer should not count down, remaining %v", timer.Remaining())
	}

	if err := timer.TogglePause(); err != nil || timer.State() != Running {
		t.Fatalf("resume failed: %v, state %s", err, timer.State())
	}
	if err := timer.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start error = %v, want ErrInvalidTransition", err)
	}
}

func TestTimerSkip(t *testing.T) {
	timer := NewTimer(testRoutine())
	if err := timer.SkipForward(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skip while idle error = %v", err)
	}
	_ = timer.Start()

	timer.Tick(3 * time.Second)
	if err := timer.SkipForward(); err != nil {
		t.Fatal(err)
	}
	if ex, _ := timer.Current(); ex.Name != "b" || timer.Remaining() != 20*time.Second {
		t.Errorf("after skip current = %s remaining %v", ex.Name, timer.Remaining())
	}

	if err := timer.SkipBackward(); err != nil {
		t.Fatal(err)
	}
	if ex, _ := timer.Current(); ex.Name != "a" || timer.Remaining() != 10*time.Second {
		t.Errorf("after skip back current = %s remaining %v", ex.Name, timer.Remaining())
	}

	if err := timer.SkipBackward(); err != nil || timer.Index() != 0 {
		t.Errorf("skip back at first exercise should restart it, index %d err %v", timer.Index(), err)
	}

	// Finish a, skip b and c.
	timer.Tick(10 * time.Second)
	_ = timer.Pause()
	_ = timer.SkipForward()
	_ = timer.SkipForward()
	if timer.State() != Complete {
		t.Fatalf("state = %s, want complete", timer.State())
	}

	log := timer.Log(time.Now())
	if log.ExercisesCompleted != 1 || log.ExercisesSkipped != 2 {
		t.Errorf("Log() = %+v, want 1 completed 2 skipped", log)
	}
	if err := timer.SkipBackward(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skip after completion error = %v", err)
	}
}

func TestTimerProgress(t *testing.T) {
	timer := NewTimer(testRoutine())
	_ = timer.Start()
	timer.Tick(5 * time.Second)

	// Half of the first of three exercises.
	if got, want := timer.Progress(), 0.5/3; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Progress() = %v, want %v", got, want)
	}
}

func TestEmptyRoutineCompletesOnStart(t *testing.T) {
	timer := NewTimer(Routine{Name: "empty"})
	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}
	if timer.State() != Complete {
		t.Errorf("state = %s, want complete", timer.State())
	}
}

func TestBuiltinRoutines(t *testing.T) {
	for _, r := range Builtin() {
		if len(r.Exercises) == 0 || r.TotalDuration() <= 0 {
			t.Errorf("routine %s has no work", r.Name)
		}
	}
	if _, ok := Find("HIPS"); !ok {
		t.Error("Find should be case-insensitive")
	}
	if _, ok := Find("nope"); ok {
		t.Error("Find should miss unknown routines")
	}
}
