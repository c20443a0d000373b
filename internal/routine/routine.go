// Package routine models the mobility routine countdown as a small state
// machine driven by explicit ticks.
package routine

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrInvalidTransition = errors.New("invalid routine transition")

type Exercise struct {
	Name     string
	Duration time.Duration
}

type Routine struct {
	Name      string
	Exercises []Exercise
}

func (r Routine) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range r.Exercises {
		total += e.Duration
	}
	return total
}

type outcome int

const (
	pending outcome = iota
	done
	skipped
)

// Timer runs one pass through a routine.
type Timer struct {
	routine   Routine
	state     State
	index     int
	remaining time.Duration
	elapsed   time.Duration
	outcomes  []outcome
}

func NewTimer(r Routine) *Timer {
	t := &Timer{routine: r, outcomes: make([]outcome, len(r.Exercises))}
	if len(r.Exercises) > 0 {
		t.remaining = r.Exercises[0].Duration
	}
	return t
}

func (t *Timer) State() State             { return t.state }
func (t *Timer) Routine() Routine         { return t.routine }
func (t *Timer) Index() int               { return t.index }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Elapsed() time.Duration   { return t.elapsed }

// Current returns the exercise in progress. ok is false once complete.
func (t *Timer) Current() (Exercise, bool) {
	if t.state == Complete || t.index >= len(t.routine.Exercises) {
		return Exercise{}, false
	}
	return t.routine.Exercises[t.index], true
}

func (t *Timer) transition(from, to State) error {
	if t.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.state, to)
	}
	t.state = to
	return nil
}

// Start begins the routine. An empty routine completes immediately.
func (t *Timer) Start() error {
	if err := t.transition(Idle, Running); err != nil {
		return err
	}
	if len(t.routine.Exercises) == 0 {
		t.state = Complete
	}
	return nil
}

func (t *Timer) Pause() error {
	return t.transition(Running, Paused)
}

func (t *Timer) Resume() error {
	return t.transition(Paused, Running)
}

// TogglePause flips between Running and Paused.
func (t *Timer) TogglePause() error {
	if t.state == Paused {
		return t.Resume()
	}
	return t.Pause()
}

// Tick counts d down from the current exercise while running. Reaching zero
// advances to the next exercise; leftover time does not carry over.
func (t *Timer) Tick(d time.Duration) {
	if t.state != Running || d <= 0 {
		return
	}
	t.elapsed += d
	t.remaining -= d
	if t.remaining <= 0 {
		t.outcomes[t.index] = done
		t.advance(t.index + 1)
	}
}

// SkipForward abandons the current exercise and moves on.
func (t *Timer) SkipForward() error {
	if t.state != Running && t.state != Paused {
		return fmt.Errorf("%w: cannot skip while %s", ErrInvalidTransition, t.state)
	}
	if t.outcomes[t.index] == pending {
		t.outcomes[t.index] = skipped
	}
	t.advance(t.index + 1)
	return nil
}

// SkipBackward restarts the previous exercise, or the current one when
// already at the first.
func (t *Timer) SkipBackward() error {
	if t.state != Running && t.state != Paused {
		return fmt.Errorf("%w: cannot skip while %s", ErrInvalidTransition, t.state)
	}
	t.advance(max(t.index-1, 0))
	t.outcomes[t.index] = pending
	return nil
}

func (t *Timer) advance(next int) {
	if next >= len(t.routine.Exercises) {
		t.index = len(t.routine.Exercises) - 1
		t.remaining = 0
		t.state = Complete
		return
	}
	t.index = next
	t.remaining = t.routine.Exercises[next].Duration
}

// Progress is the fraction of exercises finished or skipped.
func (t *Timer) Progress() float64 {
	if t.state == Complete {
		return 1
	}
	n := len(t.routine.Exercises)
	if n == 0 {
		return 0
	}
	cur := t.routine.Exercises[t.index].Duration
	partial := 0.0
	if cur > 0 {
		partial = float64(cur-t.remaining) / float64(cur)
	}
	return (float64(t.index) + partial) / float64(n)
}

// Log summarises a run for the mobility log.
func (t *Timer) Log(now time.Time) models.MobilityLog {
	log := models.MobilityLog{
		Routine:         t.routine.Name,
		Date:            now,
		DurationSeconds: int(t.elapsed / time.Second),
	}
	for _, o := range t.outcomes {
		switch o {
		case done:
			log.ExercisesCompleted++
		case skipped:
			log.ExercisesSkipped++
		}
	}
	return log
}
