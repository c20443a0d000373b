package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/tracker"
	habitlist "github.com/julianstephens/tally/internal/tui/components/habits"
	"github.com/julianstephens/tally/internal/tui/components/timer"
)

var fixedNow = time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)

func newModel(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()
	tr := tracker.New(storage.NewMemoryStore(), tracker.Options{WaterTargetOz: 64})
	_, err := tr.EnsureCoreHabits(fixedNow)
	require.NoError(t, err)
	return NewModel(tr, Options{Now: func() time.Time { return fixedNow }}), tr
}

func TestTabsCycle(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, StateToday, m.state)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateHabits, next.(Model).state)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, StateRoutine, next.(Model).state)
}

func TestToggleHabitRefreshesDashboard(t *testing.T) {
	m, tr := newModel(t)
	h, err := tr.FindHabit("make bed")
	require.NoError(t, err)
	assert.Equal(t, 0, m.todayModel.Summary.HabitsCompleted)

	next, _ := m.Update(habitlist.ToggleHabitMsg{ID: h.ID})
	assert.Equal(t, 1, next.(Model).todayModel.Summary.HabitsCompleted)
}

func TestRoutineCompletionIsLogged(t *testing.T) {
	m, tr := newModel(t)

	next, _ := m.Update(timer.CompletedMsg{Log: models.MobilityLog{Routine: "hips", DurationSeconds: 240, ExercisesCompleted: 5}})
	assert.Equal(t, "Routine logged", next.(Model).status)
	require.Len(t, tr.MobilityLogs(), 1)
	assert.Equal(t, "hips", tr.MobilityLogs()[0].Routine)
}

func TestAddHabitOpensForm(t *testing.T) {
	m, _ := newModel(t)

	next, _ := m.Update(habitlist.AddHabitMsg{})
	nm := next.(Model)
	assert.Equal(t, StateAddHabit, nm.state)
	require.NotNil(t, nm.form)

	back, _ := nm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateHabits, back.(Model).state)
}

func TestHabitFormTemplate(t *testing.T) {
	f := HabitFormModel{Title: " Pushups ", InputType: models.InputNumeric, Target: "30", Unit: "reps"}
	h := f.Template()
	assert.Equal(t, "Pushups", h.Title)
	require.NotNil(t, h.TargetValue)
	assert.Equal(t, 30.0, *h.TargetValue)
	assert.Equal(t, models.FrequencyDaily, h.Frequency.Kind)

	f.InputType = models.InputBoolean
	assert.Nil(t, f.Template().TargetValue)
}
