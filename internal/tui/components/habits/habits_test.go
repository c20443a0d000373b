package habits

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/models"
)

func TestItemRendering(t *testing.T) {
	pages := 12.0
	item := Item{
		Habit:  models.HabitTemplate{Title: "Read", Unit: "pages", Frequency: models.FrequencyRule{Kind: models.FrequencyDaily}},
		Log:    &models.HabitLog{Completed: false, NumericValue: &pages},
		Streak: 3,
	}
	if got := item.Title(); got != "○ Read" {
		t.Errorf("Title() = %q", got)
	}
	if got, want := item.Description(), "daily • 12 pages • 3 day streak"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}

	item.Log.Completed = true
	if got := item.Title(); got != "✓ Read" {
		t.Errorf("Title() = %q", got)
	}
}

func TestToggleSendsSelectedHabit(t *testing.T) {
	m := New([]Item{{Habit: models.HabitTemplate{ID: "h1", Title: "Make bed"}}}, 40, 20)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(ToggleHabitMsg)
	if !ok || msg.ID != "h1" {
		t.Errorf("got %#v, want ToggleHabitMsg{ID: h1}", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if _, ok := cmd().(AddHabitMsg); !ok {
		t.Error("'a' should request the add form")
	}
}
