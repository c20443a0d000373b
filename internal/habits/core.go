package habits

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/models"
)

func ptr[T any](v T) *T { return &v }

// CoreHabits are seeded on first launch.
func CoreHabits() []models.HabitTemplate {
	return []models.HabitTemplate{
		{
			Title:     "Make bed",
			Category:  "home",
			Frequency: models.FrequencyRule{Kind: models.FrequencyDaily},
			InputType: models.InputBoolean,
		},
		{
			Title:     "Mobility routine",
			Category:  "fitness",
			Frequency: models.FrequencyRule{Kind: models.FrequencyDaily},
			InputType: models.InputDuration,
			Unit:      "min",
		},
		{
			Title:       "Read",
			Category:    "mind",
			Frequency:   models.FrequencyRule{Kind: models.FrequencyDaily},
			InputType:   models.InputNumeric,
			TargetValue: ptr(20.0),
			Unit:        "pages",
		},
		{
			Title:     "Workout",
			Category:  "fitness",
			Frequency: models.FrequencyRule{Kind: models.FrequencyWeeklyCount, Count: 3},
			InputType: models.InputBoolean,
		},
	}
}

// EnsureCoreHabits appends any missing core template. changed is true when
// something was added and the result must be saved.
func EnsureCoreHabits(existing []models.HabitTemplate, now time.Time) (habits []models.HabitTemplate, changed bool) {
	habits = slices.Clone(existing)
	for _, core := range CoreHabits() {
		if hasCore(existing, core.Title) {
			continue
		}
		core.ID = uuid.NewString()
		core.IsCore = true
		core.IsActive = true
		core.CreatedAt = now
		habits = append(habits, core)
		changed = true
	}
	return habits, changed
}

func hasCore(habits []models.HabitTemplate, title string) bool {
	for _, h := range habits {
		if h.IsCore && strings.EqualFold(h.Title, title) {
			return true
		}
	}
	return false
}
