package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/models"
)

type ReflectionFormModel struct {
	Note string
}

type HabitFormModel struct {
	Title     string
	Category  string
	InputType models.InputType
	Target    string
	Unit      string
}

// NewReflectionForm prompts for the day's reflection note.
func NewReflectionForm(f *ReflectionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How did today go?").
				CharLimit(500).
				Value(&f.Note),
		),
	)
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Placeholder("health").
				Value(&f.Category),
			huh.NewSelect[models.InputType]().
				Title("Logged as").
				Options(
					huh.NewOption("Done / not done", models.InputBoolean),
					huh.NewOption("Number", models.InputNumeric),
					huh.NewOption("Minutes", models.InputDuration),
				).
				Value(&f.InputType),
			huh.NewInput().
				Title("Daily target (numbers only)").
				Value(&f.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil || v < 0 {
						return fmt.Errorf("target must be a non-negative number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("pages").
				Value(&f.Unit),
		),
	)
}

// Template turns the form into a new daily habit.
func (f HabitFormModel) Template() models.HabitTemplate {
	h := models.HabitTemplate{
		Title:     strings.TrimSpace(f.Title),
		Category:  strings.TrimSpace(f.Category),
		InputType: f.InputType,
		Unit:      strings.TrimSpace(f.Unit),
		Frequency: models.FrequencyRule{Kind: models.FrequencyDaily},
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64); err == nil && f.InputType == models.InputNumeric {
		h.TargetValue = &v
	}
	return h
}
