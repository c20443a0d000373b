package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type FrequencyKind string

const (
	FrequencyDaily            FrequencyKind = "daily"
	FrequencyWeeklyCount      FrequencyKind = "weekly_count"
	FrequencySpecificWeekdays FrequencyKind = "specific_weekdays"
	FrequencyCustom           FrequencyKind = "custom"
)

// FrequencyRule decides which days a habit applies on. Weekdays use
// 1=Sunday..7=Saturday.
type FrequencyRule struct {
	Kind        FrequencyKind `json:"kind"`
	Count       int           `json:"count,omitempty"`
	Weekdays    []int         `json:"weekdays,omitempty"`
	Description string        `json:"description,omitempty"`
}

func (f FrequencyRule) Validate() error {
	switch f.Kind {
	case FrequencyDaily, FrequencyCustom:
		return nil
	case FrequencyWeeklyCount:
		if f.Count < 1 || f.Count > 7 {
			return fmt.Errorf("%w: weekly count must be between 1 and 7, got %d", ErrInvalid, f.Count)
		}
		return nil
	case FrequencySpecificWeekdays:
		if len(f.Weekdays) == 0 {
			return fmt.Errorf("%w: weekdays must be specified", ErrInvalid)
		}
		for _, wd := range f.Weekdays {
			if wd < 1 || wd > 7 {
				return fmt.Errorf("%w: weekday %d out of range 1-7", ErrInvalid, wd)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown frequency kind %q", ErrInvalid, f.Kind)
	}
}

func (f FrequencyRule) String() string {
	switch f.Kind {
	case FrequencyWeeklyCount:
		return fmt.Sprintf("%dx per week", f.Count)
	case FrequencySpecificWeekdays:
		days := append([]int(nil), f.Weekdays...)
		sort.Ints(days)
		names := make([]string, 0, len(days))
		for _, wd := range days {
			names = append(names, time.Weekday(wd - 1).String()[:3])
		}
		return "on " + strings.Join(names, ",")
	case FrequencyCustom:
		if f.Description != "" {
			return f.Description
		}
		return "custom"
	default:
		return "daily"
	}
}

type InputType string

const (
	InputBoolean  InputType = "boolean"
	InputNumeric  InputType = "numeric"
	InputDuration InputType = "duration"
)

type HabitTemplate struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Frequency   FrequencyRule `json:"frequency_rule"`
	InputType   InputType     `json:"input_type"`
	TargetValue *float64      `json:"target_value,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	IsCore      bool          `json:"is_core"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (h *HabitTemplate) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("%w: habit title cannot be empty", ErrInvalid)
	}
	switch h.InputType {
	case InputBoolean, InputNumeric, InputDuration:
	default:
		return fmt.Errorf("%w: unknown input type %q", ErrInvalid, h.InputType)
	}
	if h.TargetValue != nil && *h.TargetValue < 0 {
		return fmt.Errorf("%w: target value cannot be negative", ErrInvalid)
	}
	return h.Frequency.Validate()
}

// HabitLog is the single record of a habit for one calendar day. Toggle-style
// logs are updated in place.
type HabitLog struct {
	ID              string    `json:"id"`
	HabitID         string    `json:"habit_id"`
	Date            time.Time `json:"date"`
	Completed       bool      `json:"completed"`
	NumericValue    *float64  `json:"numeric_value,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Note            string    `json:"note,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}
