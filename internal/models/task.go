package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every Validate method.
var ErrInvalid = errors.New("invalid input")

type RecurrenceKind string

const (
	RecurrenceDaily    RecurrenceKind = "daily"
	RecurrenceWeekly   RecurrenceKind = "weekly"
	RecurrenceBiweekly RecurrenceKind = "biweekly"
	RecurrenceMonthly  RecurrenceKind = "monthly"
	RecurrenceCustom   RecurrenceKind = "custom"
)

// RecurrenceRule is a tagged variant: Days is only meaningful for custom rules.
type RecurrenceRule struct {
	Kind RecurrenceKind `json:"kind"`
	Days int            `json:"days,omitempty"`
}

func Daily() RecurrenceRule    { return RecurrenceRule{Kind: RecurrenceDaily} }
func Weekly() RecurrenceRule   { return RecurrenceRule{Kind: RecurrenceWeekly} }
func Biweekly() RecurrenceRule { return RecurrenceRule{Kind: RecurrenceBiweekly} }
func Monthly() RecurrenceRule  { return RecurrenceRule{Kind: RecurrenceMonthly} }

func EveryNDays(n int) RecurrenceRule {
	return RecurrenceRule{Kind: RecurrenceCustom, Days: n}
}

// IntervalDays returns the number of calendar days between due dates.
// Unknown kinds and non-positive custom intervals fall back to 1.
func (r RecurrenceRule) IntervalDays() int {
	switch r.Kind {
	case RecurrenceDaily:
		return 1
	case RecurrenceWeekly:
		return 7
	case RecurrenceBiweekly:
		return 14
	case RecurrenceMonthly:
		return 30
	case RecurrenceCustom:
		if r.Days < 1 {
			return 1
		}
		return r.Days
	default:
		return 1
	}
}

func (r RecurrenceRule) Validate() error {
	switch r.Kind {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return nil
	case RecurrenceCustom:
		if r.Days < 1 {
			return fmt.Errorf("%w: custom recurrence needs at least 1 day, got %d", ErrInvalid, r.Days)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown recurrence kind %q", ErrInvalid, r.Kind)
	}
}

func (r RecurrenceRule) String() string {
	if r.Kind == RecurrenceCustom {
		if r.Days == 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", r.Days)
	}
	return string(r.Kind)
}

// ParseRecurrence accepts daily|weekly|biweekly|monthly or a custom day count.
func ParseRecurrence(kind string, days int) (RecurrenceRule, error) {
	rule := RecurrenceRule{Kind: RecurrenceKind(strings.ToLower(strings.TrimSpace(kind)))}
	if rule.Kind == RecurrenceCustom {
		rule.Days = days
	}
	if err := rule.Validate(); err != nil {
		return RecurrenceRule{}, err
	}
	return rule, nil
}

// RecurringTask is a cleaning task on a fixed rotation. The next due date is
// always derived from LastCompletedDate and never stored.
type RecurringTask struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Rule              RecurrenceRule `json:"recurrence_rule"`
	EstimatedMinutes  *int           `json:"estimated_minutes,omitempty"`
	IsActive          bool           `json:"is_active"`
	LastCompletedDate *time.Time     `json:"last_completed_date,omitempty"`
	SnoozedUntil      *time.Time     `json:"snoozed_until,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (t *RecurringTask) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title cannot be empty", ErrInvalid)
	}
	if t.EstimatedMinutes != nil && *t.EstimatedMinutes < 0 {
		return fmt.Errorf("%w: estimated minutes cannot be negative", ErrInvalid)
	}
	return t.Rule.Validate()
}

// CompletionLog records one completion of a task (ParentID = task ID).
// Cleaning logs are append-only history.
type CompletionLog struct {
	ID              string    `json:"id"`
	ParentID        string    `json:"parent_id"`
	CompletedDate   time.Time `json:"completed_date"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	NumericValue    *float64  `json:"numeric_value,omitempty"`
	Note            string    `json:"note,omitempty"`
}
