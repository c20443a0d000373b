package models

import (
	"fmt"
	"strings"
	"time"
)

type WaterEntry struct {
	Ounces   float64   `json:"ounces"`
	LoggedAt time.Time `json:"logged_at"`
}

// WaterLog holds one day of water intake. TargetOunces is captured when the
// day's first entry is recorded.
type WaterLog struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date"`
	TotalOunces  float64      `json:"total_ounces"`
	TargetOunces float64      `json:"target_ounces"`
	Entries      []WaterEntry `json:"entries,omitempty"`
}

type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: book title cannot be empty", ErrInvalid)
	}
	if b.TotalPages <= 0 {
		return fmt.Errorf("%w: book must have at least one page", ErrInvalid)
	}
	if b.CurrentPage < 0 || b.CurrentPage > b.TotalPages {
		return fmt.Errorf("%w: current page %d outside 0-%d", ErrInvalid, b.CurrentPage, b.TotalPages)
	}
	return nil
}

// IsFinished reports whether the book has been read to the last page.
func (b *Book) IsFinished() bool {
	return b.FinishedAt != nil
}

// Progress returns the fraction of the book read, 0..1.
func (b *Book) Progress() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return float64(b.CurrentPage) / float64(b.TotalPages)
}

type ReadingSession struct {
	ID      string    `json:"id"`
	BookID  string    `json:"book_id,omitempty"`
	Date    time.Time `json:"date"`
	Pages   int       `json:"pages"`
	Minutes int       `json:"minutes"`
}

func (r *ReadingSession) Validate() error {
	if r.Pages < 0 {
		return fmt.Errorf("%w: pages cannot be negative", ErrInvalid)
	}
	if r.Minutes < 0 {
		return fmt.Errorf("%w: minutes cannot be negative", ErrInvalid)
	}
	if r.Pages == 0 && r.Minutes == 0 {
		return fmt.Errorf("%w: a reading session needs pages or minutes", ErrInvalid)
	}
	return nil
}

type Workout struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Calories        *int      `json:"calories,omitempty"`
	Source          string    `json:"source,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("%w: workout title cannot be empty", ErrInvalid)
	}
	if w.DurationMinutes <= 0 {
		return fmt.Errorf("%w: workout duration must be greater than zero", ErrInvalid)
	}
	return nil
}

// MobilityLog is appended when a routine timer run completes.
type MobilityLog struct {
	ID                 string    `json:"id"`
	Routine            string    `json:"routine"`
	Date               time.Time `json:"date"`
	DurationSeconds    int       `json:"duration_seconds"`
	ExercisesCompleted int       `json:"exercises_completed"`
	ExercisesSkipped   int       `json:"exercises_skipped"`
}

type Goal struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Target    float64    `json:"target"`
	Progress  float64    `json:"progress"`
	Unit      string     `json:"unit,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: goal title cannot be empty", ErrInvalid)
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: goal target must be greater than zero", ErrInvalid)
	}
	return nil
}

// Completion returns progress/target capped at 1.
func (g *Goal) Completion() float64 {
	if g.Target <= 0 {
		return 0
	}
	if g.Progress >= g.Target {
		return 1
	}
	return g.Progress / g.Target
}
