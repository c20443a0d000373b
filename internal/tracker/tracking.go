package tracker

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/aggregator"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

func (t *Tracker) WaterFor(date time.Time) (models.WaterLog, bool) {
	return aggregator.WaterFor(t.water.All(), date)
}

// AddWater appends an entry to the day's water log, creating the log with
// the configured target on the first entry.
func (t *Tracker) AddWater(ounces float64, now time.Time) (models.WaterLog, error) {
	if ounces <= 0 {
		return models.WaterLog{}, fmt.Errorf("%w: ounces must be greater than zero", models.ErrInvalid)
	}

	var day models.WaterLog
	_, err := t.water.Update(func(logs []models.WaterLog) ([]models.WaterLog, error) {
		i := slices.IndexFunc(logs, func(w models.WaterLog) bool { return utils.SameDay(now, w.Date) })
		if i < 0 {
			logs = append(logs, models.WaterLog{
				ID:           uuid.NewString(),
				Date:         utils.StartOfDay(now),
				TargetOunces: t.opts.WaterTargetOz,
			})
			i = len(logs) - 1
		}
		logs[i].Entries = append(logs[i].Entries, models.WaterEntry{Ounces: ounces, LoggedAt: now})
		logs[i].TotalOunces += ounces
		day = logs[i]
		return logs, nil
	})
	if err := swallow("add water", err); err != nil {
		return models.WaterLog{}, err
	}
	t.recompute(now, now)
	return day, nil
}

func (t *Tracker) Books() []models.Book {
	return t.books.All()
}

func (t *Tracker) FindBook(ref string) (models.Book, error) {
	for _, b := range t.books.All() {
		if matches(b.ID, b.Title, ref) {
			return b, nil
		}
	}
	return models.Book{}, notFound(ErrBookNotFound, ref)
}

func (t *Tracker) AddBook(title, author string, totalPages int, now time.Time) (models.Book, error) {
	book := models.Book{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		TotalPages: totalPages,
		StartedAt:  now,
	}
	if err := book.Validate(); err != nil {
		return models.Book{}, err
	}
	_, err := t.books.Update(func(books []models.Book) ([]models.Book, error) {
		return append(books, book), nil
	})
	if err := swallow("add book", err); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// LogReading records a session. When bookRef is set the book's current
// page advances (capped at its length) and reaching the end finishes it.
func (t *Tracker) LogReading(bookRef string, pages, minutes int, now time.Time) (models.ReadingSession, error) {
	session := models.ReadingSession{
		ID:      uuid.NewString(),
		Date:    now,
		Pages:   pages,
		Minutes: minutes,
	}
	if err := session.Validate(); err != nil {
		return models.ReadingSession{}, err
	}

	if bookRef != "" {
		var bookID string
		_, err := t.books.Update(func(books []models.Book) ([]models.Book, error) {
			i := slices.IndexFunc(books, func(b models.Book) bool { return matches(b.ID, b.Title, bookRef) })
			if i < 0 {
				return nil, notFound(ErrBookNotFound, bookRef)
			}
			b := &books[i]
			b.CurrentPage = min(b.CurrentPage+pages, b.TotalPages)
			if b.CurrentPage == b.TotalPages && b.FinishedAt == nil {
				finished := now
				b.FinishedAt = &finished
			}
			bookID = b.ID
			return books, nil
		})
		if err := swallow("advance book", err); err != nil {
			return models.ReadingSession{}, err
		}
		session.BookID = bookID
	}

	_, err := t.sessions.Update(func(sessions []models.ReadingSession) ([]models.ReadingSession, error) {
		return append(sessions, session), nil
	})
	if err := swallow("log reading", err); err != nil {
		return models.ReadingSession{}, err
	}
	t.recompute(now, now)
	return session, nil
}

func (t *Tracker) Workouts() []models.Workout {
	return t.workouts.All()
}

func (t *Tracker) AddWorkout(w models.Workout, now time.Time) (models.Workout, error) {
	w.ID = uuid.NewString()
	w.Title = strings.TrimSpace(w.Title)
	if w.Date.IsZero() {
		w.Date = now
	}
	if w.Source == "" {
		w.Source = "manual"
	}
	if err := w.Validate(); err != nil {
		return models.Workout{}, err
	}
	_, err := t.workouts.Update(func(all []models.Workout) ([]models.Workout, error) {
		return append(all, w), nil
	})
	if err := swallow("add workout", err); err != nil {
		return models.Workout{}, err
	}
	return w, nil
}

func (t *Tracker) MobilityLogs() []models.MobilityLog {
	return t.mobility.All()
}

// LogMobility appends a finished routine run.
func (t *Tracker) LogMobility(log models.MobilityLog, now time.Time) (models.MobilityLog, error) {
	log.ID = uuid.NewString()
	if log.Date.IsZero() {
		log.Date = now
	}
	_, err := t.mobility.Update(func(all []models.MobilityLog) ([]models.MobilityLog, error) {
		return append(all, log), nil
	})
	if err := swallow("log mobility", err); err != nil {
		return models.MobilityLog{}, err
	}
	return log, nil
}

func (t *Tracker) Goals() []models.Goal {
	return t.goals.All()
}

func (t *Tracker) AddGoal(title string, target float64, unit string, deadline *time.Time, now time.Time) (models.Goal, error) {
	goal := models.Goal{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Target:    target,
		Unit:      strings.TrimSpace(unit),
		Deadline:  deadline,
		CreatedAt: now,
	}
	if err := goal.Validate(); err != nil {
		return models.Goal{}, err
	}
	_, err := t.goals.Update(func(all []models.Goal) ([]models.Goal, error) {
		return append(all, goal), nil
	})
	if err := swallow("add goal", err); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoalProgress sets the goal's progress to an absolute value.
func (t *Tracker) UpdateGoalProgress(ref string, progress float64) (models.Goal, error) {
	if progress < 0 {
		return models.Goal{}, fmt.Errorf("%w: progress cannot be negative", models.ErrInvalid)
	}
	var goal models.Goal
	_, err := t.goals.Update(func(all []models.Goal) ([]models.Goal, error) {
		i := slices.IndexFunc(all, func(g models.Goal) bool { return matches(g.ID, g.Title, ref) })
		if i < 0 {
			return nil, notFound(ErrGoalNotFound, ref)
		}
		all[i].Progress = progress
		goal = all[i]
		return all, nil
	})
	if err := swallow("update goal", err); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}
