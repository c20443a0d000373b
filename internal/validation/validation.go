package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictDuplicateTaskTitle  ConflictType = "duplicate_task_title"
	ConflictDuplicateHabitTitle ConflictType = "duplicate_habit_title"
	ConflictDuplicateSummary    ConflictType = "duplicate_day_summary"
	ConflictDuplicateHabitLog   ConflictType = "duplicate_habit_log"
	ConflictDuplicateWaterLog   ConflictType = "duplicate_water_log"
	ConflictInvalidTask         ConflictType = "invalid_task"
	ConflictInvalidHabit        ConflictType = "invalid_habit"
	ConflictInvalidBook         ConflictType = "invalid_book"
	ConflictInvalidSession      ConflictType = "invalid_reading_session"
	ConflictOrphanTaskLog       ConflictType = "orphan_task_log"
	ConflictOrphanHabitLog      ConflictType = "orphan_habit_log"
	ConflictOrphanSession       ConflictType = "orphan_reading_session"
)

// Conflict represents a detected problem in the stored collections
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles involved
	IDs         []string // IDs of records involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Of returns the conflicts of one type.
func (vr ValidationResult) Of(kind ConflictType) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Data is everything the validator looks at.
type Data struct {
	Tasks     []models.RecurringTask
	TaskLogs  []models.CompletionLog
	Habits    []models.HabitTemplate
	HabitLogs []models.HabitLog
	Water     []models.WaterLog
	Books     []models.Book
	Sessions  []models.ReadingSession
	Summaries []models.DaySummary
}

// Validator checks stored collections for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate runs every check over data.
func (v *Validator) Validate(data Data) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.ValidateTasks(data.Tasks, data.TaskLogs).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateHabits(data.Habits, data.HabitLogs).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateReading(data.Books, data.Sessions).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateWater(data.Water).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateSummaries(data.Summaries).Conflicts...)
	return result
}

// ValidateTasks checks cleaning tasks for invalid rules, duplicate active
// titles and completion logs pointing at deleted tasks.
func (v *Validator) ValidateTasks(tasks []models.RecurringTask, logs []models.CompletionLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(tasks))
	titles := make(map[string][]string)
	for _, task := range tasks {
		known[task.ID] = true
		if err := task.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTask,
				Description: fmt.Sprintf("Task \"%s\" is invalid: %v", task.Title, err),
				Items:       []string{task.Title},
				IDs:         []string{task.ID},
			})
		}
		// Skip inactive tasks and empty titles to avoid false positives
		if !task.IsActive || strings.TrimSpace(task.Title) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(task.Title))
		titles[key] = append(titles[key], task.ID)
	}
	result.Conflicts = append(result.Conflicts, duplicates(titles, ConflictDuplicateTaskTitle, "task")...)

	for _, log := range logs {
		if !known[log.ParentID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanTaskLog,
				Description: fmt.Sprintf("%s: Completion log references missing task ID: %s", utils.DayKey(log.CompletedDate), log.ParentID),
				Date:        utils.DayKey(log.CompletedDate),
				IDs:         []string{log.ID},
			})
		}
	}
	return result
}

// ValidateHabits checks templates and their logs. A habit has at most one
// log per calendar day.
func (v *Validator) ValidateHabits(habits []models.HabitTemplate, logs []models.HabitLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(habits))
	titles := make(map[string][]string)
	for _, h := range habits {
		known[h.ID] = true
		if err := h.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit \"%s\" is invalid: %v", h.Title, err),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
		if strings.TrimSpace(h.Title) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(h.Title))
		titles[key] = append(titles[key], h.ID)
	}
	result.Conflicts = append(result.Conflicts, duplicates(titles, ConflictDuplicateHabitTitle, "habit")...)

	perDay := make(map[string][]string)
	var order []string
	for _, log := range logs {
		if !known[log.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanHabitLog,
				Description: fmt.Sprintf("%s: Habit log references missing habit ID: %s", utils.DayKey(log.Date), log.HabitID),
				Date:        utils.DayKey(log.Date),
				IDs:         []string{log.ID},
			})
			continue
		}
		key := log.HabitID + "/" + utils.DayKey(log.Date)
		if _, seen := perDay[key]; !seen {
			order = append(order, key)
		}
		perDay[key] = append(perDay[key], log.ID)
	}
	for _, key := range order {
		ids := perDay[key]
		if len(ids) < 2 {
			continue
		}
		date := key[strings.LastIndex(key, "/")+1:]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitLog,
			Description: fmt.Sprintf("%s: %d logs for habit %s", date, len(ids), key[:strings.LastIndex(key, "/")]),
			Date:        date,
			IDs:         ids,
		})
	}
	return result
}

// ValidateReading checks books and sessions against the page invariants.
func (v *Validator) ValidateReading(books []models.Book, sessions []models.ReadingSession) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(books))
	for _, b := range books {
		known[b.ID] = true
		if err := b.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidBook,
				Description: fmt.Sprintf("Book \"%s\" is invalid: %v", b.Title, err),
				Items:       []string{b.Title},
				IDs:         []string{b.ID},
			})
		}
	}
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidSession,
				Description: fmt.Sprintf("%s: Reading session is invalid: %v", utils.DayKey(s.Date), err),
				Date:        utils.DayKey(s.Date),
				IDs:         []string{s.ID},
			})
		}
		// Sessions without a book are allowed
		if s.BookID != "" && !known[s.BookID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanSession,
				Description: fmt.Sprintf("%s: Reading session references missing book ID: %s", utils.DayKey(s.Date), s.BookID),
				Date:        utils.DayKey(s.Date),
				IDs:         []string{s.ID},
			})
		}
	}
	return result
}

func (v *Validator) ValidateWater(logs []models.WaterLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	byDay := make(map[string][]string)
	var order []string
	for _, w := range logs {
		key := utils.DayKey(w.Date)
		if _, seen := byDay[key]; !seen {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], w.ID)
	}
	for _, day := range order {
		if ids := byDay[day]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateWaterLog,
				Description: fmt.Sprintf("%s: %d water logs for one day", day, len(ids)),
				Date:        day,
				IDs:         ids,
			})
		}
	}
	return result
}

// ValidateSummaries reports calendar days holding more than one summary.
func (v *Validator) ValidateSummaries(summaries []models.DaySummary) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	byDay := make(map[string][]string)
	var order []string
	for _, s := range summaries {
		key := utils.DayKey(s.Date)
		if _, seen := byDay[key]; !seen {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], s.ID)
	}
	for _, day := range order {
		if ids := byDay[day]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSummary,
				Description: fmt.Sprintf("%s: %d day summaries (IDs: %v)", day, len(ids), ids),
				Date:        day,
				IDs:         ids,
			})
		}
	}
	return result
}

func duplicates(titles map[string][]string, kind ConflictType, noun string) []Conflict {
	names := make([]string, 0, len(titles))
	for name := range titles {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Conflict
	for _, name := range names {
		if ids := titles[name]; len(ids) > 1 {
			out = append(out, Conflict{
				Type:        kind,
				Description: fmt.Sprintf("Duplicate %s title: \"%s\" (IDs: %v)", noun, name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}
	return out
}

// AutoFixDuplicateSummaries collapses every duplicate day to the most
// recently updated record. A reflection note is carried over when the kept
// record has none. Returns the repaired slice and what was done.
func AutoFixDuplicateSummaries(conflicts []Conflict, summaries []models.DaySummary) ([]models.DaySummary, []FixAction) {
	actions := []FixAction{}
	drop := make(map[string]bool)
	notes := make(map[string]string)

	byID := make(map[string]models.DaySummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateSummary || len(conflict.IDs) <= 1 {
			continue
		}

		var group []models.DaySummary
		for _, id := range conflict.IDs {
			if s, ok := byID[id]; ok {
				group = append(group, s)
			}
		}
		if len(group) <= 1 {
			continue
		}

		// Newest UpdatedAt wins; ties fall back to ID ordering for
		// deterministic behavior.
		sort.Slice(group, func(i, j int) bool {
			if !group[i].UpdatedAt.Equal(group[j].UpdatedAt) {
				return group[i].UpdatedAt.After(group[j].UpdatedAt)
			}
			return group[i].ID < group[j].ID
		})
		keep := group[0]
		var removed []string
		for _, s := range group[1:] {
			drop[s.ID] = true
			removed = append(removed, s.ID)
			if keep.ReflectionNote == "" && s.ReflectionNote != "" && notes[keep.ID] == "" {
				notes[keep.ID] = s.ReflectionNote
			}
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Merged %d duplicate summaries for %s (kept ID: %s, removed: %v)", len(removed), conflict.Date, keep.ID, removed),
			SourceConflict: conflict,
		})
	}

	if len(drop) == 0 {
		return summaries, actions
	}
	out := make([]models.DaySummary, 0, len(summaries)-len(drop))
	for _, s := range summaries {
		if drop[s.ID] {
			continue
		}
		if note, ok := notes[s.ID]; ok {
			s.ReflectionNote = note
		}
		out = append(out, s)
	}
	return out, actions
}

// AutoFixOrphanHabitLogs removes habit logs whose template no longer exists.
func AutoFixOrphanHabitLogs(conflicts []Conflict, logs []models.HabitLog) ([]models.HabitLog, []FixAction) {
	return removeOrphans(conflicts, ConflictOrphanHabitLog, logs, func(l models.HabitLog) string { return l.ID }, "habit log")
}

// AutoFixOrphanTaskLogs removes completion logs whose task no longer exists.
func AutoFixOrphanTaskLogs(conflicts []Conflict, logs []models.CompletionLog) ([]models.CompletionLog, []FixAction) {
	return removeOrphans(conflicts, ConflictOrphanTaskLog, logs, func(l models.CompletionLog) string { return l.ID }, "completion log")
}

func removeOrphans[T any](conflicts []Conflict, kind ConflictType, items []T, id func(T) string, noun string) ([]T, []FixAction) {
	actions := []FixAction{}
	drop := make(map[string]bool)
	for _, c := range conflicts {
		if c.Type != kind {
			continue
		}
		for _, orphan := range c.IDs {
			drop[orphan] = true
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Removed orphaned %s %v", noun, c.IDs),
			SourceConflict: c,
		})
	}
	if len(drop) == 0 {
		return items, actions
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !drop[id(item)] {
			out = append(out, item)
		}
	}
	return out, actions
}
