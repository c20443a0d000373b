package notifier

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/models"
)

// Remaining is what is still open for today.
type Remaining struct {
	Habits      []models.HabitTemplate
	Tasks       []models.RecurringTask
	WaterOunces float64
	NeedsRead   bool
}

func (r Remaining) Empty() bool {
	return len(r.Habits) == 0 && len(r.Tasks) == 0 && r.WaterOunces <= 0 && !r.NeedsRead
}

// Message renders r as a short notification body. An empty Remaining gives
// "".
func (r Remaining) Message() string {
	if r.Empty() {
		return ""
	}
	var lines []string
	if n := len(r.Habits); n > 0 {
		lines = append(lines, fmt.Sprintf("%d habit%s left: %s", n, plural(n), titles(r.Habits, func(h models.HabitTemplate) string { return h.Title })))
	}
	if n := len(r.Tasks); n > 0 {
		lines = append(lines, fmt.Sprintf("%d cleaning task%s: %s", n, plural(n), titles(r.Tasks, func(t models.RecurringTask) string { return t.Title })))
	}
	if r.WaterOunces > 0 {
		lines = append(lines, fmt.Sprintf("%.0f oz of water to go", r.WaterOunces))
	}
	if r.NeedsRead {
		lines = append(lines, "No reading logged yet")
	}
	return strings.Join(lines, "\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func titles[T any](items []T, title func(T) string) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = title(item)
	}
	return strings.Join(names, ", ")
}
