package habits

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/models"
)

// formatHabitLine renders "[x] Title  value" for one habit on date.
func formatHabitLine(h models.HabitTemplate, logs []models.HabitLog, date time.Time) string {
	log, ok := habits.LogFor(logs, h.ID, date)
	mark := " "
	if ok && log.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s", mark, h.Title)
	if ok {
		if v := formatValue(log); v != "" && h.InputType != models.InputBoolean {
			line += "  " + v
			if h.TargetValue != nil {
				line += " / " + trimFloat(*h.TargetValue)
			}
			if h.Unit != "" {
				line += " " + h.Unit
			}
		}
	}
	return line
}

func formatValue(log models.HabitLog) string {
	switch {
	case log.NumericValue != nil:
		return trimFloat(*log.NumericValue)
	case log.DurationMinutes != nil:
		return fmt.Sprintf("%dm", *log.DurationMinutes)
	case log.Completed:
		return "done"
	default:
		return ""
	}
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
