package tracking

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

type WorkoutCmd struct {
	Add  WorkoutAddCmd  `cmd:"" help:"Record a workout."`
	Week WorkoutWeekCmd `cmd:"" help:"Summarize workouts for a week."`
}

type WorkoutAddCmd struct {
	Title    string `arg:"" help:"Workout title."`
	Minutes  int    `short:"m" help:"Duration in minutes." required:""`
	Calories int    `short:"c" help:"Calories burned."`
	Notes    string `help:"Optional notes."`
	Date     string `help:"Date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *WorkoutAddCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	w := models.Workout{
		Title:           c.Title,
		DurationMinutes: c.Minutes,
		Notes:           c.Notes,
	}
	// Today's workouts keep the full timestamp.
	if !utils.SameDay(date, now) {
		w.Date = date
	}
	if c.Calories > 0 {
		w.Calories = &c.Calories
	}
	added, err := ctx.Tracker.AddWorkout(w, now)
	if err != nil {
		return err
	}
	fmt.Printf("Logged workout: %s (%d min)\n", added.Title, added.DurationMinutes)
	return nil
}

type WorkoutWeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD)."`
}

func (c *WorkoutWeekCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	week := ctx.Tracker.History().WeeklyWorkoutSummary(date)
	fmt.Printf("Week of %s - %s\n", week.WeekStart.Format("Jan 2"), week.WeekEnd.Format("Jan 2"))
	fmt.Printf("  Workouts:     %d\n", week.Count)
	fmt.Printf("  Total time:   %d min\n", week.TotalMinutes)
	fmt.Printf("  Active days:  %d\n", week.ActiveDays)
	return nil
}
