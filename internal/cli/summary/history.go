package summary

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

type HistoryCmd struct {
	Day     HistoryDayCmd     `cmd:"" help:"Show the stored summary for a day."`
	Week    HistoryWeekCmd    `cmd:"" help:"Roll up a week."`
	Month   HistoryMonthCmd   `cmd:"" help:"Roll up a month."`
	Recent  HistoryRecentCmd  `cmd:"" help:"List the most recent days." default:"1"`
	Average HistoryAverageCmd `cmd:"" help:"Average score over the last N days."`
	Streak  HistoryStreakCmd  `cmd:"" help:"Show current and best good-day streaks."`
}

type HistoryDayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or yesterday)."`
	JSON bool   `name:"json" help:"Print as JSON."`
}

func (c *HistoryDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	summary, ok := ctx.Tracker.History().SummaryForDate(date)
	if !ok {
		fmt.Printf("No summary recorded for %s.\n", date.Format(constants.DateFormat))
		return nil
	}
	if c.JSON {
		return printJSON(summary)
	}
	fmt.Print(formatDay(summary))
	return nil
}

type HistoryWeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD)."`
	JSON bool   `name:"json" help:"Print as JSON."`
}

func (c *HistoryWeekCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	week := ctx.Tracker.History().WeeklySummary(date)
	if c.JSON {
		return printJSON(week)
	}
	fmt.Printf("Week of %s - %s\n", week.WeekStart.Format("Jan 2"), week.WeekEnd.Format("Jan 2, 2006"))
	printRollup(week.Days, week.AverageScore, week.HabitCompliance, week.CleaningCompliance, week.AverageWaterOunces, week.DaysRead, week.TotalPagesRead)
	return nil
}

type HistoryMonthCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the month (YYYY-MM-DD)."`
	JSON bool   `name:"json" help:"Print as JSON."`
}

func (c *HistoryMonthCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	month := ctx.Tracker.History().MonthlySummary(date)
	if c.JSON {
		return printJSON(month)
	}
	fmt.Println(month.Month.Format("January 2006"))
	printRollup(month.Days, month.AverageScore, month.HabitCompliance, month.CleaningCompliance, month.AverageWaterOunces, month.DaysRead, month.TotalPagesRead)
	fmt.Printf("  Good days:          %d\n", month.GoodDays)
	fmt.Printf("  Best streak:        %d\n", month.BestStreak)
	return nil
}

func printRollup(days []models.DaySummary, avg, habits, cleaning, water float64, daysRead, pages int) {
	if len(days) == 0 {
		fmt.Println("  No days recorded.")
		return
	}
	fmt.Printf("  Days recorded:      %d\n", len(days))
	fmt.Printf("  Average score:      %.0f\n", avg)
	fmt.Printf("  Habit compliance:   %.0f%%\n", habits*100)
	fmt.Printf("  Cleaning:           %.0f%%\n", cleaning*100)
	fmt.Printf("  Average water:      %.0f oz\n", water)
	fmt.Printf("  Days read:          %d (%d pages)\n", daysRead, pages)
}

type HistoryRecentCmd struct {
	Days int `arg:"" optional:"" help:"Number of days to show." default:"7"`
}

func (c *HistoryRecentCmd) Run(ctx *cli.Context) error {
	recent := ctx.Tracker.History().RecentSummaries(c.Days)
	if len(recent) == 0 {
		fmt.Println("No history yet.")
		return nil
	}
	for _, d := range recent {
		fmt.Println(formatRow(d))
	}
	return nil
}

type HistoryAverageCmd struct {
	Days int `arg:"" optional:"" help:"Window size in days." default:"7"`
}

func (c *HistoryAverageCmd) Run(ctx *cli.Context) error {
	avg := ctx.Tracker.History().AverageScore(c.Days, ctx.Now())
	fmt.Printf("Average score over the last %d days: %.1f\n", c.Days, avg)
	return nil
}

type HistoryStreakCmd struct{}

func (c *HistoryStreakCmd) Run(ctx *cli.Context) error {
	h := ctx.Tracker.History()
	fmt.Printf("Current streak: %d days\n", h.CurrentStreak(ctx.Now()))
	fmt.Printf("Best streak:    %d days\n", h.BestStreak())
	return nil
}
