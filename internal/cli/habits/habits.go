package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/models"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a custom habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Today      HabitTodayCmd      `cmd:"" help:"Show today's habit status."`
	Toggle     HabitToggleCmd     `cmd:"" help:"Flip a habit's completion for a day."`
	Log        HabitLogCmd        `cmd:"" help:"Record a numeric value or duration."`
	Streak     HabitStreakCmd     `cmd:"" help:"Show a habit's streak and weekly count."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Stop showing a habit."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a custom habit and its logs."`
}

type HabitAddCmd struct {
	Title     string  `arg:"" help:"Habit title."`
	Category  string  `short:"c" help:"Category." default:"general"`
	Input     string  `short:"i" help:"Input type (boolean|numeric|duration)." default:"boolean" enum:"boolean,numeric,duration"`
	Frequency string  `short:"f" help:"Frequency (daily|weekly|weekdays|custom)." default:"daily"`
	Count     int     `help:"Completions per week for weekly frequency." default:"1"`
	Weekdays  string  `short:"w" help:"Comma-separated weekdays for weekdays frequency: names (mon,wed) or numbers 1=Sunday..7=Saturday."`
	Describe  string  `help:"Description for custom frequency."`
	Target    float64 `short:"t" help:"Target value for numeric habits."`
	Unit      string  `short:"u" help:"Unit label, e.g. oz or pages."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	freq, err := cli.ParseFrequency(c.Frequency, c.Count, c.Weekdays, c.Describe)
	if err != nil {
		return err
	}
	h := models.HabitTemplate{
		Title:     c.Title,
		Category:  c.Category,
		Frequency: freq,
		InputType: models.InputType(c.Input),
		Unit:      strings.TrimSpace(c.Unit),
	}
	if c.Target > 0 {
		h.TargetValue = &c.Target
	}
	added, err := ctx.Tracker.AddHabit(h, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", added.Title, added.Frequency)
	return nil
}

type HabitListCmd struct {
	All bool `short:"a" help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	shown := 0
	for _, h := range ctx.Tracker.Habits() {
		if !h.IsActive && !c.All {
			continue
		}
		shown++
		tags := []string{h.Frequency.String(), string(h.InputType)}
		if h.IsCore {
			tags = append(tags, "core")
		}
		if !h.IsActive {
			tags = append(tags, "inactive")
		}
		fmt.Printf("- %s [%s] %s\n", h.Title, h.Category, strings.Join(tags, ", "))
	}
	if shown == 0 {
		fmt.Println("No habits found.")
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or yesterday)."`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	due := ctx.Tracker.HabitsForToday(date)
	if len(due) == 0 {
		fmt.Println("No habits scheduled.")
		return nil
	}
	logs := ctx.Tracker.HabitLogs()
	fmt.Printf("Habits for %s (%d/%d done):\n", date.Format("Mon Jan 2"), habits.CompletedCount(due, logs, date), len(due))
	for _, h := range due {
		fmt.Printf("  %s\n", formatHabitLine(h, logs, date))
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Date  string `help:"Date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	log, err := ctx.Tracker.ToggleHabit(c.Habit, date, ctx.Now())
	if err != nil {
		return err
	}
	state := "not done"
	if log.Completed {
		state = "done"
	}
	fmt.Printf("Marked %s %s for %s.\n", c.Habit, state, date.Format("2006-01-02"))
	return nil
}

type HabitLogCmd struct {
	Habit   string  `arg:"" help:"Habit ID or title."`
	Value   float64 `short:"v" help:"Numeric value." xor:"amount" required:""`
	Minutes int     `short:"m" help:"Duration in minutes." xor:"amount" required:""`
	Date    string  `help:"Date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	now := ctx.Now()
	var log models.HabitLog
	if c.Minutes > 0 {
		log, err = ctx.Tracker.LogHabitDuration(c.Habit, date, c.Minutes, now)
	} else {
		log, err = ctx.Tracker.LogHabitValue(c.Habit, date, c.Value, now)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s: %s\n", c.Habit, formatValue(log))
	return nil
}

type HabitStreakCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	h, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	streak, err := ctx.Tracker.HabitStreak(h.ID, now)
	if err != nil {
		return err
	}
	weekly, err := ctx.Tracker.HabitWeeklyCount(h.ID, now)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d day streak, %d this week", h.Title, streak, weekly)
	if h.Frequency.Kind == models.FrequencyWeeklyCount {
		fmt.Printf(" (target %d)", h.Frequency.Count)
	}
	fmt.Println()
	return nil
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeactivateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeactivateHabit(c.Habit, ctx.Now()); err != nil {
		return err
	}
	fmt.Printf("Deactivated habit: %s\n", c.Habit)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeleteHabit(c.Habit, ctx.Now()); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	fmt.Printf("Deleted habit: %s\n", c.Habit)
	return nil
}
