package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/recurrence"
)

type TaskCmd struct {
	Add        TaskAddCmd        `cmd:"" help:"Add a recurring cleaning task."`
	List       TaskListCmd       `cmd:"" help:"List cleaning tasks."`
	Today      TaskTodayCmd      `cmd:"" help:"Show the tasks picked for today."`
	Complete   TaskCompleteCmd   `cmd:"" help:"Mark a task done."`
	Snooze     TaskSnoozeCmd     `cmd:"" help:"Hide a task until a later date."`
	Deactivate TaskDeactivateCmd `cmd:"" help:"Stop scheduling a task."`
	Delete     TaskDeleteCmd     `cmd:"" help:"Delete a task and keep its history."`
}

type TaskAddCmd struct {
	Title      string `arg:"" help:"Task title."`
	Recurrence string `short:"r" help:"Recurrence (daily|weekly|biweekly|monthly|custom)." default:"weekly"`
	Days       int    `short:"n" help:"Interval in days for custom recurrence." default:"1"`
	Estimate   int    `short:"e" help:"Estimated minutes."`
}

func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if c.Estimate < 0 {
		return fmt.Errorf("estimate cannot be negative")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	rule, err := models.ParseRecurrence(c.Recurrence, c.Days)
	if err != nil {
		return err
	}
	var estimate *int
	if c.Estimate > 0 {
		estimate = &c.Estimate
	}
	task, err := ctx.Tracker.AddTask(c.Title, rule, estimate, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Added task: %s (%s)\n", task.Title, task.Rule)
	return nil
}

type TaskListCmd struct {
	All bool `short:"a" help:"Include inactive tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	all := ctx.Tracker.Tasks()
	sort.Slice(all, func(i, j int) bool {
		return recurrence.NextDueDate(all[i], now).Before(recurrence.NextDueDate(all[j], now))
	})

	shown := 0
	for _, task := range all {
		if !task.IsActive && !c.All {
			continue
		}
		shown++
		status := cli.FormatDue(recurrence.DaysUntilDue(task, now))
		switch {
		case !task.IsActive:
			status = "inactive"
		case recurrence.IsSnoozed(task, now):
			status = "snoozed until " + task.SnoozedUntil.Format(constants.DateFormat)
		}
		estimate := ""
		if task.EstimatedMinutes != nil {
			estimate = fmt.Sprintf(" ~%dm", *task.EstimatedMinutes)
		}
		fmt.Printf("- %s [%s]%s: %s\n", task.Title, task.Rule, estimate, status)
	}
	if shown == 0 {
		fmt.Println("No tasks found.")
	}
	return nil
}

type TaskTodayCmd struct{}

func (c *TaskTodayCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	snap := ctx.Tracker.Snapshot()
	today := recurrence.TasksForDay(snap.Tasks, snap.TaskLogs, now, now)
	if len(today) == 0 {
		fmt.Println("Nothing to clean today.")
		return nil
	}
	for _, task := range today {
		mark := " "
		if recurrence.IsCompletedOn(snap.TaskLogs, task.ID, now) {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, task.Title)
	}
	return nil
}

type TaskCompleteCmd struct {
	Task     string `arg:"" help:"Task ID or title."`
	Duration int    `short:"d" help:"Minutes spent."`
	Note     string `help:"Optional note."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	var duration *int
	if c.Duration > 0 {
		duration = &c.Duration
	}
	now := ctx.Now()
	task, err := ctx.Tracker.CompleteTask(c.Task, duration, c.Note, now)
	if err != nil {
		return err
	}
	fmt.Printf("Completed %s. Next due %s.\n", task.Title, recurrence.NextDueDate(task, now).Format(constants.DateFormat))
	return nil
}

type TaskSnoozeCmd struct {
	Task  string `arg:"" help:"Task ID or title."`
	Until string `help:"Date to snooze until (YYYY-MM-DD). Defaults to tomorrow."`
}

func (c *TaskSnoozeCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	var (
		task models.RecurringTask
		err  error
	)
	if c.Until == "" {
		task, err = ctx.Tracker.SnoozeTaskOneDay(c.Task, now)
	} else {
		until, perr := ctx.ParseDate(c.Until)
		if perr != nil {
			return perr
		}
		task, err = ctx.Tracker.SnoozeTask(c.Task, until, now)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Snoozed %s until %s.\n", task.Title, task.SnoozedUntil.Format(constants.DateFormat))
	return nil
}

type TaskDeactivateCmd struct {
	Task string `arg:"" help:"Task ID or title."`
}

func (c *TaskDeactivateCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Tracker.DeactivateTask(c.Task, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Deactivated task: %s\n", task.Title)
	return nil
}

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task ID or title."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeleteTask(c.Task, ctx.Now()); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	fmt.Printf("Deleted task: %s\n", c.Task)
	return nil
}
