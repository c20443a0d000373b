package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal."`
	Progress GoalProgressCmd `cmd:"" help:"Set a goal's progress."`
	List     GoalListCmd     `cmd:"" help:"List goals."`
}

type GoalAddCmd struct {
	Title    string  `arg:"" help:"Goal title."`
	Target   float64 `short:"t" help:"Target value." required:""`
	Unit     string  `short:"u" help:"Unit label, e.g. books or miles."`
	Deadline string  `short:"d" help:"Deadline (YYYY-MM-DD)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	var deadline *time.Time
	if c.Deadline != "" {
		d, err := ctx.ParseDate(c.Deadline)
		if err != nil {
			return err
		}
		deadline = &d
	}
	goal, err := ctx.Tracker.AddGoal(c.Title, c.Target, c.Unit, deadline, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Added goal: %s\n", formatGoal(goal))
	return nil
}

type GoalProgressCmd struct {
	Goal  string  `arg:"" help:"Goal ID or title."`
	Value float64 `arg:"" help:"Absolute progress value."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Tracker.UpdateGoalProgress(c.Goal, c.Value)
	if err != nil {
		return err
	}
	fmt.Println(formatGoal(goal))
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals := ctx.Tracker.Goals()
	if len(goals) == 0 {
		fmt.Println("No goals yet.")
		return nil
	}
	now := ctx.Now()
	for _, g := range goals {
		line := "- " + formatGoal(g)
		if g.Deadline != nil && g.Deadline.Before(now) && g.Completion() < 1 {
			line += " (past due)"
		}
		fmt.Println(line)
	}
	return nil
}

func formatGoal(g models.Goal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %g/%g", g.Title, g.Progress, g.Target)
	if g.Unit != "" {
		b.WriteString(" " + g.Unit)
	}
	fmt.Fprintf(&b, " (%.0f%%)", g.Completion()*100)
	if g.Deadline != nil {
		b.WriteString(", due " + g.Deadline.Format(constants.DateFormat))
	}
	return b.String()
}
