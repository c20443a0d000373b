package summary

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type ReportCmd struct {
	Week ReportWeekCmd `cmd:"" help:"Print the weekly review." default:"withargs"`
}

type ReportWeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD)."`
}

func (c *ReportWeekCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	fmt.Print(ctx.Tracker.WeeklyReport(date).Render())
	return nil
}

type WidgetCmd struct {
	Refresh WidgetRefreshCmd `cmd:"" help:"Recompute today and export the widget snapshot."`
	Show    WidgetShowCmd    `cmd:"" help:"Print the last exported snapshot as JSON." default:"1"`
}

type WidgetRefreshCmd struct{}

func (c *WidgetRefreshCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.RefreshWidget(ctx.Now())
	if err != nil {
		return err
	}
	return printJSON(snap)
}

type WidgetShowCmd struct{}

func (c *WidgetShowCmd) Run(ctx *cli.Context) error {
	snap, ok := ctx.Tracker.Widget().Current()
	if !ok {
		fmt.Println("No widget snapshot yet. Run 'tally widget refresh'.")
		return nil
	}
	return printJSON(snap)
}
