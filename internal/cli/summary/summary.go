package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/tui"
)

type SummaryCmd struct {
	Today     SummaryTodayCmd     `cmd:"" help:"Show today's summary." default:"1"`
	Recompute SummaryRecomputeCmd `cmd:"" help:"Rebuild a day's summary from the logs."`
	Reflect   SummaryReflectCmd   `cmd:"" help:"Save a reflection note for a day."`
}

type SummaryTodayCmd struct{}

func (c *SummaryTodayCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	summary, err := ctx.Tracker.RecomputeDay(now, now)
	if err != nil {
		return err
	}
	fmt.Print(formatDay(summary))
	fmt.Printf("  %s %d days\n", labelStyle.Render("Streak:  "), ctx.Tracker.History().CurrentStreak(now))
	return nil
}

type SummaryRecomputeCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or yesterday)."`
}

func (c *SummaryRecomputeCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	summary, err := ctx.Tracker.RecomputeDay(date, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Print(formatDay(summary))
	return nil
}

type SummaryReflectCmd struct {
	Note string `arg:"" optional:"" help:"Reflection text. Prompts when omitted."`
	Date string `help:"Date (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *SummaryReflectCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	note := c.Note
	if strings.TrimSpace(note) == "" {
		form := &tui.ReflectionFormModel{}
		if existing, ok := ctx.Tracker.History().SummaryForDate(date); ok {
			form.Note = existing.ReflectionNote
		}
		if err := tui.NewReflectionForm(form).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Reflection cancelled.")
				return nil
			}
			return err
		}
		note = form.Note
	}
	if _, err := ctx.Tracker.SaveReflection(date, note, ctx.Now()); err != nil {
		return err
	}
	fmt.Printf("Saved reflection for %s.\n", date.Format("2006-01-02"))
	return nil
}
