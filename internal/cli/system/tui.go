package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/routine"
	"github.com/julianstephens/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()
	return tui.Run(ctx.Tracker, tui.Options{Now: ctx.Now})
}

type RoutineCmd struct {
	Name string `arg:"" optional:"" help:"Routine to run."`
	List bool   `short:"l" help:"List the available routines."`
}

func (c *RoutineCmd) Run(ctx *cli.Context) error {
	if c.List {
		for _, r := range routine.Builtin() {
			fmt.Printf("- %s (%d exercises, %s)\n", r.Name, len(r.Exercises), r.TotalDuration())
		}
		return nil
	}

	r := routine.Builtin()[0]
	if c.Name != "" {
		found, ok := routine.Find(c.Name)
		if !ok {
			names := make([]string, 0, len(routine.Builtin()))
			for _, b := range routine.Builtin() {
				names = append(names, b.Name)
			}
			return fmt.Errorf("unknown routine %q (available: %s)", c.Name, strings.Join(names, ", "))
		}
		r = found
	}
	return tui.Run(ctx.Tracker, tui.Options{Now: ctx.Now, Routine: r, Start: tui.StateRoutine})
}
