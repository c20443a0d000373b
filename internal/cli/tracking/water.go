package tracking

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type WaterCmd struct {
	Add  WaterAddCmd  `cmd:"" help:"Record ounces of water." default:"withargs"`
	Show WaterShowCmd `cmd:"" help:"Show water intake for a day."`
}

type WaterAddCmd struct {
	Ounces float64 `arg:"" help:"Ounces to add."`
}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Tracker.AddWater(c.Ounces, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Water: %.0f / %.0f oz\n", day.TotalOunces, day.TargetOunces)
	return nil
}

type WaterShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or yesterday)."`
}

func (c *WaterShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	day, ok := ctx.Tracker.WaterFor(date)
	if !ok {
		fmt.Printf("No water logged on %s (target %.0f oz).\n", date.Format("2006-01-02"), ctx.Config.WaterTargetOz)
		return nil
	}
	fmt.Printf("Water on %s: %.0f / %.0f oz\n", date.Format("2006-01-02"), day.TotalOunces, day.TargetOunces)
	for _, e := range day.Entries {
		fmt.Printf("  %s  +%.0f oz\n", e.LoggedAt.In(date.Location()).Format("15:04"), e.Ounces)
	}
	return nil
}
