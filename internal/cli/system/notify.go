package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/notifier"
)

// Sender delivers a notification. *notifier.Notifier satisfies it.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type NotifyCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`

	sender Sender
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Notifications {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	remaining := ctx.Tracker.Remaining(ctx.Now())
	if remaining.Empty() {
		if c.DryRun {
			fmt.Println("Nothing left for today.")
		}
		return nil
	}

	msg := remaining.Message()
	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	sender := c.sender
	if sender == nil {
		sender = notifier.New()
	}
	if err := sender.Notify(context.Background(), msg); err != nil {
		// Scheduled runs should not fail loudly when the tray app is down
		logger.Warn("Failed to send notification", "error", err)
		fmt.Printf("Failed to send notification: %v\n", err)
	}
	return nil
}
