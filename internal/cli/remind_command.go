package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmaster/internal/services"

	"github.com/dustin/go-humanize"
)

// RemindCommand prints reminders for tasks that fall due soon
type RemindCommand struct {
	app      *App
	watch    bool
	interval time.Duration
}

// NewRemindCommand creates a new remind command handler
func NewRemindCommand(app *App) *RemindCommand {
	return &RemindCommand{app: app}
}

// Execute runs the remind command. With watch set it keeps scanning until
// interrupted.
func (c *RemindCommand) Execute(ctx context.Context, args []string) error {
	if !c.watch {
		reminders := c.app.api.DueSoon(ctx)
		if len(reminders) == 0 {
			c.app.println("No tasks due soon.")
			return nil
		}
		for _, reminder := range reminders {
			c.notify(reminder)
		}
		return nil
	}

	interval := c.interval
	if interval <= 0 {
		interval = c.app.config.Reminder.Interval
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.app.printf("Watching for due tasks every %s. Press Ctrl+C to stop.\n", interval)
	if err := c.app.api.WatchReminders(ctx, interval, c.notify); err != nil {
		return c.app.errors.Handle("watch reminders", err)
	}
	return nil
}

func (c *RemindCommand) notify(reminder services.Reminder) {
	due := timeNow().Add(reminder.DueIn)
	c.app.printf("%s (due %s)\n", reminder.Message(), humanize.RelTime(due, timeNow(), "ago", "from now"))
}
