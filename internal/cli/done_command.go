package cli

import (
	"context"

	"taskmaster/internal/errors"
)

// DoneCommand toggles the completion state of a task
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errors.Handle("toggle task", errors.NewInvalidInputError("id", args, "exactly one task id is required"))
	}

	task, err := c.app.api.ToggleTask(ctx, args[0])
	if err != nil {
		return c.app.errors.Handle("toggle task", err)
	}

	if task.Completed {
		c.app.println("Task completed!")
	} else {
		c.app.println("Task uncompleted!")
	}
	c.app.println(c.app.formatTask(*task, timeNow()))
	return nil
}
