package cli

import (
	"context"

	"taskmaster/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errors.Handle("delete task", errors.NewInvalidInputError("id", args, "exactly one task id is required"))
	}
	return c.deleteTask(ctx, args[0])
}

func (c *DeleteCommand) deleteTask(ctx context.Context, id string) error {
	task, err := c.app.api.DeleteTask(ctx, id)
	if err != nil {
		return c.app.errors.Handle("delete task", err)
	}

	c.app.printf("Task deleted! (%s)\n", task.Text)
	return nil
}
