package cli

import (
	"context"
	"strings"

	"taskmaster/internal/domain"
	"taskmaster/internal/suggest"
	"taskmaster/internal/validation"
)

// ListCommand handles the list command
type ListCommand struct {
	app       *App
	validator *validation.TaskValidator
	filter    string
	sort      string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, validator: validation.NewTaskValidator()}
}

// Execute runs the list command. Arguments are joined into a search term.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	query, err := c.validator.ParseQuery(strings.Join(args, " "), c.filter, c.sort)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}
	return c.listTasks(ctx, query)
}

func (c *ListCommand) listTasks(ctx context.Context, query domain.ViewQuery) error {
	tasks, err := c.app.api.ListTasks(ctx, query)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}

	if len(tasks) == 0 {
		c.printEmptyState(query.Filter)
	} else {
		now := timeNow()
		for _, task := range tasks {
			c.app.println(c.app.formatTask(task, now))
		}
	}

	c.app.println()
	c.app.println(formatStats(c.app.api.Stats(ctx)))
	return nil
}

func (c *ListCommand) printEmptyState(filter domain.Filter) {
	c.app.println(filter.EmptyStateMessage())
	if !c.app.config.Suggest.Enabled {
		return
	}

	activity := suggest.RandomActivity(c.app.rand)
	c.app.printf("Why not try this? %s (%s)\n", activity.Text, activity.Type)
	c.app.printf("Add it with: tm add %q\n", activity.Text)
}
