package cli

import (
	"context"
	"strings"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/validation"
)

// EditCommand handles the edit command. Fields whose flag was not given keep
// their current value, the way a prefilled edit form would.
type EditCommand struct {
	app   *App
	flags taskFlags

	// changed reports whether a flag was set on the command line
	changed func(name string) bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:     app,
		changed: func(string) bool { return false },
	}
}

// Execute runs the edit command: edit <id> [new text...]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.app.errors.Handle("edit task", errors.NewInvalidInputError("id", "", "a task id is required"))
	}

	current, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	in := c.prefill(*current, strings.Join(args[1:], " "))
	task, err := c.app.api.EditTask(ctx, current.ID, in)
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	c.app.println("Task updated successfully!")
	c.app.println(c.app.formatTask(*task, timeNow()))
	return nil
}

func (c *EditCommand) prefill(task domain.Task, text string) validation.TaskInput {
	in := validation.TaskInput{
		Text:       task.Text,
		Date:       task.Date,
		DueDate:    domain.FormatDueDate(task.DueDate),
		Priority:   string(task.Priority),
		Category:   task.Category,
		Recurrence: string(task.Recurrence),
	}

	if strings.TrimSpace(text) != "" {
		in.Text = text
	}
	if c.changed("date") {
		in.Date = c.flags.Date
	}
	if c.changed("due") {
		in.DueDate = c.flags.DueDate
	}
	if c.changed("priority") {
		in.Priority = c.flags.Priority
	}
	if c.changed("category") {
		in.Category = c.flags.Category
	}
	if c.changed("recurrence") {
		in.Recurrence = c.flags.Recurrence
	}
	return in
}
