package cli

import (
	"context"
	"strings"

	"taskmaster/internal/validation"

	"github.com/spf13/cobra"
)

// taskFlags holds the optional task fields shared by add and edit
type taskFlags struct {
	Date       string
	DueDate    string
	Priority   string
	Category   string
	Recurrence string
}

func (f *taskFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.Date, "date", "", "Date the task is planned for (free form)")
	flags.StringVar(&f.DueDate, "due", "", "Due date as YYYY-MM-DD or RFC3339")
	flags.StringVarP(&f.Priority, "priority", "p", "", "Priority: low, medium or high (default medium)")
	flags.StringVarP(&f.Category, "category", "c", "", "Category label")
	flags.StringVarP(&f.Recurrence, "recurrence", "r", "", "Recurrence: none, daily, weekly or monthly")
}

func (f *taskFlags) input(text string) validation.TaskInput {
	return validation.TaskInput{
		Text:       text,
		Date:       f.Date,
		DueDate:    f.DueDate,
		Priority:   f.Priority,
		Category:   f.Category,
		Recurrence: f.Recurrence,
	}
}

// AddCommand handles the add command
type AddCommand struct {
	app   *App
	flags taskFlags
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	return c.addTask(ctx, strings.Join(args, " "))
}

func (c *AddCommand) addTask(ctx context.Context, text string) error {
	task, err := c.app.api.AddTask(ctx, c.flags.input(text))
	if err != nil {
		return c.app.errors.Handle("add task", err)
	}

	c.app.println("Task added successfully!")
	c.app.println(c.app.formatTask(*task, timeNow()))
	if task.IsRecurring() {
		c.app.printf("Next %s occurrence scheduled.\n", task.Recurrence)
	}
	return nil
}
