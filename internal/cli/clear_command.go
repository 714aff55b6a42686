package cli

import (
	"bufio"
	"context"
	"strings"
)

// ClearCommand removes every task after confirmation
type ClearCommand struct {
	app *App
	yes bool
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{app: app}
}

// Execute runs the clear command
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if !c.yes && !c.confirm("Are you sure you want to clear all tasks? [y/N]: ") {
		c.app.println("Clear cancelled.")
		return nil
	}

	if err := c.app.api.ClearTasks(ctx); err != nil {
		return c.app.errors.Handle("clear tasks", err)
	}
	c.app.println("All tasks cleared!")
	return nil
}

func (c *ClearCommand) confirm(prompt string) bool {
	c.app.printf("%s", prompt)

	line, err := bufio.NewReader(c.app.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
