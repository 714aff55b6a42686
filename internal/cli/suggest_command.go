package cli

import (
	"context"
)

// SuggestCommand shows a motivational quote and an activity idea
type SuggestCommand struct {
	app *App
	add bool
}

// NewSuggestCommand creates a new suggest command handler
func NewSuggestCommand(app *App) *SuggestCommand {
	return &SuggestCommand{app: app}
}

// Execute runs the suggest command. With add set the activity becomes a task.
func (c *SuggestCommand) Execute(ctx context.Context, args []string) error {
	suggestion := c.app.api.Suggestion(ctx)

	c.app.println(suggestion.Quote.String())
	c.app.println()
	c.app.printf("Suggested activity: %s (%s)\n", suggestion.Activity.Text, suggestion.Activity.Type)

	if !c.add {
		return nil
	}

	add := NewAddCommand(c.app)
	return add.addTask(ctx, suggestion.Activity.Text)
}
