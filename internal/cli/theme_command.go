package cli

import (
	"context"

	"taskmaster/internal/errors"
)

// ThemeCommand shows or toggles the dark theme preference
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute runs the theme command: theme [toggle]
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		c.app.printf("Theme: %s\n", themeName(c.app.api.DarkTheme(ctx)))
		return nil
	case len(args) == 1 && args[0] == "toggle":
		dark, err := c.app.api.ToggleTheme(ctx)
		if err != nil {
			return c.app.errors.Handle("toggle theme", err)
		}
		c.app.printf("Switched to %s theme.\n", themeName(dark))
		return nil
	default:
		return c.app.errors.Handle("change theme", errors.NewInvalidInputError("action", args, "only \"toggle\" is supported"))
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
