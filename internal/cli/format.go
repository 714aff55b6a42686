package cli

import (
	"fmt"
	"strings"
	"time"

	"taskmaster/internal/domain"
	"taskmaster/internal/services"

	"github.com/dustin/go-humanize"
)

// shortIDLength is how many id characters are shown in listings
const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// formatDue renders a due date with the configured layout and, when enabled,
// a relative hint such as "in 3 hours"
func (a *App) formatDue(due time.Time, now time.Time) string {
	layout := a.config.Display.TimeFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	s := due.Format(layout)
	if a.config.Display.Humanize {
		s += " (" + humanize.RelTime(due, now, "ago", "from now") + ")"
	}
	return s
}

// formatTask renders one task line:
// [x] 3f2a1b2c  Buy milk  high  #shopping  due 2024-06-01 (2 days from now)
func (a *App) formatTask(task domain.Task, now time.Time) string {
	var b strings.Builder

	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(&b, "[%s] %s  %s  %s", mark, shortID(task.ID), task.Text, task.Priority)

	if task.Category != "" {
		fmt.Fprintf(&b, "  #%s", task.Category)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, "  due %s", a.formatDue(*task.DueDate, now))
		if services.IsDueWithin(task, now, a.dueSoonHorizon()) {
			b.WriteString("  (due soon!)")
		}
	}
	if task.IsRecurring() {
		fmt.Fprintf(&b, "  repeats %s", task.Recurrence)
	}
	if task.Date != "" {
		fmt.Fprintf(&b, "  on %s", task.Date)
	}
	return b.String()
}

func formatStats(stats domain.Stats) string {
	return fmt.Sprintf("Total: %d | Completed: %d | Pending: %d", stats.Total, stats.Completed, stats.Pending)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) dueSoonHorizon() time.Duration {
	if a.config.Reminder.Horizon > 0 {
		return a.config.Reminder.Horizon
	}
	return services.DefaultDueSoonHorizon
}
