package services

import (
	"context"
	"time"

	"taskmaster/internal/domain"
)

// DefaultDueSoonHorizon is how far ahead a due date counts as "due soon"
const DefaultDueSoonHorizon = 24 * time.Hour

// DefaultReminderInterval is the period between reminder scans
const DefaultReminderInterval = time.Hour

// Reminder is a notification that a task is due soon
type Reminder struct {
	Task  domain.Task   `json:"task"`
	DueIn time.Duration `json:"due_in"`
}

// Message renders the reminder the way it is shown to the user
func (r Reminder) Message() string {
	return `Reminder: Task "` + r.Task.Text + `" is due soon!`
}

// TaskSource supplies the current tasks. Reload re-reads storage so a
// long-running scanner sees changes made by other processes; on error it
// still returns the last known collection.
type TaskSource interface {
	Reload(ctx context.Context) ([]domain.Task, error)
}

// ReminderService finds tasks that are about to fall due
type ReminderService interface {
	// Scan reloads the tasks and returns a reminder for every task due
	// within the horizon of now
	Scan(ctx context.Context, now time.Time) []Reminder

	// Run scans immediately and then on every tick until ctx is done
	Run(ctx context.Context, interval time.Duration, notify func(Reminder)) error
}
