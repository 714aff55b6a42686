package api

import (
	"context"
	"time"

	"taskmaster/internal/domain"
	"taskmaster/internal/services"
	"taskmaster/internal/suggest"
	"taskmaster/internal/validation"
)

// API defines the interface for all task operations the presentation layer needs.
type API interface {
	// Task mutations
	AddTask(ctx context.Context, in validation.TaskInput) (*domain.Task, error)
	ToggleTask(ctx context.Context, idOrPrefix string) (*domain.Task, error)
	DeleteTask(ctx context.Context, idOrPrefix string) (*domain.Task, error)
	EditTask(ctx context.Context, idOrPrefix string, in validation.TaskInput) (*domain.Task, error)
	ClearTasks(ctx context.Context) error

	// Reads
	ListTasks(ctx context.Context, query domain.ViewQuery) ([]domain.Task, error)
	ResolveTask(ctx context.Context, idOrPrefix string) (*domain.Task, error)
	Stats(ctx context.Context) domain.Stats
	DueSoon(ctx context.Context) []services.Reminder
	WatchReminders(ctx context.Context, interval time.Duration, notify func(services.Reminder)) error

	// Preferences
	DarkTheme(ctx context.Context) bool
	ToggleTheme(ctx context.Context) (bool, error)

	// Suggestions
	Suggestion(ctx context.Context) Suggestion
}

// TaskStore is the subset of store.TaskStore the API depends on
type TaskStore interface {
	Add(ctx context.Context, text string, details domain.Details) (*domain.Task, error)
	ToggleComplete(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) (*domain.Task, error)
	Edit(ctx context.Context, id string, text string, details domain.Details) (*domain.Task, error)
	ClearAll(ctx context.Context) error
	View(query domain.ViewQuery) []domain.Task
	Stats() domain.Stats
	Resolve(idOrPrefix string) (*domain.Task, error)
}

// QuoteSource returns a quote, falling back to a canned one on failure
type QuoteSource interface {
	Quote(ctx context.Context) suggest.Quote
}

// Suggestion pairs a motivational quote with an activity idea
type Suggestion struct {
	Quote    suggest.Quote    `json:"quote"`
	Activity suggest.Activity `json:"activity"`
}
