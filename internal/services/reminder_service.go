package services

import (
	"context"
	"time"

	"taskmaster/internal/logging"

	"github.com/hashicorp/go-hclog"
)

// reminderServiceImpl implements the ReminderService interface
type reminderServiceImpl struct {
	source  TaskSource
	horizon time.Duration
	now     func() time.Time
	logger  hclog.Logger
}

// ReminderOption configures a ReminderService
type ReminderOption func(*reminderServiceImpl)

// WithHorizon overrides the due-soon horizon
func WithHorizon(horizon time.Duration) ReminderOption {
	return func(r *reminderServiceImpl) {
		if horizon > 0 {
			r.horizon = horizon
		}
	}
}

// WithClock overrides the clock used by Run
func WithClock(now func() time.Time) ReminderOption {
	return func(r *reminderServiceImpl) {
		r.now = now
	}
}

// WithReminderLogger sets the logger
func WithReminderLogger(logger hclog.Logger) ReminderOption {
	return func(r *reminderServiceImpl) {
		r.logger = logging.OrDiscard(logger)
	}
}

// NewReminderService creates a new ReminderService instance
func NewReminderService(source TaskSource, opts ...ReminderOption) ReminderService {
	r := &reminderServiceImpl{
		source:  source,
		horizon: DefaultDueSoonHorizon,
		now:     time.Now,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan returns reminders for due-soon tasks in collection order
func (r *reminderServiceImpl) Scan(ctx context.Context, now time.Time) []Reminder {
	tasks, err := r.source.Reload(ctx)
	if err != nil {
		r.logger.Warn("could not reload tasks, scanning last known state", "error", err)
	}
	due := DueSoon(tasks, now, r.horizon)

	reminders := make([]Reminder, 0, len(due))
	for _, task := range due {
		reminders = append(reminders, Reminder{Task: task, DueIn: task.DueDate.Sub(now)})
	}

	r.logger.Debug("reminder scan", "due_soon", len(reminders))
	return reminders
}

// Run scans once, then once per interval until ctx is cancelled
func (r *reminderServiceImpl) Run(ctx context.Context, interval time.Duration, notify func(Reminder)) error {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}

	scan := func() {
		for _, reminder := range r.Scan(ctx, r.now()) {
			notify(reminder)
		}
	}

	scan()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reminder loop stopped", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			scan()
		}
	}
}
