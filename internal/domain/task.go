package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyText is returned when a task would be created or edited with blank text.
var ErrEmptyText = errors.New("task text cannot be empty")

// Details holds the editable fields of a task other than its text.
// Edit replaces all of them at once.
type Details struct {
	Date       string
	DueDate    *time.Time
	Priority   Priority
	Category   string
	Recurrence Recurrence
}

// Task represents a single to-do item.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID         string
	Text       string
	Date       string
	DueDate    *time.Time
	Priority   Priority
	Category   string
	Recurrence Recurrence
	Completed  bool
	CreatedAt  time.Time
}

// NewTask builds a task, enforcing non-empty trimmed text and filling
// defaults for an unset priority or recurrence.
func NewTask(id, text string, details Details, createdAt time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	t := Task{
		ID:        id,
		Text:      text,
		CreatedAt: createdAt.UTC(),
	}
	t.apply(details)
	return t, nil
}

// WithDetails returns a copy of the task with text and details replaced.
// ID, completion state and creation time are carried over.
func (t Task) WithDetails(text string, details Details) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	t.Text = text
	t.apply(details)
	return t, nil
}

func (t *Task) apply(details Details) {
	t.Date = strings.TrimSpace(details.Date)
	t.DueDate = copyTime(details.DueDate)
	t.Priority = details.Priority
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Category = strings.TrimSpace(details.Category)
	t.Recurrence = details.Recurrence
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
}

// Details returns the editable fields of the task.
func (t Task) Details() Details {
	return Details{
		Date:       t.Date,
		DueDate:    copyTime(t.DueDate),
		Priority:   t.Priority,
		Category:   t.Category,
		Recurrence: t.Recurrence,
	}
}

// IsRecurring reports whether the task repeats.
func (t Task) IsRecurring() bool {
	return t.Recurrence != "" && t.Recurrence != RecurrenceNone
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// Clone returns a deep copy so callers cannot alias the stored due date.
func (t Task) Clone() Task {
	t.DueDate = copyTime(t.DueDate)
	return t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Stats holds the derived counts shown next to the task list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
