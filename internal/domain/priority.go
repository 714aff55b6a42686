package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidPriority   = errors.New("invalid priority value")
	ErrInvalidRecurrence = errors.New("invalid recurrence value")
)

// Priority represents task urgency level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// ParsePriority creates a Priority from a string. An empty string yields medium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank orders priorities for sorting: high < medium < low < anything else.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

func (p Priority) String() string {
	return string(p)
}

// Recurrence is how often a task repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ParseRecurrence creates a Recurrence from a string. An empty string yields none.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RecurrenceNone, nil
	}
	r := Recurrence(s)
	if !r.IsValid() {
		return "", ErrInvalidRecurrence
	}
	return r, nil
}

// IsValid returns true if the recurrence is a known value.
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Advance moves t forward by one period. Monthly uses calendar months,
// so Jan 31 advances to Mar 2 or 3 the way time.AddDate normalises.
func (r Recurrence) Advance(t time.Time) time.Time {
	switch r {
	case RecurrenceDaily:
		return t.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t
	}
}

func (r Recurrence) String() string {
	return string(r)
}
