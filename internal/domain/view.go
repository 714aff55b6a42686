package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrInvalidSort   = errors.New("invalid sort value")
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// ParseFilter creates a Filter from a string. An empty string yields all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterPending:
		return f, nil
	}
	return "", ErrInvalidFilter
}

// SortCriterion defines how a view is ordered.
type SortCriterion string

const (
	SortNone     SortCriterion = "none"
	SortByDate   SortCriterion = "date"     // due date ascending, undated last
	SortPriority SortCriterion = "priority" // high, medium, low
	SortCategory SortCriterion = "category" // case-insensitive lexicographic
)

// ParseSortCriterion creates a SortCriterion from a string. An empty string yields none.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch c := SortCriterion(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return SortNone, nil
	case "due", "due-date":
		return SortByDate, nil
	case SortNone, SortByDate, SortPriority, SortCategory:
		return c, nil
	}
	return "", ErrInvalidSort
}

// ViewQuery is the read-side transformation applied before display:
// search, then filter, then sort.
type ViewQuery struct {
	Search string
	Filter Filter
	Sort   SortCriterion
}

// EmptyStateMessage is shown when a view for the given filter has no tasks.
func (f Filter) EmptyStateMessage() string {
	switch f {
	case FilterCompleted:
		return "No completed tasks yet"
	case FilterPending:
		return "No pending tasks"
	default:
		return "No tasks added yet"
	}
}
