package services

import (
	"sort"
	"strings"
	"time"

	"taskmaster/internal/domain"
)

// MatchesSearch reports whether the task text contains term, ignoring case.
// An empty term matches everything.
func MatchesSearch(task domain.Task, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Text), strings.ToLower(term))
}

// SearchTasks keeps the tasks whose text matches term
func SearchTasks(tasks []domain.Task, term string) []domain.Task {
	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if MatchesSearch(task, term) {
			result = append(result, task)
		}
	}
	return result
}

// FilterTasks keeps the tasks selected by filter
func FilterTasks(tasks []domain.Task, filter domain.Filter) []domain.Task {
	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		switch filter {
		case domain.FilterCompleted:
			if !task.Completed {
				continue
			}
		case domain.FilterPending:
			if task.Completed {
				continue
			}
		}
		result = append(result, task)
	}
	return result
}

// SortTasks returns a stably sorted copy of tasks
func SortTasks(tasks []domain.Task, criterion domain.SortCriterion) []domain.Task {
	result := make([]domain.Task, len(tasks))
	copy(result, tasks)

	switch criterion {
	case domain.SortByDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].DueDate, result[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case domain.SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	case domain.SortCategory:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Category) < strings.ToLower(result[j].Category)
		})
	}

	return result
}

// ApplyView runs search, then filter, then sort. The input is not modified.
func ApplyView(tasks []domain.Task, query domain.ViewQuery) []domain.Task {
	filter := query.Filter
	if filter == "" {
		filter = domain.FilterAll
	}

	result := SearchTasks(tasks, query.Search)
	result = FilterTasks(result, filter)
	result = SortTasks(result, query.Sort)

	for i := range result {
		result[i] = result[i].Clone()
	}
	return result
}

// ComputeStats counts total, completed and pending tasks
func ComputeStats(tasks []domain.Task) domain.Stats {
	stats := domain.Stats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// IsDueSoon reports whether the task falls due within the next 24 hours
func IsDueSoon(task domain.Task, now time.Time) bool {
	return IsDueWithin(task, now, DefaultDueSoonHorizon)
}

// IsDueWithin reports whether 0 < due-now <= horizon
func IsDueWithin(task domain.Task, now time.Time, horizon time.Duration) bool {
	if task.DueDate == nil {
		return false
	}
	diff := task.DueDate.Sub(now)
	return diff > 0 && diff <= horizon
}

// DueSoon returns the tasks for which IsDueWithin holds, in collection order
func DueSoon(tasks []domain.Task, now time.Time, horizon time.Duration) []domain.Task {
	result := make([]domain.Task, 0)
	for _, task := range tasks {
		if IsDueWithin(task, now, horizon) {
			result = append(result, task.Clone())
		}
	}
	return result
}

// NextOccurrence builds the successor of a recurring task with a new id.
// The due date advances one period from the task's due date, or from
// today's UTC date when the task has none.
func NextOccurrence(task domain.Task, id string, now time.Time) (domain.Task, error) {
	anchor := truncateToUTCDate(now)
	if task.DueDate != nil {
		anchor = *task.DueDate
	}
	next := task.Recurrence.Advance(anchor)

	details := task.Details()
	details.DueDate = &next

	return domain.NewTask(id, task.Text, details, now)
}

func truncateToUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
