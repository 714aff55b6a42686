package services

import (
	"testing"
	"time"

	"taskmaster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ids(tasks []domain.Task) []string {
	result := make([]string, len(tasks))
	for i, task := range tasks {
		result[i] = task.ID
	}
	return result
}

func TestMatchesSearch(t *testing.T) {
	task := domain.Task{Text: "Buy Milk"}

	tests := []struct {
		term     string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"milk", true},
		{"BUY", true},
		{"uy mi", true},
		{"bread", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesSearch(task, tt.term))
		})
	}
}

func TestFilterTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Text: "a", Completed: true},
		{ID: "2", Text: "b"},
		{ID: "3", Text: "c", Completed: true},
	}

	tests := []struct {
		filter   domain.Filter
		expected []string
	}{
		{domain.FilterAll, []string{"1", "2", "3"}},
		{domain.FilterCompleted, []string{"1", "3"}},
		{domain.FilterPending, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(FilterTasks(tasks, tt.filter)))
		})
	}
}

func TestSortTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Priority: domain.PriorityMedium, Category: "work", DueDate: date(2024, 5, 3)},
		{ID: "2", Priority: domain.PriorityHigh, Category: "Home"},
		{ID: "3", Priority: domain.PriorityLow, Category: "errands", DueDate: date(2024, 5, 1)},
		{ID: "4", Priority: domain.PriorityHigh, Category: "home", DueDate: date(2024, 5, 2)},
		{ID: "5", Priority: domain.PriorityMedium, Category: ""},
	}

	tests := []struct {
		criterion domain.SortCriterion
		expected  []string
	}{
		{domain.SortNone, []string{"1", "2", "3", "4", "5"}},
		{domain.SortByDate, []string{"3", "4", "1", "2", "5"}},
		{domain.SortPriority, []string{"2", "4", "1", "5", "3"}},
		{domain.SortCategory, []string{"5", "3", "2", "4", "1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(SortTasks(tasks, tt.criterion)))
		})
	}

	// the input keeps its order
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(tasks))
}

func TestSortTasks_UnknownPriorityLast(t *testing.T) {
	tasks := []domain.Task{
		{ID: "odd", Priority: domain.Priority("someday")},
		{ID: "low", Priority: domain.PriorityLow},
	}
	assert.Equal(t, []string{"low", "odd"}, ids(SortTasks(tasks, domain.SortPriority)))
}

func TestApplyView(t *testing.T) {
	due := date(2024, 5, 1)
	tasks := []domain.Task{
		{ID: "1", Text: "Buy milk", Priority: domain.PriorityLow, DueDate: due},
		{ID: "2", Text: "Walk dog", Priority: domain.PriorityHigh},
		{ID: "3", Text: "buy bread", Priority: domain.PriorityHigh, Completed: true},
	}

	t.Run("search then filter then sort", func(t *testing.T) {
		result := ApplyView(tasks, domain.ViewQuery{Search: "buy", Filter: domain.FilterAll, Sort: domain.SortPriority})
		assert.Equal(t, []string{"3", "1"}, ids(result))
	})

	t.Run("empty query returns everything in order", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2", "3"}, ids(ApplyView(tasks, domain.ViewQuery{})))
	})

	t.Run("result does not alias stored due dates", func(t *testing.T) {
		result := ApplyView(tasks, domain.ViewQuery{Search: "milk"})
		require.Len(t, result, 1)
		*result[0].DueDate = result[0].DueDate.AddDate(1, 0, 0)
		assert.Equal(t, 2024, tasks[0].DueDate.Year())
	})
}

func TestApplyView_BuyMilkScenario(t *testing.T) {
	tasks := []domain.Task{{ID: "1", Text: "Buy milk"}}

	assert.Len(t, ApplyView(tasks, domain.ViewQuery{Filter: domain.FilterAll}), 1)
	assert.Len(t, ApplyView(tasks, domain.ViewQuery{Filter: domain.FilterCompleted}), 0)
	assert.Len(t, ApplyView(tasks, domain.ViewQuery{Filter: domain.FilterPending}), 1)

	tasks[0].Completed = true
	assert.Len(t, ApplyView(tasks, domain.ViewQuery{Filter: domain.FilterCompleted}), 1)
	assert.Len(t, ApplyView(tasks, domain.ViewQuery{Filter: domain.FilterPending}), 0)
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, domain.Stats{}, ComputeStats(nil))

	stats := ComputeStats([]domain.Task{{Completed: true}, {}, {}, {Completed: true}, {}})
	assert.Equal(t, domain.Stats{Total: 5, Completed: 2, Pending: 3}, stats)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	tests := []struct {
		name     string
		due      *time.Time
		expected bool
	}{
		{"no due date", nil, false},
		{"already past", at(-time.Minute), false},
		{"exactly now", at(0), false},
		{"one second ahead", at(time.Second), true},
		{"exactly 24h", at(24 * time.Hour), true},
		{"just over 24h", at(24*time.Hour + time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDueSoon(domain.Task{DueDate: tt.due}, now))
		})
	}
}

func TestDueSoon(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "tomorrow", DueDate: date(2024, 5, 2)},
		{ID: "later", DueDate: date(2024, 5, 9)},
		{ID: "none"},
	}

	assert.Equal(t, []string{"tomorrow"}, ids(DueSoon(tasks, now, DefaultDueSoonHorizon)))
	assert.Equal(t, []string{"tomorrow", "later"}, ids(DueSoon(tasks, now, 10*24*time.Hour)))
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recurrence domain.Recurrence
		due        *time.Time
		expected   time.Time
	}{
		{"daily from due date", domain.RecurrenceDaily, date(2024, 2, 1), time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
		{"weekly from due date", domain.RecurrenceWeekly, date(2024, 2, 1), time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC)},
		{"monthly from due date", domain.RecurrenceMonthly, date(2024, 2, 1), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"daily without due date uses today", domain.RecurrenceDaily, nil, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{
				ID: "orig", Text: "Water plants", Date: "2024-01-01", DueDate: tt.due,
				Priority: domain.PriorityHigh, Category: "home", Recurrence: tt.recurrence, Completed: true,
			}

			next, err := NextOccurrence(task, "next", now)
			require.NoError(t, err)

			assert.Equal(t, "next", next.ID)
			assert.Equal(t, task.Text, next.Text)
			assert.Equal(t, task.Date, next.Date)
			assert.Equal(t, task.Priority, next.Priority)
			assert.Equal(t, task.Category, next.Category)
			assert.Equal(t, task.Recurrence, next.Recurrence)
			assert.False(t, next.Completed)
			require.NotNil(t, next.DueDate)
			assert.Equal(t, tt.expected, *next.DueDate)
		})
	}
}
