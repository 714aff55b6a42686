package api

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/repository"
	"taskmaster/internal/repository/file"
	"taskmaster/internal/services"
	"taskmaster/internal/store"
	"taskmaster/internal/suggest"
	"taskmaster/internal/validation"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type stubQuotes struct {
	quote suggest.Quote
	calls int
}

func (s *stubQuotes) Quote(ctx context.Context) suggest.Quote {
	s.calls++
	return s.quote
}

type testEnv struct {
	api    API
	store  *store.TaskStore
	repo   repository.SlotRepository
	quotes *stubQuotes
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	n := 0
	repo := file.New(afero.NewMemMapFs(), "/data")
	taskStore := store.Open(context.Background(), repo,
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("task-%02d", n)
		}),
		store.WithClock(func() time.Time { return testNow }),
	)
	quotes := &stubQuotes{quote: suggest.Quote{Text: "Keep going.", Author: "Someone"}}

	a := New(Dependencies{
		Store:     taskStore,
		Settings:  repo,
		Reminders: services.NewReminderService(taskStore),
		Quotes:    quotes,
		Now:       func() time.Time { return testNow },
		Rand:      rand.New(rand.NewSource(1)),
	})
	return &testEnv{api: a, store: taskStore, repo: repo, quotes: quotes}
}

func TestAPI_AddTask(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       validation.TaskInput
		expectError bool
		expectLen   int
	}{
		{"plain task", validation.TaskInput{Text: "Buy milk"}, false, 1},
		{"with details", validation.TaskInput{Text: "Report", DueDate: "2024-03-11", Priority: "high", Category: "work"}, false, 2},
		{"recurring adds successor", validation.TaskInput{Text: "Standup", DueDate: "2024-03-10", Recurrence: "daily"}, false, 4},
		{"blank text", validation.TaskInput{Text: "   "}, true, 4},
		{"bad priority", validation.TaskInput{Text: "Thing", Priority: "urgent"}, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := env.api.AddTask(ctx, tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, validation.IsValidationError(err))
				assert.Nil(t, task)
			} else {
				require.NoError(t, err)
				assert.False(t, task.Completed)
			}
			assert.Len(t, env.store.Tasks(), tt.expectLen)
		})
	}
}

func TestAPI_ToggleDeleteByPrefix(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	_, err := env.api.AddTask(ctx, validation.TaskInput{Text: "Buy milk"})
	require.NoError(t, err)

	toggled, err := env.api.ToggleTask(ctx, "task-01")
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = env.api.ToggleTask(ctx, "task-0")
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	deleted, err := env.api.DeleteTask(ctx, "task-01")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", deleted.Text)
	assert.Len(t, env.store.Tasks(), 0)

	_, err = env.api.ToggleTask(ctx, "task-01")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = env.api.DeleteTask(ctx, "")
	assert.True(t, validation.IsValidationError(err))
}

func TestAPI_EditTask(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	added, err := env.api.AddTask(ctx, validation.TaskInput{Text: "Draft", Priority: "low", Category: "home"})
	require.NoError(t, err)
	_, err = env.api.ToggleTask(ctx, added.ID)
	require.NoError(t, err)

	edited, err := env.api.EditTask(ctx, added.ID, validation.TaskInput{Text: "Final", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, added.ID, edited.ID)
	assert.Equal(t, "Final", edited.Text)
	assert.Equal(t, domain.PriorityHigh, edited.Priority)
	assert.Empty(t, edited.Category)
	assert.True(t, edited.Completed)

	_, err = env.api.EditTask(ctx, added.ID, validation.TaskInput{Text: ""})
	assert.Error(t, err)
	task, err := env.api.ResolveTask(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", task.Text)
}

func TestAPI_ListTasksAndStats(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	for _, in := range []validation.TaskInput{
		{Text: "Buy milk", Priority: "medium"},
		{Text: "Pay rent", Priority: "high"},
		{Text: "Water plants", Priority: "low"},
	} {
		_, err := env.api.AddTask(ctx, in)
		require.NoError(t, err)
	}
	_, err := env.api.ToggleTask(ctx, "task-01")
	require.NoError(t, err)

	sorted, err := env.api.ListTasks(ctx, domain.ViewQuery{Sort: domain.SortPriority})
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"Pay rent", "Buy milk", "Water plants"},
		[]string{sorted[0].Text, sorted[1].Text, sorted[2].Text})

	pending, err := env.api.ListTasks(ctx, domain.ViewQuery{Filter: domain.FilterPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	found, err := env.api.ListTasks(ctx, domain.ViewQuery{Search: "MILK"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].Completed)

	assert.Equal(t, domain.Stats{Total: 3, Completed: 1, Pending: 2}, env.api.Stats(ctx))

	require.NoError(t, env.api.ClearTasks(ctx))
	assert.Equal(t, domain.Stats{}, env.api.Stats(ctx))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = env.api.ListTasks(cancelled, domain.ViewQuery{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}

func TestAPI_DueSoon(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	_, err := env.api.AddTask(ctx, validation.TaskInput{Text: "Tomorrow", DueDate: "2024-03-11"})
	require.NoError(t, err)
	_, err = env.api.AddTask(ctx, validation.TaskInput{Text: "Next week", DueDate: "2024-03-17"})
	require.NoError(t, err)

	reminders := env.api.DueSoon(ctx)
	require.Len(t, reminders, 1)
	assert.Equal(t, `Reminder: Task "Tomorrow" is due soon!`, reminders[0].Message())
	assert.Equal(t, 15*time.Hour, reminders[0].DueIn)
}

func TestAPI_WatchReminders(t *testing.T) {
	ctx := context.Background()

	bare := New(Dependencies{Store: setupAPI(t).store, Settings: file.New(afero.NewMemMapFs(), "/x")})
	err := bare.WatchReminders(ctx, time.Minute, func(services.Reminder) {})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnavailable))

	env := setupAPI(t)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.NoError(t, env.api.WatchReminders(cancelled, time.Minute, func(services.Reminder) {}))
}

func TestAPI_Theme(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	assert.False(t, env.api.DarkTheme(ctx))

	dark, err := env.api.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, env.api.DarkTheme(ctx))

	stored, err := env.repo.Get(ctx, repository.SlotDarkTheme)
	require.NoError(t, err)
	assert.Equal(t, "true", string(stored))

	dark, err = env.api.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.False(t, dark)

	require.NoError(t, env.repo.Put(ctx, repository.SlotDarkTheme, []byte("maybe")))
	assert.False(t, env.api.DarkTheme(ctx))
}

func TestAPI_Suggestion(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	s := env.api.Suggestion(ctx)
	assert.Equal(t, "Keep going.", s.Quote.Text)
	assert.Contains(t, suggest.Activities(), s.Activity)
	assert.Equal(t, 1, env.quotes.calls)

	noQuotes := New(Dependencies{Store: env.store, Settings: env.repo})
	assert.Equal(t, suggest.FallbackQuote, noQuotes.Suggestion(ctx).Quote)
}
