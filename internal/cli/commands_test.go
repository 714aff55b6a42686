package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/domain"
	"taskmaster/internal/logging"
	"taskmaster/internal/repository"
	"taskmaster/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("adds a plain task", func(t *testing.T) {
		out, err := env.run(t, "", "add", "Buy", "milk", "-c", "shopping")
		require.NoError(t, err)
		assert.Contains(t, out, "Task added successfully!")
		assert.Contains(t, out, "[ ] a1000000  Buy milk  medium  #shopping")
		assert.Len(t, env.store.Tasks(), 1)
	})

	t.Run("adds a recurring task with its next occurrence", func(t *testing.T) {
		out, err := env.run(t, "", "add", "Standup", "--due", "2024-03-10", "-r", "daily", "-p", "high")
		require.NoError(t, err)
		assert.Contains(t, out, "Next daily occurrence scheduled.")
		require.Len(t, env.store.Tasks(), 3)

		tasks := env.store.Tasks()
		assert.Equal(t, "2024-03-11", domain.FormatDueDate(tasks[0].DueDate))
		assert.Equal(t, "2024-03-10", domain.FormatDueDate(tasks[1].DueDate))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := env.run(t, "", "add", "Thing", "--priority", "urgent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add task")
		assert.Contains(t, err.Error(), "priority")

		_, err = env.run(t, "", "add", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "text is required")
		assert.Len(t, env.store.Tasks(), 3)
	})

	t.Run("requires text", func(t *testing.T) {
		_, err := env.run(t, "", "add")
		assert.Error(t, err)
	})
}

func TestListCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("empty list shows suggestion", func(t *testing.T) {
		out, err := env.run(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No tasks added yet")
		assert.Contains(t, out, "Why not try this?")
		assert.Contains(t, out, "Total: 0 | Completed: 0 | Pending: 0")
	})

	_, err := env.run(t, "", "add", "Buy milk", "-p", "medium")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "Pay rent", "-p", "high", "--due", "2024-03-11")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "Water plants", "-p", "low")
	require.NoError(t, err)
	_, err = env.run(t, "", "done", "a1")
	require.NoError(t, err)

	t.Run("lists newest first with stats", func(t *testing.T) {
		out, err := env.run(t, "", "list")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 5)
		assert.Contains(t, lines[0], "Water plants")
		assert.Contains(t, lines[1], "Pay rent")
		assert.Contains(t, lines[1], "due 2024-03-11 (15 hours from now)  (due soon!)")
		assert.Contains(t, lines[2], "[x] a1000000  Buy milk")
		assert.Equal(t, "Total: 3 | Completed: 1 | Pending: 2", lines[4])
	})

	t.Run("sorts by priority", func(t *testing.T) {
		out, err := env.run(t, "", "list", "--sort", "priority")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Contains(t, lines[0], "Pay rent")
		assert.Contains(t, lines[1], "Buy milk")
		assert.Contains(t, lines[2], "Water plants")
	})

	t.Run("searches and filters", func(t *testing.T) {
		out, err := env.run(t, "", "list", "MILK", "--filter", "completed")
		require.NoError(t, err)
		assert.Contains(t, out, "Buy milk")
		assert.NotContains(t, out, "Pay rent")

		out, err = env.run(t, "", "list", "milk", "--filter", "pending")
		require.NoError(t, err)
		assert.Contains(t, out, "No pending tasks")
	})

	t.Run("root command lists", func(t *testing.T) {
		out, err := env.run(t, "")
		require.NoError(t, err)
		assert.Contains(t, out, "Water plants")
	})

	t.Run("rejects unknown filter", func(t *testing.T) {
		_, err := env.run(t, "", "list", "--filter", "archived")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filter")
	})

	t.Run("plain dates without humanize", func(t *testing.T) {
		out, err := env.run(t, "", "list", "rent", "--humanize=false", "--time-format", "Jan 2, 2006")
		require.NoError(t, err)
		assert.Contains(t, out, "due Mar 11, 2024  (due soon!)")
	})
}

func TestDoneCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "add", "Buy milk")
	require.NoError(t, err)

	out, err := env.run(t, "", "done", "a1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Task completed!")

	out, err = env.run(t, "", "done", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "Task uncompleted!")

	_, err = env.run(t, "", "done", "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found: zzz")
}

func TestEditCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "add", "Draft report", "-p", "low", "-c", "work", "--due", "2024-04-01")
	require.NoError(t, err)
	_, err = env.run(t, "", "done", "a1")
	require.NoError(t, err)

	t.Run("changes only given fields", func(t *testing.T) {
		out, err := env.run(t, "", "edit", "a1", "-p", "high")
		require.NoError(t, err)
		assert.Contains(t, out, "Task updated successfully!")

		task := env.store.Tasks()[0]
		assert.Equal(t, "Draft report", task.Text)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		assert.Equal(t, "work", task.Category)
		assert.Equal(t, "2024-04-01", domain.FormatDueDate(task.DueDate))
		assert.True(t, task.Completed)
	})

	t.Run("replaces text and clears a field", func(t *testing.T) {
		_, err := env.run(t, "", "edit", "a1", "Final", "report", "--category", "", "--due", "")
		require.NoError(t, err)

		task := env.store.Tasks()[0]
		assert.Equal(t, "Final report", task.Text)
		assert.Empty(t, task.Category)
		assert.Nil(t, task.DueDate)
	})

	t.Run("does not schedule an occurrence", func(t *testing.T) {
		_, err := env.run(t, "", "edit", "a1", "-r", "weekly")
		require.NoError(t, err)
		assert.Len(t, env.store.Tasks(), 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := env.run(t, "", "edit", "nope", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to edit task")
	})
}

func TestDeleteCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "add", "Task 1")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "Task 2")
	require.NoError(t, err)

	out, err := env.run(t, "", "delete", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "Task deleted! (Task 1)")
	require.Len(t, env.store.Tasks(), 1)
	assert.Equal(t, "Task 2", env.store.Tasks()[0].Text)

	_, err = env.run(t, "", "delete", "a1")
	require.Error(t, err)
	assert.Len(t, env.store.Tasks(), 1)

	_, err = env.run(t, "", "rm")
	assert.Error(t, err)
}

func TestClearCommand(t *testing.T) {
	env := setupTestEnv(t)

	for _, text := range []string{"one", "two"} {
		_, err := env.run(t, "", "add", text)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		input     string
		args      []string
		expected  string
		remaining int
	}{
		{"declined", "n\n", []string{"clear"}, "Clear cancelled.", 2},
		{"no input", "", []string{"clear"}, "Clear cancelled.", 2},
		{"confirmed", "yes\n", []string{"clear"}, "All tasks cleared!", 0},
		{"skips prompt", "", []string{"clear", "--yes"}, "All tasks cleared!", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(t, tt.input, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
			assert.Len(t, env.store.Tasks(), tt.remaining)
		})
	}
}

func TestStatsCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "add", "one")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "two")
	require.NoError(t, err)
	_, err = env.run(t, "", "done", "a2")
	require.NoError(t, err)

	out, err := env.run(t, "", "stats")
	require.NoError(t, err)
	assert.Equal(t, "Total: 2 | Completed: 1 | Pending: 1\n", out)
}

func TestRemindCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "", "remind")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks due soon.")

	_, err = env.run(t, "", "add", "Pay rent", "--due", "2024-03-11")
	require.NoError(t, err)
	_, err = env.run(t, "", "add", "Holiday", "--due", "2024-04-01")
	require.NoError(t, err)

	out, err = env.run(t, "", "remind")
	require.NoError(t, err)
	assert.Equal(t, "Reminder: Task \"Pay rent\" is due soon! (due 15 hours from now)\n", out)
}

func TestRemindCommand_WatchStopsWithContext(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "add", "Pay rent", "--due", "2024-03-11")
	require.NoError(t, err)

	app := NewApp(env.api, env.cfg, WithOutput(env.out))
	remind := NewRemindCommand(app)
	remind.watch = true

	env.out.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, remind.Execute(ctx, nil))
	assert.Contains(t, env.out.String(), "Watching for due tasks every 1h0m0s")
	assert.Contains(t, env.out.String(), `Reminder: Task "Pay rent" is due soon!`)
}

func TestThemeCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: light\n", out)

	out, err = env.run(t, "", "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "Switched to dark theme.\n", out)

	stored, err := env.repo.Get(context.Background(), repository.SlotDarkTheme)
	require.NoError(t, err)
	assert.Equal(t, "true", string(stored))

	out, err = env.run(t, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: dark\n", out)

	_, err = env.run(t, "", "theme", "blue")
	assert.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "", "suggest")
	require.NoError(t, err)
	assert.Contains(t, out, `"Well begun is half done." - Aristotle`)
	assert.Contains(t, out, "Suggested activity: ")
	assert.Len(t, env.store.Tasks(), 0)

	out, err = env.run(t, "", "suggest", "--add")
	require.NoError(t, err)
	assert.Contains(t, out, "Task added successfully!")
	require.Len(t, env.store.Tasks(), 1)

	var texts []string
	for _, activity := range suggest.Activities() {
		texts = append(texts, activity.Text)
	}
	assert.Contains(t, texts, env.store.Tasks()[0].Text)
}

func TestRootCommand_Builder(t *testing.T) {
	env := setupTestEnv(t)

	opened := 0
	closer := &closeCounter{}
	root := NewRootCommand(env.cfg, func(ctx context.Context, cfg *config.Config) (api.API, io.Closer, error) {
		opened++
		assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
		return env.api, closer, nil
	}, WithOutput(env.out))

	err := root.Execute(context.Background(), []string{"--backend", "file", "stats"})
	require.NoError(t, err)
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closer.closed)

	failing := NewRootCommand(config.NewConfig(), func(ctx context.Context, cfg *config.Config) (api.API, io.Closer, error) {
		return nil, nil, errors.New("cannot open storage")
	}, WithOutput(env.out))
	assert.EqualError(t, failing.Execute(context.Background(), []string{"stats"}), "cannot open storage")

	invalid := NewRootCommand(config.NewConfig(), nil, WithOutput(env.out))
	invalid.SetAPI(env.api)
	assert.Error(t, invalid.Execute(context.Background(), []string{"--backend", "postgres", "stats"}))
}

type closeCounter struct {
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestRootCommand_DebugFlag(t *testing.T) {
	env := setupTestEnv(t)
	t.Cleanup(func() { logging.SetDebug(false) })

	_, err := env.run(t, "", "--debug", "stats")
	require.NoError(t, err)
	assert.True(t, env.cfg.Application.Debug)
	assert.True(t, logging.DebugEnabled())
	assert.Equal(t, "debug", env.cfg.EffectiveLogLevel())

	env.cfg.Application.Debug = false
	_, err = env.run(t, "", "stats")
	require.NoError(t, err)
	assert.False(t, logging.DebugEnabled())
}
