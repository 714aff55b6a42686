package cli

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/repository"
	"taskmaster/internal/repository/file"
	"taskmaster/internal/services"
	"taskmaster/internal/store"
	"taskmaster/internal/suggest"

	"github.com/spf13/afero"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedQuotes struct{}

func (fixedQuotes) Quote(ctx context.Context) suggest.Quote {
	return suggest.Quote{Text: "Well begun is half done.", Author: "Aristotle"}
}

// testEnv is a CLI wired to a real API over an in-memory filesystem
type testEnv struct {
	repo  repository.SlotRepository
	store *store.TaskStore
	api   api.API
	cfg   *config.Config
	out   *bytes.Buffer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	previous := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = previous })

	n := 0
	repo := file.New(afero.NewMemMapFs(), "/data")
	taskStore := store.Open(context.Background(), repo,
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("a%d00000000-0000", n)
		}),
		store.WithClock(func() time.Time { return testNow }),
	)

	env := &testEnv{
		repo:  repo,
		store: taskStore,
		cfg:   config.NewConfig(),
		out:   &bytes.Buffer{},
	}
	env.api = api.New(api.Dependencies{
		Store:     taskStore,
		Settings:  repo,
		Reminders: services.NewReminderService(taskStore),
		Quotes:    fixedQuotes{},
		Now:       func() time.Time { return testNow },
		Rand:      rand.New(rand.NewSource(7)),
	})
	return env
}

// run executes one command line against a fresh root command and returns
// its output
func (e *testEnv) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	e.out.Reset()
	root := NewRootCommand(e.cfg, nil,
		WithOutput(e.out),
		WithInput(strings.NewReader(input)),
		WithRand(rand.New(rand.NewSource(7))),
	)
	root.SetAPI(e.api)
	root.Command().SetOut(e.out)
	root.Command().SetErr(e.out)

	err := root.Execute(context.Background(), args)
	return e.out.String(), err
}
