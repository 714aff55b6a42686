package api

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/logging"
	"taskmaster/internal/repository"
	"taskmaster/internal/services"
	"taskmaster/internal/suggest"
	"taskmaster/internal/validation"

	"github.com/hashicorp/go-hclog"
)

// Dependencies are the collaborators wired into the API
type Dependencies struct {
	Store     TaskStore
	Settings  repository.SlotRepository
	Reminders services.ReminderService
	Quotes    QuoteSource
	Now       func() time.Time
	Rand      *rand.Rand
	Logger    hclog.Logger
}

type apiImpl struct {
	store     TaskStore
	settings  repository.SlotRepository
	reminders services.ReminderService
	quotes    QuoteSource
	now       func() time.Time
	validator *validation.TaskValidator
	logger    hclog.Logger

	themeMutex sync.Mutex
	randMutex  sync.Mutex
	rand       *rand.Rand
}

// New creates a new API instance. Store and Settings are required.
func New(deps Dependencies) API {
	a := &apiImpl{
		store:     deps.Store,
		settings:  deps.Settings,
		reminders: deps.Reminders,
		quotes:    deps.Quotes,
		now:       deps.Now,
		validator: validation.NewTaskValidator(),
		logger:    logging.OrDiscard(deps.Logger),
		rand:      deps.Rand,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.rand == nil {
		a.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

func (a *apiImpl) AddTask(ctx context.Context, in validation.TaskInput) (*domain.Task, error) {
	text, details, err := a.validator.ValidateTaskInput(in)
	if err != nil {
		return nil, err
	}

	task, err := a.store.Add(ctx, text, details)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("task added", "id", task.ID, "recurrence", task.Recurrence)
	return task, nil
}

func (a *apiImpl) ToggleTask(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	task, err := a.ResolveTask(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return a.store.ToggleComplete(ctx, task.ID)
}

func (a *apiImpl) DeleteTask(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	task, err := a.ResolveTask(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return a.store.Delete(ctx, task.ID)
}

func (a *apiImpl) EditTask(ctx context.Context, idOrPrefix string, in validation.TaskInput) (*domain.Task, error) {
	text, details, err := a.validator.ValidateTaskInput(in)
	if err != nil {
		return nil, err
	}

	task, err := a.ResolveTask(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return a.store.Edit(ctx, task.ID, text, details)
}

func (a *apiImpl) ClearTasks(ctx context.Context) error {
	return a.store.ClearAll(ctx)
}

func (a *apiImpl) ListTasks(ctx context.Context, query domain.ViewQuery) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorTypeTimeout, "listing tasks cancelled")
	}
	return a.store.View(query), nil
}

func (a *apiImpl) ResolveTask(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	if err := a.validator.ValidateTaskID(idOrPrefix); err != nil {
		return nil, err
	}
	return a.store.Resolve(strings.TrimSpace(idOrPrefix))
}

func (a *apiImpl) Stats(ctx context.Context) domain.Stats {
	return a.store.Stats()
}

func (a *apiImpl) DueSoon(ctx context.Context) []services.Reminder {
	if a.reminders == nil {
		return nil
	}
	return a.reminders.Scan(ctx, a.now())
}

func (a *apiImpl) WatchReminders(ctx context.Context, interval time.Duration, notify func(services.Reminder)) error {
	if a.reminders == nil {
		return apperrors.NewUnavailableError("reminders", nil)
	}
	return a.reminders.Run(ctx, interval, notify)
}

// DarkTheme reads the theme slot. Absent or unreadable values mean light.
func (a *apiImpl) DarkTheme(ctx context.Context) bool {
	a.themeMutex.Lock()
	defer a.themeMutex.Unlock()
	return a.darkTheme(ctx)
}

func (a *apiImpl) darkTheme(ctx context.Context) bool {
	data, err := a.settings.Get(ctx, repository.SlotDarkTheme)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			a.logger.Warn("could not read theme preference", "error", err)
		}
		return false
	}

	dark, err := strconv.ParseBool(strings.TrimSpace(string(data)))
	if err != nil {
		a.logger.Warn("theme preference is corrupt", "value", string(data))
		return false
	}
	return dark
}

func (a *apiImpl) ToggleTheme(ctx context.Context) (bool, error) {
	a.themeMutex.Lock()
	defer a.themeMutex.Unlock()

	dark := !a.darkTheme(ctx)
	if err := a.settings.Put(ctx, repository.SlotDarkTheme, []byte(strconv.FormatBool(dark))); err != nil {
		return !dark, err
	}
	return dark, nil
}

func (a *apiImpl) Suggestion(ctx context.Context) Suggestion {
	quote := suggest.FallbackQuote
	if a.quotes != nil {
		quote = a.quotes.Quote(ctx)
	}

	a.randMutex.Lock()
	activity := suggest.RandomActivity(a.rand)
	a.randMutex.Unlock()

	return Suggestion{Quote: quote, Activity: activity}
}
