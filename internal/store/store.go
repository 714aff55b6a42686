// Package store holds the ordered task collection and keeps it in sync with
// slot storage.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/logging"
	"taskmaster/internal/repository"
	"taskmaster/internal/services"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// TaskStore is the in-memory task collection backed by a slot repository.
// Index 0 is the most recently added task.
type TaskStore struct {
	mutex  sync.RWMutex
	repo   repository.SlotRepository
	tasks  []domain.Task
	mapper *domain.TaskMapper
	newID  func() string
	now    func() time.Time
	logger hclog.Logger
}

// Option configures a TaskStore
type Option func(*TaskStore)

// WithIDGenerator overrides the id source
func WithIDGenerator(newID func() string) Option {
	return func(s *TaskStore) {
		s.newID = newID
	}
}

// WithClock overrides the clock used for creation times and recurrence
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger hclog.Logger) Option {
	return func(s *TaskStore) {
		s.logger = logging.OrDiscard(logger)
	}
}

// New creates an empty store. Call Load to read the persisted collection.
func New(repo repository.SlotRepository, opts ...Option) *TaskStore {
	s := &TaskStore{
		repo:   repo,
		tasks:  []domain.Task{},
		mapper: domain.NewTaskMapper(),
		newID:  uuid.NewString,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads the persisted collection
func Open(ctx context.Context, repo repository.SlotRepository, opts ...Option) *TaskStore {
	s := New(repo, opts...)
	s.Load(ctx)
	return s
}

// Load replaces the collection with the persisted one. Absent, unreadable
// or corrupt data yields an empty collection.
func (s *TaskStore) Load(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tasks, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("could not read tasks, starting empty", "error", err)
		tasks = []domain.Task{}
	}
	s.tasks = tasks
	s.logger.Debug("tasks loaded", "count", len(s.tasks))
}

// Reload re-reads the persisted collection so changes written by another
// process become visible, and returns a copy of it. When storage cannot be
// read the current collection is kept and returned with the error.
func (s *TaskStore) Reload(ctx context.Context) ([]domain.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tasks, err := s.read(ctx)
	if err != nil {
		return s.copyTasks(), err
	}
	s.tasks = tasks
	return s.copyTasks(), nil
}

// read decodes the tasks slot. Only repository failures other than an
// absent slot are returned as errors; empty or corrupt data reads as empty.
func (s *TaskStore) read(ctx context.Context) ([]domain.Task, error) {
	data, err := s.repo.Get(ctx, repository.SlotTasks)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []domain.Task{}, nil
		}
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []domain.Task{}, nil
	}

	var records []domain.TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("stored tasks are corrupt, starting empty", "error", err)
		return []domain.Task{}, nil
	}

	tasks := make([]domain.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, task := range s.mapper.FromRecordSlice(records) {
		if strings.TrimSpace(task.Text) == "" {
			s.logger.Warn("skipping stored task without text", "id", task.ID)
			continue
		}
		if task.ID == "" || seen[task.ID] {
			task.ID = s.newID()
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Persist writes the whole collection to the tasks slot
func (s *TaskStore) Persist(ctx context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.write(ctx, s.tasks)
}

func (s *TaskStore) write(ctx context.Context, tasks []domain.Task) error {
	data, err := json.Marshal(s.mapper.ToRecordSlice(tasks))
	if err != nil {
		return apperrors.NewStorageError("encode tasks", err)
	}
	if err := s.repo.Put(ctx, repository.SlotTasks, data); err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeStorage) {
			return err
		}
		return apperrors.NewStorageError("save tasks", err)
	}
	return nil
}

// commit persists next and, on success, makes it the current collection.
// Callers hold the write lock.
func (s *TaskStore) commit(ctx context.Context, next []domain.Task) error {
	if err := s.write(ctx, next); err != nil {
		s.logger.Error("could not persist tasks", "error", err)
		return err
	}
	s.tasks = next
	return nil
}

// Add creates a task at the head of the collection. A recurring task also
// gets its next occurrence inserted ahead of it. The primary task is returned.
func (s *TaskStore) Add(ctx context.Context, text string, details domain.Details) (*domain.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	task, err := domain.NewTask(s.newID(), text, details, now)
	if err != nil {
		return nil, apperrors.NewValidationError("task text cannot be empty", err)
	}

	head := []domain.Task{task}
	if task.IsRecurring() {
		next, err := services.NextOccurrence(task, s.newID(), now)
		if err != nil {
			return nil, apperrors.NewValidationError("could not schedule next occurrence", err)
		}
		head = []domain.Task{next, task}
	}

	nextTasks := make([]domain.Task, 0, len(s.tasks)+len(head))
	nextTasks = append(nextTasks, head...)
	nextTasks = append(nextTasks, s.tasks...)

	if err := s.commit(ctx, nextTasks); err != nil {
		return nil, err
	}

	s.logger.Debug("task added", "id", task.ID, "recurring", task.IsRecurring())
	result := task.Clone()
	return &result, nil
}

// ToggleComplete flips the completed flag of the task with id
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	next := s.copyTasks()
	next[i].Completed = !next[i].Completed

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	result := next[i].Clone()
	return &result, nil
}

// Delete removes the task with id and returns it
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	removed := s.tasks[i].Clone()
	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return &removed, nil
}

// Edit replaces the text and details of the task with id. The id, completion
// state and creation time are kept and no occurrence is scheduled.
func (s *TaskStore) Edit(ctx context.Context, id string, text string, details domain.Details) (*domain.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	updated, err := s.tasks[i].WithDetails(text, details)
	if err != nil {
		return nil, apperrors.NewValidationError("task text cannot be empty", err)
	}

	next := s.copyTasks()
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	result := updated.Clone()
	return &result, nil
}

// ClearAll removes every task
func (s *TaskStore) ClearAll(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commit(ctx, []domain.Task{})
}

// View returns the tasks matching query. The stored order is never changed.
func (s *TaskStore) View(query domain.ViewQuery) []domain.Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return services.ApplyView(s.tasks, query)
}

// Tasks returns a copy of the whole collection in stored order
func (s *TaskStore) Tasks() []domain.Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.copyTasks()
}

// Stats returns total, completed and pending counts
func (s *TaskStore) Stats() domain.Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return services.ComputeStats(s.tasks)
}

// Resolve finds a task by full id or by a prefix matching exactly one id
func (s *TaskStore) Resolve(idOrPrefix string) (*domain.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, apperrors.NewInvalidInputError("id", idOrPrefix, "cannot be empty")
	}

	if i := s.indexOf(idOrPrefix); i >= 0 {
		result := s.tasks[i].Clone()
		return &result, nil
	}

	match := -1
	for i, task := range s.tasks {
		if strings.HasPrefix(task.ID, idOrPrefix) {
			if match >= 0 {
				return nil, apperrors.NewInvalidInputError("id", idOrPrefix, "matches more than one task")
			}
			match = i
		}
	}
	if match < 0 {
		return nil, apperrors.NewNotFoundError("task", idOrPrefix)
	}

	result := s.tasks[match].Clone()
	return &result, nil
}

func (s *TaskStore) indexOf(id string) int {
	for i, task := range s.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) copyTasks() []domain.Task {
	result := make([]domain.Task, len(s.tasks))
	for i, task := range s.tasks {
		result[i] = task.Clone()
	}
	return result
}
