package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "taskmaster/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "tm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestGet_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), "tasks")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPutAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[{"id":"1","text":"Buy milk"}]`)))

	value, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","text":"Buy milk"}]`, string(value))
}

func TestPut_OverwritesPreviousValue(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	repo.now = func() time.Time { return first }
	require.NoError(t, repo.Put(ctx, "darkTheme", []byte("false")))

	repo.now = func() time.Time { return second }
	require.NoError(t, repo.Put(ctx, "darkTheme", []byte("true")))

	value, err := repo.Get(ctx, "darkTheme")
	require.NoError(t, err)
	assert.Equal(t, "true", string(value))

	query := `SELECT name, value, updated_at FROM slots WHERE name = ?`
	slot, err := QuerySingle(ctx, repo.db, query, ScanSlot, "slot", "darkTheme", "darkTheme")
	require.NoError(t, err)
	assert.Equal(t, second, slot.UpdatedAt)

	var count int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPut_NilValue(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "tasks", nil))

	value, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tm.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := NewWithOptions(":memory:", Options{QueryTimeout: time.Second, WriteTimeout: time.Second})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "tasks", []byte("[]")))

	value, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}

func TestCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Put(ctx, "tasks", []byte("[]"))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}
