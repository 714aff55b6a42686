package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskmaster/internal/errors"
	"taskmaster/internal/repository"
	"taskmaster/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes per-operation timeouts. Zero values disable the timeout.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements repository.SlotRepository on a slots table
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

var _ repository.SlotRepository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance with no timeouts
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath and runs pending migrations
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value stored under name
func (r *SQLiteRepository) Get(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT name, value, updated_at FROM slots WHERE name = ?`
	slot, err := QuerySingle(ctx, r.db, query, ScanSlot, "slot", name, name)
	if err != nil {
		return nil, err
	}
	return slot.Value, nil
}

// Put stores value under name, replacing any previous value
func (r *SQLiteRepository) Put(ctx context.Context, name string, value []byte) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	if value == nil {
		value = []byte{}
	}

	query := `
	INSERT INTO slots (name, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, query, name, value, FormatTimeForDB(r.now()))
}

func (r *SQLiteRepository) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
