// Package file stores slots as individual files on an afero filesystem.
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/repository"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const slotExt = ".json"

// Repository implements repository.SlotRepository with one file per slot
type Repository struct {
	fs       afero.Fs
	dir      string
	dirPerms os.FileMode
	logger   hclog.Logger
	mutex    sync.Mutex
}

var _ repository.SlotRepository = (*Repository)(nil)

// Option configures a Repository
type Option func(*Repository)

// WithDirPermissions sets the mode used when creating the data directory
func WithDirPermissions(mode os.FileMode) Option {
	return func(r *Repository) {
		r.dirPerms = mode
	}
}

// WithLogger sets the logger used for cleanup failures
func WithLogger(logger hclog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a repository rooted at dir on fs
func New(fs afero.Fs, dir string, opts ...Option) *Repository {
	r := &Repository{
		fs:       fs,
		dir:      dir,
		dirPerms: 0755,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewOS creates a repository on the host filesystem
func NewOS(dir string, opts ...Option) *Repository {
	return New(afero.NewOsFs(), dir, opts...)
}

// Path returns the file backing the named slot
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name+slotExt)
}

// Get returns the content of the named slot
func (r *Repository) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkSlot(ctx, name); err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := afero.ReadFile(r.fs, r.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("slot", name)
		}
		return nil, apperrors.NewStorageError("read slot", errors.WithStack(err))
	}

	return data, nil
}

// Put writes value to a temporary file and renames it over the slot
func (r *Repository) Put(ctx context.Context, name string, value []byte) error {
	if err := checkSlot(ctx, name); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.fs.MkdirAll(r.dir, r.dirPerms); err != nil {
		return apperrors.NewStorageError("create data directory", errors.WithStack(err))
	}

	if err := r.writeAtomic(r.Path(name), value); err != nil {
		return apperrors.NewStorageError("write slot", err)
	}

	return nil
}

// Close is a no-op for the file backend
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) writeAtomic(path string, value []byte) error {
	tmp := path + "-new"

	file, err := r.fs.OpenFile(tmp, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := file.Write(value); err != nil {
		file.Close()
		r.removeTemp(tmp)
		return errors.WithStack(err)
	}

	if err := file.Close(); err != nil {
		r.removeTemp(tmp)
		return errors.WithStack(err)
	}

	if err := r.fs.Rename(tmp, path); err != nil {
		r.removeTemp(tmp)
		return errors.Wrap(err, "could not overwrite slot")
	}

	return nil
}

func (r *Repository) removeTemp(path string) {
	if err := r.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Error("could not remove temporary slot file", "path", path, "error", err)
	}
}

func checkSlot(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("slot access", err)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return apperrors.NewInvalidInputError("slot", name, "must be a plain name")
	}
	return nil
}
