package config

import (
	"os"
	"strings"

	"taskmaster/internal/repository"
	"taskmaster/internal/repository/file"
	"taskmaster/internal/repository/sqlite"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// UnmarshalText accepts any case and maps unknown values to production
func (e *Environment) UnmarshalText(text []byte) error {
	switch v := Environment(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case Development, Testing, Production:
		*e = v
	default:
		*e = Production
	}
	return nil
}

// CreateRepository creates the slot repository selected by the configuration
func CreateRepository(config *Config, logger hclog.Logger) (repository.SlotRepository, error) {
	if config.Environment == Testing {
		return CreateTestRepository()
	}

	switch config.Storage.Backend {
	case BackendFile:
		return file.NewOS(config.Storage.Dir,
			file.WithDirPermissions(os.FileMode(config.Storage.DirPermissions)),
			file.WithLogger(logger),
		), nil
	default:
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}

		repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize database")
		}
		return repo, nil
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.SlotRepository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize test database")
	}
	return repo, nil
}
