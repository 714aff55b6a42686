package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

// AppName names the per-user configuration directory
const AppName = "taskmaster"

// EnvPrefix prefixes every environment variable read by the configuration
const EnvPrefix = "TM_"

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds all configuration options for the taskmaster application
type Config struct {
	Environment Environment       `env:"ENV"`
	Storage     StorageConfig     `envPrefix:"STORAGE_"`
	Reminder    ReminderConfig    `envPrefix:"REMINDER_"`
	Suggest     SuggestConfig     `envPrefix:"SUGGEST_"`
	Display     DisplayConfig     `envPrefix:"DISPLAY_"`
	Application ApplicationConfig `envPrefix:"APP_"`
}

// StorageConfig holds slot storage configuration
type StorageConfig struct {
	Backend        string        `env:"BACKEND"`
	Dir            string        `env:"DIR"`
	Filename       string        `env:"FILENAME"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT"`
	DirPermissions FileMode      `env:"DIR_PERMISSIONS"`
}

// ReminderConfig holds due-soon reminder configuration
type ReminderConfig struct {
	Interval time.Duration `env:"INTERVAL"`
	Horizon  time.Duration `env:"HORIZON"`
}

// SuggestConfig holds quote and activity suggestion configuration
type SuggestConfig struct {
	QuoteURL string        `env:"QUOTE_URL"`
	Timeout  time.Duration `env:"TIMEOUT"`
	Enabled  bool          `env:"ENABLED"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"TIME_FORMAT"`
	Humanize   bool   `env:"HUMANIZE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `env:"TIMEOUT"`
	Verbose  bool          `env:"VERBOSE"`
	Debug    bool          `env:"DEBUG"`
	LogLevel string        `env:"LOG_LEVEL"`
}

// FileMode is an os.FileMode read from octal text such as "0755"
type FileMode os.FileMode

// UnmarshalText parses an octal permission string
func (m *FileMode) UnmarshalText(text []byte) error {
	p, err := strconv.ParseUint(string(text), 8, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid permissions %q", string(text))
	}
	*m = FileMode(p)
	return nil
}

// String formats the mode as octal
func (m FileMode) String() string {
	return fmt.Sprintf("%#o", uint32(m))
}

// DefaultDataDir returns the per-user configuration directory for taskmaster
func DefaultDataDir() string {
	return configdir.LocalConfig(AppName)
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Environment: Production,
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            DefaultDataDir(),
			Filename:       "tm.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Reminder: ReminderConfig{
			Interval: time.Hour,
			Horizon:  24 * time.Hour,
		},
		Suggest: SuggestConfig{
			QuoteURL: "https://type.fit/api/quotes",
			Timeout:  5 * time.Second,
			Enabled:  true,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02",
			Humanize:   true,
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			LogLevel: "warn",
		},
	}
}

// GetDatabasePath returns the full path to the sqlite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the storage read timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the storage write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// EffectiveLogLevel returns debug when verbose or debug output is requested
func (c *Config) EffectiveLogLevel() string {
	if c.Application.Debug || c.Application.Verbose {
		return "debug"
	}
	return c.Application.LogLevel
}

// LoadFromEnvironment overlays TM_* environment variables on the current values.
// Unset variables leave the existing values untouched.
func (c *Config) LoadFromEnvironment() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Testing, Production:
	default:
		return &ConfigError{Field: "environment", Message: "must be one of development, testing, production"}
	}

	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return &ConfigError{Field: "storage.backend", Message: "must be one of sqlite, file"}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Reminder.Interval <= 0 {
		return &ConfigError{Field: "reminder.interval", Message: "reminder interval must be positive"}
	}
	if c.Reminder.Horizon <= 0 {
		return &ConfigError{Field: "reminder.horizon", Message: "reminder horizon must be positive"}
	}

	if c.Suggest.Enabled && c.Suggest.QuoteURL == "" {
		return &ConfigError{Field: "suggest.quote_url", Message: "quote URL cannot be empty when suggestions are enabled"}
	}
	if c.Suggest.Timeout <= 0 {
		return &ConfigError{Field: "suggest.timeout", Message: "quote timeout must be positive"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
