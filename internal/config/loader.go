package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	envFiles []string
}

// NewLoader creates a new configuration loader. envFiles default to ".env".
func NewLoader(envFiles ...string) *Loader {
	return &Loader{
		config:   NewConfig(),
		envFiles: envFiles,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Export variables from .env files without overriding the environment
// 3. Override with TM_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	// a missing .env file is normal
	_ = godotenv.Load(l.envFiles...)

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend      *string
	DataDir      *string
	Filename     *string
	QueryTimeout *time.Duration
	WriteTimeout *time.Duration

	// Reminder overrides
	ReminderInterval *time.Duration

	// Suggest overrides
	QuoteURL     *string
	QuoteTimeout *time.Duration

	// Display overrides
	TimeFormat *string
	Humanize   *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
	Debug   *bool
}

// Apply copies every non-nil override onto config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.Backend != nil {
		config.Storage.Backend = *o.Backend
	}
	if o.DataDir != nil {
		config.Storage.Dir = *o.DataDir
	}
	if o.Filename != nil {
		config.Storage.Filename = *o.Filename
	}
	if o.QueryTimeout != nil {
		config.Storage.QueryTimeout = *o.QueryTimeout
	}
	if o.WriteTimeout != nil {
		config.Storage.WriteTimeout = *o.WriteTimeout
	}

	if o.ReminderInterval != nil {
		config.Reminder.Interval = *o.ReminderInterval
	}

	if o.QuoteURL != nil {
		config.Suggest.QuoteURL = *o.QuoteURL
	}
	if o.QuoteTimeout != nil {
		config.Suggest.Timeout = *o.QuoteTimeout
	}

	if o.TimeFormat != nil {
		config.Display.TimeFormat = *o.TimeFormat
	}
	if o.Humanize != nil {
		config.Display.Humanize = *o.Humanize
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.Debug != nil {
		config.Application.Debug = *o.Debug
	}
}
