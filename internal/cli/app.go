package cli

import (
	"io"
	"math/rand"
	"os"
	"time"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	api      api.API
	config   *config.Config
	registry *CommandRegistry
	errors   *ErrorHandler
	out      io.Writer
	in       io.Reader
	rand     *rand.Rand
}

// AppOption configures an App
type AppOption func(*App)

// WithOutput redirects command output
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.out = w
	}
}

// WithInput replaces the reader used for confirmations
func WithInput(r io.Reader) AppOption {
	return func(a *App) {
		a.in = r
	}
}

// WithRand sets the random source used for activity suggestions
func WithRand(r *rand.Rand) AppOption {
	return func(a *App) {
		a.rand = r
	}
}

// NewApp creates a new CLI application. The API may be nil until SetAPI is
// called, which lets flags change the storage before it is opened.
func NewApp(apiInstance api.API, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	app := &App{
		api:    apiInstance,
		config: cfg,
		errors: NewErrorHandler(),
		out:    os.Stdout,
		in:     os.Stdin,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetAPI installs the API used by every command
func (a *App) SetAPI(apiInstance api.API) {
	a.api = apiInstance
}

// Config returns the active configuration
func (a *App) Config() *config.Config {
	return a.config
}
