package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"

	"github.com/spf13/cobra"
)

// Builder opens the storage described by cfg and returns the API using it.
// The closer, when non-nil, is closed after the command finishes.
type Builder func(ctx context.Context, cfg *config.Config) (api.API, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	build  Builder
	closer io.Closer
}

// NewRootCommand creates the root cobra command with global flags. build is
// called once flags have been applied, unless the API was already provided
// through SetAPI.
func NewRootCommand(cfg *config.Config, build Builder, opts ...AppOption) *RootCommand {
	root := &RootCommand{
		app:   NewApp(nil, cfg, opts...),
		build: build,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line to-do list",
		Long: `TaskMaster (tm) keeps a prioritised to-do list on your machine.

FEATURES:
  • Add tasks with a due date, priority, category and recurrence
  • Recurring tasks schedule their next occurrence automatically
  • Search, filter and sort the list without changing its stored order
  • Reminders for tasks due within the next 24 hours
  • Motivational quotes and activity suggestions
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  tm add "Buy milk" -c shopping            # Add a task
  tm add "Standup" --due 2024-06-03 -r daily -p high
  tm list                                  # Show every task
  tm list milk --filter pending            # Search pending tasks for "milk"
  tm list --sort priority                  # High priority first
  tm done 3f2a                             # Toggle completion by id prefix
  tm edit 3f2a "Buy oat milk" -p low       # Change text and priority
  tm delete 3f2a                           # Delete a task
  tm clear --yes                           # Delete every task
  tm remind --watch                        # Keep checking for due tasks

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

  Storage Configuration:
    TM_STORAGE_BACKEND                     sqlite or file (default: sqlite)
    TM_STORAGE_DIR                         Data directory (default: user config dir/taskmaster)
    TM_STORAGE_FILENAME                    Database filename (default: tm.db)
    TM_STORAGE_QUERY_TIMEOUT               Query timeout (default: 10s)
    TM_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)
    TM_STORAGE_DIR_PERMISSIONS             Data directory mode (default: 0755)

  Reminder Configuration:
    TM_REMINDER_INTERVAL                   Scan interval for remind --watch (default: 1h)
    TM_REMINDER_HORIZON                    How far ahead a task is due soon (default: 24h)

  Suggestion Configuration:
    TM_SUGGEST_QUOTE_URL                   Quote endpoint (default: https://type.fit/api/quotes)
    TM_SUGGEST_TIMEOUT                     Quote fetch timeout (default: 5s)
    TM_SUGGEST_ENABLED                     Fetch quotes and show suggestions (default: true)

  Display Configuration:
    TM_DISPLAY_TIME_FORMAT                 Due date layout (default: 2006-01-02)
    TM_DISPLAY_HUMANIZE                    Show relative due times (default: true)

  Application Configuration:
    TM_ENV                                 development, testing or production
    TM_APP_TIMEOUT                         Command timeout (default: 60s)
    TM_APP_VERBOSE                         Enable verbose output (default: false)
    TM_APP_DEBUG                           Enable debug logging (default: false)
    TM_APP_LOG_LEVEL                       Log level (default: warn)

GETTING HELP:
  tm [command] --help                      # Get help for any specific command
  tm completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(cmd); err != nil {
				return err
			}
			return root.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.getAppTimeout())
			defer cancel()

			return root.app.registry.Execute(ctx, "list", args)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// App returns the application the commands run against
func (r *RootCommand) App() *App {
	return r.app
}

// SetAPI installs a ready-made API so the builder is not needed
func (r *RootCommand) SetAPI(apiInstance api.API) {
	r.app.SetAPI(apiInstance)
}

// Execute runs the command line in args and releases storage afterwards
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	if args == nil {
		args = []string{}
	}
	r.cmd.SetArgs(args)
	err := r.cmd.ExecuteContext(ctx)

	if r.closer != nil {
		if closeErr := r.closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", closeErr)
		}
		r.closer = nil
	}
	return err
}

func (r *RootCommand) open(ctx context.Context) error {
	if r.app.api != nil {
		return nil
	}
	if r.build == nil {
		return fmt.Errorf("no task storage configured")
	}

	apiInstance, closer, err := r.build(ctx, r.app.config)
	if err != nil {
		return err
	}
	r.app.SetAPI(apiInstance)
	r.closer = closer
	return nil
}

// addGlobalFlags adds global configuration flags to the root command
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite or file (overrides TM_STORAGE_BACKEND)")
	flags.String("data-dir", "", "Data directory (overrides TM_STORAGE_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TM_STORAGE_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Query timeout (overrides TM_STORAGE_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Write timeout (overrides TM_STORAGE_WRITE_TIMEOUT)")

	// Reminder configuration
	flags.Duration("remind-interval", 0, "Reminder scan interval (overrides TM_REMINDER_INTERVAL)")

	// Suggestion configuration
	flags.String("quote-url", "", "Quote endpoint (overrides TM_SUGGEST_QUOTE_URL)")
	flags.Duration("quote-timeout", 0, "Quote fetch timeout (overrides TM_SUGGEST_TIMEOUT)")

	// Display configuration
	flags.String("time-format", "", "Due date layout (overrides TM_DISPLAY_TIME_FORMAT)")
	flags.Bool("humanize", true, "Show relative due times (overrides TM_DISPLAY_HUMANIZE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TM_APP_VERBOSE)")
	flags.Bool("debug", false, "Enable debug logging (overrides TM_APP_DEBUG)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	add := r.handler("add").(*AddCommand)
	addCmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new task",
		Long: `Add a new task to the top of the list.

A task with a recurrence also gets its next occurrence, due one period
after its due date (or after today when it has none).`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run("add"),
	}
	add.flags.bind(addCmd)

	list := r.handler("list").(*ListCommand)
	listCmd := &cobra.Command{
		Use:   "list [search...]",
		Short: "List tasks",
		Long: `List tasks with optional search, filter and sort.

Search is a case-insensitive substring match on the task text.
Filters: all, completed, pending
Sorts:   none, date, priority, category

Examples:
  tm list                          # List every task
  tm list milk                     # Tasks containing "milk"
  tm list --filter completed       # Completed tasks only
  tm list --sort date              # Soonest due first, undated last`,
		Aliases: []string{"ls"},
		RunE:    r.run("list"),
	}
	listCmd.Flags().StringVarP(&list.filter, "filter", "f", "", "Filter: all, completed or pending")
	listCmd.Flags().StringVarP(&list.sort, "sort", "s", "", "Sort: none, date, priority or category")

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between completed and pending",
		Long:  "Toggle the completion state of a task. The id may be any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("done"),
	}

	edit := r.handler("edit").(*EditCommand)
	editCmd := &cobra.Command{
		Use:   "edit <id> [text...]",
		Short: "Edit a task",
		Long: `Edit the text and details of a task.

Flags that are not given keep their current value. Completion state and
creation time never change, and no recurrence is scheduled.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit.changed = cmd.Flags().Changed
			return r.run("edit")(cmd, args)
		},
	}
	edit.flags.bind(editCmd)

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a task",
		Long:    "Delete a task. The id may be any unique prefix. This cannot be undone.",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE:    r.run("delete"),
	}

	clearCommand := r.handler("clear").(*ClearCommand)
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Long:  "Delete every task after confirmation. This cannot be undone.",
		Args:  cobra.NoArgs,
		RunE:  r.run("clear"),
	}
	clearCmd.Flags().BoolVarP(&clearCommand.yes, "yes", "y", false, "Do not ask for confirmation")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE:  r.run("stats"),
	}

	remind := r.handler("remind").(*RemindCommand)
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Show tasks due within the next 24 hours",
		Long: `Show a reminder for every task due soon.

With --watch the check repeats every reminder interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !remind.watch {
				return r.run("remind")(cmd, args)
			}
			// watching runs until interrupted
			return r.app.registry.Execute(cmd.Context(), "remind", args)
		},
	}
	remindCmd.Flags().BoolVarP(&remind.watch, "watch", "w", false, "Keep checking until interrupted")
	remindCmd.Flags().DurationVar(&remind.interval, "interval", 0, "Interval between checks (defaults to the reminder interval)")

	themeCmd := &cobra.Command{
		Use:       "theme [toggle]",
		Short:     "Show or toggle the dark theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle"},
		RunE:      r.run("theme"),
	}

	suggestCommand := r.handler("suggest").(*SuggestCommand)
	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show a motivational quote and an activity idea",
		Args:  cobra.NoArgs,
		RunE:  r.run("suggest"),
	}
	suggestCmd.Flags().BoolVar(&suggestCommand.add, "add", false, "Add the suggested activity as a task")

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		doneCmd,
		editCmd,
		deleteCmd,
		clearCmd,
		statsCmd,
		remindCmd,
		themeCmd,
		suggestCmd,
	)
}

func (r *RootCommand) handler(name string) Command {
	command, ok := r.app.registry.Get(name)
	if !ok {
		panic("cli: command not registered: " + name)
	}
	return command
}

// run executes the named command under the application timeout
func (r *RootCommand) run(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return r.app.registry.Execute(ctx, name, args)
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags applies explicitly set flags on top of the loaded configuration
func (r *RootCommand) getConfigFromFlags(cmd *cobra.Command) error {
	if r.app.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		overrides.Backend = &v
	}
	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides.DataDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.Filename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.QueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.WriteTimeout = &v
	}
	if flags.Changed("remind-interval") {
		v, _ := flags.GetDuration("remind-interval")
		overrides.ReminderInterval = &v
	}
	if flags.Changed("quote-url") {
		v, _ := flags.GetString("quote-url")
		overrides.QuoteURL = &v
	}
	if flags.Changed("quote-timeout") {
		v, _ := flags.GetDuration("quote-timeout")
		overrides.QuoteTimeout = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if flags.Changed("humanize") {
		v, _ := flags.GetBool("humanize")
		overrides.Humanize = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides.Debug = &v
	}

	overrides.Apply(r.app.config)
	logging.SetDebug(r.app.config.Application.Debug)
	return r.app.config.Validate()
}
