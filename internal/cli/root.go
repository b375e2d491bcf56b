package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"synk/internal/config"
	"synk/internal/logging"
	"synk/internal/state"
)

// App bundles the dependencies shared by all commands.
type App struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Store    *state.Store
}

// setup loads configuration and constructs the shared dependencies.
// It runs per command so that flag-only invocations fail with the
// configuration error of the command actually being used.
func setup() (*App, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, NewErrorHandler().Handle("load configuration", err)
	}

	return &App{
		Settings: settings,
		Logger:   logging.New(os.Stderr, settings.Debug),
		Store:    state.NewStore(settings.State.Dir),
	}, nil
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "synk",
		Short: "Log work time to Moco and JIRA from your terminal",
		Long: `Synk is an interactive command-line time tracker.

It interviews you about what you worked on, books the time entry in Moco
and, when a JIRA issue is linked, adds a matching worklog. A background
watcher reminds you when you stop logging time.

EXAMPLES:
  synk track                    # Log a time entry interactively
  synk watch                    # Run the reminder watcher in the foreground
  synk watch --install          # Install the watcher as a system service

CONFIGURATION (environment variables, .env supported):
  MOCO_SUBDOMAIN                Moco account subdomain (required)
  MOCO_API_KEY                  Moco API key (required)
  JIRA_SERVER                   JIRA base URL (optional, all three or none)
  JIRA_USER_EMAIL               JIRA account email
  JIRA_API_TOKEN                JIRA API token
  DEFAULT_TASK_NAME             Regex pre-selecting a task
  TASK_FILTER_REGEX             Regex hiding tasks
  SYNK_STATE_DIR                State directory (default: ~/.synk)
  SYNK_WATCH_INTERVAL           Watcher poll interval (default: 15m)
  SYNK_WATCH_THRESHOLD          Reminder threshold (default: 15m)
  SYNK_DEBUG                    Non-empty enables debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewTrackCommand())
	root.AddCommand(NewWatchCommand())

	return root
}
