package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Settings holds all configuration for the synk application.
// It is loaded once at startup and immutable afterwards.
type Settings struct {
	Moco  MocoSettings
	Jira  JiraSettings
	Flow  FlowSettings
	State StateSettings
	Watch WatchSettings
	Debug bool
}

// MocoSettings holds credentials for the Moco time-tracking service.
type MocoSettings struct {
	Subdomain string `env:"MOCO_SUBDOMAIN"`
	APIKey    string `env:"MOCO_API_KEY"`
}

// JiraSettings holds credentials for the JIRA issue tracker.
// All three variables must be set together; with none set, JIRA
// features are disabled.
type JiraSettings struct {
	Server    string `env:"JIRA_SERVER"`
	UserEmail string `env:"JIRA_USER_EMAIL"`
	APIToken  string `env:"JIRA_API_TOKEN"`
}

// Enabled reports whether JIRA integration is configured.
func (j JiraSettings) Enabled() bool {
	return j.Server != "" && j.UserEmail != "" && j.APIToken != ""
}

// partially reports whether only some of the JIRA variables are set.
func (j JiraSettings) partially() bool {
	any := j.Server != "" || j.UserEmail != "" || j.APIToken != ""
	return any && !j.Enabled()
}

// FlowSettings holds optional behaviour tweaks for the interactive flow.
type FlowSettings struct {
	// DefaultTaskPattern pre-selects the first matching task in the task step.
	DefaultTaskPattern *regexp.Regexp `env:"DEFAULT_TASK_NAME"`
	// TaskFilterPattern hides matching tasks from the task step.
	TaskFilterPattern *regexp.Regexp `env:"TASK_FILTER_REGEX"`
}

// StateSettings holds the location of the local state directory.
type StateSettings struct {
	Dir string `env:"SYNK_STATE_DIR"`
}

// WatchSettings holds the reminder watcher timing configuration.
type WatchSettings struct {
	Interval  time.Duration `env:"SYNK_WATCH_INTERVAL"`
	Threshold time.Duration `env:"SYNK_WATCH_THRESHOLD"`
}

const (
	// DefaultWatchInterval is how often the watcher checks the last entry.
	DefaultWatchInterval = 15 * time.Minute
	// DefaultWatchThreshold is the logging gap that triggers a reminder.
	DefaultWatchThreshold = 15 * time.Minute
)

// defaultStateDir returns ~/.synk, falling back to the working directory
// when the home directory cannot be determined.
func defaultStateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".synk"
	}
	return filepath.Join(homeDir, ".synk")
}
