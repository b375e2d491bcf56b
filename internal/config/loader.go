package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"

	"synk/internal/errors"
)

// Load reads the application settings from the process environment.
// A .env file in the working directory is loaded first, best effort.
// Every missing required variable is reported in a single error.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	settings := &Settings{
		Moco: MocoSettings{
			Subdomain: os.Getenv("MOCO_SUBDOMAIN"),
			APIKey:    os.Getenv("MOCO_API_KEY"),
		},
		Jira: JiraSettings{
			Server:    os.Getenv("JIRA_SERVER"),
			UserEmail: os.Getenv("JIRA_USER_EMAIL"),
			APIToken:  os.Getenv("JIRA_API_TOKEN"),
		},
		State: StateSettings{
			Dir: os.Getenv("SYNK_STATE_DIR"),
		},
		Watch: WatchSettings{
			Interval:  DefaultWatchInterval,
			Threshold: DefaultWatchThreshold,
		},
		Debug: os.Getenv("SYNK_DEBUG") != "",
	}

	var missing []string
	if settings.Moco.Subdomain == "" {
		missing = append(missing, "MOCO_SUBDOMAIN")
	}
	if settings.Moco.APIKey == "" {
		missing = append(missing, "MOCO_API_KEY")
	}
	if settings.Jira.partially() {
		for _, variable := range []string{"JIRA_SERVER", "JIRA_USER_EMAIL", "JIRA_API_TOKEN"} {
			if os.Getenv(variable) == "" {
				missing = append(missing, variable)
			}
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingConfigError(missing)
	}

	if settings.State.Dir == "" {
		settings.State.Dir = defaultStateDir()
	}

	var err error
	if settings.Flow.DefaultTaskPattern, err = compilePattern("DEFAULT_TASK_NAME"); err != nil {
		return nil, err
	}
	if settings.Flow.TaskFilterPattern, err = compilePattern("TASK_FILTER_REGEX"); err != nil {
		return nil, err
	}

	if settings.Watch.Interval, err = parseDuration("SYNK_WATCH_INTERVAL", DefaultWatchInterval); err != nil {
		return nil, err
	}
	if settings.Watch.Threshold, err = parseDuration("SYNK_WATCH_THRESHOLD", DefaultWatchThreshold); err != nil {
		return nil, err
	}

	return settings, nil
}

// compilePattern compiles an optional regular expression variable.
// An unset variable yields a nil pattern.
func compilePattern(variable string) (*regexp.Regexp, error) {
	value := os.Getenv(variable)
	if value == "" {
		return nil, nil
	}
	pattern, err := regexp.Compile(value)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("%s is not a valid regular expression", variable), err)
	}
	return pattern, nil
}

// parseDuration parses an optional duration variable with a default.
func parseDuration(variable string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(variable)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.NewConfigError(fmt.Sprintf("%s is not a valid duration", variable), err)
	}
	if d <= 0 {
		return 0, errors.NewConfigError(fmt.Sprintf("%s must be positive", variable), nil)
	}
	return d, nil
}
