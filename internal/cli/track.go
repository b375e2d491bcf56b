package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synk/internal/jira"
	"synk/internal/moco"
	"synk/internal/tracker"
	"synk/internal/ui"
)

// NewTrackCommand creates the track command
func NewTrackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Log a time entry interactively",
		Long: `Interactively build a time entry and book it in Moco.

The flow asks for the work date, project, task, an optional JIRA issue,
the start and end time and a comment. When an issue is linked, a matching
worklog is added to it after the Moco entry is created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup()
			if err != nil {
				return err
			}
			return runTrack(cmd.Context(), app)
		},
	}
}

func runTrack(ctx context.Context, app *App) error {
	handler := NewErrorHandler()

	mocoClient := moco.New(ctx, app.Settings.Moco.Subdomain, app.Settings.Moco.APIKey)
	backend, err := tracker.NewMocoBackend(ctx, mocoClient)
	if err != nil {
		return handler.Handle("connect to Moco", err)
	}

	var issueBackend tracker.IssueBackend
	if app.Settings.Jira.Enabled() {
		jiraClient, err := jira.New(app.Settings.Jira.Server, app.Settings.Jira.UserEmail, app.Settings.Jira.APIToken)
		if err != nil {
			return handler.Handle("configure JIRA", err)
		}
		if err := jiraClient.Verify(ctx); err != nil {
			fmt.Println(ui.Notice("JIRA is not reachable, continuing without issue linking."))
			app.Logger.Warn("jira connection check failed", "error", err)
		} else {
			issueBackend = jiraClient
		}
	}

	service := tracker.NewService(backend, issueBackend, app.Store, app.Settings.Flow, app.Logger)
	flow := newTrackFlow(service, os.Stdin, os.Stdout, app.Logger)
	return flow.Run(ctx)
}
