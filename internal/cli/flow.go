package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"synk/internal/domain"
	"synk/internal/errors"
	"synk/internal/tracker"
	"synk/internal/ui"
	"synk/internal/validation"
)

// step identifies a stage of the interactive entry flow.
type step int

const (
	stepProject step = iota
	stepTask
	stepIssue
	stepTimes
	stepComment
	stepConfirm
	stepSubmit
	stepDone
)

// trackFlow drives the interactive interview that builds and submits one
// entry after another.
type trackFlow struct {
	service  tracker.Service
	prompter *ui.Prompter
	out      io.Writer
	selector func(title string, items []ui.SelectItem, defaultIndex int) (int, error)
	handler  *ErrorHandler
	now      func() time.Time
}

func newTrackFlow(service tracker.Service, in io.Reader, out io.Writer, logger *slog.Logger) *trackFlow {
	return &trackFlow{
		service:  service,
		prompter: ui.NewPrompter(in, out),
		out:      out,
		selector: ui.RunSelect,
		handler:  NewErrorHandlerWithLogger(logger),
		now:      time.Now,
	}
}

// Run asks for the work date, shows the day's entries and then loops the
// entry interview until the user is done.
func (f *trackFlow) Run(ctx context.Context) error {
	date, err := f.askWorkDate()
	if err != nil {
		return err
	}

	// The work date's most recent activity seeds the project default, so
	// the first entry of a session already continues where the day left off.
	lastProjectID := f.showDay(ctx, date)
	for {
		if err := f.runEntry(ctx, date, &lastProjectID); err != nil {
			if stderrors.Is(err, ui.ErrAborted) {
				fmt.Fprintln(f.out, ui.Notice("Cancelled."))
				return nil
			}
			return err
		}

		f.showDay(ctx, date)

		again, err := f.prompter.Confirm("Add another entry?", false)
		if err != nil || !again {
			return nil
		}
	}
}

// runEntry walks one entry through the interview states. The confirmation
// menu can jump back to any earlier state to revise a single answer.
func (f *trackFlow) runEntry(ctx context.Context, date time.Time, lastProjectID *int64) error {
	draft := domain.EntryDraft{Date: date}
	current := stepProject
	revising := false

	for current != stepDone {
		var next step
		var err error

		switch current {
		case stepProject:
			err = f.selectProject(ctx, &draft, *lastProjectID)
			next = stepTask
		case stepTask:
			err = f.selectTask(&draft)
			next = stepIssue
		case stepIssue:
			err = f.linkIssue(ctx, &draft)
			next = stepTimes
		case stepTimes:
			err = f.setTimes(&draft)
			next = stepComment
		case stepComment:
			err = f.askComment(&draft)
			next = stepConfirm
		case stepConfirm:
			next, err = f.confirm(&draft)
			if err == nil && next != stepSubmit && next != stepDone {
				revising = true
			}
		case stepSubmit:
			if err = f.submit(ctx, draft); err == nil {
				*lastProjectID = draft.Project.ID
			}
			next = stepDone
		}

		if err != nil {
			return err
		}

		// A revised project invalidates the task choice; every other
		// revision returns straight to the confirmation.
		if revising && current != stepConfirm && current != stepProject {
			next = stepConfirm
			revising = false
		}
		current = next
	}

	return nil
}

func (f *trackFlow) askWorkDate() (time.Time, error) {
	today := f.now()
	for {
		answer, err := f.prompter.AskDefault("Work date", today.Format("2006-01-02"))
		if err != nil {
			return time.Time{}, err
		}

		date, parseErr := time.ParseInLocation("2006-01-02", answer, time.Local)
		if parseErr != nil {
			fmt.Fprintln(f.out, ui.Error("Please enter the date as YYYY-MM-DD."))
			continue
		}
		return date, nil
	}
}

// showDay prints the day's entries and returns the project of the most
// recent timed activity, or 0 when the day has none.
func (f *trackFlow) showDay(ctx context.Context, date time.Time) int64 {
	activities, err := f.service.DailyActivities(ctx, date)
	if err != nil {
		fmt.Fprintln(f.out, ui.Notice("Could not load the day's entries: %s", f.handler.HandleSimple(err)))
		return 0
	}
	fmt.Fprintln(f.out, ui.DailyTable(date.Format("2006-01-02"), activities))

	var projectID int64
	for _, activity := range activities {
		if _, _, ok := activity.TimeWindow(); ok {
			projectID = activity.Project.ID
		}
	}
	return projectID
}

func (f *trackFlow) selectProject(ctx context.Context, draft *domain.EntryDraft, lastProjectID int64) error {
	var projects []domain.Project
	err := f.withRetry("load projects", func() error {
		var loadErr error
		projects, loadErr = f.service.ProjectChoices(ctx, lastProjectID)
		return loadErr
	})
	if err != nil {
		return f.handler.Handle("load projects", err)
	}
	if len(projects) == 0 {
		return fmt.Errorf("no active projects with bookable tasks are assigned to you")
	}

	items := make([]ui.SelectItem, len(projects))
	for i, project := range projects {
		items[i] = ui.SelectItem{Label: project.Label()}
	}

	index, err := f.selector("Select a project", items, 0)
	if err != nil {
		return err
	}

	draft.Project = projects[index]
	draft.Task = domain.Task{}
	return nil
}

func (f *trackFlow) selectTask(draft *domain.EntryDraft) error {
	tasks, defaultIndex := f.service.TaskChoices(draft.Project)
	if len(tasks) == 0 {
		return fmt.Errorf("project %q has no bookable tasks left after filtering", draft.Project.Name)
	}

	items := make([]ui.SelectItem, len(tasks))
	for i, task := range tasks {
		items[i] = ui.SelectItem{Label: task.DisplayName()}
	}

	index, err := f.selector("Select a task", items, defaultIndex)
	if err != nil {
		return err
	}

	draft.Task = tasks[index]
	return nil
}

func (f *trackFlow) linkIssue(ctx context.Context, draft *domain.EntryDraft) error {
	if !f.service.IssuesEnabled() {
		draft.IssueKey = ""
		return nil
	}

	for {
		answer, err := f.prompter.Ask("JIRA issue key (empty to skip, ? to pick recent)")
		if err != nil {
			return err
		}

		switch answer {
		case "":
			draft.IssueKey = ""
			return nil
		case "?":
			key, pickErr := f.pickRecentIssue(ctx)
			if stderrors.Is(pickErr, ui.ErrAborted) {
				continue
			}
			if pickErr != nil {
				return pickErr
			}
			draft.IssueKey = key
			return nil
		default:
			issue, findErr := f.service.FindIssue(ctx, answer)
			if findErr != nil {
				fmt.Fprintln(f.out, ui.Error("%s", f.handler.HandleSimple(findErr)))
				continue
			}
			fmt.Fprintln(f.out, ui.Success("%s %s", issue.Key, issue.Summary))
			draft.IssueKey = issue.Key
			return nil
		}
	}
}

func (f *trackFlow) pickRecentIssue(ctx context.Context) (string, error) {
	issues, err := f.service.RecentIssues(ctx, 10)
	if err != nil {
		fmt.Fprintln(f.out, ui.Error("%s", f.handler.HandleSimple(err)))
		return "", ui.ErrAborted
	}
	if len(issues) == 0 {
		fmt.Fprintln(f.out, ui.Notice("No recent issues found."))
		return "", ui.ErrAborted
	}

	items := make([]ui.SelectItem, len(issues))
	for i, issue := range issues {
		items[i] = ui.SelectItem{Label: issue.Key, Hint: issue.Summary}
	}

	index, err := f.selector("Select an issue", items, 0)
	if err != nil {
		return "", err
	}
	return issues[index].Key, nil
}

func (f *trackFlow) setTimes(draft *domain.EntryDraft) error {
	for {
		var answer string
		var err error
		if suggestion, ok := f.service.StartSuggestion(draft.Date); ok {
			answer, err = f.prompter.AskDefault("Start time (HHMM)", suggestion.Compact())
		} else {
			answer, err = f.prompter.Ask("Start time (HHMM)")
		}
		if err != nil {
			return err
		}

		start, parseErr := validation.ParseClockInput(answer)
		if parseErr != nil {
			fmt.Fprintln(f.out, ui.Error("%s", f.handler.HandleSimple(parseErr)))
			continue
		}
		draft.Start = start
		break
	}

	for {
		answer, err := f.prompter.Ask("End time (HHMM) or duration in hours")
		if err != nil {
			return err
		}

		end, resolveErr := f.service.ResolveEnd(draft.Start, answer)
		if resolveErr != nil {
			fmt.Fprintln(f.out, ui.Error("%s", f.handler.HandleSimple(resolveErr)))
			continue
		}
		draft.End = end
		return nil
	}
}

func (f *trackFlow) askComment(draft *domain.EntryDraft) error {
	answer, err := f.prompter.AskDefault("Comment", draft.Comment)
	if err != nil {
		return err
	}
	draft.Comment = answer
	return nil
}

func (f *trackFlow) confirm(draft *domain.EntryDraft) (step, error) {
	fmt.Fprintln(f.out, ui.SummaryPanel(*draft))

	items := []ui.SelectItem{
		{Label: "Submit"},
		{Label: "Change project"},
		{Label: "Change task"},
		{Label: "Change issue"},
		{Label: "Change times"},
		{Label: "Change comment"},
		{Label: "Discard"},
	}

	index, err := f.selector("Submit this entry?", items, 0)
	if err != nil {
		return stepDone, err
	}

	switch index {
	case 0:
		return stepSubmit, nil
	case 1:
		return stepProject, nil
	case 2:
		return stepTask, nil
	case 3:
		return stepIssue, nil
	case 4:
		return stepTimes, nil
	case 5:
		return stepComment, nil
	default:
		fmt.Fprintln(f.out, ui.Notice("Entry discarded."))
		return stepDone, nil
	}
}

func (f *trackFlow) submit(ctx context.Context, draft domain.EntryDraft) error {
	var result tracker.SubmitResult
	err := f.withRetry("submit time entry", func() error {
		var submitErr error
		result, submitErr = f.service.Submit(ctx, draft)
		return submitErr
	})
	if err != nil {
		return f.handler.Handle("submit time entry", err)
	}

	fmt.Fprintln(f.out, ui.Success("Booked %.2fh on %s.", draft.Hours(), draft.Project.Label()))

	if result.WorklogErr != nil {
		f.retryWorklog(ctx, draft, result.WorklogErr)
	} else if draft.HasIssue() {
		fmt.Fprintln(f.out, ui.Success("Worklog added to %s.", draft.IssueKey))
	}
	return nil
}

// retryWorklog offers to retry only the worklog half of a submission whose
// time entry already went through.
func (f *trackFlow) retryWorklog(ctx context.Context, draft domain.EntryDraft, cause error) {
	fmt.Fprintln(f.out, ui.Notice("Time entry booked, but the worklog failed: %s", f.handler.HandleSimple(cause)))

	for {
		retry, err := f.prompter.Confirm("Retry the worklog?", true)
		if err != nil || !retry {
			fmt.Fprintln(f.out, ui.Notice("Worklog for %s was not written.", draft.IssueKey))
			return
		}

		if err := f.service.RetryWorklog(ctx, draft.Worklog()); err != nil {
			fmt.Fprintln(f.out, ui.Error("%s", f.handler.HandleSimple(err)))
			continue
		}

		fmt.Fprintln(f.out, ui.Success("Worklog added to %s.", draft.IssueKey))
		return
	}
}

// withRetry reruns fn while the user keeps confirming after remote-call
// failures. Non-remote errors are returned immediately.
func (f *trackFlow) withRetry(operation string, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.IsErrorType(err, errors.ErrorTypeRemote) {
			return err
		}

		fmt.Fprintln(f.out, ui.Error("%s", f.handler.Handle(operation, err)))
		retry, promptErr := f.prompter.Confirm("Retry?", true)
		if promptErr != nil || !retry {
			return err
		}
	}
}
