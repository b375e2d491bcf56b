package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"synk/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	panelLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(8)
)

// SummaryPanel renders the confirmation panel for a drafted entry.
func SummaryPanel(draft domain.EntryDraft) string {
	rows := []struct {
		label string
		value string
	}{
		{"Project", draft.Project.Label()},
		{"Task", draft.Task.DisplayName()},
		{"Issue", issueLine(draft)},
		{"Date", draft.Date.Format("Mon, 02 Jan 2006")},
		{"Time", fmt.Sprintf("%s - %s (%.2fh)", draft.Start, draft.End, draft.Hours())},
		{"Entry", draft.Description()},
	}

	var body string
	for _, row := range rows {
		body += panelLabelStyle.Render(row.label) + " " + row.value + "\n"
	}

	return panelStyle.Render(titleStyle.Render("New time entry") + "\n" + body)
}

func issueLine(draft domain.EntryDraft) string {
	if !draft.HasIssue() {
		return "none"
	}
	return draft.IssueKey
}

// DailyTable renders the day's entries as a bordered table.
func DailyTable(date string, activities []domain.Activity) string {
	if len(activities) == 0 {
		return hintStyle.Render("No entries for " + date + " yet.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Time", "Project", "Task", "Description")

	var total float64
	for _, activity := range activities {
		t.Row(windowColumn(activity), activity.Project.Name, activity.Task.Name, activity.CleanDescription())
		total += activity.Hours
	}

	return titleStyle.Render(fmt.Sprintf("Entries for %s (%.2fh)", date, total)) + "\n" + t.String()
}

func windowColumn(activity domain.Activity) string {
	start, end, ok := activity.TimeWindow()
	if !ok {
		return fmt.Sprintf("%.2fh", activity.Hours)
	}
	return start.String() + "-" + end.String()
}

// Success renders a success line.
func Success(format string, args ...interface{}) string {
	return successStyle.Render("✓ " + fmt.Sprintf(format, args...))
}

// Error renders an error line.
func Error(format string, args ...interface{}) string {
	return errorStyle.Render("✗ " + fmt.Sprintf(format, args...))
}

// Notice renders a warning line.
func Notice(format string, args ...interface{}) string {
	return noticeStyle.Render("! " + fmt.Sprintf(format, args...))
}
