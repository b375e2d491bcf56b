package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity_TimeWindow(t *testing.T) {
	tests := []struct {
		name          string
		description   string
		expectedStart ClockTime
		expectedEnd   ClockTime
		expectedOK    bool
	}{
		{
			name:          "description with time marker",
			description:   "PROJ-1 standup (0900-0930)",
			expectedStart: NewClockTime(9, 0),
			expectedEnd:   NewClockTime(9, 30),
			expectedOK:    true,
		},
		{
			name:          "marker only",
			description:   "(1700-1730)",
			expectedStart: NewClockTime(17, 0),
			expectedEnd:   NewClockTime(17, 30),
			expectedOK:    true,
		},
		{
			name:        "foreign activity without marker",
			description: "imported from calendar",
			expectedOK:  false,
		},
		{
			name:        "empty description",
			description: "",
			expectedOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := Activity{Description: tt.description}

			start, end, ok := activity.TimeWindow()

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedStart, start)
				assert.Equal(t, tt.expectedEnd, end)
			}
		})
	}
}

func TestActivity_CleanDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{"marker stripped", "standup (0900-0930)", "standup"},
		{"marker in the middle", "PROJ-1 (0900-0930) extra", "PROJ-1  extra"},
		{"no marker", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := Activity{Description: tt.description}
			assert.Equal(t, tt.expected, activity.CleanDescription())
		})
	}
}

func TestProject_HasActiveTasks(t *testing.T) {
	withActive := Project{Tasks: []Task{{Name: "a", Active: false}, {Name: "b", Active: true}}}
	assert.True(t, withActive.HasActiveTasks())

	withoutActive := Project{Tasks: []Task{{Name: "a", Active: false}}}
	assert.False(t, withoutActive.HasActiveTasks())

	empty := Project{}
	assert.False(t, empty.HasActiveTasks())
}

func TestProject_Label(t *testing.T) {
	assert.Equal(t, "Acme / Website", Project{Name: "Website", Customer: "Acme"}.Label())
	assert.Equal(t, "No Customer / Internal", Project{Name: "Internal"}.Label())
}

func TestTask_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected string
	}{
		{"plain billable task", Task{Name: "CH: Main", Billable: true}, "CH: Main"},
		{"name with separator suffix", Task{Name: "CH: Main | internal code", Billable: true}, "CH: Main"},
		{"non-billable task parenthesised", Task{Name: "NB: Admin", Billable: false}, "(NB: Admin)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.DisplayName())
		})
	}
}
