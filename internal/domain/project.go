package domain

import "strings"

// Project represents a Moco project the user is assigned to.
type Project struct {
	ID       int64
	Name     string
	Customer string
	Active   bool
	Tasks    []Task
}

// HasActiveTasks reports whether the project has at least one active task.
func (p Project) HasActiveTasks() bool {
	for _, t := range p.Tasks {
		if t.Active {
			return true
		}
	}
	return false
}

// Label returns the "Customer / Project" form used for display.
func (p Project) Label() string {
	customer := p.Customer
	if customer == "" {
		customer = "No Customer"
	}
	return customer + " / " + p.Name
}

// Task represents a bookable task within a Moco project.
type Task struct {
	ID       int64
	Name     string
	Active   bool
	Billable bool
}

// DisplayName returns the task name trimmed to the part before any "|"
// separator. Non-billable tasks are shown in parentheses.
func (t Task) DisplayName() string {
	base := strings.TrimSpace(strings.SplitN(t.Name, "|", 2)[0])
	if !t.Billable {
		return "(" + base + ")"
	}
	return base
}
