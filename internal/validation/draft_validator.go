package validation

import (
	"synk/internal/domain"
)

// DraftValidator provides validation for entry drafts before submission
type DraftValidator struct{}

// NewDraftValidator creates a new draft validator
func NewDraftValidator() *DraftValidator {
	return &DraftValidator{}
}

// ValidateDraft validates a complete entry draft for submission
func (dv *DraftValidator) ValidateDraft(draft domain.EntryDraft) error {
	validationError := NewValidationError()

	if draft.Project.ID <= 0 {
		validationError.AddRequiredError("project")
	}
	if draft.Task.ID <= 0 {
		validationError.AddRequiredError("task")
	}
	if draft.Date.IsZero() {
		validationError.AddRequiredError("date")
	}

	if !draft.Start.IsValid() {
		validationError.AddInvalidValueError("start_time", draft.Start, "must be a time within the day")
	}
	if !draft.End.IsValid() {
		validationError.AddInvalidValueError("end_time", draft.End, "must be a time within the day")
	}
	if draft.Start.IsValid() && draft.End.IsValid() && draft.End <= draft.Start {
		validationError.AddInvalidRangeError("time_range", map[string]string{
			"start": draft.Start.String(),
			"end":   draft.End.String(),
		}, "end time must be after start time")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
