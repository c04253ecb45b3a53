package validation

import (
	"time"
)

// LogValidator provides validation for Log-related operations
type LogValidator struct {
	validator *Validator
}

// NewLogValidator creates a new log validator
func NewLogValidator() *LogValidator {
	return &LogValidator{
		validator: NewValidator(),
	}
}

// ValidateLogForCreation validates log parameters before insertion
func (lv *LogValidator) ValidateLogForCreation(taskID int64, startedAt time.Time, stoppedAt *time.Time) error {
	validationError := NewValidationError()

	if !lv.validator.IsValidID(taskID) {
		validationError.AddInvalidValueError("task_id", taskID, "must be a positive integer")
	}

	if startedAt.IsZero() {
		validationError.AddRequiredError("started_at")
	}

	if !lv.validator.IsValidTimeRange(startedAt, stoppedAt) {
		validationError.AddInvalidRangeError("stopped_at", stoppedAt, "stop time must be after start time")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateLogID validates a log ID
func (lv *LogValidator) ValidateLogID(id int64) error {
	if !lv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("log_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
