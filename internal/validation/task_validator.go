package validation

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTaskName validates a task name for creation or update
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task_name")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmedName, defaultNameMinLength, defaultNameMaxLength) {
		validationError.AddInvalidLengthError("task_name", trimmedName, defaultNameMinLength, defaultNameMaxLength)
	}

	if !tv.validator.HasNoControlCharacters(trimmedName) {
		validationError.AddInvalidCharacterError("task_name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateNotes validates free-form task notes
func (tv *TaskValidator) ValidateNotes(notes string) error {
	if len(notes) > defaultNotesMaxLength {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError("notes", notes, 0, defaultNotesMaxLength)
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidatePosition validates an ordering position
func (tv *TaskValidator) ValidatePosition(position int) error {
	if !tv.validator.IsValidPosition(position) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("position", position, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimString(name), nil
}
