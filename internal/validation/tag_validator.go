package validation

// TagValidator provides validation for Tag-related operations
type TagValidator struct {
	validator *Validator
}

// NewTagValidator creates a new tag validator
func NewTagValidator() *TagValidator {
	return &TagValidator{
		validator: NewValidator(),
	}
}

// ValidateTagName validates a tag name for creation or update
func (tv *TagValidator) ValidateTagName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("tag_name")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmedName, defaultNameMinLength, defaultTagMaxLength) {
		validationError.AddInvalidLengthError("tag_name", trimmedName, defaultNameMinLength, defaultTagMaxLength)
	}

	if !tv.validator.HasNoControlCharacters(trimmedName) {
		validationError.AddInvalidCharacterError("tag_name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTagColor validates a #rrggbb color string
func (tv *TagValidator) ValidateTagColor(color string) error {
	if !tv.validator.IsValidHexColor(color) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("tag_color", color, "#rrggbb")
		return validationError
	}
	return nil
}

// ValidateTagID validates a tag ID
func (tv *TagValidator) ValidateTagID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("tag_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTagName returns a cleaned tag name if valid
func (tv *TagValidator) GetValidTagName(name string) (string, error) {
	if err := tv.ValidateTagName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimString(name), nil
}
