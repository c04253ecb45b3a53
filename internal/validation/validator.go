package validation

import (
	"regexp"
	"strings"
	"time"
)

// Default limits used when no configuration is supplied.
const (
	defaultNameMinLength  = 1
	defaultNameMaxLength  = 255
	defaultNotesMaxLength = 4096
	defaultTagMaxLength   = 64
)

var (
	hexColorRegex  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	controlCharsRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// TrimString trims surrounding whitespace
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// HasNoControlCharacters rejects strings containing control characters
// such as newlines and tabs, which break single-line display.
func (v *Validator) HasNoControlCharacters(s string) bool {
	return !controlCharsRegex.MatchString(s)
}

// IsValidHexColor checks a #rrggbb color string
func (v *Validator) IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// IsValidTimeRange checks if start time is before end time
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true // Running interval, no stop time
	}
	return startTime.Before(*endTime)
}

// IsValidID checks if a row ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidPosition checks if an ordering position is valid (positive)
func (v *Validator) IsValidPosition(position int) bool {
	return position > 0
}
