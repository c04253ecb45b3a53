package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNonEmptyString(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString("task"))
	assert.False(t, v.IsNonEmptyString(""))
	assert.False(t, v.IsNonEmptyString("   "))
	assert.False(t, v.IsNonEmptyString("\t\n"))
}

func TestIsValidStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidStringLength("abc", 1, 5))
	assert.True(t, v.IsValidStringLength("  abc  ", 3, 3))
	assert.False(t, v.IsValidStringLength("", 1, 5))
	assert.False(t, v.IsValidStringLength("toolong", 1, 5))
}

func TestHasNoControlCharacters(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.HasNoControlCharacters("Plain name with punctuation: @#$%"))
	assert.False(t, v.HasNoControlCharacters("line\nbreak"))
	assert.False(t, v.HasNoControlCharacters("tab\there"))
}

func TestIsValidHexColor(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidHexColor("#336699"))
	assert.True(t, v.IsValidHexColor("#AbCdEf"))
	assert.False(t, v.IsValidHexColor("336699"))
	assert.False(t, v.IsValidHexColor("#36"))
	assert.False(t, v.IsValidHexColor("#33669"))
	assert.False(t, v.IsValidHexColor("#33669g"))
}

func TestIsValidTimeRange(t *testing.T) {
	v := NewValidator()
	now := time.Now()
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	assert.True(t, v.IsValidTimeRange(now, nil))
	assert.True(t, v.IsValidTimeRange(now, &later))
	assert.False(t, v.IsValidTimeRange(now, &earlier))
}

func TestIsValidID(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidID(1))
	assert.False(t, v.IsValidID(0))
	assert.False(t, v.IsValidID(-4))
}
