package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	task := NewTask("Write spec", 3)

	assert.Equal(t, "Write spec", task.Name)
	assert.Equal(t, 3, task.Position)
	assert.False(t, task.CreatedAt.IsZero())
	assert.True(t, task.IsActive())
	assert.True(t, task.IsValid())
}

func TestTaskCompleteAndReopen(t *testing.T) {
	task := NewTask("Task", 1)
	now := time.Now()

	done := task.Complete(now)
	assert.True(t, done.IsCompleted())
	assert.False(t, done.IsActive())
	assert.Equal(t, now, *done.CompletedAt)

	// Value semantics: the original is untouched
	assert.False(t, task.IsCompleted())

	reopened := done.Reopen()
	assert.False(t, reopened.IsCompleted())
	assert.True(t, reopened.IsActive())
}

func TestTaskArchiveAndUnarchive(t *testing.T) {
	task := NewTask("Task", 1)
	now := time.Now()

	archived := task.Archive(now)
	assert.True(t, archived.IsArchived())
	assert.False(t, archived.IsActive())

	restored := archived.Unarchive()
	assert.False(t, restored.IsArchived())
}

func TestTaskIsValid(t *testing.T) {
	assert.False(t, Task{}.IsValid())
	assert.True(t, Task{Name: "x"}.IsValid())
}

func TestTaskString(t *testing.T) {
	assert.Equal(t, "Inbox zero", Task{Name: "Inbox zero"}.String())
}
