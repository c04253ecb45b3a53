package domain

import "time"

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          int64
	Name        string
	Notes       string
	Position    int
	CreatedAt   time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time
}

// NewTask creates a new Task with the given name at the given position.
func NewTask(name string, position int) Task {
	return Task{
		Name:      name,
		Position:  position,
		CreatedAt: time.Now(),
	}
}

// IsCompleted returns true if the task has been marked done.
func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// IsArchived returns true if the task has been archived.
func (t Task) IsArchived() bool {
	return t.ArchivedAt != nil
}

// IsActive returns true if the task is neither completed nor archived.
func (t Task) IsActive() bool {
	return !t.IsCompleted() && !t.IsArchived()
}

// Complete marks the task done at the given time.
func (t Task) Complete(at time.Time) Task {
	t.CompletedAt = &at
	return t
}

// Reopen clears the completion timestamp.
func (t Task) Reopen() Task {
	t.CompletedAt = nil
	return t
}

// Archive marks the task archived at the given time.
func (t Task) Archive(at time.Time) Task {
	t.ArchivedAt = &at
	return t
}

// Unarchive clears the archival timestamp.
func (t Task) Unarchive() Task {
	t.ArchivedAt = nil
	return t
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != ""
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
