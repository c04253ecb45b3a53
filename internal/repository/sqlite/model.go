package sqlite

import "time"

// Task represents a task row
type Task struct {
	ID          int64
	Name        string
	Notes       string
	Position    int
	CreatedAt   time.Time
	CompletedAt *time.Time // NULL while the task is open
	ArchivedAt  *time.Time // NULL while the task is visible
}

// Tag represents a tag row
type Tag struct {
	ID       int64
	Name     string
	Color    string // hex #rrggbb
	Position int
}

// Log represents a single recorded timer interval
type Log struct {
	ID        int64
	TaskID    int64
	StartedAt time.Time
	StoppedAt *time.Time // NULL while the interval is running
	Elapsed   int64      // seconds, written when the interval stops
}

// Setting represents a settings key-value row
type Setting struct {
	Key   string
	Value string
}

// PositionUpdate pairs a row ID with its new ordering position
type PositionUpdate struct {
	ID       int64
	Position int
}
