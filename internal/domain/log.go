package domain

import (
	"time"
)

// Log represents one recorded timer interval for a task.
type Log struct {
	ID        int64
	TaskID    int64
	StartedAt time.Time
	StoppedAt *time.Time
	Elapsed   time.Duration // recorded when the interval stops
}

// NewLog creates a new running Log for the given task.
func NewLog(taskID int64, startedAt time.Time) Log {
	return Log{
		TaskID:    taskID,
		StartedAt: startedAt,
	}
}

// IsRunning returns true if the log is currently running (no stop time).
func (l Log) IsRunning() bool {
	return l.StoppedAt == nil
}

// Stop closes the log at the given time, recording the elapsed duration.
func (l Log) Stop(stoppedAt time.Time) Log {
	l.StoppedAt = &stoppedAt
	l.Elapsed = stoppedAt.Sub(l.StartedAt)
	return l
}

// Duration returns the duration of the log.
// If the log is still running, it returns the duration up to now.
func (l Log) Duration() time.Duration {
	if l.StoppedAt == nil {
		return time.Since(l.StartedAt)
	}
	if l.Elapsed > 0 {
		return l.Elapsed
	}
	return l.StoppedAt.Sub(l.StartedAt)
}

// IsValid checks if the log has valid data.
func (l Log) IsValid() bool {
	if l.TaskID <= 0 {
		return false
	}
	if l.StartedAt.IsZero() {
		return false
	}
	if l.StoppedAt != nil && l.StoppedAt.Before(l.StartedAt) {
		return false
	}
	return true
}
