package services

import (
	"context"
	"time"

	"pomotrack/internal/domain"
)

// TimeRange represents a time period with start and end times
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Phase identifies a step of the Pomodoro schedule
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Schedule holds the effective Pomodoro timing parameters, after settings
// overrides are applied on top of configuration defaults.
type Schedule struct {
	WorkDuration         time.Duration `json:"work_duration"`
	ShortBreak           time.Duration `json:"short_break"`
	LongBreak            time.Duration `json:"long_break"`
	SessionsPerLongBreak int           `json:"sessions_per_long_break"`
}

// TimerStatus describes the currently running interval, if any
type TimerStatus struct {
	Task      *domain.Task  `json:"task"`
	Log       *domain.Log   `json:"log"`
	Phase     Phase         `json:"phase"`
	Elapsed   time.Duration `json:"elapsed"`
	Remaining time.Duration `json:"remaining"` // zero once the work duration is exceeded
	Resumed   bool          `json:"resumed"`   // true when re-attached after a restart
}

// TaskSummary represents an analysis of a specific task
type TaskSummary struct {
	Task         *domain.Task  `json:"task"`
	Logs         []*domain.Log `json:"logs"`
	TotalTime    string        `json:"total_time"`
	SessionCount int           `json:"session_count"`
	FirstEntry   time.Time     `json:"first_entry"`
	LastEntry    time.Time     `json:"last_entry"`
	IsRunning    bool          `json:"is_running"`
}

// DayStatistics represents summary statistics for a specific day
type DayStatistics struct {
	Date           time.Time `json:"date"`
	TotalTime      string    `json:"total_time"`
	TaskCount      int       `json:"task_count"`
	SessionCount   int       `json:"session_count"`
	CompletedCount int       `json:"completed_count"`
}

// TagTotal aggregates recorded time per tag
type TagTotal struct {
	Tag          *domain.Tag `json:"tag"`
	TotalTime    string      `json:"total_time"`
	SessionCount int         `json:"session_count"`
}

// TaskService handles task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, name, notes string) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, includeArchived bool) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, name, notes string) (*domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)
	ReopenTask(ctx context.Context, id int64) (*domain.Task, error)
	ArchiveTask(ctx context.Context, id int64) (*domain.Task, error)
	UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error)
	MoveTask(ctx context.Context, id int64, newPosition int) error
	DeleteTask(ctx context.Context, id int64) error
}

// TagService handles tags and their task associations
type TagService interface {
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, name, color string) (*domain.Tag, error)
	MoveTag(ctx context.Context, id int64, newPosition int) error
	DeleteTag(ctx context.Context, id int64) error

	AssignTag(ctx context.Context, taskID, tagID int64) error
	UnassignTag(ctx context.Context, taskID, tagID int64) error
	TagsForTask(ctx context.Context, taskID int64) ([]*domain.Tag, error)
	Membership(ctx context.Context) (map[int64][]*domain.Tag, error)
}

// TimerService manages running intervals, including resuming an interval
// after a restart and reconciling orphaned running logs.
type TimerService interface {
	Start(ctx context.Context, taskID int64) (*TimerStatus, error)
	Stop(ctx context.Context) ([]*domain.Log, error)
	Current(ctx context.Context) (*TimerStatus, error)
	Resume(ctx context.Context) (*TimerStatus, error)
	RunningLogs(ctx context.Context) ([]*domain.Log, error)
	ReconcileOrphans(ctx context.Context) ([]*domain.Log, error)
	NextBreak(ctx context.Context) (Phase, time.Duration, error)
	ListLogs(ctx context.Context, opts *domain.SearchOptions) ([]*domain.Log, error)
	DeleteLog(ctx context.Context, id int64) error
}

// SettingsService provides typed access to the settings key-value table
type SettingsService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*domain.Setting, error)
	Delete(ctx context.Context, key string) error

	SelectedTaskID(ctx context.Context) (int64, bool, error)
	SetSelectedTaskID(ctx context.Context, id int64) error
	ClearSelectedTask(ctx context.Context) error
	TagFilter(ctx context.Context) (int64, bool, error)
	ShowArchived(ctx context.Context) (bool, error)
	InstallID(ctx context.Context) (string, error)
	Schedule(ctx context.Context) (*Schedule, error)
}

// ReportingService handles analytics and reporting operations
type ReportingService interface {
	GetTaskSummary(ctx context.Context, id int64) (*TaskSummary, error)
	GetDayStatistics(ctx context.Context, date time.Time) (*DayStatistics, error)
	GetTodayStatistics(ctx context.Context) (*DayStatistics, error)
	GetTagTotals(ctx context.Context, timeRange *TimeRange) ([]*TagTotal, error)
	CalculateTotalDuration(logs []*domain.Log) time.Duration
	FormatDuration(duration time.Duration) string
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Tasks     TaskService
	Tags      TagService
	Timer     TimerService
	Settings  SettingsService
	Reporting ReportingService
}
