package api

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"pomotrack/internal/config"
	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/repository/sqlite"
	"pomotrack/internal/services"
)

// API is the single surface the CLI talks to. It delegates to the service
// layer and adds a few cross-service conveniences.
type API interface {
	// Task management
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

	// Tag management
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, name, color string) (*domain.Tag, error)
	MoveTag(ctx context.Context, id int64, newPosition int) error
	DeleteTag(ctx context.Context, id int64) error
	AssignTag(ctx context.Context, taskID, tagID int64) error
	UnassignTag(ctx context.Context, taskID, tagID int64) error
	TagsForTask(ctx context.Context, taskID int64) ([]*domain.Tag, error)
	TagMembership(ctx context.Context) (map[int64][]*domain.Tag, error)

	// Timer workflows
	StartTimer(ctx context.Context, taskID int64) (*services.TimerStatus, error)
	StopTimer(ctx context.Context) ([]*domain.Log, error)
	CurrentTimer(ctx context.Context) (*services.TimerStatus, error)
	ResumeTimer(ctx context.Context) (*services.TimerStatus, error)
	NextBreak(ctx context.Context) (services.Phase, time.Duration, error)

	// Log management
	ListLogs(ctx context.Context, opts *domain.SearchOptions) ([]*domain.Log, error)
	DeleteLog(ctx context.Context, id int64) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) ([]*domain.Setting, error)
	ShowArchived(ctx context.Context) (bool, error)
	SelectedTaskID(ctx context.Context) (int64, bool, error)
	InstallID(ctx context.Context) (string, error)

	// Reporting
	GetTaskSummary(ctx context.Context, id int64) (*services.TaskSummary, error)
	GetDayStatistics(ctx context.Context, date time.Time) (*services.DayStatistics, error)
	GetTodayStatistics(ctx context.Context) (*services.DayStatistics, error)
	GetTagTotals(ctx context.Context, timeRange *services.TimeRange) ([]*services.TagTotal, error)
	FormatDuration(d time.Duration) string

	// ParseTimeRange converts shorthand such as "30m", "2h", "1d" or "1w"
	// into a concrete range ending now
	ParseTimeRange(timeStr string) (*services.TimeRange, error)
}

type apiImpl struct {
	svc *services.ServiceContainer
}

// New creates an API over a repository
func New(repo sqlite.Repository, cfg *config.Config) API {
	return &apiImpl{svc: services.NewServiceContainer(repo, cfg)}
}

// NewWithServices creates an API over a prebuilt service container
func NewWithServices(svc *services.ServiceContainer) API {
	return &apiImpl{svc: svc}
}

func (a *apiImpl) CreateTask(ctx context.Context, name, notes string) (*domain.Task, error) {
	return a.svc.Tasks.CreateTask(ctx, name, notes)
}

func (a *apiImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.svc.Tasks.GetTask(ctx, id)
}

func (a *apiImpl) ListTasks(ctx context.Context, includeArchived bool) ([]*domain.Task, error) {
	return a.svc.Tasks.ListTasks(ctx, includeArchived)
}

func (a *apiImpl) UpdateTask(ctx context.Context, id int64, name, notes string) (*domain.Task, error) {
	return a.svc.Tasks.UpdateTask(ctx, id, name, notes)
}

func (a *apiImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.svc.Tasks.CompleteTask(ctx, id)
}

func (a *apiImpl) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.svc.Tasks.ReopenTask(ctx, id)
}

func (a *apiImpl) ArchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.svc.Tasks.ArchiveTask(ctx, id)
}

func (a *apiImpl) UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.svc.Tasks.UnarchiveTask(ctx, id)
}

func (a *apiImpl) MoveTask(ctx context.Context, id int64, newPosition int) error {
	return a.svc.Tasks.MoveTask(ctx, id, newPosition)
}

func (a *apiImpl) DeleteTask(ctx context.Context, id int64) error {
	return a.svc.Tasks.DeleteTask(ctx, id)
}

func (a *apiImpl) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	return a.svc.Tags.CreateTag(ctx, name, color)
}

func (a *apiImpl) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return a.svc.Tags.GetTag(ctx, id)
}

func (a *apiImpl) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return a.svc.Tags.ListTags(ctx)
}

func (a *apiImpl) UpdateTag(ctx context.Context, id int64, name, color string) (*domain.Tag, error) {
	return a.svc.Tags.UpdateTag(ctx, id, name, color)
}

func (a *apiImpl) MoveTag(ctx context.Context, id int64, newPosition int) error {
	return a.svc.Tags.MoveTag(ctx, id, newPosition)
}

func (a *apiImpl) DeleteTag(ctx context.Context, id int64) error {
	return a.svc.Tags.DeleteTag(ctx, id)
}

func (a *apiImpl) AssignTag(ctx context.Context, taskID, tagID int64) error {
	return a.svc.Tags.AssignTag(ctx, taskID, tagID)
}

func (a *apiImpl) UnassignTag(ctx context.Context, taskID, tagID int64) error {
	return a.svc.Tags.UnassignTag(ctx, taskID, tagID)
}

func (a *apiImpl) TagsForTask(ctx context.Context, taskID int64) ([]*domain.Tag, error) {
	return a.svc.Tags.TagsForTask(ctx, taskID)
}

func (a *apiImpl) TagMembership(ctx context.Context) (map[int64][]*domain.Tag, error) {
	return a.svc.Tags.Membership(ctx)
}

func (a *apiImpl) StartTimer(ctx context.Context, taskID int64) (*services.TimerStatus, error) {
	return a.svc.Timer.Start(ctx, taskID)
}

func (a *apiImpl) StopTimer(ctx context.Context) ([]*domain.Log, error) {
	return a.svc.Timer.Stop(ctx)
}

func (a *apiImpl) CurrentTimer(ctx context.Context) (*services.TimerStatus, error) {
	return a.svc.Timer.Current(ctx)
}

func (a *apiImpl) ResumeTimer(ctx context.Context) (*services.TimerStatus, error) {
	return a.svc.Timer.Resume(ctx)
}

func (a *apiImpl) NextBreak(ctx context.Context) (services.Phase, time.Duration, error) {
	return a.svc.Timer.NextBreak(ctx)
}

func (a *apiImpl) ListLogs(ctx context.Context, opts *domain.SearchOptions) ([]*domain.Log, error) {
	return a.svc.Timer.ListLogs(ctx, opts)
}

func (a *apiImpl) DeleteLog(ctx context.Context, id int64) error {
	return a.svc.Timer.DeleteLog(ctx, id)
}

func (a *apiImpl) GetSetting(ctx context.Context, key string) (string, error) {
	return a.svc.Settings.Get(ctx, key)
}

func (a *apiImpl) SetSetting(ctx context.Context, key, value string) error {
	return a.svc.Settings.Set(ctx, key, value)
}

func (a *apiImpl) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	return a.svc.Settings.List(ctx)
}

func (a *apiImpl) ShowArchived(ctx context.Context) (bool, error) {
	return a.svc.Settings.ShowArchived(ctx)
}

func (a *apiImpl) SelectedTaskID(ctx context.Context) (int64, bool, error) {
	return a.svc.Settings.SelectedTaskID(ctx)
}

func (a *apiImpl) InstallID(ctx context.Context) (string, error) {
	return a.svc.Settings.InstallID(ctx)
}

func (a *apiImpl) GetTaskSummary(ctx context.Context, id int64) (*services.TaskSummary, error) {
	return a.svc.Reporting.GetTaskSummary(ctx, id)
}

func (a *apiImpl) GetDayStatistics(ctx context.Context, date time.Time) (*services.DayStatistics, error) {
	return a.svc.Reporting.GetDayStatistics(ctx, date)
}

func (a *apiImpl) GetTodayStatistics(ctx context.Context) (*services.DayStatistics, error) {
	return a.svc.Reporting.GetTodayStatistics(ctx)
}

func (a *apiImpl) GetTagTotals(ctx context.Context, timeRange *services.TimeRange) ([]*services.TagTotal, error) {
	return a.svc.Reporting.GetTagTotals(ctx, timeRange)
}

func (a *apiImpl) FormatDuration(d time.Duration) string {
	return a.svc.Reporting.FormatDuration(d)
}

var timeShorthandPattern = regexp.MustCompile(`^(\d+)([mhdw])$`)

func (a *apiImpl) ParseTimeRange(timeStr string) (*services.TimeRange, error) {
	matches := timeShorthandPattern.FindStringSubmatch(timeStr)
	if matches == nil {
		return nil, errors.NewInvalidInputError("range", timeStr, "use a number plus m, h, d or w, such as 2h or 1d")
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil || n <= 0 {
		return nil, errors.NewInvalidInputError("range", timeStr, "amount must be a positive integer")
	}

	var unit time.Duration
	switch matches[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	}

	now := time.Now()
	return &services.TimeRange{
		Start: now.Add(-time.Duration(n) * unit),
		End:   now,
	}, nil
}
