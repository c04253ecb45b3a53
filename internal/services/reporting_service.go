package services

import (
	"context"
	"fmt"
	"time"

	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/repository/sqlite"
)

// ReportingServiceImpl implements the ReportingService interface
type ReportingServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewReportingService creates a new reporting service instance
func NewReportingService(repo sqlite.Repository) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// GetTaskSummary returns the recorded history and totals for one task
func (s *ReportingServiceImpl) GetTaskSummary(ctx context.Context, id int64) (*TaskSummary, error) {
	if id <= 0 {
		return nil, errors.NewInvalidInputError("task_id", id, "must be a positive integer")
	}

	dbTask, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := s.mapper.Task.FromDatabase(*dbTask)

	dbLogs, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{TaskID: &id})
	if err != nil {
		return nil, err
	}
	logs := s.mapper.Log.FromDatabaseSlice(dbLogs)

	summary := &TaskSummary{
		Task: &task,
		Logs: logs,
	}

	var total time.Duration
	for _, log := range logs {
		if log.IsRunning() {
			summary.IsRunning = true
			continue
		}
		total += log.Duration()
		summary.SessionCount++

		if summary.FirstEntry.IsZero() || log.StartedAt.Before(summary.FirstEntry) {
			summary.FirstEntry = log.StartedAt
		}
		if log.StoppedAt.After(summary.LastEntry) {
			summary.LastEntry = *log.StoppedAt
		}
	}
	summary.TotalTime = s.FormatDuration(total)

	return summary, nil
}

// GetDayStatistics returns aggregate numbers for one calendar day
func (s *ReportingServiceImpl) GetDayStatistics(ctx context.Context, date time.Time) (*DayStatistics, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	dbLogs, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{
		StartTime: &dayStart,
		EndTime:   &dayEnd,
	})
	if err != nil {
		return nil, err
	}
	logs := s.mapper.Log.FromDatabaseSlice(dbLogs)

	stats := &DayStatistics{Date: dayStart}
	tasksSeen := make(map[int64]bool)
	var total time.Duration
	for _, log := range logs {
		if log.IsRunning() {
			continue
		}
		total += log.Duration()
		stats.SessionCount++
		tasksSeen[log.TaskID] = true
	}
	stats.TaskCount = len(tasksSeen)
	stats.TotalTime = s.FormatDuration(total)

	dbTasks, err := s.repo.ListTasks(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, dbTask := range dbTasks {
		if dbTask.CompletedAt != nil && !dbTask.CompletedAt.Before(dayStart) && dbTask.CompletedAt.Before(dayEnd) {
			stats.CompletedCount++
		}
	}

	return stats, nil
}

// GetTodayStatistics returns aggregate numbers for the current day
func (s *ReportingServiceImpl) GetTodayStatistics(ctx context.Context) (*DayStatistics, error) {
	return s.GetDayStatistics(ctx, timeNow())
}

// GetTagTotals aggregates recorded time per tag, optionally limited to a
// time range. Tags with no recorded time are omitted.
func (s *ReportingServiceImpl) GetTagTotals(ctx context.Context, timeRange *TimeRange) ([]*TagTotal, error) {
	dbTags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]*TagTotal, 0, len(dbTags))
	for _, dbTag := range dbTags {
		tag := s.mapper.Tag.FromDatabase(*dbTag)

		opts := sqlite.SearchOptions{TagID: &tag.ID}
		if timeRange != nil {
			opts.StartTime = &timeRange.Start
			opts.EndTime = &timeRange.End
		}
		dbLogs, err := s.repo.SearchLogs(ctx, opts)
		if err != nil {
			return nil, err
		}

		var total time.Duration
		sessions := 0
		for _, dbLog := range dbLogs {
			log := s.mapper.Log.FromDatabase(*dbLog)
			if log.IsRunning() {
				continue
			}
			total += log.Duration()
			sessions++
		}
		if sessions == 0 {
			continue
		}

		totals = append(totals, &TagTotal{
			Tag:          &tag,
			TotalTime:    s.FormatDuration(total),
			SessionCount: sessions,
		})
	}
	return totals, nil
}

// CalculateTotalDuration sums the durations of stopped logs
func (s *ReportingServiceImpl) CalculateTotalDuration(logs []*domain.Log) time.Duration {
	var total time.Duration
	for _, log := range logs {
		if log.IsRunning() {
			continue
		}
		total += log.Duration()
	}
	return total
}

// FormatDuration formats a duration as hours and minutes, seconds only
// below one minute.
func (s *ReportingServiceImpl) FormatDuration(duration time.Duration) string {
	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
