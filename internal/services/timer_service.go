package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pomotrack/internal/config"
	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/logging"
	"pomotrack/internal/repository/sqlite"
	"pomotrack/internal/validation"
)

// TimerServiceImpl implements the TimerService interface. At most one log is
// running at any time; starting a new interval stops whatever was running.
type TimerServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.LogValidator
	settings  SettingsService
	cfg       *config.Config
}

// NewTimerService creates a new timer service instance
func NewTimerService(repo sqlite.Repository, settings SettingsService, cfg *config.Config) *TimerServiceImpl {
	return &TimerServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewLogValidator(),
		settings:  settings,
		cfg:       cfg,
	}
}

// Start begins a new interval for the given task. Any interval already
// running is stopped first, and the task selection is persisted so the
// timer survives restarts.
func (s *TimerServiceImpl) Start(ctx context.Context, taskID int64) (*TimerStatus, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CompletedAt != nil {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is completed; reopen it before starting a timer", taskID))
	}
	if task.ArchivedAt != nil {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is archived; unarchive it before starting a timer", taskID))
	}

	if _, err := s.Stop(ctx); err != nil {
		return nil, err
	}

	now := timeNow()
	log := domain.NewLog(taskID, now)
	if err := s.validator.ValidateLogForCreation(log.TaskID, log.StartedAt, log.StoppedAt); err != nil {
		return nil, errors.NewValidationError("invalid log", err)
	}

	dbLog := s.mapper.Log.ToDatabase(log)
	if err := s.repo.CreateLog(ctx, &dbLog); err != nil {
		return nil, err
	}

	if err := s.settings.SetSelectedTaskID(ctx, taskID); err != nil {
		return nil, err
	}

	logging.L().Debug("started timer", zap.Int64("task_id", taskID), zap.Int64("log_id", dbLog.ID))
	return s.statusFor(ctx, dbLog, false)
}

// Stop closes every running log at the current time. Intervals shorter than
// the minimum countable duration are discarded instead of recorded. The
// closed logs are returned; an empty slice means nothing was running.
func (s *TimerServiceImpl) Stop(ctx context.Context) ([]*domain.Log, error) {
	running, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{})
	if err != nil {
		return nil, err
	}

	now := timeNow()
	stopped := make([]*domain.Log, 0, len(running))
	for _, dbLog := range running {
		log := s.mapper.Log.FromDatabase(*dbLog)

		if now.Sub(log.StartedAt) < s.cfg.Timer.MinInterval {
			if err := s.repo.DeleteLog(ctx, log.ID); err != nil {
				return nil, err
			}
			logging.L().Debug("discarded short interval", zap.Int64("log_id", log.ID))
			continue
		}

		closed := log.Stop(now)
		updated := s.mapper.Log.ToDatabase(closed)
		if err := s.repo.UpdateLog(ctx, &updated); err != nil {
			return nil, err
		}
		stopped = append(stopped, &closed)
	}

	if len(running) > 0 {
		if err := s.settings.ClearSelectedTask(ctx); err != nil {
			return nil, err
		}
	}
	return stopped, nil
}

// Current returns the status of the running interval, or nil when idle
func (s *TimerServiceImpl) Current(ctx context.Context) (*TimerStatus, error) {
	running, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{})
	if err != nil {
		return nil, err
	}
	if len(running) == 0 {
		return nil, nil
	}

	// Most recent running log wins; older ones are orphans awaiting reconcile
	latest := running[0]
	for _, dbLog := range running[1:] {
		if dbLog.StartedAt.After(latest.StartedAt) {
			latest = dbLog
		}
	}
	return s.statusFor(ctx, *latest, false)
}

// Resume reconciles orphaned logs left behind by a crash or forgotten
// session, then re-attaches to the surviving running interval. It returns
// nil when there is nothing to resume.
func (s *TimerServiceImpl) Resume(ctx context.Context) (*TimerStatus, error) {
	if _, err := s.ReconcileOrphans(ctx); err != nil {
		return nil, err
	}

	status, err := s.Current(ctx)
	if err != nil || status == nil {
		return status, err
	}
	status.Resumed = true

	// Restore the selection in case it was lost with the previous process
	if err := s.settings.SetSelectedTaskID(ctx, status.Task.ID); err != nil {
		return nil, err
	}
	return status, nil
}

// RunningLogs returns every log without a stop time
func (s *TimerServiceImpl) RunningLogs(ctx context.Context) ([]*domain.Log, error) {
	running, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{})
	if err != nil {
		return nil, err
	}
	return s.mapper.Log.FromDatabaseSlice(running), nil
}

// ReconcileOrphans closes running logs that have outlived the work duration
// plus a grace window, capping their recorded time at the work duration.
// Such logs were abandoned, not worked on since. Younger running logs are
// left alone so they can be resumed. The adjusted logs are returned.
func (s *TimerServiceImpl) ReconcileOrphans(ctx context.Context) ([]*domain.Log, error) {
	schedule, err := s.settings.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	running, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{})
	if err != nil {
		return nil, err
	}

	now := timeNow()
	cutoff := schedule.WorkDuration + s.cfg.Timer.OrphanGrace
	reconciled := make([]*domain.Log, 0)
	for _, dbLog := range running {
		log := s.mapper.Log.FromDatabase(*dbLog)
		if now.Sub(log.StartedAt) <= cutoff {
			continue
		}

		closed := log.Stop(log.StartedAt.Add(schedule.WorkDuration))
		updated := s.mapper.Log.ToDatabase(closed)
		if err := s.repo.UpdateLog(ctx, &updated); err != nil {
			return nil, err
		}

		logging.L().Info("reconciled orphaned log",
			zap.Int64("log_id", closed.ID),
			zap.Int64("task_id", closed.TaskID),
			zap.Duration("recorded", closed.Elapsed))
		reconciled = append(reconciled, &closed)
	}
	return reconciled, nil
}

// NextBreak returns the break phase that follows the current work interval,
// based on how many sessions were completed today.
func (s *TimerServiceImpl) NextBreak(ctx context.Context) (Phase, time.Duration, error) {
	schedule, err := s.settings.Schedule(ctx)
	if err != nil {
		return "", 0, err
	}

	sessions, err := s.sessionsToday(ctx)
	if err != nil {
		return "", 0, err
	}

	if (sessions+1)%schedule.SessionsPerLongBreak == 0 {
		return PhaseLongBreak, schedule.LongBreak, nil
	}
	return PhaseShortBreak, schedule.ShortBreak, nil
}

// ListLogs returns logs matching the given criteria. A nil or empty option
// set returns the full history rather than only running logs.
func (s *TimerServiceImpl) ListLogs(ctx context.Context, opts *domain.SearchOptions) ([]*domain.Log, error) {
	if opts == nil || (opts.StartTime == nil && opts.EndTime == nil &&
		opts.TaskID == nil && opts.TaskName == nil && opts.TagID == nil) {
		dbLogs, err := s.repo.ListLogs(ctx)
		if err != nil {
			return nil, err
		}
		return s.mapper.Log.FromDatabaseSlice(dbLogs), nil
	}

	dbLogs, err := s.repo.SearchLogs(ctx, s.mapper.SearchOptions.ToDatabase(*opts))
	if err != nil {
		return nil, err
	}
	return s.mapper.Log.FromDatabaseSlice(dbLogs), nil
}

// DeleteLog permanently removes a single log entry
func (s *TimerServiceImpl) DeleteLog(ctx context.Context, id int64) error {
	if err := s.validator.ValidateLogID(id); err != nil {
		return errors.NewValidationError("invalid log ID", err)
	}
	return s.repo.DeleteLog(ctx, id)
}

func (s *TimerServiceImpl) statusFor(ctx context.Context, dbLog sqlite.Log, resumed bool) (*TimerStatus, error) {
	dbTask, err := s.repo.GetTask(ctx, dbLog.TaskID)
	if err != nil {
		return nil, err
	}
	task := s.mapper.Task.FromDatabase(*dbTask)
	log := s.mapper.Log.FromDatabase(dbLog)

	schedule, err := s.settings.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	elapsed := timeNow().Sub(log.StartedAt)
	remaining := schedule.WorkDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return &TimerStatus{
		Task:      &task,
		Log:       &log,
		Phase:     PhaseWork,
		Elapsed:   elapsed,
		Remaining: remaining,
		Resumed:   resumed,
	}, nil
}

// sessionsToday counts the stopped intervals recorded since local midnight
func (s *TimerServiceImpl) sessionsToday(ctx context.Context) (int, error) {
	now := timeNow()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	logs, err := s.repo.SearchLogs(ctx, sqlite.SearchOptions{
		StartTime: &dayStart,
		EndTime:   &dayEnd,
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, log := range logs {
		if log.StoppedAt != nil {
			count++
		}
	}
	return count, nil
}
