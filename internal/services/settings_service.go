package services

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"pomotrack/internal/config"
	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/repository/sqlite"
)

// SettingsServiceImpl implements the SettingsService interface. Schedule
// values stored in the settings table override the configuration defaults.
type SettingsServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	cfg    *config.Config
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(repo sqlite.Repository, cfg *config.Config) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		cfg:    cfg,
	}
}

// Get returns the raw value of a setting key
func (s *SettingsServiceImpl) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.NewInvalidInputError("key", key, "cannot be empty")
	}
	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set stores a setting value, creating or overwriting the key
func (s *SettingsServiceImpl) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewInvalidInputError("key", key, "cannot be empty")
	}
	if err := s.validateKnownKey(key, value); err != nil {
		return err
	}
	return s.repo.SetSetting(ctx, key, value)
}

// List returns all stored settings ordered by key
func (s *SettingsServiceImpl) List(ctx context.Context) ([]*domain.Setting, error) {
	dbSettings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Setting.FromDatabaseSlice(dbSettings), nil
}

// Delete removes a setting key
func (s *SettingsServiceImpl) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewInvalidInputError("key", key, "cannot be empty")
	}
	return s.repo.DeleteSetting(ctx, key)
}

// SelectedTaskID returns the persisted task selection, if any
func (s *SettingsServiceImpl) SelectedTaskID(ctx context.Context) (int64, bool, error) {
	setting, err := s.repo.GetSetting(ctx, domain.SettingSelectedTaskID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	id, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil || id <= 0 {
		// A garbled selection is treated as no selection
		return 0, false, nil
	}
	return id, true, nil
}

// SetSelectedTaskID persists the task selection across invocations
func (s *SettingsServiceImpl) SetSelectedTaskID(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.NewInvalidInputError("task_id", id, "must be a positive integer")
	}
	return s.repo.SetSetting(ctx, domain.SettingSelectedTaskID, strconv.FormatInt(id, 10))
}

// ClearSelectedTask removes the persisted task selection
func (s *SettingsServiceImpl) ClearSelectedTask(ctx context.Context) error {
	err := s.repo.DeleteSetting(ctx, domain.SettingSelectedTaskID)
	if err != nil && errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil
	}
	return err
}

// TagFilter returns the persisted tag filter, if any
func (s *SettingsServiceImpl) TagFilter(ctx context.Context) (int64, bool, error) {
	setting, err := s.repo.GetSetting(ctx, domain.SettingTagFilter)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	id, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, nil
	}
	return id, true, nil
}

// ShowArchived reports whether listings should include archived tasks
func (s *SettingsServiceImpl) ShowArchived(ctx context.Context) (bool, error) {
	setting, err := s.repo.GetSetting(ctx, domain.SettingShowArchived)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}

	show, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false, nil
	}
	return show, nil
}

// InstallID returns the stable per-database identifier, generating and
// persisting one on first use.
func (s *SettingsServiceImpl) InstallID(ctx context.Context) (string, error) {
	setting, err := s.repo.GetSetting(ctx, domain.SettingInstallID)
	if err == nil {
		return setting.Value, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return "", err
	}

	entropy := ulid.Monotonic(rand.New(rand.NewSource(timeNow().UnixNano())), 0)
	id := ulid.MustNew(ulid.Timestamp(timeNow()), entropy).String()
	if err := s.repo.SetSetting(ctx, domain.SettingInstallID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Schedule returns the effective Pomodoro schedule: configuration defaults
// overridden by any values stored in the settings table.
func (s *SettingsServiceImpl) Schedule(ctx context.Context) (*Schedule, error) {
	schedule := &Schedule{
		WorkDuration:         s.cfg.Timer.WorkDuration,
		ShortBreak:           s.cfg.Timer.ShortBreak,
		LongBreak:            s.cfg.Timer.LongBreak,
		SessionsPerLongBreak: s.cfg.Timer.SessionsPerLongBreak,
	}

	if d, ok, err := s.durationSetting(ctx, domain.SettingWorkDuration); err != nil {
		return nil, err
	} else if ok {
		schedule.WorkDuration = d
	}
	if d, ok, err := s.durationSetting(ctx, domain.SettingShortBreak); err != nil {
		return nil, err
	} else if ok {
		schedule.ShortBreak = d
	}
	if d, ok, err := s.durationSetting(ctx, domain.SettingLongBreak); err != nil {
		return nil, err
	} else if ok {
		schedule.LongBreak = d
	}

	setting, err := s.repo.GetSetting(ctx, domain.SettingSessionsPerLongBreak)
	if err == nil {
		if n, convErr := strconv.Atoi(setting.Value); convErr == nil && n >= 1 {
			schedule.SessionsPerLongBreak = n
		}
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	return schedule, nil
}

func (s *SettingsServiceImpl) durationSetting(ctx context.Context, key string) (time.Duration, bool, error) {
	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	d, err := time.ParseDuration(setting.Value)
	if err != nil || d <= 0 {
		return 0, false, nil
	}
	return d, true, nil
}

// validateKnownKey rejects values that would corrupt a well-known setting
func (s *SettingsServiceImpl) validateKnownKey(key, value string) error {
	switch key {
	case domain.SettingWorkDuration, domain.SettingShortBreak, domain.SettingLongBreak:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return errors.NewInvalidInputError(key, value, "must be a positive duration such as 25m")
		}
	case domain.SettingSessionsPerLongBreak:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errors.NewInvalidInputError(key, value, "must be an integer of at least 1")
		}
	case domain.SettingSelectedTaskID, domain.SettingTagFilter:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return errors.NewInvalidInputError(key, value, "must be a positive integer")
		}
	case domain.SettingShowArchived:
		if _, err := strconv.ParseBool(value); err != nil {
			return errors.NewInvalidInputError(key, value, "must be true or false")
		}
	}
	return nil
}
