package domain

import (
	"time"

	"pomotrack/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		Name:        domainTask.Name,
		Notes:       domainTask.Notes,
		Position:    domainTask.Position,
		CreatedAt:   domainTask.CreatedAt,
		CompletedAt: domainTask.CompletedAt,
		ArchivedAt:  domainTask.ArchivedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Name:        dbTask.Name,
		Notes:       dbTask.Notes,
		Position:    dbTask.Position,
		CreatedAt:   dbTask.CreatedAt,
		CompletedAt: dbTask.CompletedAt,
		ArchivedAt:  dbTask.ArchivedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		task := m.FromDatabase(*dbTask)
		domainTasks[i] = &task
	}
	return domainTasks
}

// TagMapper handles conversion between domain and database Tag models.
type TagMapper struct{}

// NewTagMapper creates a new TagMapper instance.
func NewTagMapper() *TagMapper {
	return &TagMapper{}
}

// ToDatabase converts a domain Tag to a database Tag.
func (m *TagMapper) ToDatabase(domainTag Tag) sqlite.Tag {
	return sqlite.Tag{
		ID:       domainTag.ID,
		Name:     domainTag.Name,
		Color:    domainTag.Color,
		Position: domainTag.Position,
	}
}

// FromDatabase converts a database Tag to a domain Tag.
func (m *TagMapper) FromDatabase(dbTag sqlite.Tag) Tag {
	return Tag{
		ID:       dbTag.ID,
		Name:     dbTag.Name,
		Color:    dbTag.Color,
		Position: dbTag.Position,
	}
}

// FromDatabaseSlice converts a slice of database Tags to domain Tags.
func (m *TagMapper) FromDatabaseSlice(dbTags []*sqlite.Tag) []*Tag {
	domainTags := make([]*Tag, len(dbTags))
	for i, dbTag := range dbTags {
		tag := m.FromDatabase(*dbTag)
		domainTags[i] = &tag
	}
	return domainTags
}

// LogMapper handles conversion between domain and database Log models.
type LogMapper struct{}

// NewLogMapper creates a new LogMapper instance.
func NewLogMapper() *LogMapper {
	return &LogMapper{}
}

// ToDatabase converts a domain Log to a database Log.
func (m *LogMapper) ToDatabase(domainLog Log) sqlite.Log {
	return sqlite.Log{
		ID:        domainLog.ID,
		TaskID:    domainLog.TaskID,
		StartedAt: domainLog.StartedAt,
		StoppedAt: domainLog.StoppedAt,
		Elapsed:   int64(domainLog.Elapsed / time.Second),
	}
}

// FromDatabase converts a database Log to a domain Log.
func (m *LogMapper) FromDatabase(dbLog sqlite.Log) Log {
	return Log{
		ID:        dbLog.ID,
		TaskID:    dbLog.TaskID,
		StartedAt: dbLog.StartedAt,
		StoppedAt: dbLog.StoppedAt,
		Elapsed:   time.Duration(dbLog.Elapsed) * time.Second,
	}
}

// FromDatabaseSlice converts a slice of database Logs to domain Logs.
func (m *LogMapper) FromDatabaseSlice(dbLogs []*sqlite.Log) []*Log {
	domainLogs := make([]*Log, len(dbLogs))
	for i, dbLog := range dbLogs {
		log := m.FromDatabase(*dbLog)
		domainLogs[i] = &log
	}
	return domainLogs
}

// SettingMapper handles conversion between domain and database Setting models.
type SettingMapper struct{}

// NewSettingMapper creates a new SettingMapper instance.
func NewSettingMapper() *SettingMapper {
	return &SettingMapper{}
}

// FromDatabase converts a database Setting to a domain Setting.
func (m *SettingMapper) FromDatabase(dbSetting sqlite.Setting) Setting {
	return Setting(dbSetting)
}

// FromDatabaseSlice converts a slice of database Settings to domain Settings.
func (m *SettingMapper) FromDatabaseSlice(dbSettings []*sqlite.Setting) []*Setting {
	domainSettings := make([]*Setting, len(dbSettings))
	for i, dbSetting := range dbSettings {
		setting := m.FromDatabase(*dbSetting)
		domainSettings[i] = &setting
	}
	return domainSettings
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(domainOpts SearchOptions) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		StartTime: domainOpts.StartTime,
		EndTime:   domainOpts.EndTime,
		TaskID:    domainOpts.TaskID,
		TaskName:  domainOpts.TaskName,
		TagID:     domainOpts.TagID,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task          *TaskMapper
	Tag           *TagMapper
	Log           *LogMapper
	Setting       *SettingMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		Tag:           NewTagMapper(),
		Log:           NewLogMapper(),
		Setting:       NewSettingMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
