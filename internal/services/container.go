package services

import (
	"pomotrack/internal/config"
	"pomotrack/internal/repository/sqlite"
)

// NewServiceContainer wires all services over a shared repository
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *ServiceContainer {
	settings := NewSettingsService(repo, cfg)
	return &ServiceContainer{
		Tasks:     NewTaskService(repo),
		Tags:      NewTagService(repo),
		Timer:     NewTimerService(repo, settings, cfg),
		Settings:  settings,
		Reporting: NewReportingService(repo),
	}
}
