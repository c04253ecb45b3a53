package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"pomotrack/internal/api"
	"pomotrack/internal/config"
	"pomotrack/internal/repository/sqlite"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the API, configuration and I/O streams for command handlers
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	in     io.Reader
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// NewAppWithDefaultRepository builds an App over the on-disk database for
// production use.
func NewAppWithDefaultRepository(cfg *config.Config) (*App, error) {
	dbPath, err := GetDatabasePath(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	repo, err := sqlite.NewWithFreeSpaceFloor(dbPath, cfg.Database.MinFreeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewApp(api.New(repo, cfg), cfg), nil
}

// GetDatabasePath returns the path to the SQLite database file, creating the
// containing directory if needed. POMO_DB overrides everything.
func GetDatabasePath(cfg *config.Config) (string, error) {
	if dbPath := os.Getenv("POMO_DB"); dbPath != "" {
		return dbPath, nil
	}

	dir := cfg.Database.Dir
	if err := os.MkdirAll(dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return "", fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	return filepath.Join(dir, cfg.Database.Filename), nil
}
