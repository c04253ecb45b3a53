package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for pomotrack
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Timer       TimerConfig       `yaml:"timer"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"POMO_DB_DIR"`
	Filename       string        `yaml:"filename" env:"POMO_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"POMO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"POMO_DB_WRITE_TIMEOUT"`
	MinFreeBytes   uint64        `yaml:"min_free_bytes" env:"POMO_DB_MIN_FREE_BYTES"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"POMO_DB_DIR_PERMISSIONS"`
}

// TimerConfig holds the Pomodoro schedule configuration
type TimerConfig struct {
	WorkDuration        time.Duration `yaml:"work_duration" env:"POMO_TIMER_WORK"`
	ShortBreak          time.Duration `yaml:"short_break" env:"POMO_TIMER_SHORT_BREAK"`
	LongBreak           time.Duration `yaml:"long_break" env:"POMO_TIMER_LONG_BREAK"`
	SessionsPerLongBreak int          `yaml:"sessions_per_long_break" env:"POMO_TIMER_SESSIONS"`
	MinInterval         time.Duration `yaml:"min_interval" env:"POMO_TIMER_MIN_INTERVAL"`
	OrphanGrace         time.Duration `yaml:"orphan_grace" env:"POMO_TIMER_ORPHAN_GRACE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int `yaml:"task_name_min_length" env:"POMO_VALIDATION_TASK_NAME_MIN"`
	TaskNameMaxLength int `yaml:"task_name_max_length" env:"POMO_VALIDATION_TASK_NAME_MAX"`
	NotesMaxLength    int `yaml:"notes_max_length" env:"POMO_VALIDATION_NOTES_MAX"`
	TagNameMaxLength  int `yaml:"tag_name_max_length" env:"POMO_VALIDATION_TAG_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `yaml:"time_format" env:"POMO_TIME_DISPLAY_FORMAT"`
	DateOnly   bool   `yaml:"date_only" env:"POMO_DISPLAY_DATE_ONLY"`
	Color      bool   `yaml:"color" env:"POMO_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"POMO_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"POMO_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".pomo")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "pomo.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			MinFreeBytes:   16 << 20,
			DirPermissions: 0755,
		},
		Timer: TimerConfig{
			WorkDuration:         25 * time.Minute,
			ShortBreak:           5 * time.Minute,
			LongBreak:            15 * time.Minute,
			SessionsPerLongBreak: 4,
			MinInterval:          time.Minute,
			OrphanGrace:          5 * time.Minute,
		},
		Validation: ValidationConfig{
			TaskNameMinLength: 1,
			TaskNameMaxLength: 255,
			NotesMaxLength:    4096,
			TagNameMaxLength:  64,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04:05",
			DateOnly:   false,
			Color:      true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetConfigFilePath returns the path of the optional YAML config file
func (c *Config) GetConfigFilePath() string {
	return filepath.Join(c.Database.Dir, "config.yaml")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("POMO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("POMO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("POMO_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("POMO_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if free := os.Getenv("POMO_DB_MIN_FREE_BYTES"); free != "" {
		if n, err := strconv.ParseUint(free, 10, 64); err == nil {
			c.Database.MinFreeBytes = n
		}
	}
	if perms := os.Getenv("POMO_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Timer configuration
	if work := os.Getenv("POMO_TIMER_WORK"); work != "" {
		if d, err := time.ParseDuration(work); err == nil {
			c.Timer.WorkDuration = d
		}
	}
	if short := os.Getenv("POMO_TIMER_SHORT_BREAK"); short != "" {
		if d, err := time.ParseDuration(short); err == nil {
			c.Timer.ShortBreak = d
		}
	}
	if long := os.Getenv("POMO_TIMER_LONG_BREAK"); long != "" {
		if d, err := time.ParseDuration(long); err == nil {
			c.Timer.LongBreak = d
		}
	}
	if sessions := os.Getenv("POMO_TIMER_SESSIONS"); sessions != "" {
		if n, err := strconv.Atoi(sessions); err == nil {
			c.Timer.SessionsPerLongBreak = n
		}
	}
	if minInterval := os.Getenv("POMO_TIMER_MIN_INTERVAL"); minInterval != "" {
		if d, err := time.ParseDuration(minInterval); err == nil {
			c.Timer.MinInterval = d
		}
	}
	if grace := os.Getenv("POMO_TIMER_ORPHAN_GRACE"); grace != "" {
		if d, err := time.ParseDuration(grace); err == nil {
			c.Timer.OrphanGrace = d
		}
	}

	// Validation configuration
	if minLen := os.Getenv("POMO_VALIDATION_TASK_NAME_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TaskNameMinLength = n
		}
	}
	if maxLen := os.Getenv("POMO_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskNameMaxLength = n
		}
	}
	if maxLen := os.Getenv("POMO_VALIDATION_NOTES_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.NotesMaxLength = n
		}
	}
	if maxLen := os.Getenv("POMO_VALIDATION_TAG_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TagNameMaxLength = n
		}
	}

	// Display configuration
	if format := os.Getenv("POMO_TIME_DISPLAY_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if dateOnly := os.Getenv("POMO_DISPLAY_DATE_ONLY"); dateOnly != "" {
		if b, err := strconv.ParseBool(dateOnly); err == nil {
			c.Display.DateOnly = b
		}
	}
	if color := os.Getenv("POMO_DISPLAY_COLOR"); color != "" {
		if b, err := strconv.ParseBool(color); err == nil {
			c.Display.Color = b
		}
	}

	// Application configuration
	if timeout := os.Getenv("POMO_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("POMO_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate timer configuration
	if c.Timer.WorkDuration <= 0 {
		return &ConfigError{Field: "timer.work_duration", Message: "work duration must be positive"}
	}
	if c.Timer.ShortBreak <= 0 {
		return &ConfigError{Field: "timer.short_break", Message: "short break must be positive"}
	}
	if c.Timer.LongBreak <= 0 {
		return &ConfigError{Field: "timer.long_break", Message: "long break must be positive"}
	}
	if c.Timer.SessionsPerLongBreak < 1 {
		return &ConfigError{Field: "timer.sessions_per_long_break", Message: "sessions per long break must be at least 1"}
	}
	if c.Timer.MinInterval < 0 {
		return &ConfigError{Field: "timer.min_interval", Message: "min interval cannot be negative"}
	}
	if c.Timer.OrphanGrace < 0 {
		return &ConfigError{Field: "timer.orphan_grace", Message: "orphan grace cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}
	if c.Validation.TagNameMaxLength < 1 {
		return &ConfigError{Field: "validation.tag_name_max_length", Message: "tag name maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
