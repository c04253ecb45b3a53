package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"pomotrack/internal/errors"
	"pomotrack/internal/logging"
	"pomotrack/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible log search parameters.
// With no criteria set, only running logs are returned.
type SearchOptions struct {
	StartTime *time.Time
	EndTime   *time.Time
	TaskID    *int64
	TaskName  *string
	TagID     *int64
}

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, includeArchived bool) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
	MaxTaskPosition(ctx context.Context) (int, error)
	UpdateTaskPositions(ctx context.Context, updates []PositionUpdate) error

	// Tag operations
	CreateTag(ctx context.Context, tag *Tag) error
	GetTag(ctx context.Context, id int64) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id int64) error
	MaxTagPosition(ctx context.Context) (int, error)
	UpdateTagPositions(ctx context.Context, updates []PositionUpdate) error

	// Task-tag association operations
	AssignTag(ctx context.Context, taskID, tagID int64) error
	UnassignTag(ctx context.Context, taskID, tagID int64) error
	ListTagsForTask(ctx context.Context, taskID int64) ([]*Tag, error)
	ListTasksForTag(ctx context.Context, tagID int64) ([]*Task, error)
	TagMembership(ctx context.Context) (map[int64][]int64, error)

	// Log operations
	CreateLog(ctx context.Context, log *Log) error
	GetLog(ctx context.Context, id int64) (*Log, error)
	ListLogs(ctx context.Context) ([]*Log, error)
	SearchLogs(ctx context.Context, opts SearchOptions) ([]*Log, error)
	UpdateLog(ctx context.Context, log *Log) error
	DeleteLog(ctx context.Context, id int64) error

	// Setting operations
	GetSetting(ctx context.Context, key string) (*Setting, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) ([]*Setting, error)
	DeleteSetting(ctx context.Context, key string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithFreeSpaceFloor(dbPath, 0)
}

// NewWithFreeSpaceFloor creates a repository, first verifying the target
// filesystem has at least minFreeBytes available. The in-memory database
// skips the check.
func NewWithFreeSpaceFloor(dbPath string, minFreeBytes uint64) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := CheckFreeSpace(filepath.Dir(dbPath), minFreeBytes); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Cascading deletes for task_tags and logs rely on this pragma
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	logging.L().Debug("opened database", zap.String("path", dbPath))
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (name, notes, position, created_at, completed_at, archived_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Name, task.Notes, task.Position,
		FormatTimeForDB(task.CreatedAt),
		FormatTimePtrForDB(task.CompletedAt),
		FormatTimePtrForDB(task.ArchivedAt))
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `
	SELECT id, name, notes, position, created_at, completed_at, archived_at
	FROM tasks
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves tasks ordered by position. Archived tasks are excluded
// unless includeArchived is set.
func (r *SQLiteRepository) ListTasks(ctx context.Context, includeArchived bool) ([]*Task, error) {
	query := `
	SELECT id, name, notes, position, created_at, completed_at, archived_at
	FROM tasks`
	if !includeArchived {
		query += " WHERE archived_at IS NULL"
	}
	query += " ORDER BY position ASC, id ASC"

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET name = ?, notes = ?, position = ?, completed_at = ?, archived_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID),
		task.Name, task.Notes, task.Position,
		FormatTimePtrForDB(task.CompletedAt),
		FormatTimePtrForDB(task.ArchivedAt),
		task.ID)
}

// DeleteTask deletes a task by ID. Logs and tag links cascade.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// MaxTaskPosition returns the highest position among non-archived tasks
func (r *SQLiteRepository) MaxTaskPosition(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(position) FROM tasks WHERE archived_at IS NULL`).Scan(&max)
	if err != nil {
		return 0, HandleDatabaseError("max task position", err)
	}
	return int(max.Int64), nil
}

// UpdateTaskPositions applies a batch of position changes in one transaction
func (r *SQLiteRepository) UpdateTaskPositions(ctx context.Context, updates []PositionUpdate) error {
	return WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, u := range updates {
			result, err := tx.ExecContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`, u.Position, u.ID)
			if err != nil {
				return HandleDatabaseError("update task position", err)
			}
			if err := ValidateRowsAffected(result, "task", fmt.Sprintf("%d", u.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}
