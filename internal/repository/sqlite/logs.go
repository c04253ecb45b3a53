package sqlite

import (
	"context"
	"fmt"
	"strings"
)

// CreateLog creates a new log
func (r *SQLiteRepository) CreateLog(ctx context.Context, log *Log) error {
	query := `
	INSERT INTO logs (task_id, started_at, stopped_at, elapsed)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		log.TaskID,
		FormatTimeForDB(log.StartedAt),
		FormatTimePtrForDB(log.StoppedAt),
		log.Elapsed)
	if err != nil {
		return err
	}

	log.ID = id
	return nil
}

// GetLog retrieves a log by ID
func (r *SQLiteRepository) GetLog(ctx context.Context, id int64) (*Log, error) {
	query := `
	SELECT id, task_id, started_at, stopped_at, elapsed
	FROM logs
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanLog, "log", fmt.Sprintf("%d", id), id)
}

// ListLogs retrieves all logs ordered by start time
func (r *SQLiteRepository) ListLogs(ctx context.Context) ([]*Log, error) {
	query := `
	SELECT id, task_id, started_at, stopped_at, elapsed
	FROM logs
	ORDER BY started_at ASC`

	return QueryMultiple(ctx, r.db, query, ScanLogs, "logs")
}

// UpdateLog updates an existing log
func (r *SQLiteRepository) UpdateLog(ctx context.Context, log *Log) error {
	query := `
	UPDATE logs
	SET task_id = ?, started_at = ?, stopped_at = ?, elapsed = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "log", fmt.Sprintf("%d", log.ID),
		log.TaskID,
		FormatTimeForDB(log.StartedAt),
		FormatTimePtrForDB(log.StoppedAt),
		log.Elapsed,
		log.ID)
}

// DeleteLog deletes a log by ID
func (r *SQLiteRepository) DeleteLog(ctx context.Context, id int64) error {
	query := `DELETE FROM logs WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "log", fmt.Sprintf("%d", id), id)
}

// SearchLogs searches for logs based on the provided options.
// With no criteria set, only running logs are returned.
func (r *SQLiteRepository) SearchLogs(ctx context.Context, opts SearchOptions) ([]*Log, error) {
	var conditions []string
	var args []interface{}

	// Build time range conditions
	if opts.StartTime != nil || opts.EndTime != nil {
		timeCondition := "("
		if opts.StartTime != nil {
			timeCondition += "started_at >= ?"
			args = append(args, FormatTimePtrForDB(opts.StartTime))
		}
		if opts.StartTime != nil && opts.EndTime != nil {
			timeCondition += " AND "
		}
		if opts.EndTime != nil {
			timeCondition += "started_at <= ?"
			args = append(args, FormatTimePtrForDB(opts.EndTime))
		}
		timeCondition += ")"
		conditions = append(conditions, timeCondition)
	} else if opts.TaskID == nil && opts.TaskName == nil && opts.TagID == nil {
		// Only filter for running logs if no search criteria are provided
		conditions = append(conditions, "stopped_at IS NULL")
	}

	if opts.TaskID != nil {
		conditions = append(conditions, "logs.task_id = ?")
		args = append(args, *opts.TaskID)
	}

	// Task name condition requires a join with tasks
	joinTasks := false
	if opts.TaskName != nil && *opts.TaskName != "" {
		joinTasks = true
		conditions = append(conditions, "tasks.name LIKE ?")
		args = append(args, "%"+*opts.TaskName+"%")
	}

	// Tag condition requires a join with task_tags
	joinTags := false
	if opts.TagID != nil {
		joinTags = true
		conditions = append(conditions, "task_tags.tag_id = ?")
		args = append(args, *opts.TagID)
	}

	query := `
	SELECT logs.id, logs.task_id, started_at, stopped_at, elapsed
	FROM logs`
	if joinTasks {
		query += " JOIN tasks ON logs.task_id = tasks.id"
	}
	if joinTags {
		query += " JOIN task_tags ON logs.task_id = task_tags.task_id"
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY started_at ASC"

	return QueryMultiple(ctx, r.db, query, ScanLogs, "logs", args...)
}
