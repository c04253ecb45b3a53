package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pomotrack/internal/errors"
)

// CreateTag creates a new tag
func (r *SQLiteRepository) CreateTag(ctx context.Context, tag *Tag) error {
	query := `INSERT INTO tags (name, color, position) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, tag.Name, tag.Color, tag.Position)
	if err != nil {
		return err
	}
	tag.ID = id
	return nil
}

// GetTag retrieves a tag by ID
func (r *SQLiteRepository) GetTag(ctx context.Context, id int64) (*Tag, error) {
	query := `SELECT id, name, color, position FROM tags WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTag, "tag", fmt.Sprintf("%d", id), id)
}

// ListTags retrieves all tags ordered by position
func (r *SQLiteRepository) ListTags(ctx context.Context) ([]*Tag, error) {
	query := `SELECT id, name, color, position FROM tags ORDER BY position ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTags, "tags")
}

// UpdateTag updates an existing tag
func (r *SQLiteRepository) UpdateTag(ctx context.Context, tag *Tag) error {
	query := `UPDATE tags SET name = ?, color = ?, position = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "tag", fmt.Sprintf("%d", tag.ID),
		tag.Name, tag.Color, tag.Position, tag.ID)
}

// DeleteTag deletes a tag by ID. Task links cascade.
func (r *SQLiteRepository) DeleteTag(ctx context.Context, id int64) error {
	query := `DELETE FROM tags WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "tag", fmt.Sprintf("%d", id), id)
}

// MaxTagPosition returns the highest tag position
func (r *SQLiteRepository) MaxTagPosition(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(position) FROM tags`).Scan(&max)
	if err != nil {
		return 0, HandleDatabaseError("max tag position", err)
	}
	return int(max.Int64), nil
}

// UpdateTagPositions applies a batch of position changes in one transaction
func (r *SQLiteRepository) UpdateTagPositions(ctx context.Context, updates []PositionUpdate) error {
	return WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, u := range updates {
			result, err := tx.ExecContext(ctx, `UPDATE tags SET position = ? WHERE id = ?`, u.Position, u.ID)
			if err != nil {
				return HandleDatabaseError("update tag position", err)
			}
			if err := ValidateRowsAffected(result, "tag", fmt.Sprintf("%d", u.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignTag links a tag to a task. Assigning an already-linked pair is a no-op.
func (r *SQLiteRepository) AssignTag(ctx context.Context, taskID, tagID int64) error {
	// Verify both sides exist so the caller gets a NotFound rather than an FK failure
	if _, err := r.GetTask(ctx, taskID); err != nil {
		return err
	}
	if _, err := r.GetTag(ctx, tagID); err != nil {
		return err
	}

	query := `INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, taskID, tagID)
	if err != nil {
		return HandleDatabaseError("assign tag", err)
	}
	return nil
}

// UnassignTag removes a tag from a task
func (r *SQLiteRepository) UnassignTag(ctx context.Context, taskID, tagID int64) error {
	query := `DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`
	result, err := r.db.ExecContext(ctx, query, taskID, tagID)
	if err != nil {
		return HandleDatabaseError("unassign tag", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("task tag link", fmt.Sprintf("%d:%d", taskID, tagID))
	}
	return nil
}

// ListTagsForTask returns the tags linked to a task, ordered by tag position
func (r *SQLiteRepository) ListTagsForTask(ctx context.Context, taskID int64) ([]*Tag, error) {
	query := `
	SELECT tags.id, tags.name, tags.color, tags.position
	FROM tags
	JOIN task_tags ON task_tags.tag_id = tags.id
	WHERE task_tags.task_id = ?
	ORDER BY tags.position ASC, tags.id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTags, "tags", taskID)
}

// ListTasksForTag returns the tasks linked to a tag, ordered by task position
func (r *SQLiteRepository) ListTasksForTag(ctx context.Context, tagID int64) ([]*Task, error) {
	query := `
	SELECT tasks.id, tasks.name, tasks.notes, tasks.position, tasks.created_at, tasks.completed_at, tasks.archived_at
	FROM tasks
	JOIN task_tags ON task_tags.task_id = tasks.id
	WHERE task_tags.tag_id = ?
	ORDER BY tasks.position ASC, tasks.id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", tagID)
}

// TagMembership returns the full task -> tag IDs mapping in one query
func (r *SQLiteRepository) TagMembership(ctx context.Context) (map[int64][]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id, tag_id FROM task_tags ORDER BY task_id, tag_id`)
	if err != nil {
		return nil, HandleDatabaseError("query tag membership", err)
	}
	defer rows.Close()

	membership := make(map[int64][]int64)
	for rows.Next() {
		var taskID, tagID int64
		if err := rows.Scan(&taskID, &tagID); err != nil {
			return nil, HandleDatabaseError("scan tag membership", err)
		}
		membership[taskID] = append(membership[taskID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("scan tag membership", err)
	}

	return membership, nil
}
