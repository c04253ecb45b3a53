package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var completedAt, archivedAt sql.NullTime

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&task.Notes,
		&task.Position,
		&task.CreatedAt,
		&completedAt,
		&archivedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	if archivedAt.Valid {
		task.ArchivedAt = &archivedAt.Time
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanTag scans a single tag from a database row
func ScanTag(scanner Scanner) (*Tag, error) {
	tag := &Tag{}
	err := scanner.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Position)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ScanTags scans multiple tags from database rows
func ScanTags(rows Rows) ([]*Tag, error) {
	var tags []*Tag
	for rows.Next() {
		tag, err := ScanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// ScanLog scans a single log from a database row
func ScanLog(scanner Scanner) (*Log, error) {
	log := &Log{}
	var stoppedAt sql.NullTime

	err := scanner.Scan(
		&log.ID,
		&log.TaskID,
		&log.StartedAt,
		&stoppedAt,
		&log.Elapsed,
	)
	if err != nil {
		return nil, err
	}

	if stoppedAt.Valid {
		log.StoppedAt = &stoppedAt.Time
	}

	return log, nil
}

// ScanLogs scans multiple logs from database rows
func ScanLogs(rows Rows) ([]*Log, error) {
	var logs []*Log
	for rows.Next() {
		log, err := ScanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// ScanSetting scans a single setting from a database row
func ScanSetting(scanner Scanner) (*Setting, error) {
	setting := &Setting{}
	err := scanner.Scan(&setting.Key, &setting.Value)
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// ScanSettings scans multiple settings from database rows
func ScanSettings(rows Rows) ([]*Setting, error) {
	var settings []*Setting
	for rows.Next() {
		setting, err := ScanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}
