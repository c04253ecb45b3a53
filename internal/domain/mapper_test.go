package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomotrack/internal/repository/sqlite"
)

func TestLogMapperElapsedConversion(t *testing.T) {
	m := NewLogMapper()

	dbLog := sqlite.Log{ID: 1, TaskID: 2, StartedAt: time.Now(), Elapsed: 1500}
	domainLog := m.FromDatabase(dbLog)
	assert.Equal(t, 25*time.Minute, domainLog.Elapsed)

	back := m.ToDatabase(domainLog)
	assert.Equal(t, int64(1500), back.Elapsed)
}

func TestTaskMapperPreservesNilTimestamps(t *testing.T) {
	m := NewTaskMapper()

	task := m.FromDatabase(sqlite.Task{ID: 1, Name: "x", CreatedAt: time.Now()})
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.ArchivedAt)

	now := time.Now()
	dbTask := m.ToDatabase(Task{ID: 1, Name: "x", CompletedAt: &now})
	assert.Equal(t, &now, dbTask.CompletedAt)
	assert.Nil(t, dbTask.ArchivedAt)
}

func TestSearchOptionsMapper(t *testing.T) {
	m := NewSearchOptionsMapper()

	taskID := int64(4)
	tagID := int64(9)
	opts := m.ToDatabase(SearchOptions{TaskID: &taskID, TagID: &tagID})
	assert.Equal(t, &taskID, opts.TaskID)
	assert.Equal(t, &tagID, opts.TagID)
	assert.Nil(t, opts.StartTime)
}
