package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetLog(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Task", 1)

	now := time.Now()
	log := &Log{TaskID: task.ID, StartedAt: now}
	require.NoError(t, repo.CreateLog(ctx, log))
	assert.Greater(t, log.ID, int64(0))

	retrieved, err := repo.GetLog(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, retrieved.TaskID)
	assert.Equal(t, now.Unix(), retrieved.StartedAt.Unix())
	assert.Nil(t, retrieved.StoppedAt)
	assert.Zero(t, retrieved.Elapsed)
}

func TestUpdateLogStopsInterval(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Task", 1)
	start := time.Now().Add(-25 * time.Minute)
	log := &Log{TaskID: task.ID, StartedAt: start}
	require.NoError(t, repo.CreateLog(ctx, log))

	stop := time.Now()
	log.StoppedAt = &stop
	log.Elapsed = int64(stop.Sub(start).Seconds())
	require.NoError(t, repo.UpdateLog(ctx, log))

	retrieved, err := repo.GetLog(ctx, log.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.StoppedAt)
	assert.Equal(t, stop.Unix(), retrieved.StoppedAt.Unix())
	assert.InDelta(t, 25*60, retrieved.Elapsed, 2)
}

func TestSearchLogsEmptyOptionsReturnsRunning(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Task", 1)

	stop := time.Now()
	stopped := &Log{TaskID: task.ID, StartedAt: stop.Add(-time.Hour), StoppedAt: &stop, Elapsed: 3600}
	require.NoError(t, repo.CreateLog(ctx, stopped))

	running := &Log{TaskID: task.ID, StartedAt: time.Now()}
	require.NoError(t, repo.CreateLog(ctx, running))

	results, err := repo.SearchLogs(ctx, SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, running.ID, results[0].ID)
}

func TestSearchLogsByTimeRange(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Task", 1)

	old := &Log{TaskID: task.ID, StartedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, repo.CreateLog(ctx, old))
	recent := &Log{TaskID: task.ID, StartedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.CreateLog(ctx, recent))

	since := time.Now().Add(-2 * time.Hour)
	results, err := repo.SearchLogs(ctx, SearchOptions{StartTime: &since})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, recent.ID, results[0].ID)
}

func TestSearchLogsByTaskName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	meeting := mustCreateTask(t, repo, "Weekly meeting", 1)
	coding := mustCreateTask(t, repo, "Coding", 2)

	require.NoError(t, repo.CreateLog(ctx, &Log{TaskID: meeting.ID, StartedAt: time.Now()}))
	require.NoError(t, repo.CreateLog(ctx, &Log{TaskID: coding.ID, StartedAt: time.Now()}))

	name := "meeting"
	results, err := repo.SearchLogs(ctx, SearchOptions{TaskName: &name})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, meeting.ID, results[0].TaskID)
}

func TestSearchLogsByTag(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	tagged := mustCreateTask(t, repo, "Tagged", 1)
	plain := mustCreateTask(t, repo, "Plain", 2)
	tag := mustCreateTag(t, repo, "focus", "#123456", 1)
	require.NoError(t, repo.AssignTag(ctx, tagged.ID, tag.ID))

	require.NoError(t, repo.CreateLog(ctx, &Log{TaskID: tagged.ID, StartedAt: time.Now()}))
	require.NoError(t, repo.CreateLog(ctx, &Log{TaskID: plain.ID, StartedAt: time.Now()}))

	results, err := repo.SearchLogs(ctx, SearchOptions{TagID: &tag.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, tagged.ID, results[0].TaskID)
}

func TestDeleteLog(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Task", 1)
	log := &Log{TaskID: task.ID, StartedAt: time.Now()}
	require.NoError(t, repo.CreateLog(ctx, log))

	require.NoError(t, repo.DeleteLog(ctx, log.ID))

	err := repo.DeleteLog(ctx, log.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
