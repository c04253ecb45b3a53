package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreateTask(t *testing.T, repo *SQLiteRepository, name string, position int) *Task {
	t.Helper()
	task := &Task{
		Name:      name,
		Position:  position,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{
		Name:      "Write report",
		Notes:     "due friday",
		Position:  1,
		CreatedAt: time.Now(),
	}
	err := repo.CreateTask(ctx, task)
	require.NoError(t, err)
	assert.Greater(t, task.ID, int64(0))

	retrieved, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", retrieved.Name)
	assert.Equal(t, "due friday", retrieved.Notes)
	assert.Equal(t, 1, retrieved.Position)
	assert.Nil(t, retrieved.CompletedAt)
	assert.Nil(t, retrieved.ArchivedAt)
}

func TestGetTaskNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTask(context.Background(), 999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Original", 1)

	now := time.Now()
	task.Name = "Renamed"
	task.CompletedAt = &now
	require.NoError(t, repo.UpdateTask(ctx, task))

	retrieved, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", retrieved.Name)
	require.NotNil(t, retrieved.CompletedAt)
	assert.Equal(t, now.Unix(), retrieved.CompletedAt.Unix())
}

func TestListTasksExcludesArchived(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	mustCreateTask(t, repo, "Visible", 1)
	archived := mustCreateTask(t, repo, "Hidden", 2)
	now := time.Now()
	archived.ArchivedAt = &now
	require.NoError(t, repo.UpdateTask(ctx, archived))

	visible, err := repo.ListTasks(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Visible", visible[0].Name)

	all, err := repo.ListTasks(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListTasksOrdersByPosition(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	mustCreateTask(t, repo, "third", 3)
	mustCreateTask(t, repo, "first", 1)
	mustCreateTask(t, repo, "second", 2)

	tasks, err := repo.ListTasks(ctx, false)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Name)
	assert.Equal(t, "second", tasks[1].Name)
	assert.Equal(t, "third", tasks[2].Name)
}

func TestDeleteTaskCascades(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := mustCreateTask(t, repo, "Doomed", 1)
	tag := &Tag{Name: "work", Color: "#ff0000", Position: 1}
	require.NoError(t, repo.CreateTag(ctx, tag))
	require.NoError(t, repo.AssignTag(ctx, task.ID, tag.ID))

	log := &Log{TaskID: task.ID, StartedAt: time.Now()}
	require.NoError(t, repo.CreateLog(ctx, log))

	require.NoError(t, repo.DeleteTask(ctx, task.ID))

	_, err := repo.GetLog(ctx, log.ID)
	assert.Error(t, err)

	membership, err := repo.TagMembership(ctx)
	require.NoError(t, err)
	assert.Empty(t, membership)

	// Tag itself survives
	_, err = repo.GetTag(ctx, tag.ID)
	assert.NoError(t, err)
}

func TestMaxTaskPosition(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	max, err := repo.MaxTaskPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	mustCreateTask(t, repo, "a", 1)
	mustCreateTask(t, repo, "b", 5)

	max, err = repo.MaxTaskPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, max)
}

func TestUpdateTaskPositions(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	a := mustCreateTask(t, repo, "a", 1)
	b := mustCreateTask(t, repo, "b", 2)

	err := repo.UpdateTaskPositions(ctx, []PositionUpdate{
		{ID: a.ID, Position: 2},
		{ID: b.ID, Position: 1},
	})
	require.NoError(t, err)

	tasks, err := repo.ListTasks(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "b", tasks[0].Name)
	assert.Equal(t, "a", tasks[1].Name)
}

func TestUpdateTaskPositionsRollsBackOnMissingID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	a := mustCreateTask(t, repo, "a", 1)

	err := repo.UpdateTaskPositions(ctx, []PositionUpdate{
		{ID: a.ID, Position: 9},
		{ID: 999, Position: 1},
	})
	require.Error(t, err)

	retrieved, err := repo.GetTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, retrieved.Position, "position change must roll back")
}
