package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomotrack/internal/errors"
)

func TestCreateTask(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	task, err := svc.Tasks.CreateTask(ctx, "  Write the report  ", "quarterly numbers")
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, "Write the report", task.Name)
	assert.Equal(t, "quarterly numbers", task.Notes)
	assert.Equal(t, 1, task.Position)

	second, err := svc.Tasks.CreateTask(ctx, "Review PRs", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Tasks.CreateTask(ctx, "", "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = svc.Tasks.CreateTask(ctx, "two\nlines", "")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestCompleteAndReopenTask(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "Write tests")
	clock.Advance(0)

	completed, err := svc.Tasks.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted())

	// Completing twice is a conflict
	_, err = svc.Tasks.CompleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	reopened, err := svc.Tasks.ReopenTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted())

	_, err = svc.Tasks.ReopenTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
}

func TestArchiveTaskClosesPositionGap(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	first := mustCreateTask(t, svc, "first")
	mustCreateTask(t, svc, "second")
	mustCreateTask(t, svc, "third")

	_, err := svc.Tasks.ArchiveTask(ctx, first.ID)
	require.NoError(t, err)

	tasks, err := svc.Tasks.ListTasks(ctx, false)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Name)
	assert.Equal(t, 1, tasks[0].Position)
	assert.Equal(t, 2, tasks[1].Position)

	// Archived tasks show up only with includeArchived
	all, err := svc.Tasks.ListTasks(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUnarchiveTaskAppendsAtEnd(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	first := mustCreateTask(t, svc, "first")
	mustCreateTask(t, svc, "second")

	_, err := svc.Tasks.ArchiveTask(ctx, first.ID)
	require.NoError(t, err)

	restored, err := svc.Tasks.UnarchiveTask(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Position)
}

func TestMoveTask(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a := mustCreateTask(t, svc, "a")
	mustCreateTask(t, svc, "b")
	mustCreateTask(t, svc, "c")

	require.NoError(t, svc.Tasks.MoveTask(ctx, a.ID, 3))

	tasks, err := svc.Tasks.ListTasks(ctx, false)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "b", tasks[0].Name)
	assert.Equal(t, "c", tasks[1].Name)
	assert.Equal(t, "a", tasks[2].Name)
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Position)
	}

	// Positions past the end clamp to the last slot
	require.NoError(t, svc.Tasks.MoveTask(ctx, a.ID, 99))
	tasks, err = svc.Tasks.ListTasks(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "a", tasks[2].Name)
}

func TestMoveTaskNotFound(t *testing.T) {
	svc := newTestServices(t)

	err := svc.Tasks.MoveTask(context.Background(), 999, 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestDeleteTaskRenumbers(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a := mustCreateTask(t, svc, "a")
	mustCreateTask(t, svc, "b")
	mustCreateTask(t, svc, "c")

	require.NoError(t, svc.Tasks.DeleteTask(ctx, a.ID))

	tasks, err := svc.Tasks.ListTasks(ctx, false)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].Position)
	assert.Equal(t, 2, tasks[1].Position)

	_, err = svc.Tasks.GetTask(ctx, a.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestUpdateTaskKeepsNameWhenEmpty(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "original")

	updated, err := svc.Tasks.UpdateTask(ctx, task.ID, "", "new notes")
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Name)
	assert.Equal(t, "new notes", updated.Notes)

	updated, err = svc.Tasks.UpdateTask(ctx, task.ID, "renamed", "new notes")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}
