package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomotrack/internal/errors"
)

func TestStartAndStopTimer(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "deep work")

	status, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, status.Task.ID)
	assert.Equal(t, PhaseWork, status.Phase)
	assert.True(t, status.Log.IsRunning())
	assert.Equal(t, 25*time.Minute, status.Remaining)

	// Selection survives for resume
	id, ok, err := svc.Settings.SelectedTaskID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, task.ID, id)

	clock.Advance(10 * time.Minute)
	stopped, err := svc.Timer.Stop(ctx)
	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, 10*time.Minute, stopped[0].Elapsed)

	_, ok, err = svc.Settings.SelectedTaskID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err := svc.Timer.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestStartStopsPreviousTimer(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	first := mustCreateTask(t, svc, "first")
	second := mustCreateTask(t, svc, "second")

	_, err := svc.Timer.Start(ctx, first.ID)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	status, err := svc.Timer.Start(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, status.Task.ID)

	running, err := svc.Timer.RunningLogs(ctx)
	require.NoError(t, err)
	require.Len(t, running, 1)
	assert.Equal(t, second.ID, running[0].TaskID)
}

func TestStopDiscardsShortIntervals(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "blip")

	_, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)

	// Under the one-minute floor: nothing should be recorded
	clock.Advance(20 * time.Second)
	stopped, err := svc.Timer.Stop(ctx)
	require.NoError(t, err)
	assert.Empty(t, stopped)

	logs, err := svc.Timer.ListLogs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestStartRejectsCompletedAndArchived(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	done := mustCreateTask(t, svc, "done")
	_, err := svc.Tasks.CompleteTask(ctx, done.ID)
	require.NoError(t, err)
	_, err = svc.Timer.Start(ctx, done.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	shelved := mustCreateTask(t, svc, "shelved")
	_, err = svc.Tasks.ArchiveTask(ctx, shelved.ID)
	require.NoError(t, err)
	_, err = svc.Timer.Start(ctx, shelved.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	_, err = svc.Timer.Start(ctx, 999)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestResumeReattaches(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "interrupted")
	_, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)

	// Simulate a restart: selection lost, log still running
	require.NoError(t, svc.Settings.ClearSelectedTask(ctx))
	clock.Advance(10 * time.Minute)

	status, err := svc.Timer.Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Resumed)
	assert.Equal(t, task.ID, status.Task.ID)
	assert.Equal(t, 10*time.Minute, status.Elapsed)
	assert.Equal(t, 15*time.Minute, status.Remaining)

	id, ok, err := svc.Settings.SelectedTaskID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, task.ID, id)
}

func TestResumeWithNothingRunning(t *testing.T) {
	svc := newTestServices(t)
	newTestClock(t)

	status, err := svc.Timer.Resume(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestReconcileOrphansCapsAbandonedLogs(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "forgotten")
	_, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)
	startedAt := timeNow()

	// Way past 25m work + 5m grace: the log was abandoned
	clock.Advance(3 * time.Hour)

	reconciled, err := svc.Timer.ReconcileOrphans(ctx)
	require.NoError(t, err)
	require.Len(t, reconciled, 1)
	assert.Equal(t, 25*time.Minute, reconciled[0].Elapsed)
	assert.Equal(t, startedAt.Add(25*time.Minute), reconciled[0].StoppedAt.UTC())

	running, err := svc.Timer.RunningLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, running)
}

func TestReconcileOrphansLeavesFreshLogs(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "active")
	_, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)

	// Inside work duration + grace: still resumable
	clock.Advance(20 * time.Minute)

	reconciled, err := svc.Timer.ReconcileOrphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, reconciled)

	running, err := svc.Timer.RunningLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, running, 1)
}

func TestNextBreak(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "cycles")

	// No sessions yet: first three breaks are short, the fourth is long
	phase, duration, err := svc.Timer.NextBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseShortBreak, phase)
	assert.Equal(t, 5*time.Minute, duration)

	for i := 0; i < 3; i++ {
		_, err = svc.Timer.Start(ctx, task.ID)
		require.NoError(t, err)
		clock.Advance(25 * time.Minute)
		_, err = svc.Timer.Stop(ctx)
		require.NoError(t, err)
	}

	phase, duration, err = svc.Timer.NextBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseLongBreak, phase)
	assert.Equal(t, 15*time.Minute, duration)
}

func TestListAndDeleteLogs(t *testing.T) {
	svc := newTestServices(t)
	clock := newTestClock(t)
	ctx := context.Background()

	task := mustCreateTask(t, svc, "history")
	_, err := svc.Timer.Start(ctx, task.ID)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	stopped, err := svc.Timer.Stop(ctx)
	require.NoError(t, err)
	require.Len(t, stopped, 1)

	logs, err := svc.Timer.ListLogs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	require.NoError(t, svc.Timer.DeleteLog(ctx, logs[0].ID))
	logs, err = svc.Timer.ListLogs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, logs)

	err = svc.Timer.DeleteLog(ctx, 999)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
