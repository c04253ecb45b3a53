package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pomotrack/internal/config"
	"pomotrack/internal/domain"
	"pomotrack/internal/repository/sqlite"
)

// newTestServices builds a container over an in-memory database
func newTestServices(t *testing.T) *ServiceContainer {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return NewServiceContainer(repo, config.NewConfig())
}

// testClock pins timeNow to a controllable instant
type testClock struct {
	now time.Time
}

func newTestClock(t *testing.T) *testClock {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	orig := timeNow
	timeNow = func() time.Time { return clock.now }
	t.Cleanup(func() { timeNow = orig })
	return clock
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func mustCreateTask(t *testing.T, svc *ServiceContainer, name string) *domain.Task {
	t.Helper()

	task, err := svc.Tasks.CreateTask(context.Background(), name, "")
	require.NoError(t, err)
	return task
}

func mustCreateTag(t *testing.T, svc *ServiceContainer, name string) *domain.Tag {
	t.Helper()

	tag, err := svc.Tags.CreateTag(context.Background(), name, "")
	require.NoError(t, err)
	return tag
}
