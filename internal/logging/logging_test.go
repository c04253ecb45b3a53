package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitNotVerbose(t *testing.T) {
	t.Setenv("POMO_DEBUG", "")

	err := Init(false)
	require.NoError(t, err)

	// Logging must not panic on the no-op logger
	L().Debug("ignored")
	Sync()
}

func TestInitVerbose(t *testing.T) {
	err := Init(true)
	require.NoError(t, err)
	assert.NotNil(t, L())

	// Restore the no-op logger so other tests stay quiet
	SetLogger(zap.NewNop())
}

func TestInitDebugEnv(t *testing.T) {
	t.Setenv("POMO_DEBUG", "1")

	err := Init(false)
	require.NoError(t, err)
	assert.NotNil(t, L())

	SetLogger(zap.NewNop())
}

func TestSetLogger(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	L().Debug("timer started", zap.Int64("task_id", 3))

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "timer started", entries[0].Message)
}
