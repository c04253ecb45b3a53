package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetSetting(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSetting(ctx, "selected_task_id", "7"))

	setting, err := repo.GetSetting(ctx, "selected_task_id")
	require.NoError(t, err)
	assert.Equal(t, "7", setting.Value)
}

func TestSetSettingUpserts(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSetting(ctx, "show_archived", "false"))
	require.NoError(t, repo.SetSetting(ctx, "show_archived", "true"))

	setting, err := repo.GetSetting(ctx, "show_archived")
	require.NoError(t, err)
	assert.Equal(t, "true", setting.Value)

	settings, err := repo.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestGetSettingNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetSetting(context.Background(), "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListSettingsOrdered(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSetting(ctx, "b_key", "2"))
	require.NoError(t, repo.SetSetting(ctx, "a_key", "1"))

	settings, err := repo.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "a_key", settings[0].Key)
	assert.Equal(t, "b_key", settings[1].Key)
}

func TestDeleteSetting(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSetting(ctx, "tag_filter", "3"))
	require.NoError(t, repo.DeleteSetting(ctx, "tag_filter"))

	err := repo.DeleteSetting(ctx, "tag_filter")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
