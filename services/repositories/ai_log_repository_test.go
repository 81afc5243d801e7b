package repositories

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAILogRepository_Prune(t *testing.T) {
	repo := NewAILogRepository(newTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(&model.AIGenerationLog{UserID: "u", Purpose: "lesson", CreatedAt: now.Add(-100 * 24 * time.Hour)}))
	require.NoError(t, repo.Create(&model.AIGenerationLog{UserID: "u", Purpose: "questions", Success: true, CreatedAt: now}))

	removed, err := repo.DeleteOlderThan(now.Add(-90 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	logs, err := repo.ListByUser("u", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "questions", logs[0].Purpose)

	count, err := repo.CountSince(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
