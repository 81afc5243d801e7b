package repositories

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/english_api/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_CreateIfAbsentIsIdempotent(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	now := time.Now().UTC()

	first, err := repo.CreateIfAbsent(progress.NewRecord("user-1", progress.Skills(), now))
	require.NoError(t, err)
	second, err := repo.CreateIfAbsent(progress.NewRecord("user-1", progress.Skills(), now))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Version)

	r := second.ToRecord()
	assert.Len(t, r.Scores, 6)
	assert.Equal(t, progress.DefaultWeeklyGoal, r.WeeklyGoal)
	assert.Empty(t, r.LessonsCompleted)
}

func TestProgressRepository_UpdateVersioned(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	now := time.Now().UTC()

	row, err := repo.CreateIfAbsent(progress.NewRecord("user-1", progress.Skills(), now))
	require.NoError(t, err)

	rc := progress.NewRecorder(progress.DefaultEvaluator(), progress.Skills())
	score := 80

	// Two writers read the same version.
	readA := row.ToRecord()
	readB := row.ToRecord()

	outA, err := rc.Apply(readA, progress.Completion{LessonID: "l1", Score: &score, TimeSpent: 10, Skill: "vocab"}, now)
	require.NoError(t, err)
	ok, err := repo.UpdateVersioned(outA.Record)
	require.NoError(t, err)
	assert.True(t, ok)

	outB, err := rc.Apply(readB, progress.Completion{LessonID: "l2", Score: &score, TimeSpent: 15}, now)
	require.NoError(t, err)
	ok, err = repo.UpdateVersioned(outB.Record)
	require.NoError(t, err)
	assert.False(t, ok, "stale version must not overwrite")

	stored, err := repo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)

	// Retry from a fresh read keeps both contributions.
	outB, err = rc.Apply(stored.ToRecord(), progress.Completion{LessonID: "l2", Score: &score, TimeSpent: 15}, now)
	require.NoError(t, err)
	ok, err = repo.UpdateVersioned(outB.Record)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err = repo.GetByUserID("user-1")
	require.NoError(t, err)
	r := stored.ToRecord()
	assert.Equal(t, 3, stored.Version)
	assert.Equal(t, 25, r.TotalTimeSpent)
	assert.Equal(t, []string{"l1", "l2"}, r.LessonsCompleted)
	assert.Len(t, r.LessonProgress, 2)
	assert.Equal(t, 80, r.Scores[progress.SkillVocab].Score)
	assert.Equal(t, []string{progress.AchievementFirstLesson}, r.Achievements)
	require.NotNil(t, r.LastActivityAt)
}

func TestProgressRepository_ListAndCount(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	now := time.Now().UTC()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.CreateIfAbsent(progress.NewRecord(id, progress.Skills(), now))
		require.NoError(t, err)
	}

	rows, err := repo.ListByUserIDs([]string{"a", "c", "missing"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	empty, err := repo.ListByUserIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	row, err := repo.GetByUserID("b")
	require.NoError(t, err)
	r := row.ToRecord()
	r.LastActivityAt = &now
	ok, err := repo.UpdateVersioned(r)
	require.NoError(t, err)
	require.True(t, ok)

	active, err := repo.CountActiveSince(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}
