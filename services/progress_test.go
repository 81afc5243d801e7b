package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/progress"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func requireStatus(t *testing.T, err error, status int) *shared.AppError {
	t.Helper()
	var appErr *shared.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode)
	return appErr
}

// conflictingStore loses the first failures conditional writes.
type conflictingStore struct {
	ProgressStore
	failures int
	calls    int
}

func (s *conflictingStore) UpdateVersioned(r *progress.Record) (bool, error) {
	s.calls++
	if s.calls <= s.failures {
		return false, nil
	}
	return s.ProgressStore.UpdateVersioned(r)
}

func TestRecordCompletion_FirstLesson(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "grammar", true)
	svc := newTestProgressService(ds, nil)

	resp, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{
		LessonID:  lesson.ID,
		Score:     intPtr(80),
		TimeSpent: 12,
		Answers:   []dto.QuestionAnswerRequest{{QuestionID: "q1", Answer: "walked", IsCorrect: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalLessonsCompleted)
	assert.Equal(t, 1, resp.Streak)
	assert.Equal(t, 12, resp.TotalTimeSpent)
	assert.Equal(t, 1, resp.WeeklyProgress)
	assert.Equal(t, []string{progress.AchievementFirstLesson}, resp.NewAchievements)
	assert.Len(t, resp.Scores, 6)
	assert.Equal(t, 80, resp.Scores[progress.SkillGrammar].Score, "skill falls back to the lesson's skill")
	assert.Equal(t, 1, resp.Entry.Stats.TotalCorrectAnswers)

	stored, err := svc.GetProgress(student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{lesson.ID}, stored.LessonsCompleted)
	assert.Equal(t, 2, stored.Version)
}

func TestRecordCompletion_RepeatDoesNotReaward(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "vocab", true)
	svc := newTestProgressService(ds, nil)

	req := dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(70), TimeSpent: 5}
	_, err := svc.RecordCompletion(student.ID, req)
	require.NoError(t, err)
	resp, err := svc.RecordCompletion(student.ID, req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalLessonsCompleted)
	assert.Empty(t, resp.NewAchievements)
	assert.NotNil(t, resp.NewAchievements)
	assert.Equal(t, 10, resp.TotalTimeSpent)
}

func TestRecordCompletion_LessonMustBePublished(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	draft := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "vocab", false)
	svc := newTestProgressService(ds, nil)

	_, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: draft.ID, Score: intPtr(70), TimeSpent: 5})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: "missing", Score: intPtr(70), TimeSpent: 5})
	requireStatus(t, err, http.StatusNotFound)
}

func TestRecordCompletion_InvalidInputLeavesRecordUntouched(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "vocab", true)
	svc := newTestProgressService(ds, nil)

	_, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(101), TimeSpent: 5})
	appErr := requireStatus(t, err, http.StatusBadRequest)
	fields, ok := appErr.Data.([]dto.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "score", fields[0].Field)

	stored, err := svc.GetProgress(student.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LessonProgress)
	assert.Equal(t, 1, stored.Version)
}

func TestRecordCompletion_RetriesVersionConflicts(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "reading", true)

	svc := newTestProgressService(ds, nil)
	store := &conflictingStore{ProgressStore: ds.Progress(), failures: 2}
	svc.records = store

	resp, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(60), TimeSpent: 4})
	require.NoError(t, err)
	assert.Equal(t, 3, store.calls)
	assert.Len(t, resp.NewAchievements, 1)

	stored, err := svc.GetProgress(student.ID)
	require.NoError(t, err)
	assert.Len(t, stored.LessonProgress, 1, "retries must not duplicate the entry")
}

func TestRecordCompletion_GivesUpAfterThreeConflicts(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "reading", true)

	svc := newTestProgressService(ds, nil)
	store := &conflictingStore{ProgressStore: ds.Progress(), failures: 10}
	svc.records = store

	_, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(60), TimeSpent: 4})
	requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, defaultWriteAttempts, store.calls)
}

func TestGetStats_CachesUntilNextWrite(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "writing", true)
	cache := newFakeCache()
	svc := newTestProgressService(ds, cache)

	stats, err := svc.GetStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLessonsCompleted)
	assert.True(t, cache.has(statsCacheKey(student.ID)))

	_, err = svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(90), TimeSpent: 20})
	require.NoError(t, err)
	assert.False(t, cache.has(statsCacheKey(student.ID)))

	stats, err = svc.GetStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLessonsCompleted)
	assert.Equal(t, 20, stats.TotalTimeSpent)
	assert.Equal(t, 1, stats.WeeklyData[6])
}

func TestGetStats_CacheExpiresAtEndOfDay(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	cache := newFakeCache()
	svc := newTestProgressService(ds, cache)
	key := statsCacheKey(student.ID)

	_, err := svc.GetStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultStatsTTL, cache.ttls[key])

	require.NoError(t, cache.Delete(context.Background(), key))
	svc.now = func() time.Time { return time.Date(2026, time.October, 31, 23, 58, 0, 0, time.UTC) }

	_, err = svc.GetStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cache.ttls[key])
}

func TestUpdateWeeklyGoal(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	svc := newTestProgressService(ds, nil)

	_, err := svc.UpdateWeeklyGoal(student.ID, 21)
	requireStatus(t, err, http.StatusBadRequest)

	resp, err := svc.UpdateWeeklyGoal(student.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.WeeklyGoal)
	assert.Equal(t, 0, resp.WeeklyCompletionRate)
}

func TestTouchLogin_ResetsWeeklyProgressAfterAWeek(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	teacher := seedUser(t, ds, "lan", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "speaking", true)
	svc := newTestProgressService(ds, nil)

	_, err := svc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(50), TimeSpent: 3})
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow.Add(3 * 24 * time.Hour) }
	require.NoError(t, svc.TouchLogin(student.ID))
	stored, err := svc.GetProgress(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.WeeklyProgress)

	svc.now = func() time.Time { return testNow.Add(11 * 24 * time.Hour) }
	require.NoError(t, svc.TouchLogin(student.ID))
	stored, err = svc.GetProgress(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WeeklyProgress)
}

func TestGetAchievements_Summary(t *testing.T) {
	ds := newTestDatabase(t)
	student := seedUser(t, ds, "minh", shared.RoleStudent, shared.TeacherStatusNone)
	svc := newTestProgressService(ds, nil)

	resp, err := svc.GetAchievements(student.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Achievements)
	assert.Equal(t, 10, resp.Summary.TotalAvailable)
	assert.Len(t, resp.Catalog, 16)
	for _, a := range resp.Catalog {
		assert.False(t, a.Earned, a.ID)
	}
}

func TestRecordsFor_FillsMissingUsers(t *testing.T) {
	ds := newTestDatabase(t)
	a := seedUser(t, ds, "a", shared.RoleStudent, shared.TeacherStatusNone)
	svc := newTestProgressService(ds, nil)
	_, err := svc.EnsureProgress(a.ID)
	require.NoError(t, err)

	records, err := svc.RecordsFor([]string{a.ID, "never-seen"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[a.ID].Version)
	assert.Len(t, records["never-seen"].Scores, 6)
}
