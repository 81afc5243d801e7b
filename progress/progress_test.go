package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func newTestRecord() *Record {
	return NewRecord("user-1", Skills(), testNow.Add(-time.Hour))
}

func withScores(r *Record, scores map[Skill]int) *Record {
	for s, v := range scores {
		r.Scores[s] = SkillScore{Score: v, LastUpdated: testNow}
	}
	return r
}

func allScores(v int) map[Skill]int {
	out := map[Skill]int{}
	for _, s := range Skills() {
		out[s] = v
	}
	return out
}

func TestNewRecord_HasSixZeroScores(t *testing.T) {
	r := newTestRecord()

	assert.Len(t, r.Scores, 6)
	for _, s := range Skills() {
		assert.Equal(t, 0, r.Scores[s].Score)
	}
	assert.Equal(t, DefaultWeeklyGoal, r.WeeklyGoal)
	assert.Empty(t, r.LessonsCompleted)
	assert.Empty(t, r.Achievements)
}

func TestParseSkill(t *testing.T) {
	s, ok := ParseSkill(" Grammar ")
	assert.True(t, ok)
	assert.Equal(t, SkillGrammar, s)

	_, ok = ParseSkill("math")
	assert.False(t, ok)
}

func TestSetWeeklyGoal(t *testing.T) {
	tests := []struct {
		goal    int
		wantErr bool
	}{
		{goal: 0, wantErr: true},
		{goal: 21, wantErr: true},
		{goal: -3, wantErr: true},
		{goal: 1, wantErr: false},
		{goal: 20, wantErr: false},
		{goal: 7, wantErr: false},
	}

	for _, tt := range tests {
		r := newTestRecord()
		err := r.SetWeeklyGoal(tt.goal)
		if tt.wantErr {
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "goal %d", tt.goal)
			assert.Equal(t, DefaultWeeklyGoal, r.WeeklyGoal)
		} else {
			assert.NoError(t, err, "goal %d", tt.goal)
			assert.Equal(t, tt.goal, r.WeeklyGoal)
		}
	}
}

func TestTouchLogin_ResetsWeeklyProgressAfterAWeek(t *testing.T) {
	r := newTestRecord()
	r.WeeklyProgress = 4
	r.LastLogin = testNow.Add(-6 * 24 * time.Hour)

	r.TouchLogin(testNow)
	assert.Equal(t, 4, r.WeeklyProgress)
	assert.Equal(t, testNow, r.LastLogin)

	r.TouchLogin(testNow.Add(8 * 24 * time.Hour))
	assert.Equal(t, 0, r.WeeklyProgress)
}

func TestNormalizeScores_KeepsExactlySixEntries(t *testing.T) {
	r := newTestRecord()
	delete(r.Scores, SkillWriting)
	r.Scores[Skill("math")] = SkillScore{Score: 50}
	r.Scores[SkillVocab] = SkillScore{Score: 140}

	r.NormalizeScores(Skills(), testNow)

	assert.Len(t, r.Scores, 6)
	assert.Equal(t, 100, r.Scores[SkillVocab].Score)
	assert.Equal(t, 0, r.Scores[SkillWriting].Score)
	_, ok := r.Scores[Skill("math")]
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	r := newTestRecord()
	r.LessonProgress = append(r.LessonProgress, LessonEntry{LessonID: "l1"})
	c := r.Clone()

	c.Scores[SkillVocab] = SkillScore{Score: 99}
	c.LessonProgress[0].LessonID = "changed"
	c.Achievements = append(c.Achievements, "x")

	assert.Equal(t, 0, r.Scores[SkillVocab].Score)
	assert.Equal(t, "l1", r.LessonProgress[0].LessonID)
	assert.Empty(t, r.Achievements)
}
