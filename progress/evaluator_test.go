package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_EmptyRecordYieldsNothing(t *testing.T) {
	e := DefaultEvaluator()
	r := NewRecord("u", Skills(), testNow)
	r.WeeklyGoal = DefaultWeeklyGoal

	assert.Empty(t, e.Evaluate(r))

	bare := &Record{UserID: "u"}
	assert.Empty(t, e.Evaluate(bare))
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
		want   string
		absent bool
	}{
		{name: "first lesson", mutate: func(r *Record) { r.LessonsCompleted = []string{"a"} }, want: AchievementFirstLesson},
		{name: "streak 2", mutate: func(r *Record) { r.Streak = 2 }, want: AchievementStreak3, absent: true},
		{name: "streak 3", mutate: func(r *Record) { r.Streak = 3 }, want: AchievementStreak3},
		{name: "streak 6", mutate: func(r *Record) { r.Streak = 6 }, want: AchievementStreak7, absent: true},
		{name: "streak 7", mutate: func(r *Record) { r.Streak = 7 }, want: AchievementStreak7},
		{name: "streak 30", mutate: func(r *Record) { r.Streak = 30 }, want: AchievementStreak30},
		{name: "lessons 10", mutate: func(r *Record) { r.LessonsCompleted = lessonIDs(10) }, want: AchievementLessons10},
		{name: "lessons 49", mutate: func(r *Record) { r.LessonsCompleted = lessonIDs(49) }, want: AchievementLessons50, absent: true},
		{name: "lessons 50", mutate: func(r *Record) { r.LessonsCompleted = lessonIDs(50) }, want: AchievementLessons50},
		{name: "time 5999", mutate: func(r *Record) { r.TotalTimeSpent = 5999 }, want: AchievementTimeMaster, absent: true},
		{name: "time 6000", mutate: func(r *Record) { r.TotalTimeSpent = 6000 }, want: AchievementTimeMaster},
		{name: "weekly goal reached", mutate: func(r *Record) { r.WeeklyGoal = 3; r.WeeklyProgress = 3 }, want: AchievementWeeklyChampion},
		{name: "weekly goal short", mutate: func(r *Record) { r.WeeklyGoal = 3; r.WeeklyProgress = 2 }, want: AchievementWeeklyChampion, absent: true},
		{name: "vocab 90", mutate: func(r *Record) { withScores(r, map[Skill]int{SkillVocab: 90}) }, want: "vocab_master"},
		{name: "vocab 89", mutate: func(r *Record) { withScores(r, map[Skill]int{SkillVocab: 89}) }, want: "vocab_master", absent: true},
	}

	e := DefaultEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecord()
			tt.mutate(r)
			got := e.Evaluate(r)
			if tt.absent {
				assert.NotContains(t, got, tt.want)
			} else {
				assert.Contains(t, got, tt.want)
			}
		})
	}
}

func TestEvaluate_SkillMaster(t *testing.T) {
	e := DefaultEvaluator()

	r := withScores(newTestRecord(), allScores(80))
	assert.Contains(t, e.Evaluate(r), AchievementSkillMaster)

	lowered := withScores(newTestRecord(), allScores(80))
	lowered.Scores[SkillListening] = SkillScore{Score: 79}
	assert.NotContains(t, e.Evaluate(lowered), AchievementSkillMaster)

	missing := withScores(newTestRecord(), allScores(95))
	delete(missing.Scores, SkillSpeaking)
	assert.NotContains(t, e.Evaluate(missing), AchievementSkillMaster)
}

func TestEvaluate_PerfectScoreLooksAtLastFiveEntries(t *testing.T) {
	e := DefaultEvaluator()

	r := newTestRecord()
	r.LessonProgress = []LessonEntry{{Score: 100}, {Score: 70}, {Score: 70}, {Score: 70}, {Score: 70}, {Score: 70}}
	assert.NotContains(t, e.Evaluate(r), AchievementPerfectScore)

	r.LessonProgress = append(r.LessonProgress, LessonEntry{Score: 100})
	assert.Contains(t, e.Evaluate(r), AchievementPerfectScore)
}

func TestEvaluate_NeverReturnsHeldOrAliasedAchievements(t *testing.T) {
	e := DefaultEvaluator()

	r := newTestRecord()
	r.Streak = 30
	r.LessonsCompleted = []string{"a"}
	r.Achievements = []string{AchievementFirstLesson, "week_streak", "month_streak"}

	got := e.Evaluate(r)
	assert.Equal(t, []string{AchievementStreak3}, got)
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	e := DefaultEvaluator()
	r := withScores(newTestRecord(), allScores(95))
	r.Streak = 40
	r.TotalTimeSpent = 9000
	before := r.Clone()

	_ = e.Evaluate(r)

	assert.Equal(t, before, r)
}

func TestEvaluate_ResultIsSubsetOfCatalog(t *testing.T) {
	e := DefaultEvaluator()
	catalog := e.Catalog()

	for i := 0; i < 60; i += 7 {
		r := withScores(newTestRecord(), allScores(i+40))
		r.Streak = i
		r.LessonsCompleted = lessonIDs(i)
		r.TotalTimeSpent = i * 120
		r.WeeklyProgress = i % 6
		if i%2 == 0 {
			r.Achievements = []string{AchievementStreak3, AchievementFirstLesson}
		}

		held := catalog.Earned(r)
		for _, id := range e.Evaluate(r) {
			assert.True(t, catalog.Contains(id), id)
			assert.False(t, held[id], "re-awarded %s", id)
		}
	}
}

func TestSummarize(t *testing.T) {
	catalog := DefaultCatalog(Skills())
	r := newTestRecord()
	r.Achievements = []string{AchievementFirstLesson, "week_streak", AchievementStreak3, "grammar_master"}

	s := catalog.Summarize(r)

	assert.Equal(t, 10, s.TotalAvailable)
	assert.Equal(t, 3, s.TotalEarned)
	assert.Equal(t, CategorySummary{Earned: 2, Total: 3, Percentage: 67}, s.Categories[CategoryStreak])
	assert.Equal(t, CategorySummary{Earned: 1, Total: 3, Percentage: 33}, s.Categories[CategoryLessons])
	assert.Equal(t, CategorySummary{Earned: 0, Total: 2, Percentage: 0}, s.Categories[CategoryScore])
	assert.Equal(t, 1, s.Categories[CategoryTime].Total)
	assert.Equal(t, 1, s.Categories[CategorySpecial].Total)
	assert.Equal(t, []string{"grammar_master"}, s.SkillBadges)
}

func lessonIDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("lesson-%d", i)
	}
	return out
}

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}
