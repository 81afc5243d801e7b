package progress

import (
	"strings"
	"time"
)

// Completion is one submitted lesson attempt.
type Completion struct {
	LessonID  string
	Score     *int
	TimeSpent int
	Skill     string
	Attempts  int
	Answers   []QuestionAnswer
}

// Outcome is the result of applying a Completion.
type Outcome struct {
	Record          *Record
	Entry           LessonEntry
	NewAchievements []string
}

// Recorder is the single write path for lesson completions.
type Recorder struct {
	evaluator *Evaluator
	skills    []Skill
}

func NewRecorder(evaluator *Evaluator, skills []Skill) *Recorder {
	return &Recorder{
		evaluator: evaluator,
		skills:    append([]Skill(nil), skills...),
	}
}

// Validate checks a completion without touching any record.
func (rc *Recorder) Validate(in Completion) error {
	if strings.TrimSpace(in.LessonID) == "" {
		return &ValidationError{Field: "lessonId", Message: "lessonId is required"}
	}
	if in.Score == nil {
		return &ValidationError{Field: "score", Message: "score is required"}
	}
	if *in.Score < MinScore || *in.Score > MaxScore {
		return &ValidationError{Field: "score", Message: "score must be between 0 and 100"}
	}
	if in.TimeSpent <= 0 {
		return &ValidationError{Field: "timeSpent", Message: "timeSpent must be a positive number of minutes"}
	}
	if in.Skill != "" {
		if _, ok := ParseSkill(in.Skill); !ok {
			return &ValidationError{Field: "skill", Message: "unknown skill " + in.Skill}
		}
	}
	if in.Attempts < 0 {
		return &ValidationError{Field: "attempts", Message: "attempts cannot be negative"}
	}
	return nil
}

// Apply validates the completion and returns an updated copy of current.
// current is never modified; on error nothing has changed.
func (rc *Recorder) Apply(current *Record, in Completion, now time.Time) (*Outcome, error) {
	if err := rc.Validate(in); err != nil {
		return nil, err
	}

	next := current.Clone()
	next.NormalizeScores(rc.skills, now)

	lessonID := strings.TrimSpace(in.LessonID)
	attempts := in.Attempts
	if attempts == 0 {
		attempts = 1
	}

	entry := LessonEntry{
		LessonID:    lessonID,
		Score:       *in.Score,
		TimeSpent:   in.TimeSpent,
		Completed:   true,
		CompletedAt: now,
		Attempts:    attempts,
		Stats:       statsFor(in.Answers),
	}
	next.LessonProgress = append(next.LessonProgress, entry)

	if !next.HasLesson(lessonID) {
		next.LessonsCompleted = append(next.LessonsCompleted, lessonID)
	}

	if in.Skill != "" {
		skill, _ := ParseSkill(in.Skill)
		next.Scores[skill] = SkillScore{Score: *in.Score, LastUpdated: now}
	}

	next.TotalTimeSpent += in.TimeSpent
	advanceStreak(next, now)
	next.WeeklyProgress++

	awarded := rc.evaluator.Evaluate(next)
	next.Achievements = append(next.Achievements, awarded...)

	return &Outcome{
		Record:          next,
		Entry:           entry,
		NewAchievements: awarded,
	}, nil
}

// advanceStreak extends the streak on consecutive days and restarts it after a gap.
func advanceStreak(r *Record, now time.Time) {
	defer func() {
		t := now
		r.LastActivityAt = &t
	}()

	if r.LastActivityAt == nil {
		r.Streak = 1
		return
	}

	diff := daysBetween(startOfDay(r.LastActivityAt.In(now.Location())), startOfDay(now))
	switch {
	case diff <= 0:
		if r.Streak == 0 {
			r.Streak = 1
		}
	case diff == 1:
		r.Streak++
	default:
		r.Streak = 1
	}
}

func statsFor(answers []QuestionAnswer) AnswerStats {
	stats := AnswerStats{
		TotalQuestionsAnswered: len(answers),
		QuestionAnswers:        append([]QuestionAnswer{}, answers...),
	}
	for _, a := range answers {
		if a.IsCorrect {
			stats.TotalCorrectAnswers++
		} else {
			stats.TotalIncorrectAnswers++
		}
	}
	return stats
}
