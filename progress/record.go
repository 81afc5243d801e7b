package progress

import "time"

const (
	DefaultWeeklyGoal = 5
	MinWeeklyGoal     = 1
	MaxWeeklyGoal     = 20

	MinScore = 0
	MaxScore = 100

	// weeklyWindow is how long a login gap may be before weekly progress resets.
	weeklyWindow = 7 * 24 * time.Hour
)

type SkillScore struct {
	Score       int       `json:"score"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type QuestionAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
}

type AnswerStats struct {
	TotalQuestionsAnswered int              `json:"totalQuestionsAnswered"`
	TotalCorrectAnswers    int              `json:"totalCorrectAnswers"`
	TotalIncorrectAnswers  int              `json:"totalIncorrectAnswers"`
	QuestionAnswers        []QuestionAnswer `json:"questionAnswers"`
}

// LessonEntry is one recorded attempt at a lesson.
type LessonEntry struct {
	LessonID    string      `json:"lessonId"`
	Score       int         `json:"score"`
	TimeSpent   int         `json:"timeSpent"`
	Completed   bool        `json:"completed"`
	CompletedAt time.Time   `json:"completedAt"`
	Attempts    int         `json:"attempts"`
	Stats       AnswerStats `json:"stats"`
}

// Record is the per-user progress document.
type Record struct {
	UserID           string
	LessonsCompleted []string
	Scores           map[Skill]SkillScore
	LessonProgress   []LessonEntry
	Achievements     []string
	Streak           int
	TotalTimeSpent   int
	WeeklyGoal       int
	WeeklyProgress   int
	LastLogin        time.Time
	LastActivityAt   *time.Time
	Version          int
}

// NewRecord returns an empty record with a zero score for every skill.
func NewRecord(userID string, skills []Skill, now time.Time) *Record {
	r := &Record{
		UserID:           userID,
		LessonsCompleted: []string{},
		Scores:           make(map[Skill]SkillScore, len(skills)),
		LessonProgress:   []LessonEntry{},
		Achievements:     []string{},
		WeeklyGoal:       DefaultWeeklyGoal,
		LastLogin:        now,
	}
	for _, s := range skills {
		r.Scores[s] = SkillScore{Score: 0, LastUpdated: now}
	}
	return r
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (r *Record) Clone() *Record {
	out := *r

	out.LessonsCompleted = cloneStrings(r.LessonsCompleted)
	out.Achievements = cloneStrings(r.Achievements)

	if r.Scores != nil {
		out.Scores = make(map[Skill]SkillScore, len(r.Scores))
		for k, v := range r.Scores {
			out.Scores[k] = v
		}
	}

	if r.LessonProgress != nil {
		out.LessonProgress = make([]LessonEntry, len(r.LessonProgress))
		for i, e := range r.LessonProgress {
			if e.Stats.QuestionAnswers != nil {
				e.Stats.QuestionAnswers = append(make([]QuestionAnswer, 0, len(e.Stats.QuestionAnswers)), e.Stats.QuestionAnswers...)
			}
			out.LessonProgress[i] = e
		}
	}

	if r.LastActivityAt != nil {
		t := *r.LastActivityAt
		out.LastActivityAt = &t
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// NormalizeScores makes Scores hold exactly one entry per skill: missing
// skills are added at zero, unknown keys are dropped and values are bounded.
func (r *Record) NormalizeScores(skills []Skill, now time.Time) {
	normalized := make(map[Skill]SkillScore, len(skills))
	for _, s := range skills {
		entry, ok := r.Scores[s]
		if !ok {
			entry = SkillScore{Score: 0, LastUpdated: now}
		}
		entry.Score = clampScore(entry.Score)
		normalized[s] = entry
	}
	r.Scores = normalized
}

func (r *Record) HasLesson(lessonID string) bool {
	for _, id := range r.LessonsCompleted {
		if id == lessonID {
			return true
		}
	}
	return false
}

// SetWeeklyGoal enforces the [1,20] range.
func (r *Record) SetWeeklyGoal(goal int) error {
	if goal < MinWeeklyGoal || goal > MaxWeeklyGoal {
		return &ValidationError{Field: "weeklyGoal", Message: "weeklyGoal must be between 1 and 20"}
	}
	r.WeeklyGoal = goal
	return nil
}

// TouchLogin stamps the login and clears weekly progress when the previous
// login is more than a week old.
func (r *Record) TouchLogin(now time.Time) {
	if !r.LastLogin.IsZero() && now.Sub(r.LastLogin) > weeklyWindow {
		r.WeeklyProgress = 0
	}
	r.LastLogin = now
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
