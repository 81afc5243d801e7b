package progress

// Thresholds are the business constants behind each achievement rule.
type Thresholds struct {
	FirstLesson       int
	Streak3           int
	Streak7           int
	Streak30          int
	Lessons10         int
	Lessons50         int
	PerfectScore      int
	PerfectWindow     int
	TimeMasterMinutes int
	SkillMasterAll    int
	SkillMasterSingle int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FirstLesson:       1,
		Streak3:           3,
		Streak7:           7,
		Streak30:          30,
		Lessons10:         10,
		Lessons50:         50,
		PerfectScore:      100,
		PerfectWindow:     5,
		TimeMasterMinutes: 6000,
		SkillMasterAll:    80,
		SkillMasterSingle: 90,
	}
}

type rule struct {
	id       string
	eligible func(r *Record) bool
}

// Evaluator decides which catalog achievements a record newly qualifies for.
type Evaluator struct {
	catalog *Catalog
	skills  []Skill
	rules   []rule
}

func NewEvaluator(catalog *Catalog, skills []Skill, t Thresholds) *Evaluator {
	e := &Evaluator{
		catalog: catalog,
		skills:  append([]Skill(nil), skills...),
	}

	e.rules = []rule{
		{AchievementFirstLesson, func(r *Record) bool { return len(r.LessonsCompleted) >= t.FirstLesson }},
		{AchievementStreak3, func(r *Record) bool { return r.Streak >= t.Streak3 }},
		{AchievementStreak7, func(r *Record) bool { return r.Streak >= t.Streak7 }},
		{AchievementStreak30, func(r *Record) bool { return r.Streak >= t.Streak30 }},
		{AchievementLessons10, func(r *Record) bool { return len(r.LessonsCompleted) >= t.Lessons10 }},
		{AchievementLessons50, func(r *Record) bool { return len(r.LessonsCompleted) >= t.Lessons50 }},
		{AchievementPerfectScore, func(r *Record) bool { return recentPerfect(r, t.PerfectWindow, t.PerfectScore) }},
		{AchievementSkillMaster, func(r *Record) bool { return e.allSkillsAtLeast(r, t.SkillMasterAll) }},
		{AchievementTimeMaster, func(r *Record) bool { return r.TotalTimeSpent >= t.TimeMasterMinutes }},
		{AchievementWeeklyChampion, func(r *Record) bool { return r.WeeklyGoal > 0 && r.WeeklyProgress >= r.WeeklyGoal }},
	}

	for _, s := range e.skills {
		skill := s
		e.rules = append(e.rules, rule{
			id: SkillMasterID(skill),
			eligible: func(r *Record) bool {
				entry, ok := r.Scores[skill]
				return ok && entry.Score >= t.SkillMasterSingle
			},
		})
	}
	return e
}

func DefaultEvaluator() *Evaluator {
	skills := Skills()
	return NewEvaluator(DefaultCatalog(skills), skills, DefaultThresholds())
}

func (e *Evaluator) Catalog() *Catalog { return e.catalog }

// Evaluate returns, in catalog order, the identifiers the record qualifies
// for and does not already hold. The record is not modified.
func (e *Evaluator) Evaluate(r *Record) []string {
	earned := e.catalog.Earned(r)
	out := []string{}
	for _, rl := range e.rules {
		if earned[rl.id] || !e.catalog.Contains(rl.id) {
			continue
		}
		if rl.eligible(r) {
			out = append(out, rl.id)
			earned[rl.id] = true
		}
	}
	return out
}

func (e *Evaluator) allSkillsAtLeast(r *Record, min int) bool {
	if len(r.Scores) < len(e.skills) || len(e.skills) == 0 {
		return false
	}
	for _, s := range e.skills {
		entry, ok := r.Scores[s]
		if !ok || entry.Score < min {
			return false
		}
	}
	return true
}

func recentPerfect(r *Record, window, perfect int) bool {
	start := len(r.LessonProgress) - window
	if start < 0 {
		start = 0
	}
	for _, entry := range r.LessonProgress[start:] {
		if entry.Score >= perfect {
			return true
		}
	}
	return false
}
