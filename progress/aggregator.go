package progress

import (
	"math"
	"time"
)

const (
	WeeklyBuckets      = 7
	DefaultRecentLimit = 5
)

// Aggregator derives read-only dashboard figures from a record.
type Aggregator struct {
	skills      []Skill
	recentLimit int
}

func NewAggregator(skills []Skill) *Aggregator {
	return &Aggregator{
		skills:      append([]Skill(nil), skills...),
		recentLimit: DefaultRecentLimit,
	}
}

// Dashboard is the full set of derived figures for one record at one instant.
type Dashboard struct {
	TotalLessonsCompleted int                `json:"totalLessonsCompleted"`
	TotalTimeSpent        int                `json:"totalTimeSpent"`
	AverageScore          int                `json:"averageScore"`
	Streak                int                `json:"streak"`
	WeeklyProgress        int                `json:"weeklyProgress"`
	WeeklyGoal            int                `json:"weeklyGoal"`
	WeeklyCompletionRate  int                `json:"weeklyCompletionRate"`
	SkillScores           map[Skill]int      `json:"skillScores"`
	RecentActivity        []LessonEntry      `json:"recentActivity"`
	Achievements          []string           `json:"achievements"`
	WeeklyData            [WeeklyBuckets]int `json:"weeklyData"`
	MonthlyProgress       int                `json:"monthlyProgress"`
	LevelProgress         int                `json:"levelProgress"`
}

func (a *Aggregator) Dashboard(r *Record, now time.Time) Dashboard {
	return Dashboard{
		TotalLessonsCompleted: len(r.LessonsCompleted),
		TotalTimeSpent:        r.TotalTimeSpent,
		AverageScore:          a.AverageScore(r),
		Streak:                r.Streak,
		WeeklyProgress:        r.WeeklyProgress,
		WeeklyGoal:            r.WeeklyGoal,
		WeeklyCompletionRate:  a.WeeklyCompletionRate(r),
		SkillScores:           a.SkillScores(r),
		RecentActivity:        a.RecentActivity(r),
		Achievements:          append([]string{}, r.Achievements...),
		WeeklyData:            a.WeeklyActivity(r, now),
		MonthlyProgress:       a.MonthlyCompleted(r, now),
		LevelProgress:         a.LevelProgress(r),
	}
}

// AverageScore is the rounded mean over every skill, counting missing skills as 0.
func (a *Aggregator) AverageScore(r *Record) int {
	if len(a.skills) == 0 {
		return 0
	}
	sum := 0
	for _, s := range a.skills {
		sum += r.Scores[s].Score
	}
	return int(math.Round(float64(sum) / float64(len(a.skills))))
}

func (a *Aggregator) SkillScores(r *Record) map[Skill]int {
	out := make(map[Skill]int, len(a.skills))
	for _, s := range a.skills {
		out[s] = r.Scores[s].Score
	}
	return out
}

// WeeklyActivity counts entries per calendar day over the last seven days;
// index 6 is today.
func (a *Aggregator) WeeklyActivity(r *Record, now time.Time) [WeeklyBuckets]int {
	var buckets [WeeklyBuckets]int
	today := startOfDay(now)
	for _, e := range r.LessonProgress {
		if e.CompletedAt.IsZero() {
			continue
		}
		daysAgo := daysBetween(startOfDay(e.CompletedAt.In(now.Location())), today)
		if daysAgo < 0 || daysAgo >= WeeklyBuckets {
			continue
		}
		buckets[WeeklyBuckets-1-daysAgo]++
	}
	return buckets
}

func (a *Aggregator) MonthlyCompleted(r *Record, now time.Time) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	n := 0
	for _, e := range r.LessonProgress {
		if !e.CompletedAt.IsZero() && !e.CompletedAt.Before(monthStart) {
			n++
		}
	}
	return n
}

// LevelProgress estimates progress toward the next level, tiered by average score.
func (a *Aggregator) LevelProgress(r *Record) int {
	completed := 0
	for _, e := range r.LessonProgress {
		if e.Completed {
			completed++
		}
	}

	avg := a.AverageScore(r)
	target := 20.0
	switch {
	case avg >= 90:
		target = 100
	case avg >= 70:
		target = 50
	}
	return int(math.Round(math.Min(100, float64(completed)/target*100)))
}

func (a *Aggregator) WeeklyCompletionRate(r *Record) int {
	if r.WeeklyGoal <= 0 {
		return 0
	}
	return int(math.Round(float64(r.WeeklyProgress) / float64(r.WeeklyGoal) * 100))
}

// RecentActivity returns the latest entries, newest first.
func (a *Aggregator) RecentActivity(r *Record) []LessonEntry {
	n := len(r.LessonProgress)
	limit := a.recentLimit
	if n < limit {
		limit = n
	}
	out := make([]LessonEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.LessonProgress[i])
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at local midnight.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
