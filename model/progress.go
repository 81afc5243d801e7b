package model

import (
	"time"

	"github.com/lac-hong-legacy/english_api/progress"
	"gorm.io/datatypes"
)

// UserProgress is the stored form of a progress.Record. Version guards
// every update: writers match on the version they read and bump it.
type UserProgress struct {
	ID               string                                                     `json:"id" gorm:"primaryKey"`
	UserID           string                                                     `json:"user_id" gorm:"not null;uniqueIndex"`
	LessonsCompleted datatypes.JSONSlice[string]                                `json:"lessons_completed"`
	Scores           datatypes.JSONType[map[progress.Skill]progress.SkillScore] `json:"scores"`
	LessonProgress   datatypes.JSONSlice[progress.LessonEntry]                  `json:"lesson_progress"`
	Achievements     datatypes.JSONSlice[string]                                `json:"achievements"`
	Streak           int                                                        `json:"streak" gorm:"not null;default:0"`
	TotalTimeSpent   int                                                        `json:"total_time_spent" gorm:"not null;default:0"` // in minutes
	WeeklyGoal       int                                                        `json:"weekly_goal" gorm:"not null;default:5"`
	WeeklyProgress   int                                                        `json:"weekly_progress" gorm:"not null;default:0"`
	LastLogin        time.Time                                                  `json:"last_login"`
	LastActivityAt   *time.Time                                                 `json:"last_activity_at"`
	Version          int                                                        `json:"version" gorm:"not null;default:1"`
	CreatedAt        time.Time                                                  `json:"created_at"`
	UpdatedAt        time.Time                                                  `json:"updated_at"`
}

func (p *UserProgress) ToRecord() *progress.Record {
	r := &progress.Record{
		UserID:           p.UserID,
		LessonsCompleted: append([]string{}, p.LessonsCompleted...),
		Scores:           map[progress.Skill]progress.SkillScore{},
		LessonProgress:   append([]progress.LessonEntry{}, p.LessonProgress...),
		Achievements:     append([]string{}, p.Achievements...),
		Streak:           p.Streak,
		TotalTimeSpent:   p.TotalTimeSpent,
		WeeklyGoal:       p.WeeklyGoal,
		WeeklyProgress:   p.WeeklyProgress,
		LastLogin:        p.LastLogin,
		LastActivityAt:   p.LastActivityAt,
		Version:          p.Version,
	}
	for k, v := range p.Scores.Data() {
		r.Scores[k] = v
	}
	return r
}

// NewUserProgress builds a row for a fresh record.
func NewUserProgress(id string, r *progress.Record) *UserProgress {
	p := &UserProgress{ID: id, UserID: r.UserID, Version: 1}
	p.apply(r)
	return p
}

func (p *UserProgress) apply(r *progress.Record) {
	p.LessonsCompleted = datatypes.JSONSlice[string](nonNil(r.LessonsCompleted))
	p.Scores = datatypes.NewJSONType(r.Scores)
	p.LessonProgress = datatypes.JSONSlice[progress.LessonEntry](r.LessonProgress)
	if p.LessonProgress == nil {
		p.LessonProgress = datatypes.JSONSlice[progress.LessonEntry]{}
	}
	p.Achievements = datatypes.JSONSlice[string](nonNil(r.Achievements))
	p.Streak = r.Streak
	p.TotalTimeSpent = r.TotalTimeSpent
	p.WeeklyGoal = r.WeeklyGoal
	p.WeeklyProgress = r.WeeklyProgress
	p.LastLogin = r.LastLogin
	p.LastActivityAt = r.LastActivityAt
}

// ProgressUpdates returns the column map for a conditional update from r.
// The version column is left to the caller.
func ProgressUpdates(r *progress.Record) map[string]interface{} {
	p := &UserProgress{}
	p.apply(r)
	return map[string]interface{}{
		"lessons_completed": p.LessonsCompleted,
		"scores":            p.Scores,
		"lesson_progress":   p.LessonProgress,
		"achievements":      p.Achievements,
		"streak":            p.Streak,
		"total_time_spent":  p.TotalTimeSpent,
		"weekly_goal":       p.WeeklyGoal,
		"weekly_progress":   p.WeeklyProgress,
		"last_login":        p.LastLogin,
		"last_activity_at":  p.LastActivityAt,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
