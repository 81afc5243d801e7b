package dto

import (
	"time"

	"github.com/lac-hong-legacy/english_api/progress"
)

// ==================== PROGRESS REQUEST DTOs ====================

type QuestionAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required" example:"q1"`
	Answer     string `json:"answer" example:"went"`
	IsCorrect  bool   `json:"isCorrect" example:"true"`
}

type CompleteLessonRequest struct {
	LessonID  string                  `json:"lessonId" validate:"required" example:"0190f0c2-7e51-7a4b-9c1e-3f1d2c4b5a69"`
	Score     *int                    `json:"score" validate:"required,gte=0,lte=100" example:"85"`
	TimeSpent int                     `json:"timeSpent" validate:"required,gt=0" example:"12"`
	Skill     string                  `json:"skill,omitempty" validate:"omitempty,skill" example:"grammar"`
	Attempts  int                     `json:"attempts,omitempty" validate:"omitempty,min=1" example:"1"`
	Answers   []QuestionAnswerRequest `json:"answers,omitempty" validate:"omitempty,dive"`
}

func (r CompleteLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ToCompletion converts the request into the recorder input.
func (r CompleteLessonRequest) ToCompletion() progress.Completion {
	answers := make([]progress.QuestionAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, progress.QuestionAnswer{
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
			IsCorrect:  a.IsCorrect,
		})
	}
	return progress.Completion{
		LessonID:  r.LessonID,
		Score:     r.Score,
		TimeSpent: r.TimeSpent,
		Skill:     r.Skill,
		Attempts:  r.Attempts,
		Answers:   answers,
	}
}

type WeeklyGoalRequest struct {
	WeeklyGoal int `json:"weeklyGoal" validate:"min=1,max=20" example:"5"`
}

func (r WeeklyGoalRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== PROGRESS RESPONSE DTOs ====================

type CompleteLessonResponse struct {
	TotalLessonsCompleted int                                    `json:"totalLessonsCompleted" example:"3"`
	Streak                int                                    `json:"streak" example:"2"`
	TotalTimeSpent        int                                    `json:"totalTimeSpent" example:"45"`
	WeeklyProgress        int                                    `json:"weeklyProgress" example:"3"`
	Scores                map[progress.Skill]progress.SkillScore `json:"scores"`
	NewAchievements       []string                               `json:"newAchievements" example:"first_lesson"`
	Entry                 progress.LessonEntry                   `json:"entry"`
}

// StatsResponse is the dashboard view of a progress record.
type StatsResponse struct {
	progress.Dashboard
}

type AchievementsResponse struct {
	Achievements []string `json:"achievements" example:"first_lesson,streak_3"`
	progress.Summary
	Catalog []AchievementInfo `json:"catalog"`
}

type AchievementInfo struct {
	ID          string `json:"id" example:"streak_7"`
	Name        string `json:"name" example:"Week Warrior"`
	Description string `json:"description" example:"Study 7 days in a row"`
	Category    string `json:"category" example:"streak"`
	Bonus       bool   `json:"bonus" example:"false"`
	Earned      bool   `json:"earned" example:"true"`
}

type WeeklyGoalResponse struct {
	WeeklyGoal           int `json:"weeklyGoal" example:"5"`
	WeeklyProgress       int `json:"weeklyProgress" example:"3"`
	WeeklyCompletionRate int `json:"weeklyCompletionRate" example:"60"`
}

// ProgressResponse is the raw stored record.
type ProgressResponse struct {
	UserID           string                                 `json:"userId"`
	LessonsCompleted []string                               `json:"lessonsCompleted"`
	Scores           map[progress.Skill]progress.SkillScore `json:"scores"`
	LessonProgress   []progress.LessonEntry                 `json:"lessonProgress"`
	Achievements     []string                               `json:"achievements"`
	Streak           int                                    `json:"streak"`
	TotalTimeSpent   int                                    `json:"totalTimeSpent"`
	WeeklyGoal       int                                    `json:"weeklyGoal"`
	WeeklyProgress   int                                    `json:"weeklyProgress"`
	LastLogin        time.Time                              `json:"lastLogin"`
	LastActivityAt   *time.Time                             `json:"lastActivityAt,omitempty"`
	Version          int                                    `json:"version"`
}

// ProgressSummary is the compact view used in profiles and teacher rosters.
type ProgressSummary struct {
	TotalLessonsCompleted int        `json:"totalLessonsCompleted" example:"12"`
	AverageScore          int        `json:"averageScore" example:"74"`
	Streak                int        `json:"streak" example:"4"`
	TotalTimeSpent        int        `json:"totalTimeSpent" example:"320"`
	WeeklyProgress        int        `json:"weeklyProgress" example:"2"`
	WeeklyGoal            int        `json:"weeklyGoal" example:"5"`
	AchievementsCount     int        `json:"achievementsCount" example:"3"`
	LastActivityAt        *time.Time `json:"lastActivityAt,omitempty"`
}
