package dto

import "time"

// ==================== AI GENERATION DTOs ====================

type GenerateLessonRequest struct {
	Topic         string `json:"topic" validate:"required,min=3,max=200" example:"Ordering food at a restaurant"`
	Skill         string `json:"skill" validate:"required,skill" example:"speaking"`
	Level         string `json:"level" validate:"required,oneof=beginner intermediate advanced" example:"beginner"`
	QuestionCount int    `json:"questionCount" validate:"omitempty,min=1,max=20" example:"5"`
	CourseID      string `json:"courseId,omitempty" example:"0190f0c2-7e51-7a4b-9c1e-3f1d2c4b5a69"`
}

func (r GenerateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GenerateQuestionsRequest struct {
	LessonID string `json:"lessonId,omitempty"`
	Topic    string `json:"topic" validate:"required,min=3,max=200" example:"Irregular verbs"`
	Skill    string `json:"skill" validate:"required,skill" example:"grammar"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced" example:"intermediate"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=20" example:"5"`
}

func (r GenerateQuestionsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GeneratedLesson struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Content     []LessonSectionPayload `json:"content"`
	Questions   []QuestionPayload      `json:"questions"`
}

type GenerateLessonResponse struct {
	Lesson      GeneratedLesson `json:"lesson"`
	SavedLesson *LessonResponse `json:"savedLesson,omitempty"`
	CreditsUsed int             `json:"creditsUsed" example:"2"`
	CreditsLeft int             `json:"creditsLeft" example:"8"`
	Model       string          `json:"model" example:"gpt-4o-mini"`
}

type GenerateQuestionsResponse struct {
	Questions   []QuestionPayload `json:"questions"`
	LessonID    string            `json:"lessonId,omitempty"`
	CreditsUsed int               `json:"creditsUsed" example:"1"`
	CreditsLeft int               `json:"creditsLeft" example:"7"`
	Model       string            `json:"model" example:"gpt-4o-mini"`
}

type AIGenerationInfo struct {
	ID           string    `json:"id"`
	Purpose      string    `json:"purpose" example:"lesson"`
	Model        string    `json:"model" example:"gpt-4o-mini"`
	LatencyMs    int64     `json:"latencyMs" example:"2300"`
	InputTokens  int       `json:"inputTokens" example:"310"`
	OutputTokens int       `json:"outputTokens" example:"1200"`
	Success      bool      `json:"success" example:"true"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AIHistoryResponse struct {
	Generations []AIGenerationInfo `json:"generations"`
}
