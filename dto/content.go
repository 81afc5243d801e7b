package dto

import "time"

// ==================== COURSE DTOs ====================

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200" example:"Everyday English"`
	Description string `json:"description" validate:"omitempty,max=2000" example:"Conversation basics for beginners"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced" example:"beginner"`
	IsPublished bool   `json:"isPublished" example:"false"`
}

func (r CreateCourseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200" example:"Everyday English"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Level       *string `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced" example:"intermediate"`
	IsPublished *bool   `json:"isPublished,omitempty" example:"true"`
}

func (r UpdateCourseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CourseListRequest struct {
	PaginationRequest
	Level string `json:"level" query:"level" validate:"omitempty,oneof=beginner intermediate advanced" example:"beginner"`
}

func (r CourseListRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CourseResponse struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacherId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CourseListResponse struct {
	Courses    []CourseResponse   `json:"courses"`
	Pagination PaginationResponse `json:"pagination"`
}

// ==================== LESSON DTOs ====================

type LessonSectionPayload struct {
	Heading  string   `json:"heading" validate:"required,max=200" example:"Past simple"`
	Body     string   `json:"body" validate:"required" example:"We use the past simple for finished actions."`
	Examples []string `json:"examples,omitempty" example:"I went home."`
}

type QuestionPayload struct {
	ID          string   `json:"id,omitempty" example:"q1"`
	Type        string   `json:"type" validate:"required,oneof=multiple_choice fill_blank true_false short_answer" example:"multiple_choice"`
	Prompt      string   `json:"prompt" validate:"required" example:"Yesterday I ___ to school."`
	Options     []string `json:"options,omitempty" example:"go,went,gone"`
	Answer      string   `json:"answer" validate:"required" example:"went"`
	Explanation string   `json:"explanation,omitempty"`
}

type CreateLessonRequest struct {
	Title           string                 `json:"title" validate:"required,min=3,max=200" example:"Past simple"`
	Description     string                 `json:"description" validate:"omitempty,max=2000"`
	Skill           string                 `json:"skill" validate:"required,skill" example:"grammar"`
	Level           string                 `json:"level" validate:"omitempty,oneof=beginner intermediate advanced" example:"beginner"`
	Content         []LessonSectionPayload `json:"content" validate:"omitempty,dive"`
	Questions       []QuestionPayload      `json:"questions" validate:"omitempty,dive"`
	Order           *int                   `json:"order,omitempty" validate:"omitempty,min=0" example:"1"`
	DurationMinutes int                    `json:"durationMinutes" validate:"omitempty,min=1,max=240" example:"15"`
	IsPublished     bool                   `json:"isPublished" example:"false"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateLessonRequest struct {
	Title           *string                `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string                `json:"description,omitempty" validate:"omitempty,max=2000"`
	Skill           *string                `json:"skill,omitempty" validate:"omitempty,skill"`
	Level           *string                `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Content         []LessonSectionPayload `json:"content,omitempty" validate:"omitempty,dive"`
	Questions       []QuestionPayload      `json:"questions,omitempty" validate:"omitempty,dive"`
	Order           *int                   `json:"order,omitempty" validate:"omitempty,min=0"`
	DurationMinutes *int                   `json:"durationMinutes,omitempty" validate:"omitempty,min=1,max=240"`
	IsPublished     *bool                  `json:"isPublished,omitempty"`
}

func (r UpdateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LessonListRequest struct {
	PaginationRequest
	CourseID string `json:"courseId" query:"courseId"`
	Skill    string `json:"skill" query:"skill" validate:"omitempty,skill" example:"reading"`
	Level    string `json:"level" query:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Source   string `json:"source" query:"source" validate:"omitempty,oneof=manual ai"`
}

func (r LessonListRequest) Validate() error {
	return GetValidator().Struct(r)
}

type QuestionResponse struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
	// Answer and Explanation are only filled for the lesson owner and admins.
	Answer      string `json:"answer,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type LessonResponse struct {
	ID              string                 `json:"id"`
	CourseID        string                 `json:"courseId"`
	TeacherID       string                 `json:"teacherId"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Skill           string                 `json:"skill"`
	Level           string                 `json:"level"`
	Content         []LessonSectionPayload `json:"content"`
	Questions       []QuestionResponse     `json:"questions"`
	Order           int                    `json:"order"`
	DurationMinutes int                    `json:"durationMinutes"`
	IsPublished     bool                   `json:"isPublished"`
	Source          string                 `json:"source"`
	MediaURL        string                 `json:"mediaUrl,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type LessonListResponse struct {
	Lessons    []LessonResponse   `json:"lessons"`
	Pagination PaginationResponse `json:"pagination"`
}

// ==================== MEDIA DTOs ====================

type MediaUploadResponse struct {
	LessonID    string    `json:"lessonId"`
	ObjectName  string    `json:"objectName" example:"lessons/0190f0c2/audio.mp3"`
	ContentType string    `json:"contentType" example:"audio/mpeg"`
	Size        int64     `json:"size" example:"102400"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
