// model/content.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Course groups lessons owned by a teacher
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TeacherID   string    `json:"teacher_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Level       string    `json:"level" gorm:"not null;default:'beginner'"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LessonSection is one block of lesson body content.
type LessonSection struct {
	Heading  string   `json:"heading"`
	Body     string   `json:"body"`
	Examples []string `json:"examples,omitempty"`
}

// Question represents quiz questions within lessons
type Question struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`                  // multiple_choice, fill_blank, true_false, short_answer
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Lesson represents individual learning content
type Lesson struct {
	ID               string                             `json:"id" gorm:"primaryKey"`
	CourseID         string                             `json:"course_id" gorm:"not null;index"`
	TeacherID        string                             `json:"teacher_id" gorm:"not null;index"`
	Title            string                             `json:"title" gorm:"not null"`
	Description      string                             `json:"description" gorm:"type:text"`
	Skill            string                             `json:"skill" gorm:"not null"`
	Level            string                             `json:"level" gorm:"not null;default:'beginner'"`
	Content          datatypes.JSONSlice[LessonSection] `json:"content"`
	Questions        datatypes.JSONSlice[Question]      `json:"questions"`
	Order            int                                `json:"order" gorm:"not null;default:0"`          // Lesson order within course
	DurationMinutes  int                                `json:"duration_minutes" gorm:"default:10"`
	IsPublished      bool                               `json:"is_published" gorm:"default:false;index"`
	Source           string                             `json:"source" gorm:"not null;default:'manual'"`
	MediaObject      string                             `json:"media_object,omitempty"`
	MediaContentType string                             `json:"media_content_type,omitempty"`
	CreatedAt        time.Time                          `json:"created_at"`
	UpdatedAt        time.Time                          `json:"updated_at"`

	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}
