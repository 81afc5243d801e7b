package model

import "time"

type User struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Email           string     `json:"email" gorm:"unique;not null"`
	Username        string     `json:"username" gorm:"unique;not null"`
	Password        string     `json:"-"`
	FullName        string     `json:"full_name"`
	Role            string     `json:"role" gorm:"not null;default:'student';index"`
	TeacherStatus   string     `json:"teacher_status" gorm:"not null;default:'none';index"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	LastLogin       *time.Time `json:"last_login"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TeacherStudent links a teacher to a student they follow.
type TeacherStudent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TeacherID string    `json:"teacher_id" gorm:"not null;uniqueIndex:idx_teacher_student"`
	StudentID string    `json:"student_id" gorm:"not null;uniqueIndex:idx_teacher_student;index"`
	CreatedAt time.Time `json:"created_at"`

	Student User `json:"student" gorm:"foreignKey:StudentID"`
}
